package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProcurementFilter struct {
	Status     string
	Modalidade string
}

type ProcurementRepository struct {
	db *gorm.DB
}

func NewProcurementRepository(db *gorm.DB) *ProcurementRepository {
	return &ProcurementRepository{db: db}
}

func (r *ProcurementRepository) Create(ctx context.Context, p *models.Procurement) error {
	if err := p.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &models.Procurement{}, "numero_processo = ?", p.NumeroProcesso)
		if err != nil {
			return err
		}
		if taken {
			return ErrProcessNumberTaken
		}
		return tx.Create(p).Error
	})
	return translate(err, nil, ErrProcessNumberTaken)
}

func (r *ProcurementRepository) Get(ctx context.Context, id uint) (*models.Procurement, error) {
	var p models.Procurement
	if err := r.db.WithContext(ctx).First(&p, "id_licitacao = ?", id).Error; err != nil {
		return nil, translate(err, ErrProcurementNotFound, nil)
	}
	return &p, nil
}

func (r *ProcurementRepository) List(ctx context.Context, filter ProcurementFilter, page Page) ([]models.Procurement, error) {
	q := r.db.WithContext(ctx).Model(&models.Procurement{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Modalidade != "" {
		q = q.Where("modalidade = ?", filter.Modalidade)
	}

	procurements := []models.Procurement{}
	if err := q.Scopes(page.scope()).Order("id_licitacao ASC").Find(&procurements).Error; err != nil {
		return nil, fmt.Errorf("failed to list procurements: %w", err)
	}
	return procurements, nil
}

// Update applies patch to the stored procurement. Fields absent from the patch
// keep their values.
func (r *ProcurementRepository) Update(ctx context.Context, id uint, patch models.ProcurementPatch) (*models.Procurement, error) {
	var p models.Procurement
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id_licitacao = ?", id).Error; err != nil {
			return err
		}
		if err := patch.Apply(&p); err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if patch.NumeroProcesso.Set {
			taken, err := exists(tx, &models.Procurement{}, "numero_processo = ? AND id_licitacao <> ?", p.NumeroProcesso, p.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrProcessNumberTaken
			}
		}
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, translate(err, ErrProcurementNotFound, ErrProcessNumberTaken)
	}
	return &p, nil
}

// Delete removes a procurement. Deletion is refused while contracts still
// reference it.
func (r *ProcurementRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Procurement
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id_licitacao = ?", id).Error; err != nil {
			return err
		}
		owned, err := exists(tx, &models.Contract{}, "licitacao_id = ?", id)
		if err != nil {
			return err
		}
		if owned {
			return ErrProcurementHasContracts
		}
		return tx.Delete(&p).Error
	})
	return translate(err, ErrProcurementNotFound, nil)
}
