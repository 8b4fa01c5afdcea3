package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractFilter struct {
	ProcurementID *uint
	Status        string
}

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create inserts c once its procurement is known to exist. The procurement row
// is share-locked so a concurrent delete cannot orphan the contract.
func (r *ContractRepository) Create(ctx context.Context, c *models.Contract) error {
	if err := c.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.Procurement
		err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id_licitacao").
			First(&owner, "id_licitacao = ?", c.ProcurementID).Error
		if err != nil {
			return translate(err, ErrProcurementNotFound, nil)
		}
		taken, err := exists(tx, &models.Contract{}, "numero_contrato = ?", c.NumeroContrato)
		if err != nil {
			return err
		}
		if taken {
			return ErrContractNumberTaken
		}
		return tx.Create(c).Error
	})
	return translate(err, nil, ErrContractNumberTaken)
}

func (r *ContractRepository) Get(ctx context.Context, id uint) (*models.Contract, error) {
	var c models.Contract
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, ErrContractNotFound, nil)
	}
	return &c, nil
}

func (r *ContractRepository) List(ctx context.Context, filter ContractFilter, page Page) ([]models.Contract, error) {
	q := r.db.WithContext(ctx).Model(&models.Contract{})
	if filter.ProcurementID != nil {
		q = q.Where("licitacao_id = ?", *filter.ProcurementID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	contracts := []models.Contract{}
	if err := q.Scopes(page.scope()).Order("id ASC").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// Update applies patch to the stored contract; only supplied fields change.
func (r *ContractRepository) Update(ctx context.Context, id uint, patch models.ContractPatch) (*models.Contract, error) {
	var c models.Contract
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error; err != nil {
			return err
		}
		if err := patch.Apply(&c); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if patch.NumeroContrato.Set {
			taken, err := exists(tx, &models.Contract{}, "numero_contrato = ? AND id <> ?", c.NumeroContrato, c.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrContractNumberTaken
			}
		}
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, translate(err, ErrContractNotFound, ErrContractNumberTaken)
	}
	return &c, nil
}

func (r *ContractRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Contract{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrContractNotFound
	}
	return nil
}
