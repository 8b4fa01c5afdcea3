package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationFilter narrows a listing. With UserID set, only that user's
// notifications and the global ones are returned.
type NotificationFilter struct {
	UserID     *uint
	UnreadOnly bool
}

func (f NotificationFilter) scope(db *gorm.DB) *gorm.DB {
	if f.UserID != nil {
		db = db.Where("(usuario_id = ? OR usuario_id IS NULL)", *f.UserID)
	}
	if f.UnreadOnly {
		db = db.Where("lida = ?", false)
	}
	return db
}

type NotificationRepository struct {
	db  *gorm.DB
	now Clock
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db, now: systemClock}
}

// WithClock replaces the time source used for creation and read stamps.
func (r *NotificationRepository) WithClock(now Clock) *NotificationRepository {
	r.now = now
	return r
}

// stamp is the current time at the microsecond precision Postgres keeps.
func (r *NotificationRepository) stamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	n.ID = 0
	n.Lida = false
	n.DataLeitura = nil
	n.DataCriacao = r.stamp()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if n.UserID != nil {
			found, err := exists(tx, &models.User{}, "id = ?", *n.UserID)
			if err != nil {
				return err
			}
			if !found {
				return ErrUserNotFound
			}
		}
		return tx.Create(n).Error
	})
}

func (r *NotificationRepository) Get(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err, ErrNotificationNotFound, nil)
	}
	return &n, nil
}

// List returns notifications newest first.
func (r *NotificationRepository) List(ctx context.Context, filter NotificationFilter, page Page) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.WithContext(ctx).
		Scopes(filter.scope, page.scope()).
		Order("data_criacao DESC").
		Order("id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// Update applies patch. The read timestamp is stamped when lida goes from
// false to true and never overwritten afterwards.
func (r *NotificationRepository) Update(ctx context.Context, id uint, patch models.NotificationPatch) (*models.Notification, error) {
	var n models.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&n, id).Error; err != nil {
			return err
		}
		if err := patch.Apply(&n, r.stamp()); err != nil {
			return err
		}
		return tx.Save(&n).Error
	})
	if err != nil {
		return nil, translate(err, ErrNotificationNotFound, nil)
	}
	return &n, nil
}

// MarkRead marks one notification read. Marking an already read notification
// changes nothing.
func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&n, id).Error; err != nil {
			return err
		}
		if !n.MarkRead(r.stamp()) {
			return nil
		}
		return tx.Model(&n).Select("lida", "data_leitura").Updates(&n).Error
	})
	if err != nil {
		return nil, translate(err, ErrNotificationNotFound, nil)
	}
	return &n, nil
}

// MarkAllRead marks every unread notification visible to userID (all of them
// when userID is nil) as read in one statement and returns how many changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID *uint) (int64, error) {
	now := r.stamp()
	q := r.db.WithContext(ctx).Model(&models.Notification{}).Where("lida = ?", false)
	if userID != nil {
		q = q.Where("(usuario_id = ? OR usuario_id IS NULL)", *userID)
	}
	res := q.Updates(map[string]interface{}{
		"lida":         true,
		"data_leitura": gorm.Expr("COALESCE(data_leitura, ?)", now),
	})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID *uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Scopes(NotificationFilter{UserID: userID, UnreadOnly: true}.scope).
		Count(&n).Error
	return n, err
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Notification{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
