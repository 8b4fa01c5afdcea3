package repository

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user after checking username and email are free. The unique
// indexes decide races between concurrent registrations.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &models.User{}, "username = ?", user.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		if taken, err = exists(tx, &models.User{}, "email = ?", user.Email); err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return translate(err, nil, ErrUserExists)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, ErrUserNotFound, nil)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, ErrUserNotFound, nil)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, page Page) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Scopes(page.scope()).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}
