// Package repository owns persistence and the uniqueness and referential rules
// for users, procurements, contracts and notifications.
package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/apperr"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound            = fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	ErrUsernameTaken           = fmt.Errorf("%w: username already registered", apperr.ErrConflict)
	ErrEmailTaken              = fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	ErrUserExists              = fmt.Errorf("%w: username or email already registered", apperr.ErrConflict)
	ErrProcurementNotFound     = fmt.Errorf("%w: procurement not found", apperr.ErrNotFound)
	ErrProcessNumberTaken      = fmt.Errorf("%w: numero_processo already registered", apperr.ErrConflict)
	ErrProcurementHasContracts = fmt.Errorf("%w: procurement still has contracts", apperr.ErrConflict)
	ErrContractNotFound        = fmt.Errorf("%w: contract not found", apperr.ErrNotFound)
	ErrContractNumberTaken     = fmt.Errorf("%w: numero_contrato already registered", apperr.ErrConflict)
	ErrNotificationNotFound    = fmt.Errorf("%w: notification not found", apperr.ErrNotFound)
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Page is an offset/limit window over a listing.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Page) scope() func(*gorm.DB) *gorm.DB {
	n := p.normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(n.Offset).Limit(n.Limit)
	}
}

// Clock is how repositories read the current time.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// translate maps a storage error to the repository's error kinds. conflict is
// returned when the unique index rejected the write.
func translate(err error, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey) && conflict != nil:
		return conflict
	}
	return err
}

// exists reports whether any row of model matches the query.
func exists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(query, args...).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
