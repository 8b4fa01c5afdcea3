package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportService aggregates the dashboard figures.
type ReportService struct {
	db            *gorm.DB
	notifications *repository.NotificationRepository
}

func NewReportService(db *gorm.DB, notifications *repository.NotificationRepository) *ReportService {
	return &ReportService{db: db, notifications: notifications}
}

// Summary counts procurements and contracts by status, totals contract value
// and counts the unread notifications visible to userID.
func (s *ReportService) Summary(ctx context.Context, userID *uint) (*dto.SummaryResponse, error) {
	db := s.db.WithContext(ctx)
	resp := &dto.SummaryResponse{
		ProcurementsByStatus: []dto.StatusCount{},
		ContractsByStatus:    []dto.StatusCount{},
		ContractsTotalValue:  decimal.Zero,
	}

	if err := db.Model(&models.Procurement{}).
		Select("status, COUNT(*) AS count").
		Group("status").Order("status").
		Scan(&resp.ProcurementsByStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count procurements: %w", err)
	}
	for _, sc := range resp.ProcurementsByStatus {
		resp.Procurements += sc.Count
	}

	if err := db.Model(&models.Contract{}).
		Select("status, COUNT(*) AS count").
		Group("status").Order("status").
		Scan(&resp.ContractsByStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}
	for _, sc := range resp.ContractsByStatus {
		resp.Contracts += sc.Count
	}

	var total decimal.NullDecimal
	if err := db.Model(&models.Contract{}).
		Select("SUM(valor_total)").
		Row().Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to sum contract values: %w", err)
	}
	if total.Valid {
		resp.ContractsTotalValue = total.Decimal.Round(2)
	}

	if err := db.Model(&models.User{}).Count(&resp.Users).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	resp.UnreadNotifications = unread
	return resp, nil
}
