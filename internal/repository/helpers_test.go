package repository

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProcurement(numero string) *models.Procurement {
	fim := models.NewDate(2024, 6, 30)
	return &models.Procurement{
		NumeroProcesso:   numero,
		Modalidade:       "Pregão Eletrônico",
		Objeto:           "Aquisição de material de escritório",
		OrgaoResponsavel: "Secretaria de Administração",
		DataAbertura:     models.NewDate(2024, 3, 1),
		DataEncerramento: &fim,
		Status:           "Aberta",
	}
}

func newContract(numero string, procurementID uint) *models.Contract {
	return &models.Contract{
		NumeroContrato: numero,
		ProcurementID:  procurementID,
		Fornecedor:     "Papelaria Central LTDA",
		Objeto:         "Fornecimento de papel A4",
		ValorTotal:     decimal.RequireFromString("15750.40"),
		DataAssinatura: models.NewDate(2024, 4, 2),
		DataInicio:     models.NewDate(2024, 4, 5),
	}
}

func mustCreateProcurement(t *testing.T, db *gorm.DB, numero string) *models.Procurement {
	t.Helper()
	p := newProcurement(numero)
	if err := NewProcurementRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("failed to create procurement %s: %v", numero, err)
	}
	return p
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	if err := NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return u
}

func uintPtr(v uint) *uint { return &v }
