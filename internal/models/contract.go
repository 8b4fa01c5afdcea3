package models

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/apperr"
	"github.com/shopspring/decimal"
)

const DefaultContractStatus = "Ativo"

// maxContractValue is the first value a decimal(15,2) column cannot hold.
var maxContractValue = decimal.New(1, 13)

// normalizeContractValue rounds v to cents and checks it fits valor_total.
func normalizeContractValue(v decimal.Decimal) (decimal.Decimal, error) {
	if v.IsNegative() {
		return v, fmt.Errorf("%w: valor_total must not be negative", apperr.ErrInvalid)
	}
	v = v.Round(2)
	if v.GreaterThanOrEqual(maxContractValue) {
		return v, fmt.Errorf("%w: valor_total must be less than %s", apperr.ErrInvalid, maxContractValue)
	}
	return v, nil
}

// Contract is an agreement awarded from a Procurement. ProcurementID is fixed
// at creation.
type Contract struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	NumeroContrato string          `gorm:"size:50;not null;uniqueIndex:idx_contratos_numero" json:"numero_contrato"`
	ProcurementID  uint            `gorm:"column:licitacao_id;not null;index" json:"licitacao_id"`
	Fornecedor     string          `gorm:"size:200;not null" json:"fornecedor"`
	Objeto         string          `gorm:"type:text;not null" json:"objeto"`
	ValorTotal     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"valor_total"`
	DataAssinatura Date            `gorm:"not null" json:"data_assinatura"`
	DataInicio     Date            `gorm:"not null" json:"data_inicio"`
	DataFim        *Date           `json:"data_fim"`
	Status         string          `gorm:"size:30;not null;default:'Ativo'" json:"status"`
}

func (Contract) TableName() string { return "contratos" }
