package dto

import (
	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/models"
	"github.com/shopspring/decimal"
)

type CreateProcurementRequest struct {
	NumeroProcesso   string       `json:"numero_processo"`
	Modalidade       string       `json:"modalidade"`
	Objeto           string       `json:"objeto"`
	OrgaoResponsavel string       `json:"orgao_responsavel"`
	DataAbertura     models.Date  `json:"data_abertura"`
	DataEncerramento *models.Date `json:"data_encerramento"`
	Status           string       `json:"status"`
}

func (r CreateProcurementRequest) Model() *models.Procurement {
	return &models.Procurement{
		NumeroProcesso:   r.NumeroProcesso,
		Modalidade:       r.Modalidade,
		Objeto:           r.Objeto,
		OrgaoResponsavel: r.OrgaoResponsavel,
		DataAbertura:     r.DataAbertura,
		DataEncerramento: r.DataEncerramento,
		Status:           r.Status,
	}
}

type CreateContractRequest struct {
	NumeroContrato string          `json:"numero_contrato"`
	LicitacaoID    uint            `json:"licitacao_id"`
	Fornecedor     string          `json:"fornecedor"`
	Objeto         string          `json:"objeto"`
	ValorTotal     decimal.Decimal `json:"valor_total"`
	DataAssinatura models.Date     `json:"data_assinatura"`
	DataInicio     models.Date     `json:"data_inicio"`
	DataFim        *models.Date    `json:"data_fim"`
	Status         string          `json:"status"`
}

func (r CreateContractRequest) Model() *models.Contract {
	return &models.Contract{
		NumeroContrato: r.NumeroContrato,
		ProcurementID:  r.LicitacaoID,
		Fornecedor:     r.Fornecedor,
		Objeto:         r.Objeto,
		ValorTotal:     r.ValorTotal,
		DataAssinatura: r.DataAssinatura,
		DataInicio:     r.DataInicio,
		DataFim:        r.DataFim,
		Status:         r.Status,
	}
}

type CreateNotificationRequest struct {
	Titulo    string `json:"titulo"`
	Mensagem  string `json:"mensagem"`
	Tipo      string `json:"tipo"`
	UsuarioID *uint  `json:"usuario_id"`
}

func (r CreateNotificationRequest) Model() *models.Notification {
	return &models.Notification{
		Titulo:   r.Titulo,
		Mensagem: r.Mensagem,
		Tipo:     r.Tipo,
		UserID:   r.UsuarioID,
	}
}

type MarkAllReadResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type SummaryResponse struct {
	Procurements         int64           `json:"licitacoes"`
	ProcurementsByStatus []StatusCount   `json:"licitacoes_por_status"`
	Contracts            int64           `json:"contratos"`
	ContractsByStatus    []StatusCount   `json:"contratos_por_status"`
	ContractsTotalValue  decimal.Decimal `json:"valor_total_contratos"`
	Users                int64           `json:"usuarios"`
	UnreadNotifications  int64           `json:"notificacoes_nao_lidas"`
}
