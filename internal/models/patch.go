package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/apperr"
	"github.com/shopspring/decimal"
)

// ProcurementPatch carries the fields of a partial procurement update.
type ProcurementPatch struct {
	NumeroProcesso   Optional[string] `json:"numero_processo"`
	Modalidade       Optional[string] `json:"modalidade"`
	Objeto           Optional[string] `json:"objeto"`
	OrgaoResponsavel Optional[string] `json:"orgao_responsavel"`
	DataAbertura     Optional[Date]   `json:"data_abertura"`
	DataEncerramento Optional[Date]   `json:"data_encerramento"`
	Status           Optional[string] `json:"status"`
}

func (p ProcurementPatch) Apply(dst *Procurement) error {
	if err := setText(&dst.NumeroProcesso, p.NumeroProcesso, "numero_processo"); err != nil {
		return err
	}
	if err := setText(&dst.Modalidade, p.Modalidade, "modalidade"); err != nil {
		return err
	}
	if err := setText(&dst.Objeto, p.Objeto, "objeto"); err != nil {
		return err
	}
	if err := setText(&dst.OrgaoResponsavel, p.OrgaoResponsavel, "orgao_responsavel"); err != nil {
		return err
	}
	if err := setRequired(&dst.DataAbertura, p.DataAbertura, "data_abertura"); err != nil {
		return err
	}
	setNullable(&dst.DataEncerramento, p.DataEncerramento)
	return setText(&dst.Status, p.Status, "status")
}

// ContractPatch carries the fields of a partial contract update. The owning
// procurement is deliberately absent.
type ContractPatch struct {
	NumeroContrato Optional[string]          `json:"numero_contrato"`
	Fornecedor     Optional[string]          `json:"fornecedor"`
	Objeto         Optional[string]          `json:"objeto"`
	ValorTotal     Optional[decimal.Decimal] `json:"valor_total"`
	DataAssinatura Optional[Date]            `json:"data_assinatura"`
	DataInicio     Optional[Date]            `json:"data_inicio"`
	DataFim        Optional[Date]            `json:"data_fim"`
	Status         Optional[string]          `json:"status"`
}

func (p ContractPatch) Apply(dst *Contract) error {
	if err := setText(&dst.NumeroContrato, p.NumeroContrato, "numero_contrato"); err != nil {
		return err
	}
	if err := setText(&dst.Fornecedor, p.Fornecedor, "fornecedor"); err != nil {
		return err
	}
	if err := setText(&dst.Objeto, p.Objeto, "objeto"); err != nil {
		return err
	}
	if err := setRequired(&dst.ValorTotal, p.ValorTotal, "valor_total"); err != nil {
		return err
	}
	value, err := normalizeContractValue(dst.ValorTotal)
	if err != nil {
		return err
	}
	dst.ValorTotal = value
	if err := setRequired(&dst.DataAssinatura, p.DataAssinatura, "data_assinatura"); err != nil {
		return err
	}
	if err := setRequired(&dst.DataInicio, p.DataInicio, "data_inicio"); err != nil {
		return err
	}
	setNullable(&dst.DataFim, p.DataFim)
	return setText(&dst.Status, p.Status, "status")
}

// NotificationPatch carries the fields of a partial notification update.
type NotificationPatch struct {
	Titulo   Optional[string] `json:"titulo"`
	Mensagem Optional[string] `json:"mensagem"`
	Tipo     Optional[string] `json:"tipo"`
	Lida     Optional[bool]   `json:"lida"`
}

// Apply merges the patch. A false→true change of Lida goes through MarkRead so
// the read timestamp is only written once.
func (p NotificationPatch) Apply(dst *Notification, now time.Time) error {
	if err := setText(&dst.Titulo, p.Titulo, "titulo"); err != nil {
		return err
	}
	if err := setText(&dst.Mensagem, p.Mensagem, "mensagem"); err != nil {
		return err
	}
	if p.Tipo.Set {
		if tipo, ok := p.Tipo.Get(); !ok || !IsValidNotificationType(tipo) {
			return fmt.Errorf("%w: tipo must be one of info, warning, error, success", apperr.ErrInvalid)
		}
		dst.Tipo = p.Tipo.Value
	}
	if p.Lida.Set {
		lida, ok := p.Lida.Get()
		if !ok {
			return fmt.Errorf("%w: lida cannot be null", apperr.ErrInvalid)
		}
		if lida {
			dst.MarkRead(now)
		} else {
			dst.Lida = false
		}
	}
	return nil
}

func setRequired[T any](dst *T, o Optional[T], field string) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		return fmt.Errorf("%w: %s cannot be null", apperr.ErrInvalid, field)
	}
	*dst = o.Value
	return nil
}

func setText(dst *string, o Optional[string], field string) error {
	if !o.Set {
		return nil
	}
	v, ok := o.Get()
	if !ok || strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s cannot be empty", apperr.ErrInvalid, field)
	}
	*dst = strings.TrimSpace(v)
	return nil
}

func setNullable[T any](dst **T, o Optional[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = nil
		return
	}
	v := o.Value
	*dst = &v
}
