package models

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/apperr"
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", apperr.ErrInvalid, field)
	}
	return nil
}

// Validate trims text fields and checks what a new procurement needs.
func (p *Procurement) Validate() error {
	p.NumeroProcesso = strings.TrimSpace(p.NumeroProcesso)
	p.Modalidade = strings.TrimSpace(p.Modalidade)
	p.OrgaoResponsavel = strings.TrimSpace(p.OrgaoResponsavel)
	p.Status = strings.TrimSpace(p.Status)
	for _, f := range []struct{ name, value string }{
		{"numero_processo", p.NumeroProcesso},
		{"modalidade", p.Modalidade},
		{"objeto", p.Objeto},
		{"orgao_responsavel", p.OrgaoResponsavel},
		{"status", p.Status},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	if p.DataAbertura.IsZero() {
		return fmt.Errorf("%w: data_abertura is required", apperr.ErrInvalid)
	}
	if p.DataEncerramento != nil && p.DataEncerramento.Before(p.DataAbertura.Time) {
		return fmt.Errorf("%w: data_encerramento is before data_abertura", apperr.ErrInvalid)
	}
	return nil
}

// Validate trims text fields, fills the default status and rounds the value to
// cents.
func (c *Contract) Validate() error {
	c.NumeroContrato = strings.TrimSpace(c.NumeroContrato)
	c.Fornecedor = strings.TrimSpace(c.Fornecedor)
	c.Status = strings.TrimSpace(c.Status)
	if c.Status == "" {
		c.Status = DefaultContractStatus
	}
	for _, f := range []struct{ name, value string }{
		{"numero_contrato", c.NumeroContrato},
		{"fornecedor", c.Fornecedor},
		{"objeto", c.Objeto},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	if c.ProcurementID == 0 {
		return fmt.Errorf("%w: licitacao_id is required", apperr.ErrInvalid)
	}
	value, err := normalizeContractValue(c.ValorTotal)
	if err != nil {
		return err
	}
	c.ValorTotal = value
	if c.DataAssinatura.IsZero() || c.DataInicio.IsZero() {
		return fmt.Errorf("%w: data_assinatura and data_inicio are required", apperr.ErrInvalid)
	}
	if c.DataFim != nil && c.DataFim.Before(c.DataInicio.Time) {
		return fmt.Errorf("%w: data_fim is before data_inicio", apperr.ErrInvalid)
	}
	return nil
}

func (n *Notification) Validate() error {
	if err := required("titulo", n.Titulo); err != nil {
		return err
	}
	if err := required("mensagem", n.Mensagem); err != nil {
		return err
	}
	if !IsValidNotificationType(n.Tipo) {
		return fmt.Errorf("%w: tipo must be one of info, warning, error, success", apperr.ErrInvalid)
	}
	return nil
}
