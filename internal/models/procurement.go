package models

// Procurement is a public bidding process (licitação).
type Procurement struct {
	ID               uint   `gorm:"column:id_licitacao;primaryKey" json:"id_licitacao"`
	NumeroProcesso   string `gorm:"size:50;not null;uniqueIndex:uq_numero_processo" json:"numero_processo"`
	Modalidade       string `gorm:"size:30;not null" json:"modalidade"`
	Objeto           string `gorm:"type:text;not null" json:"objeto"`
	OrgaoResponsavel string `gorm:"size:100;not null" json:"orgao_responsavel"`
	DataAbertura     Date   `gorm:"not null" json:"data_abertura"`
	DataEncerramento *Date  `json:"data_encerramento"`
	Status           string `gorm:"size:20;not null;index" json:"status"`
}

func (Procurement) TableName() string { return "licitacoes" }
