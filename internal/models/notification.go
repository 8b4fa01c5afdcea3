package models

import "time"

const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationError   = "error"
	NotificationSuccess = "success"
)

func IsValidNotificationType(t string) bool {
	switch t {
	case NotificationInfo, NotificationWarning, NotificationError, NotificationSuccess:
		return true
	}
	return false
}

// Notification is shown to one user, or to everyone when UserID is nil.
type Notification struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Titulo      string     `gorm:"size:200;not null" json:"titulo"`
	Mensagem    string     `gorm:"type:text;not null" json:"mensagem"`
	Tipo        string     `gorm:"size:50;not null" json:"tipo"`
	UserID      *uint      `gorm:"column:usuario_id;index" json:"usuario_id"`
	Lida        bool       `gorm:"not null;default:false;index" json:"lida"`
	DataCriacao time.Time  `gorm:"not null;index" json:"data_criacao"`
	DataLeitura *time.Time `json:"data_leitura"`
}

func (Notification) TableName() string { return "notificacoes" }

// MarkRead flips the read flag. The read timestamp is written only the first
// time; it reports whether anything changed.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.Lida {
		return false
	}
	n.Lida = true
	if n.DataLeitura == nil {
		t := now.UTC()
		n.DataLeitura = &t
	}
	return true
}
