package consultor

import (
	"time"

	"github.com/google/uuid"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"gorm.io/gorm"
)

// Consultor é a linha da tabela consultants.
type Consultor struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Nome        string    `gorm:"column:name;size:255;not null;index" json:"name"`
	CPF         string    `gorm:"column:cpf;size:14" json:"cpf"`
	WhatsApp    *string   `gorm:"column:whatsapp;size:20" json:"whatsapp"`
	FotoURL     string    `gorm:"column:photo_url;type:text" json:"photo_url"`
	PosicaoFoto *string   `gorm:"column:photo_position;size:32" json:"photo_position"`
	CriadoEm    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Consultor) TableName() string { return "consultants" }

func (c *Consultor) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c Consultor) ParaDominio() models.Consultor {
	d := models.Consultor{
		ID:          c.ID,
		Nome:        c.Nome,
		CPF:         c.CPF,
		FotoURL:     c.FotoURL,
		PosicaoFoto: models.PosicaoPadrao,
	}
	if c.WhatsApp != nil && *c.WhatsApp != "" {
		w := *c.WhatsApp
		d.WhatsApp = &w
	}
	if c.PosicaoFoto != nil && *c.PosicaoFoto != "" {
		d.PosicaoFoto = *c.PosicaoFoto
	}
	return d
}

func DoDominio(d models.Consultor) Consultor {
	c := Consultor{
		ID:       d.ID,
		Nome:     d.Nome,
		CPF:      d.CPF,
		WhatsApp: d.WhatsApp,
		FotoURL:  d.FotoURL,
	}
	if d.PosicaoFoto != "" {
		p := d.PosicaoFoto
		c.PosicaoFoto = &p
	}
	return c
}

var ColunasEditaveis = []string{"name", "cpf", "whatsapp", "photo_url", "photo_position"}
