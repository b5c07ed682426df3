package categoria

import (
	"time"

	"github.com/google/uuid"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"gorm.io/gorm"
)

// Categoria é a linha da tabela categories.
type Categoria struct {
	ID       string    `gorm:"primaryKey;size:36" json:"id"`
	Nome     string    `gorm:"column:name;size:255;not null;index" json:"name"`
	CriadoEm time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Categoria) TableName() string { return "categories" }

func (c *Categoria) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c Categoria) ParaDominio() models.Categoria {
	return models.Categoria{ID: c.ID, Nome: c.Nome}
}
