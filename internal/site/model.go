package site

import (
	"time"

	"github.com/google/uuid"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"gorm.io/gorm"
)

// Site é a linha da tabela demo_sites.
type Site struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Titulo      string    `gorm:"column:title;size:255;not null" json:"title"`
	Link        string    `gorm:"column:link;type:text" json:"link"`
	MidiaURL    string    `gorm:"column:media_url;type:text" json:"media_url"`
	TipoMidia   string    `gorm:"column:media_type;size:10;default:'image'" json:"media_type"`
	CategoriaID string    `gorm:"column:category_id;size:36;index" json:"category_id"`
	Descricao   string    `gorm:"column:description;type:text" json:"description"`
	Galeria     []string  `gorm:"column:gallery_urls;type:jsonb;serializer:json" json:"gallery_urls"`
	Posicao     *string   `gorm:"column:object_position;size:32" json:"object_position"`
	CriadoEm    time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Site) TableName() string { return "demo_sites" }

func (s *Site) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ParaDominio normaliza a linha: galeria ausente vira lista vazia e
// enquadramento ausente vira o centro da mídia.
func (s Site) ParaDominio() models.Site {
	d := models.Site{
		ID:          s.ID,
		Titulo:      s.Titulo,
		Link:        s.Link,
		MidiaURL:    s.MidiaURL,
		TipoMidia:   models.TipoMidia(s.TipoMidia),
		CategoriaID: s.CategoriaID,
		Descricao:   s.Descricao,
		Galeria:     s.Galeria,
		Posicao:     models.PosicaoPadrao,
	}
	if d.Galeria == nil {
		d.Galeria = []string{}
	}
	if d.TipoMidia == "" {
		d.TipoMidia = models.MidiaImagem
	}
	if s.Posicao != nil && *s.Posicao != "" {
		d.Posicao = *s.Posicao
	}
	return d
}

// DoDominio monta a linha para gravação.
func DoDominio(d models.Site) Site {
	s := Site{
		ID:          d.ID,
		Titulo:      d.Titulo,
		Link:        d.Link,
		MidiaURL:    d.MidiaURL,
		TipoMidia:   string(d.TipoMidia),
		CategoriaID: d.CategoriaID,
		Descricao:   d.Descricao,
		Galeria:     d.Galeria,
	}
	if s.Galeria == nil {
		s.Galeria = []string{}
	}
	if d.Posicao != "" {
		p := d.Posicao
		s.Posicao = &p
	}
	return s
}

// ColunasEditaveis são regravadas numa edição completa do site.
var ColunasEditaveis = []string{
	"title", "link", "media_url", "media_type", "category_id",
	"description", "gallery_urls", "object_position",
}
