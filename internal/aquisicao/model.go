package aquisicao

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/calculo"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"gorm.io/gorm"
)

// Aquisicao é a linha da tabela acquisitions.
type Aquisicao struct {
	ID              string   `gorm:"primaryKey;size:36" json:"id"`
	SiteID          string   `gorm:"column:site_id;size:36;index" json:"site_id"`
	SiteTitulo      string   `gorm:"column:site_title;size:255" json:"site_title"`
	ConsultorID     string   `gorm:"column:consultant_id;size:36;index" json:"consultant_id"`
	ClienteNome     string   `gorm:"column:client_name;size:255" json:"client_name"`
	ClienteTelefone string   `gorm:"column:client_phone;size:32" json:"client_phone"`
	ClienteCPF      string   `gorm:"column:client_cpf;size:14" json:"client_cpf"`
	Latitude        *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude       *float64 `gorm:"column:longitude" json:"longitude"`
	Status          string   `gorm:"column:status;size:20;not null;default:'pending';index" json:"status"`
	Comentario      *string  `gorm:"column:comment;type:text" json:"comment"`
	AnexoURL        *string  `gorm:"column:attachment_url;type:text" json:"attachment_url"`
	Quitado         *bool    `gorm:"column:is_paid;default:false" json:"is_paid"`

	Parcelas      *int                `gorm:"column:installments" json:"installments"`
	ValorParcela  decimal.NullDecimal `gorm:"column:installment_value;type:numeric(12,2)" json:"installment_value"`
	DataPagamento *string             `gorm:"column:payment_date;size:32;index" json:"payment_date"`
	ValorTotal    decimal.NullDecimal `gorm:"column:total_value;type:numeric(12,2)" json:"total_value"`

	CriadoEm time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Aquisicao) TableName() string { return "acquisitions" }

func (a *Aquisicao) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ParaDominio normaliza a linha. A localização só existe quando há latitude;
// sem total gravado (ou total zero), ele é derivado do cronograma.
func (a Aquisicao) ParaDominio() models.Aquisicao {
	d := models.Aquisicao{
		ID:              a.ID,
		SiteID:          a.SiteID,
		SiteTitulo:      a.SiteTitulo,
		ConsultorID:     a.ConsultorID,
		ClienteNome:     a.ClienteNome,
		ClienteTelefone: a.ClienteTelefone,
		ClienteCPF:      a.ClienteCPF,
		Timestamp:       a.CriadoEm.UnixMilli(),
		Status:          models.Status(a.Status),
		Comentario:      a.Comentario,
		AnexoURL:        a.AnexoURL,
		Quitado:         a.Quitado != nil && *a.Quitado,
		Parcelas:        a.Parcelas,
		DataPagamento:   a.DataPagamento,
	}
	if d.Status == "" {
		d.Status = models.StatusPendente
	}
	if a.Latitude != nil {
		loc := models.Localizacao{Latitude: *a.Latitude}
		if a.Longitude != nil {
			loc.Longitude = *a.Longitude
		}
		d.Localizacao = &loc
	}
	if a.ValorParcela.Valid {
		v := a.ValorParcela.Decimal
		d.ValorParcela = &v
	}

	total := a.ValorTotal.Decimal
	if !a.ValorTotal.Valid || total.IsZero() {
		parcelas := 1
		if a.Parcelas != nil && *a.Parcelas > 0 {
			parcelas = *a.Parcelas
		}
		total = calculo.CalcularTotal(d.Quitado, parcelas, d.ValorParcelaOuZero())
	}
	d.ValorTotal = &total
	return d
}

// NovaLinha monta a linha de uma solicitação nova: status pendente,
// não quitada e total derivado do cronograma.
func NovaLinha(n models.NovaAquisicao) Aquisicao {
	parcelas := n.Parcelas
	if parcelas < 1 {
		parcelas = 1
	}
	quitado := false
	a := Aquisicao{
		SiteID:          n.SiteID,
		SiteTitulo:      n.SiteTitulo,
		ConsultorID:     n.ConsultorID,
		ClienteNome:     n.ClienteNome,
		ClienteTelefone: n.ClienteTelefone,
		ClienteCPF:      n.ClienteCPF,
		Status:          string(models.StatusPendente),
		Quitado:         &quitado,
		Parcelas:        &parcelas,
		ValorParcela:    decimal.NewNullDecimal(n.ValorParcela),
		ValorTotal:      decimal.NewNullDecimal(calculo.CalcularTotal(n.Quitado, parcelas, n.ValorParcela)),
	}
	if n.Localizacao != nil {
		lat, lng := n.Localizacao.Latitude, n.Localizacao.Longitude
		a.Latitude = &lat
		a.Longitude = &lng
	}
	if n.DataPagamento != "" {
		data := n.DataPagamento
		a.DataPagamento = &data
	}
	return a
}

// Colunas traduz o patch para as colunas da tabela. Cada campo entra só
// quando presente; status, nome e telefone vazios são ignorados.
func Colunas(p models.PatchAquisicao) map[string]any {
	c := map[string]any{}
	if p.Status != nil && *p.Status != "" {
		c["status"] = string(*p.Status)
	}
	if p.Comentario != nil {
		c["comment"] = *p.Comentario
	}
	if p.AnexoURL != nil {
		c["attachment_url"] = *p.AnexoURL
	}
	if p.ClienteNome != nil && *p.ClienteNome != "" {
		c["client_name"] = *p.ClienteNome
	}
	if p.ClienteTelefone != nil && *p.ClienteTelefone != "" {
		c["client_phone"] = *p.ClienteTelefone
	}
	if p.Quitado != nil {
		c["is_paid"] = *p.Quitado
	}
	if p.Parcelas != nil {
		c["installments"] = *p.Parcelas
	}
	if p.ValorParcela != nil {
		c["installment_value"] = *p.ValorParcela
	}
	if p.ValorTotal != nil {
		c["total_value"] = *p.ValorTotal
	}
	if p.DataPagamento != nil {
		c["payment_date"] = *p.DataPagamento
	}
	return c
}
