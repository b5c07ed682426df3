// models/aquisicao.go
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Status de produção de uma aquisição
type Status string

const (
	StatusPendente   Status = "pending"
	StatusProducao   Status = "processing"
	StatusFinalizado Status = "done"
)

// Valido indica se o status pertence ao conjunto conhecido.
func (s Status) Valido() bool {
	switch s {
	case StatusPendente, StatusProducao, StatusFinalizado:
		return true
	}
	return false
}

// Localizacao é o ponto capturado no momento da solicitação.
type Localizacao struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Aquisicao representa um lead/negócio já normalizado para o domínio.
type Aquisicao struct {
	ID              string       `json:"id"`
	SiteID          string       `json:"siteId"`
	SiteTitulo      string       `json:"siteTitle"` // cópia do título no momento da criação
	ConsultorID     string       `json:"consultantId"`
	ClienteNome     string       `json:"clientName"`
	ClienteTelefone string       `json:"clientPhone"`
	ClienteCPF      string       `json:"clientCpf"`
	Localizacao     *Localizacao `json:"location,omitempty"`
	Timestamp       int64        `json:"timestamp"` // ms desde epoch
	Status          Status       `json:"status"`
	Comentario      *string      `json:"comment,omitempty"`
	AnexoURL        *string      `json:"attachmentUrl,omitempty"`
	Quitado         bool         `json:"isPaid"`

	Parcelas      *int             `json:"installments,omitempty"`
	ValorParcela  *decimal.Decimal `json:"installmentValue,omitempty"`
	DataPagamento *string          `json:"paymentDate,omitempty"`
	ValorTotal    *decimal.Decimal `json:"totalValue,omitempty"`
}

// ValorParcelaOuZero devolve o valor da parcela, zero quando ausente.
func (a Aquisicao) ValorParcelaOuZero() decimal.Decimal {
	if a.ValorParcela == nil {
		return decimal.Zero
	}
	return *a.ValorParcela
}

// ValorTotalOuZero devolve o valor total, zero quando ausente.
func (a Aquisicao) ValorTotalOuZero() decimal.Decimal {
	if a.ValorTotal == nil {
		return decimal.Zero
	}
	return *a.ValorTotal
}

// ParcelasOuUm devolve a quantidade de parcelas, 1 quando ausente.
func (a Aquisicao) ParcelasOuUm() int {
	if a.Parcelas == nil || *a.Parcelas < 1 {
		return 1
	}
	return *a.Parcelas
}

// DiaPagamento devolve os 10 primeiros caracteres da data de pagamento
// (YYYY-MM-DD), ignorando qualquer parte de horário.
func (a Aquisicao) DiaPagamento() string {
	if a.DataPagamento == nil {
		return ""
	}
	d := strings.TrimSpace(*a.DataPagamento)
	if len(d) > 10 {
		d = d[:10]
	}
	return d
}

// Divergente indica que o total gravado não bate mais com o cronograma
// (edições posteriores não recalculam um a partir do outro).
func (a Aquisicao) Divergente() bool {
	if a.ValorTotal == nil || a.ValorParcela == nil {
		return false
	}
	esperado := *a.ValorParcela
	if !a.Quitado {
		esperado = esperado.Mul(decimal.NewFromInt(int64(a.ParcelasOuUm())))
	}
	return !esperado.Equal(*a.ValorTotal)
}

// Clone devolve uma cópia profunda; os ponteiros não são compartilhados.
func (a Aquisicao) Clone() Aquisicao {
	c := a
	if a.Localizacao != nil {
		l := *a.Localizacao
		c.Localizacao = &l
	}
	c.Comentario = clonarString(a.Comentario)
	c.AnexoURL = clonarString(a.AnexoURL)
	c.DataPagamento = clonarString(a.DataPagamento)
	if a.Parcelas != nil {
		p := *a.Parcelas
		c.Parcelas = &p
	}
	c.ValorParcela = clonarDecimal(a.ValorParcela)
	c.ValorTotal = clonarDecimal(a.ValorTotal)
	return c
}

// NovaAquisicao reúne os dados de uma solicitação ainda não gravada.
type NovaAquisicao struct {
	SiteID          string
	SiteTitulo      string
	ConsultorID     string
	ClienteNome     string
	ClienteTelefone string
	ClienteCPF      string
	Localizacao     *Localizacao
	Quitado         bool
	Parcelas        int
	ValorParcela    decimal.Decimal
	DataPagamento   string
}

// PatchAquisicao descreve uma alteração parcial; campos nil não são enviados.
type PatchAquisicao struct {
	Status          *Status
	Comentario      *string
	AnexoURL        *string
	ClienteNome     *string
	ClienteTelefone *string
	Quitado         *bool
	Parcelas        *int
	ValorParcela    *decimal.Decimal
	ValorTotal      *decimal.Decimal
	DataPagamento   *string
}

// Vazio indica que nenhum campo foi informado.
func (p PatchAquisicao) Vazio() bool {
	return p.Status == nil && p.Comentario == nil && p.AnexoURL == nil &&
		p.ClienteNome == nil && p.ClienteTelefone == nil && p.Quitado == nil &&
		p.Parcelas == nil && p.ValorParcela == nil && p.ValorTotal == nil &&
		p.DataPagamento == nil
}

// Aplicar devolve a aquisição com os campos do patch sobrepostos.
func (p PatchAquisicao) Aplicar(a Aquisicao) Aquisicao {
	r := a.Clone()
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Comentario != nil {
		r.Comentario = clonarString(p.Comentario)
	}
	if p.AnexoURL != nil {
		r.AnexoURL = clonarString(p.AnexoURL)
	}
	if p.ClienteNome != nil {
		r.ClienteNome = *p.ClienteNome
	}
	if p.ClienteTelefone != nil {
		r.ClienteTelefone = *p.ClienteTelefone
	}
	if p.Quitado != nil {
		r.Quitado = *p.Quitado
	}
	if p.Parcelas != nil {
		n := *p.Parcelas
		r.Parcelas = &n
	}
	if p.ValorParcela != nil {
		r.ValorParcela = clonarDecimal(p.ValorParcela)
	}
	if p.ValorTotal != nil {
		r.ValorTotal = clonarDecimal(p.ValorTotal)
	}
	if p.DataPagamento != nil {
		r.DataPagamento = clonarString(p.DataPagamento)
	}
	return r
}

func clonarString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func clonarDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
