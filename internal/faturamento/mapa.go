package faturamento

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

const (
	CorQuitado  = "#10b981"
	CorEmAberto = "#ef4444"

	// ZoomFoco é o zoom aplicado ao centralizar um cliente.
	ZoomFoco = 15
)

// Marcador é o pino de uma aquisição georreferenciada.
type Marcador struct {
	AquisicaoID  string          `json:"aquisicaoId"`
	Latitude     float64         `json:"lat"`
	Longitude    float64         `json:"lng"`
	Cor          string          `json:"cor"`
	ClienteNome  string          `json:"clienteNome"`
	SiteTitulo   string          `json:"siteTitulo"`
	ValorParcela decimal.Decimal `json:"valorParcela"`
}

// Foco centraliza o mapa num cliente e abre o marcador dele.
type Foco struct {
	AquisicaoID string  `json:"aquisicaoId"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	Zoom        int     `json:"zoom"`
}

// Marcadores monta um pino por aquisição com localização.
func Marcadores(aqs []models.Aquisicao) []Marcador {
	out := []Marcador{}
	for _, a := range aqs {
		if a.Localizacao == nil {
			continue
		}
		cor := CorEmAberto
		if a.Quitado {
			cor = CorQuitado
		}
		out = append(out, Marcador{
			AquisicaoID:  a.ID,
			Latitude:     a.Localizacao.Latitude,
			Longitude:    a.Localizacao.Longitude,
			Cor:          cor,
			ClienteNome:  a.ClienteNome,
			SiteTitulo:   a.SiteTitulo,
			ValorParcela: a.ValorParcelaOuZero(),
		})
	}
	return out
}

// Mapa é a superfície que exibe os marcadores.
type Mapa interface {
	RemoverTodos()
	Adicionar(m Marcador)
	Focar(f Foco)
}

// MapaRegistrado guarda o estado do mapa para ser devolvido ao cliente HTTP.
type MapaRegistrado struct {
	mu         sync.Mutex
	marcadores []Marcador
	foco       *Foco
	remocoes   int
}

func (m *MapaRegistrado) RemoverTodos() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marcadores = nil
	m.remocoes++
}

func (m *MapaRegistrado) Adicionar(mk Marcador) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marcadores = append(m.marcadores, mk)
}

func (m *MapaRegistrado) Focar(f Foco) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.foco = &f
}

func (m *MapaRegistrado) Marcadores() []Marcador {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Marcador, len(m.marcadores))
	copy(out, m.marcadores)
	return out
}

// Foco devolve o último foco aplicado, nil se nenhum.
func (m *MapaRegistrado) Foco() *Foco {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.foco == nil {
		return nil
	}
	f := *m.foco
	return &f
}

// Remocoes conta quantas vezes o mapa foi limpo.
func (m *MapaRegistrado) Remocoes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remocoes
}
