package faturamento

import (
	"reflect"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

// Resultado é a visão da pesquisa de faturamento de um gerente.
type Resultado struct {
	Pesquisado bool               `json:"pesquisado"`
	Periodo    Periodo            `json:"periodo"`
	Aquisicoes []models.Aquisicao `json:"aquisicoes"`
	Total      decimal.Decimal    `json:"total"`
	Indice     int                `json:"indice"`
}

// Sessao é o mapa financeiro de um gerente: período pesquisado, lista
// filtrada, marcadores e cursor. O cursor não volta a zero numa nova
// pesquisa.
type Sessao struct {
	mu         sync.Mutex
	mapa       Mapa
	periodo    Periodo
	pesquisado bool
	filtrados  []models.Aquisicao
	indice     int
}

func NovaSessao(mapa Mapa) *Sessao {
	return &Sessao{mapa: mapa, filtrados: []models.Aquisicao{}}
}

// DefinirPeriodo troca o período e desfaz a pesquisa, como ao editar as datas.
func (s *Sessao) DefinirPeriodo(p Periodo, aqs []models.Aquisicao) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.periodo = p
	s.pesquisado = false
	s.reconciliar(aqs)
}

// Pesquisar aplica o período sobre as aquisições.
func (s *Sessao) Pesquisar(p Periodo, aqs []models.Aquisicao) Resultado {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.periodo = p
	s.pesquisado = true
	s.reconciliar(aqs)
	return s.resultado()
}

// Limpar zera o período e a pesquisa.
func (s *Sessao) Limpar(aqs []models.Aquisicao) {
	s.DefinirPeriodo(Periodo{}, aqs)
}

// Reconciliar recalcula a lista com os dados novos. Os marcadores só são
// refeitos quando a lista filtrada mudou; devolve true nesse caso.
func (s *Sessao) Reconciliar(aqs []models.Aquisicao) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconciliar(aqs)
}

func (s *Sessao) reconciliar(aqs []models.Aquisicao) bool {
	novos := FiltrarPorPeriodo(aqs, s.periodo, s.pesquisado)
	if reflect.DeepEqual(novos, s.filtrados) {
		return false
	}
	s.filtrados = novos
	s.mapa.RemoverTodos()
	for _, m := range Marcadores(novos) {
		s.mapa.Adicionar(m)
	}
	return true
}

func (s *Sessao) Resultado() Resultado {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultado()
}

func (s *Sessao) resultado() Resultado {
	aqs := make([]models.Aquisicao, len(s.filtrados))
	for i, a := range s.filtrados {
		aqs[i] = a.Clone()
	}
	return Resultado{
		Pesquisado: s.pesquisado,
		Periodo:    s.periodo,
		Aquisicoes: aqs,
		Total:      SomarParcelas(s.filtrados),
		Indice:     s.indice,
	}
}

// Avancar move o cursor para o próximo cliente, voltando ao primeiro depois
// do último. Com lista vazia nada muda e ok é false. O foco só existe para
// clientes com localização.
func (s *Sessao) Avancar() (indice int, foco *Foco, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.filtrados) == 0 {
		return s.indice, nil, false
	}
	s.indice = (s.indice + 1) % len(s.filtrados)
	a := s.filtrados[s.indice]
	if a.Localizacao != nil {
		f := Foco{
			AquisicaoID: a.ID,
			Latitude:    a.Localizacao.Latitude,
			Longitude:   a.Localizacao.Longitude,
			Zoom:        ZoomFoco,
		}
		s.mapa.Focar(f)
		foco = &f
	}
	return s.indice, foco, true
}
