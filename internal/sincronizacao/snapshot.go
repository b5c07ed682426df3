package sincronizacao

import (
	"slices"
	"time"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

// Snapshot é a cópia local imutável das coleções. Os acessores devolvem
// cópias; nenhum leitor altera o snapshot publicado.
type Snapshot struct {
	categorias   []models.Categoria
	sites        []models.Site
	consultores  []models.Consultor
	aquisicoes   []models.Aquisicao
	senha        string
	versao       uint64
	atualizadoEm time.Time
	carregado    bool
}

var vazio = &Snapshot{}

// NovoSnapshot monta um snapshot carregado a partir das coleções já
// normalizadas. O Store publica os seus por aqui.
func NovoSnapshot(cats []models.Categoria, sites []models.Site, cons []models.Consultor, aqs []models.Aquisicao, senha string) *Snapshot {
	return &Snapshot{
		categorias:  slices.Clone(cats),
		sites:       clonarSites(sites),
		consultores: clonarConsultores(cons),
		aquisicoes:  clonarAquisicoes(aqs),
		senha:       senha,
		carregado:   true,
	}
}

// copia devolve um snapshot raso para a estratégia incremental editar.
func (s *Snapshot) copia() *Snapshot {
	c := *s
	c.categorias = slices.Clone(s.categorias)
	c.sites = slices.Clone(s.sites)
	c.consultores = slices.Clone(s.consultores)
	c.aquisicoes = slices.Clone(s.aquisicoes)
	return &c
}

func (s *Snapshot) Carregado() bool { return s.carregado }
func (s *Snapshot) Versao() uint64 { return s.versao }
func (s *Snapshot) AtualizadoEm() time.Time { return s.atualizadoEm }
func (s *Snapshot) Senha() string { return s.senha }

func (s *Snapshot) Categorias() []models.Categoria { return slices.Clone(s.categorias) }
func (s *Snapshot) Sites() []models.Site { return clonarSites(s.sites) }
func (s *Snapshot) Consultores() []models.Consultor { return clonarConsultores(s.consultores) }
func (s *Snapshot) Aquisicoes() []models.Aquisicao { return clonarAquisicoes(s.aquisicoes) }

func (s *Snapshot) Categoria(id string) (models.Categoria, bool) {
	i := slices.IndexFunc(s.categorias, func(c models.Categoria) bool { return c.ID == id })
	if i < 0 {
		return models.Categoria{}, false
	}
	return s.categorias[i], true
}

func (s *Snapshot) Site(id string) (models.Site, bool) {
	i := slices.IndexFunc(s.sites, func(x models.Site) bool { return x.ID == id })
	if i < 0 {
		return models.Site{}, false
	}
	return s.sites[i].Clone(), true
}

func (s *Snapshot) Consultor(id string) (models.Consultor, bool) {
	i := slices.IndexFunc(s.consultores, func(c models.Consultor) bool { return c.ID == id })
	if i < 0 {
		return models.Consultor{}, false
	}
	return s.consultores[i].Clone(), true
}

func (s *Snapshot) Aquisicao(id string) (models.Aquisicao, bool) {
	i := slices.IndexFunc(s.aquisicoes, func(a models.Aquisicao) bool { return a.ID == id })
	if i < 0 {
		return models.Aquisicao{}, false
	}
	return s.aquisicoes[i].Clone(), true
}

func clonarSites(in []models.Site) []models.Site {
	out := make([]models.Site, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

func clonarConsultores(in []models.Consultor) []models.Consultor {
	out := make([]models.Consultor, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func clonarAquisicoes(in []models.Aquisicao) []models.Aquisicao {
	out := make([]models.Aquisicao, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}
