package faturamento

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"go.uber.org/zap"
)

type entrada struct {
	sessao *Sessao
	mapa   *MapaRegistrado
	uso    time.Time
}

// Registro guarda uma sessão de mapa por sessão de gerente (jti do token).
type Registro struct {
	mu      sync.Mutex
	sessoes map[string]*entrada
	ttl     time.Duration
	agora   func() time.Time
	logger  *zap.Logger
}

func NovoRegistro(ttl time.Duration, logger *zap.Logger) *Registro {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registro{
		sessoes: map[string]*entrada{},
		ttl:     ttl,
		agora:   time.Now,
		logger:  logger.Named("faturamento"),
	}
}

// Sessao devolve (criando se preciso) a sessão da chave e o mapa dela.
func (r *Registro) Sessao(chave string) (*Sessao, *MapaRegistrado) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessoes[chave]
	if !ok {
		mapa := &MapaRegistrado{}
		e = &entrada{sessao: NovaSessao(mapa), mapa: mapa}
		r.sessoes[chave] = e
	}
	e.uso = r.agora()
	return e.sessao, e.mapa
}

func (r *Registro) Quantidade() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessoes)
}

// Expurgar remove as sessões sem uso há mais que o ttl.
func (r *Registro) Expurgar() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	limite := r.agora().Add(-r.ttl)
	removidas := 0
	for chave, e := range r.sessoes {
		if e.uso.Before(limite) {
			delete(r.sessoes, chave)
			removidas++
		}
	}
	return removidas
}

func (r *Registro) AgendarExpurgo(c *cron.Cron, expressao string) (cron.EntryID, error) {
	return c.AddFunc(expressao, func() {
		if n := r.Expurgar(); n > 0 {
			r.logger.Info("sessões de faturamento expiradas removidas", zap.Int("quantidade", n))
		}
	})
}

// Reconciliar repassa as aquisições novas a todas as sessões.
func (r *Registro) Reconciliar(aqs []models.Aquisicao) {
	r.mu.Lock()
	sessoes := make([]*Sessao, 0, len(r.sessoes))
	for _, e := range r.sessoes {
		sessoes = append(sessoes, e.sessao)
	}
	r.mu.Unlock()

	for _, s := range sessoes {
		s.Reconciliar(aqs)
	}
}

// Observador é quem publica snapshots (o Store).
type Observador interface {
	Observar(fn func(*sincronizacao.Snapshot)) (cancelar func())
}

// Acompanhar reconcilia as sessões a cada snapshot publicado.
func (r *Registro) Acompanhar(o Observador) (cancelar func()) {
	return o.Observar(func(snap *sincronizacao.Snapshot) {
		r.Reconciliar(snap.Aquisicoes())
	})
}
