// Package captacao conduz a solicitação de projeto feita pelo cliente na
// página do consultor: dados pessoais, localização e faturamento.
package captacao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/calculo"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/localizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/utils"
	"go.uber.org/zap"
)

var (
	ErrDadosCliente   = fmt.Errorf("%w: Por favor, preencha todos os dados corretamente (Nome, WhatsApp e CPF válido).", models.ErrValidacao)
	ErrTotalAusente   = fmt.Errorf("%w: Por favor, informe o valor total do projeto.", models.ErrValidacao)
	ErrFaturamento    = fmt.Errorf("%w: Preencha os dados do faturamento para prosseguir.", models.ErrValidacao)
	ErrSemLocalizacao = fmt.Errorf("%w: localização não capturada", models.ErrValidacao)
)

const MensagemSucesso = "✨ Solicitação enviada com sucesso! Em breve entraremos em contato."

type DadosCliente struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	CPF      string `json:"cpf"`
}

func (d DadosCliente) Validar() error {
	if strings.TrimSpace(d.Nome) == "" || strings.TrimSpace(d.Telefone) == "" || !utils.ValidarCPF(d.CPF) {
		return ErrDadosCliente
	}
	return nil
}

// Pagamento é o formulário de faturamento. Em aberto, o valor da parcela
// acompanha total / parcelas.
type Pagamento struct {
	Quitado       bool            `json:"quitado"`
	Parcelas      int             `json:"parcelas"`
	ValorParcela  decimal.Decimal `json:"valorParcela"`
	ValorTotal    decimal.Decimal `json:"valorTotal"`
	DataPagamento string          `json:"dataPagamento"`
}

// Sincronizar recalcula o valor da parcela quando há total e parcelas.
func (p *Pagamento) Sincronizar() {
	if !p.ValorTotal.IsPositive() || p.Parcelas < 1 {
		return
	}
	if v, err := calculo.CalcularValorParcela(p.ValorTotal, p.Parcelas); err == nil {
		p.ValorParcela = v
	}
}

func (p Pagamento) Validar() error {
	if !p.ValorTotal.IsPositive() {
		return ErrTotalAusente
	}
	if !p.Quitado && (p.Parcelas < 1 || !p.ValorParcela.IsPositive() || strings.TrimSpace(p.DataPagamento) == "") {
		return ErrFaturamento
	}
	return nil
}

// Escritor é o lado do Store que a captação usa.
type Escritor interface {
	Snapshot() *sincronizacao.Snapshot
	AdicionarAquisicao(ctx context.Context, a models.NovaAquisicao) error
}

// Avisador recebe cada lead gravado (webhook).
type Avisador interface {
	NovoLead(ctx context.Context, a models.NovaAquisicao)
}

type Servico struct {
	store    Escritor
	avisador Avisador
	opcoes   localizacao.Opcoes
	logger   *zap.Logger
	agora    func() time.Time
}

func NovoServico(store Escritor, avisador Avisador, opcoes localizacao.Opcoes, logger *zap.Logger) *Servico {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Servico{store: store, avisador: avisador, opcoes: opcoes, logger: logger.Named("captacao"), agora: time.Now}
}

// IniciarFormalizacao valida o cliente e captura a localização, que é
// obrigatória para seguir ao faturamento.
func (s *Servico) IniciarFormalizacao(ctx context.Context, d DadosCliente, p localizacao.Provedor) (models.Localizacao, error) {
	if err := d.Validar(); err != nil {
		return models.Localizacao{}, err
	}
	pos, err := localizacao.Obter(ctx, p, s.opcoes)
	if err != nil {
		s.logger.Info("localização recusada", zap.Error(err))
		return models.Localizacao{}, err
	}
	return pos, nil
}

type Solicitacao struct {
	ConsultorID string
	SiteID      string
	Cliente     DadosCliente
	Localizacao *models.Localizacao
	Pagamento   Pagamento
}

// Finalizar valida o faturamento e grava o lead. Quitado vira parcela
// única com o valor total; a data, se vazia, é o dia da captação.
func (s *Servico) Finalizar(ctx context.Context, sol Solicitacao) (models.NovaAquisicao, error) {
	if err := sol.Cliente.Validar(); err != nil {
		return models.NovaAquisicao{}, err
	}
	if sol.Localizacao == nil {
		return models.NovaAquisicao{}, ErrSemLocalizacao
	}
	pg := sol.Pagamento
	if !pg.Quitado {
		pg.Sincronizar()
	}
	if err := pg.Validar(); err != nil {
		return models.NovaAquisicao{}, err
	}

	snap := s.store.Snapshot()
	if !snap.Carregado() {
		return models.NovaAquisicao{}, sincronizacao.ErrNaoCarregado
	}
	consultor, ok := snap.Consultor(sol.ConsultorID)
	if !ok {
		return models.NovaAquisicao{}, fmt.Errorf("consultor %s: %w", sol.ConsultorID, models.ErrNaoEncontrado)
	}
	site, ok := snap.Site(sol.SiteID)
	if !ok {
		return models.NovaAquisicao{}, fmt.Errorf("site %s: %w", sol.SiteID, models.ErrNaoEncontrado)
	}

	loc := *sol.Localizacao
	n := models.NovaAquisicao{
		SiteID:          site.ID,
		SiteTitulo:      site.Titulo,
		ConsultorID:     consultor.ID,
		ClienteNome:     strings.TrimSpace(sol.Cliente.Nome),
		ClienteTelefone: strings.TrimSpace(sol.Cliente.Telefone),
		ClienteCPF:      sol.Cliente.CPF,
		Localizacao:     &loc,
		Quitado:         pg.Quitado,
		Parcelas:        pg.Parcelas,
		ValorParcela:    pg.ValorParcela,
		DataPagamento:   strings.TrimSpace(pg.DataPagamento),
	}
	if pg.Quitado {
		n.Parcelas = 1
		n.ValorParcela = pg.ValorTotal
		if n.DataPagamento == "" {
			n.DataPagamento = s.agora().Format(time.DateOnly)
		}
	}

	if err := s.store.AdicionarAquisicao(ctx, n); err != nil {
		if !errors.Is(err, models.ErrValidacao) {
			s.logger.Error("erro ao gravar solicitação", zap.String("consultor_id", n.ConsultorID), zap.Error(err))
		}
		return models.NovaAquisicao{}, err
	}
	if s.avisador != nil {
		go s.avisador.NovoLead(context.WithoutCancel(ctx), n)
	}
	return n, nil
}
