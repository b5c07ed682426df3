package aquisicao

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

var (
	ErrStatusInvalido         = fmt.Errorf("%w: status desconhecido", models.ErrValidacao)
	ErrTransicaoInvalida      = fmt.Errorf("%w: transição de status não permitida", models.ErrValidacao)
	ErrTotalInvalido          = fmt.Errorf("%w: valor total deve ser maior que zero", models.ErrValidacao)
	ErrCronogramaIncompleto   = fmt.Errorf("%w: parcelas, valor da parcela e data de pagamento são obrigatórios", models.ErrValidacao)
	ErrEdicaoVazia            = fmt.Errorf("%w: nenhum campo informado", models.ErrValidacao)
	ErrConfirmacaoObrigatoria = errors.New("confirmação obrigatória para excluir o lead")
)

// PerguntaConfirmacaoRemocao é exibida antes da remoção definitiva.
const PerguntaConfirmacaoRemocao = "Tem certeza que deseja excluir este lead permanentemente?"

// PoliticaTransicao decide se uma aquisição pode ir de um status para outro.
type PoliticaTransicao interface {
	Permitir(de, para models.Status) error
}

// Livre aceita qualquer um dos três status a partir de qualquer outro.
type Livre struct{}

func (Livre) Permitir(de, para models.Status) error {
	if !para.Valido() {
		return ErrStatusInvalido
	}
	return nil
}

// Sequencial exige pending → processing → done, sem pular e sem voltar.
type Sequencial struct{}

var ordemStatus = map[models.Status]int{
	models.StatusPendente:   0,
	models.StatusProducao:   1,
	models.StatusFinalizado: 2,
}

func (Sequencial) Permitir(de, para models.Status) error {
	if !para.Valido() {
		return ErrStatusInvalido
	}
	if de == para {
		return nil
	}
	atual, ok := ordemStatus[de]
	if !ok || ordemStatus[para] != atual+1 {
		return fmt.Errorf("%w: %s → %s", ErrTransicaoInvalida, de, para)
	}
	return nil
}

// PoliticaPorNome resolve o valor de aquisicao.politica_status.
func PoliticaPorNome(nome string) (PoliticaTransicao, error) {
	switch strings.ToLower(nome) {
	case "", "livre":
		return Livre{}, nil
	case "sequencial":
		return Sequencial{}, nil
	}
	return nil, fmt.Errorf("política de status desconhecida: %q", nome)
}

// Cronograma é o parcelamento informado para um negócio em aberto.
type Cronograma struct {
	Parcelas      int
	ValorParcela  decimal.Decimal
	DataPagamento string
}

func (c Cronograma) Validar() error {
	if c.Parcelas < 1 || !c.ValorParcela.IsPositive() || strings.TrimSpace(c.DataPagamento) == "" {
		return ErrCronogramaIncompleto
	}
	return nil
}

// Maquina produz os patches das transições de status e de pagamento.
// Não grava nada: o patch devolvido segue para a camada de sincronização.
type Maquina struct {
	politica PoliticaTransicao
}

func NovaMaquina(p PoliticaTransicao) *Maquina {
	if p == nil {
		p = Livre{}
	}
	return &Maquina{politica: p}
}

func (m *Maquina) DefinirStatus(atual models.Aquisicao, s models.Status) (models.PatchAquisicao, error) {
	if err := m.politica.Permitir(atual.Status, s); err != nil {
		return models.PatchAquisicao{}, err
	}
	return models.PatchAquisicao{Status: &s}, nil
}

// DefinirQuitado marca o negócio como quitado ou em aberto. Quitado força
// parcela única com o valor total; o status não muda. Voltar para em aberto
// só troca os números quando um novo cronograma é informado.
func DefinirQuitado(atual models.Aquisicao, quitado bool, novo *Cronograma) (models.PatchAquisicao, error) {
	p := models.PatchAquisicao{Quitado: &quitado}
	if quitado {
		total := atual.ValorTotalOuZero()
		if !total.IsPositive() {
			return models.PatchAquisicao{}, ErrTotalInvalido
		}
		uma := 1
		p.Parcelas = &uma
		p.ValorParcela = &total
		return p, nil
	}
	if novo != nil {
		if err := novo.Validar(); err != nil {
			return models.PatchAquisicao{}, err
		}
		parcelas, valor, data := novo.Parcelas, novo.ValorParcela, novo.DataPagamento
		p.Parcelas = &parcelas
		p.ValorParcela = &valor
		p.DataPagamento = &data
	}
	return p, nil
}

// Edicao é o formulário de edição do gerente; campos nil ficam como estão.
type Edicao struct {
	Status          *models.Status
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

// Editar combina a edição num único patch, aplicando a política de status
// e as regras de pagamento. O valor total editado não recalcula a parcela
// de um negócio em aberto.
func (m *Maquina) Editar(atual models.Aquisicao, e Edicao) (models.PatchAquisicao, error) {
	p := models.PatchAquisicao{
		Comentario:    e.Comentario,
		AnexoURL:      e.AnexoURL,
		DataPagamento: e.DataPagamento,
	}
	if e.ClienteNome != nil && strings.TrimSpace(*e.ClienteNome) != "" {
		p.ClienteNome = e.ClienteNome
	}
	if e.ClienteTelefone != nil && strings.TrimSpace(*e.ClienteTelefone) != "" {
		p.ClienteTelefone = e.ClienteTelefone
	}
	if e.Status != nil {
		ps, err := m.DefinirStatus(atual, *e.Status)
		if err != nil {
			return models.PatchAquisicao{}, err
		}
		p.Status = ps.Status
	}
	if e.ValorTotal != nil {
		if !e.ValorTotal.IsPositive() {
			return models.PatchAquisicao{}, ErrTotalInvalido
		}
		p.ValorTotal = e.ValorTotal
	}

	base := p.Aplicar(atual)
	quitado := base.Quitado
	if e.Quitado != nil {
		quitado = *e.Quitado
	}

	switch {
	case quitado && (e.Quitado != nil || e.ValorTotal != nil):
		q, err := DefinirQuitado(base, true, nil)
		if err != nil {
			return models.PatchAquisicao{}, err
		}
		p.Quitado, p.Parcelas, p.ValorParcela = q.Quitado, q.Parcelas, q.ValorParcela
	case !quitado:
		var novo *Cronograma
		if e.Parcelas != nil || e.ValorParcela != nil {
			c := Cronograma{
				Parcelas:      base.ParcelasOuUm(),
				ValorParcela:  base.ValorParcelaOuZero(),
				DataPagamento: base.DiaPagamento(),
			}
			if e.Parcelas != nil {
				c.Parcelas = *e.Parcelas
			}
			if e.ValorParcela != nil {
				c.ValorParcela = *e.ValorParcela
			}
			novo = &c
		}
		if e.Quitado != nil || novo != nil {
			q, err := DefinirQuitado(base, false, novo)
			if err != nil {
				return models.PatchAquisicao{}, err
			}
			if e.Quitado != nil {
				p.Quitado = q.Quitado
			}
			if novo != nil {
				p.Parcelas, p.ValorParcela, p.DataPagamento = q.Parcelas, q.ValorParcela, q.DataPagamento
			}
		}
	}

	if p.Vazio() {
		return models.PatchAquisicao{}, ErrEdicaoVazia
	}
	return p, nil
}

// ConfirmarRemocao exige a confirmação explícita antes da remoção definitiva.
func ConfirmarRemocao(confirmado bool) error {
	if !confirmado {
		return ErrConfirmacaoObrigatoria
	}
	return nil
}
