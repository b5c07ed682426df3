package captacao

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/localizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
)

type storeFalso struct {
	mu     sync.Mutex
	snap   *sincronizacao.Snapshot
	gravou []models.NovaAquisicao
	err    error
}

func (s *storeFalso) Snapshot() *sincronizacao.Snapshot { return s.snap }

func (s *storeFalso) AdicionarAquisicao(ctx context.Context, a models.NovaAquisicao) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.gravou = append(s.gravou, a)
	return nil
}

type avisadorFalso struct{ ch chan models.NovaAquisicao }

func (a avisadorFalso) NovoLead(ctx context.Context, n models.NovaAquisicao) { a.ch <- n }

func novoStoreFalso() *storeFalso {
	return &storeFalso{snap: sincronizacao.NovoSnapshot(
		nil,
		[]models.Site{{ID: "s1", Titulo: "Clínica Sorriso"}},
		[]models.Consultor{{ID: "k1", Nome: "Ana"}},
		nil, "")}
}

var cliente = DadosCliente{Nome: "João", Telefone: "11999990000", CPF: "529.982.247-25"}
var sp = &models.Localizacao{Latitude: -23.55, Longitude: -46.63}

func TestDadosCliente_Validar(t *testing.T) {
	assert.NoError(t, cliente.Validar())

	for _, d := range []DadosCliente{
		{Nome: "", Telefone: "1", CPF: cliente.CPF},
		{Nome: "João", Telefone: " ", CPF: cliente.CPF},
		{Nome: "João", Telefone: "1", CPF: "529.982.247-24"},
	} {
		err := d.Validar()
		assert.ErrorIs(t, err, ErrDadosCliente)
		assert.ErrorIs(t, err, models.ErrValidacao)
	}
}

func TestPagamento(t *testing.T) {
	p := Pagamento{Parcelas: 3, ValorTotal: decimal.NewFromInt(100), DataPagamento: "2024-03-10"}
	p.Sincronizar()
	assert.Equal(t, "33.33", p.ValorParcela.String())
	assert.NoError(t, p.Validar())

	assert.ErrorIs(t, Pagamento{Quitado: true}.Validar(), ErrTotalAusente)
	assert.NoError(t, Pagamento{Quitado: true, ValorTotal: decimal.NewFromInt(10)}.Validar())
	assert.ErrorIs(t, Pagamento{Parcelas: 2, ValorTotal: decimal.NewFromInt(10), ValorParcela: decimal.NewFromInt(5)}.Validar(), ErrFaturamento)
}

func TestIniciarFormalizacao(t *testing.T) {
	s := NovoServico(novoStoreFalso(), nil, localizacao.OpcoesPadrao(), nil)
	ctx := context.Background()

	_, err := s.IniciarFormalizacao(ctx, DadosCliente{}, localizacao.Reportada{Posicao: sp})
	assert.ErrorIs(t, err, ErrDadosCliente)

	_, err = s.IniciarFormalizacao(ctx, cliente, localizacao.Reportada{Codigo: localizacao.CodigoPermissaoNegada})
	assert.ErrorIs(t, err, localizacao.ErrPermissaoLocalizacao)

	pos, err := s.IniciarFormalizacao(ctx, cliente, localizacao.Reportada{Posicao: sp})
	require.NoError(t, err)
	assert.Equal(t, *sp, pos)
}

func TestFinalizar_EmAberto(t *testing.T) {
	st := novoStoreFalso()
	av := avisadorFalso{ch: make(chan models.NovaAquisicao, 1)}
	s := NovoServico(st, av, localizacao.OpcoesPadrao(), nil)

	n, err := s.Finalizar(context.Background(), Solicitacao{
		ConsultorID: "k1",
		SiteID:      "s1",
		Cliente:     cliente,
		Localizacao: sp,
		Pagamento:   Pagamento{Parcelas: 3, ValorTotal: decimal.NewFromInt(100), DataPagamento: "2024-03-10"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Clínica Sorriso", n.SiteTitulo)
	assert.Equal(t, 3, n.Parcelas)
	assert.Equal(t, "33.33", n.ValorParcela.String())
	assert.False(t, n.Quitado)
	require.Len(t, st.gravou, 1)

	select {
	case lead := <-av.ch:
		assert.Equal(t, "k1", lead.ConsultorID)
	case <-time.After(time.Second):
		t.Fatal("webhook não foi chamado")
	}
}

func TestFinalizar_QuitadoViraParcelaUnica(t *testing.T) {
	st := novoStoreFalso()
	s := NovoServico(st, nil, localizacao.OpcoesPadrao(), nil)
	s.agora = func() time.Time { return time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC) }

	n, err := s.Finalizar(context.Background(), Solicitacao{
		ConsultorID: "k1",
		SiteID:      "s1",
		Cliente:     cliente,
		Localizacao: sp,
		Pagamento:   Pagamento{Quitado: true, Parcelas: 4, ValorParcela: decimal.NewFromInt(1), ValorTotal: decimal.NewFromInt(500)},
	})
	require.NoError(t, err)
	assert.True(t, n.Quitado)
	assert.Equal(t, 1, n.Parcelas)
	assert.True(t, n.ValorParcela.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "2024-05-02", n.DataPagamento)
}

func TestFinalizar_Erros(t *testing.T) {
	st := novoStoreFalso()
	s := NovoServico(st, nil, localizacao.OpcoesPadrao(), nil)
	ctx := context.Background()
	pg := Pagamento{Quitado: true, ValorTotal: decimal.NewFromInt(10)}

	_, err := s.Finalizar(ctx, Solicitacao{ConsultorID: "k1", SiteID: "s1", Cliente: cliente, Pagamento: pg})
	assert.ErrorIs(t, err, ErrSemLocalizacao)

	_, err = s.Finalizar(ctx, Solicitacao{ConsultorID: "k1", SiteID: "s1", Cliente: cliente, Localizacao: sp})
	assert.ErrorIs(t, err, ErrTotalAusente)

	_, err = s.Finalizar(ctx, Solicitacao{ConsultorID: "x", SiteID: "s1", Cliente: cliente, Localizacao: sp, Pagamento: pg})
	assert.ErrorIs(t, err, models.ErrNaoEncontrado)

	st.err = errors.New("conexão recusada")
	_, err = s.Finalizar(ctx, Solicitacao{ConsultorID: "k1", SiteID: "s1", Cliente: cliente, Localizacao: sp, Pagamento: pg})
	assert.Error(t, err)
	assert.Empty(t, st.gravou)

	s = NovoServico(&storeFalso{snap: &sincronizacao.Snapshot{}}, nil, localizacao.OpcoesPadrao(), nil)
	_, err = s.Finalizar(ctx, Solicitacao{ConsultorID: "k1", SiteID: "s1", Cliente: cliente, Localizacao: sp, Pagamento: pg})
	assert.ErrorIs(t, err, sincronizacao.ErrNaoCarregado)
}

func rotear(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/vitrine/whatsapp", h.TestarWhatsApp).Methods(http.MethodPost)
	r.HandleFunc("/vitrine/{consultorId}/formalizacao", h.Formalizar).Methods(http.MethodPost)
	r.HandleFunc("/vitrine/{consultorId}/solicitacoes", h.Solicitar).Methods(http.MethodPost)
	return r
}

func TestHandler_Solicitar(t *testing.T) {
	st := novoStoreFalso()
	r := rotear(NewHandler(NovoServico(st, nil, localizacao.OpcoesPadrao(), nil)))

	corpo := `{"siteId":"s1","cliente":{"nome":"João","telefone":"11999990000","cpf":"52998224725"},
		"localizacao":{"lat":-23.55,"lng":-46.63},
		"pagamento":{"quitado":false,"parcelas":2,"valorTotal":"300","dataPagamento":"2024-03-10"}}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vitrine/k1/solicitacoes", strings.NewReader(corpo)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MensagemSucesso, resp["mensagem"])
	require.Len(t, st.gravou, 1)
	assert.True(t, st.gravou[0].ValorParcela.Equal(decimal.NewFromInt(150)))
}

func TestHandler_LocalizacaoNegada(t *testing.T) {
	r := rotear(NewHandler(NovoServico(novoStoreFalso(), nil, localizacao.OpcoesPadrao(), nil)))

	corpo := `{"cliente":{"nome":"João","telefone":"11999990000","cpf":"52998224725"},"erroLocalizacao":1}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vitrine/k1/formalizacao", strings.NewReader(corpo)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), localizacao.MensagemPermissaoNegada)

	corpo = `{"cliente":{"nome":"João","telefone":"11999990000","cpf":"52998224725"}}`
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vitrine/k1/formalizacao", strings.NewReader(corpo)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), localizacao.MensagemObrigatoria)
}

func TestHandler_DadosInvalidos(t *testing.T) {
	r := rotear(NewHandler(NovoServico(novoStoreFalso(), nil, localizacao.OpcoesPadrao(), nil)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vitrine/k1/formalizacao", strings.NewReader(`{"cliente":{"nome":"João"}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_FalhaRemota(t *testing.T) {
	st := novoStoreFalso()
	st.err = errors.New("timeout")
	r := rotear(NewHandler(NovoServico(st, nil, localizacao.OpcoesPadrao(), nil)))

	corpo := `{"siteId":"s1","cliente":{"nome":"João","telefone":"11999990000","cpf":"52998224725"},
		"localizacao":{"lat":1,"lng":2},"pagamento":{"quitado":true,"valorTotal":"300"}}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vitrine/k1/solicitacoes", strings.NewReader(corpo)))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tente novamente")
}

func TestHandler_WhatsApp(t *testing.T) {
	r := rotear(NewHandler(NovoServico(novoStoreFalso(), nil, localizacao.OpcoesPadrao(), nil)))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vitrine/whatsapp", strings.NewReader(`{"telefone":"(11) 9999-0000"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://wa.me/551199990000")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vitrine/whatsapp", strings.NewReader(`{"telefone":"123"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
