package aquisicao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
)

type storeFalso struct {
	snap     *sincronizacao.Snapshot
	patches  map[string]models.PatchAquisicao
	removido []string
}

func (s *storeFalso) Snapshot() *sincronizacao.Snapshot { return s.snap }

func (s *storeFalso) AtualizarAquisicao(ctx context.Context, id string, p models.PatchAquisicao) error {
	s.patches[id] = p
	return nil
}

func (s *storeFalso) RemoverAquisicao(ctx context.Context, id string) error {
	s.removido = append(s.removido, id)
	return nil
}

func novoStoreFalso() *storeFalso {
	total := decimal.NewFromInt(300)
	valor := decimal.NewFromInt(100)
	data := "2024-03-10"
	aqs := []models.Aquisicao{
		{
			ID: "a1", ClienteNome: "João", ClienteTelefone: "11999990000", SiteTitulo: "Clínica",
			Status: models.StatusPendente, Parcelas: ptr(3), ValorParcela: &valor, ValorTotal: &total,
			DataPagamento: &data, Localizacao: &models.Localizacao{Latitude: -23.5, Longitude: -46.6},
		},
		{ID: "a2", ClienteNome: "Maria", SiteTitulo: "Pizzaria", Status: models.StatusFinalizado},
	}
	return &storeFalso{
		snap:    sincronizacao.NovoSnapshot(nil, nil, nil, aqs, ""),
		patches: map[string]models.PatchAquisicao{},
	}
}

func rotear(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/aquisicoes", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/aquisicoes/{id}", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/aquisicoes/{id}", h.Editar).Methods(http.MethodPatch)
	r.HandleFunc("/aquisicoes/{id}", h.Remover).Methods(http.MethodDelete)
	r.HandleFunc("/aquisicoes/{id}/status", h.AtualizarStatus).Methods(http.MethodPatch)
	r.HandleFunc("/aquisicoes/{id}/pagamento", h.AtualizarPagamento).Methods(http.MethodPatch)
	return r
}

func fazer(r http.Handler, metodo, alvo, corpo string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(metodo, alvo, strings.NewReader(corpo)))
	return rec
}

func TestHandler_Listar(t *testing.T) {
	r := rotear(NewHandler(novoStoreFalso(), NovaMaquina(nil)))

	rec := fazer(r, http.MethodGet, "/aquisicoes?busca=pizz&status=all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var lista []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lista))
	require.Len(t, lista, 1)
	assert.Equal(t, "a2", lista[0]["id"])
	assert.Equal(t, "Localização não disponível.", lista[0]["mapaAviso"])
	assert.Equal(t, "N/A", lista[0]["dataPagamentoExibicao"])
}

func TestHandler_BuscarPorID(t *testing.T) {
	r := rotear(NewHandler(novoStoreFalso(), NovaMaquina(nil)))

	rec := fazer(r, http.MethodGet, "/aquisicoes/a1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=-23.5,-46.6", d["mapaLink"])
	assert.Equal(t, "10/03/2024", d["dataPagamentoExibicao"])
	assert.Equal(t, false, d["divergente"])

	assert.Equal(t, http.StatusNotFound, fazer(r, http.MethodGet, "/aquisicoes/zz", "").Code)
}

func TestHandler_AtualizarStatus(t *testing.T) {
	st := novoStoreFalso()
	r := rotear(NewHandler(st, NovaMaquina(Sequencial{})))

	rec := fazer(r, http.MethodPatch, "/aquisicoes/a1/status", `{"status":"processing"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, models.StatusProducao, *st.patches["a1"].Status)

	rec = fazer(r, http.MethodPatch, "/aquisicoes/a2/status", `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "sequencial não volta")
}

func TestHandler_AtualizarPagamento(t *testing.T) {
	st := novoStoreFalso()
	r := rotear(NewHandler(st, NovaMaquina(nil)))

	rec := fazer(r, http.MethodPatch, "/aquisicoes/a1/pagamento", `{"isPaid":true}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	p := st.patches["a1"]
	assert.Equal(t, 1, *p.Parcelas)
	assert.True(t, p.ValorParcela.Equal(decimal.NewFromInt(300)))

	rec = fazer(r, http.MethodPatch, "/aquisicoes/a2/pagamento", `{"isPaid":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "sem total não há como quitar")
}

func TestHandler_Editar(t *testing.T) {
	st := novoStoreFalso()
	r := rotear(NewHandler(st, NovaMaquina(nil)))

	rec := fazer(r, http.MethodPatch, "/aquisicoes/a1", `{"comment":"ligar amanhã","clientName":"  "}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	p := st.patches["a1"]
	assert.Equal(t, "ligar amanhã", *p.Comentario)
	assert.Nil(t, p.ClienteNome)

	assert.Equal(t, http.StatusBadRequest, fazer(r, http.MethodPatch, "/aquisicoes/a1", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, fazer(r, http.MethodPatch, "/aquisicoes/a1", `{"totalValue":"0"}`).Code)
}

func TestHandler_RemoverExigeConfirmacao(t *testing.T) {
	st := novoStoreFalso()
	r := rotear(NewHandler(st, NovaMaquina(nil)))

	rec := fazer(r, http.MethodDelete, "/aquisicoes/a1", "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), PerguntaConfirmacaoRemocao)
	assert.Empty(t, st.removido)

	rec = fazer(r, http.MethodDelete, "/aquisicoes/a1?confirmar=true", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"a1"}, st.removido)
}

func TestHandler_NaoCarregado(t *testing.T) {
	st := &storeFalso{snap: &sincronizacao.Snapshot{}, patches: map[string]models.PatchAquisicao{}}
	r := rotear(NewHandler(st, NovaMaquina(nil)))
	rec := fazer(r, http.MethodGet, "/aquisicoes", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
