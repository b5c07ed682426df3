package categoria

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
)

type storeFalso struct {
	snap     *sincronizacao.Snapshot
	escritas []string
}

func (s *storeFalso) Snapshot() *sincronizacao.Snapshot { return s.snap }

func (s *storeFalso) AdicionarCategoria(_ context.Context, nome string) error {
	if strings.TrimSpace(nome) == "" {
		return fmt.Errorf("%w: nome obrigatório", models.ErrValidacao)
	}
	s.escritas = append(s.escritas, "+"+nome)
	return nil
}

func (s *storeFalso) AtualizarCategoria(_ context.Context, id, nome string) error {
	if _, ok := s.snap.Categoria(id); !ok {
		return models.ErrNaoEncontrado
	}
	s.escritas = append(s.escritas, id+"="+nome)
	return nil
}

func (s *storeFalso) RemoverCategoria(_ context.Context, id string) error {
	s.escritas = append(s.escritas, "-"+id)
	return nil
}

func rotear(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/categorias", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/categorias", h.Criar).Methods(http.MethodPost)
	r.HandleFunc("/categorias/{id}", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/categorias/{id}", h.Deletar).Methods(http.MethodDelete)
	return r
}

func chamar(r http.Handler, metodo, alvo, corpo string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(metodo, alvo, strings.NewReader(corpo)))
	return rec
}

func TestHandler_Categorias(t *testing.T) {
	store := &storeFalso{snap: sincronizacao.NovoSnapshot([]models.Categoria{{ID: "c1", Nome: "Saúde"}}, nil, nil, nil, "")}
	r := rotear(NewHandler(store))

	rec := chamar(r, http.MethodGet, "/categorias", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []models.Categoria
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.Equal(t, []models.Categoria{{ID: "c1", Nome: "Saúde"}}, cats)

	assert.Equal(t, http.StatusAccepted, chamar(r, http.MethodPost, "/categorias", `{"name":"Food"}`).Code)
	assert.Equal(t, http.StatusBadRequest, chamar(r, http.MethodPost, "/categorias", `{"name":"  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, chamar(r, http.MethodPost, "/categorias", `{`).Code)
	assert.Equal(t, http.StatusAccepted, chamar(r, http.MethodPut, "/categorias/c1", `{"name":"Clínicas"}`).Code)
	assert.Equal(t, http.StatusNotFound, chamar(r, http.MethodPut, "/categorias/zz", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusNoContent, chamar(r, http.MethodDelete, "/categorias/c1", "").Code)

	assert.Equal(t, []string{"+Food", "c1=Clínicas", "-c1"}, store.escritas)
}

func TestHandler_AntesDaCarga(t *testing.T) {
	r := rotear(NewHandler(&storeFalso{snap: &sincronizacao.Snapshot{}}))
	rec := chamar(r, http.MethodGet, "/categorias", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
