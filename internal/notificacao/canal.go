// Package notificacao entrega os avisos de mudança das tabelas do painel
// e o webhook de novos leads.
package notificacao

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	OperacaoInsert = "INSERT"
	OperacaoUpdate = "UPDATE"
	OperacaoDelete = "DELETE"
)

// Evento descreve uma mudança numa tabela observada. Um evento sem tabela
// significa "estado desconhecido" (reconexão, payload ilegível) e pede
// recarga completa.
type Evento struct {
	Tabela   string `json:"tabela"`
	Operacao string `json:"operacao"`
	ID       string `json:"id"`
}

// Desconhecido indica que o evento não identifica a linha alterada.
func (e Evento) Desconhecido() bool {
	return e.Tabela == "" || e.ID == ""
}

// Canal é uma assinatura única que cobre todas as tabelas observadas.
type Canal interface {
	// Assinar bloqueia entregando cada evento a fn até o contexto terminar.
	Assinar(ctx context.Context, fn func(Evento)) error
}

// Publicador anuncia mudanças feitas pela própria aplicação.
type Publicador interface {
	Publicar(ctx context.Context, ev Evento) error
}

func codificar(ev Evento) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("erro ao codificar evento: %w", err)
	}
	return data, nil
}

// decodificar nunca falha: payload ilegível vira evento desconhecido.
func decodificar(payload string) Evento {
	var ev Evento
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Evento{}
	}
	return ev
}
