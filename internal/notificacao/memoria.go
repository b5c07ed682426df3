package notificacao

import (
	"context"
	"sync"
)

// Memoria é um canal em processo, usado em testes e com sync.canal=memoria
// (uma única instância da API).
type Memoria struct {
	mu         sync.RWMutex
	assinantes map[int]chan Evento
	proximo    int
	buffer     int
}

func NovaMemoria() *Memoria {
	return &Memoria{assinantes: map[int]chan Evento{}, buffer: 64}
}

// Publicar entrega o evento a todos os assinantes. Assinante com fila cheia
// recebe um evento desconhecido no lugar, que força recarga completa.
func (m *Memoria) Publicar(ctx context.Context, ev Evento) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.assinantes {
		select {
		case ch <- ev:
		default:
			select {
			case ch <- Evento{}:
			default:
			}
		}
	}
	return nil
}

func (m *Memoria) Assinar(ctx context.Context, fn func(Evento)) error {
	ch := make(chan Evento, m.buffer)
	m.mu.Lock()
	id := m.proximo
	m.proximo++
	m.assinantes[id] = ch
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.assinantes, id)
		m.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-ch:
			fn(ev)
		}
	}
}

// Assinantes devolve quantas assinaturas estão ativas.
func (m *Memoria) Assinantes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assinantes)
}
