package busca

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSubstituida indica que outra chamada com a mesma chave chegou dentro
// da janela e tomou o lugar desta.
var ErrSubstituida = errors.New("busca substituída por uma mais recente")

// Debouncer segura cada chamada pela janela; uma chamada nova com a mesma
// chave cancela a pendente.
type Debouncer struct {
	janela    time.Duration
	mu        sync.Mutex
	pendentes map[string]chan struct{}
}

func NovoDebouncer(janela time.Duration) *Debouncer {
	return &Debouncer{janela: janela, pendentes: map[string]chan struct{}{}}
}

func (d *Debouncer) Executar(ctx context.Context, chave string, fn func(context.Context) error) error {
	substituida := make(chan struct{})
	d.mu.Lock()
	if anterior, ok := d.pendentes[chave]; ok {
		close(anterior)
	}
	d.pendentes[chave] = substituida
	d.mu.Unlock()

	timer := time.NewTimer(d.janela)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		d.liberar(chave, substituida)
		return ctx.Err()
	case <-substituida:
		return ErrSubstituida
	case <-timer.C:
	}

	if !d.liberar(chave, substituida) {
		return ErrSubstituida
	}
	return fn(ctx)
}

// liberar remove a pendência se ela ainda for a vigente.
func (d *Debouncer) liberar(chave string, ch chan struct{}) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pendentes[chave] != ch {
		return false
	}
	delete(d.pendentes, chave)
	return true
}
