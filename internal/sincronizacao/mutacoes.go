package sincronizacao

import (
	"context"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/models"
)

// As mutações fazem uma escrita remota cada e devolvem o erro sem tentar de
// novo. O snapshot local só muda quando o aviso de mudança chegar.

func (s *Store) AdicionarCategoria(ctx context.Context, nome string) error {
	if err := validar(!vazioOuEspacos(nome), "nome da categoria é obrigatório"); err != nil {
		return err
	}
	return s.gateway.AdicionarCategoria(ctx, nome)
}

func (s *Store) AtualizarCategoria(ctx context.Context, id, nome string) error {
	if err := validar(!vazioOuEspacos(nome), "nome da categoria é obrigatório"); err != nil {
		return err
	}
	return s.gateway.AtualizarCategoria(ctx, id, nome)
}

func (s *Store) RemoverCategoria(ctx context.Context, id string) error {
	return s.gateway.RemoverCategoria(ctx, id)
}

func validarSite(site models.Site) error {
	return validar(!vazioOuEspacos(site.Titulo) && !vazioOuEspacos(site.Link) && site.CategoriaID != "",
		"título, link e categoria são obrigatórios")
}

func (s *Store) AdicionarSite(ctx context.Context, site models.Site) error {
	if err := validarSite(site); err != nil {
		return err
	}
	return s.gateway.AdicionarSite(ctx, site)
}

func (s *Store) AtualizarSite(ctx context.Context, id string, site models.Site) error {
	if err := validarSite(site); err != nil {
		return err
	}
	return s.gateway.AtualizarSite(ctx, id, site)
}

func (s *Store) RemoverSite(ctx context.Context, id string) error {
	return s.gateway.RemoverSite(ctx, id)
}

func validarConsultor(c models.Consultor) error {
	return validar(!vazioOuEspacos(c.Nome) && !vazioOuEspacos(c.CPF) && !vazioOuEspacos(c.FotoURL),
		"nome, CPF e foto são obrigatórios")
}

func (s *Store) AdicionarConsultor(ctx context.Context, c models.Consultor) error {
	if err := validarConsultor(c); err != nil {
		return err
	}
	return s.gateway.AdicionarConsultor(ctx, c)
}

func (s *Store) AtualizarConsultor(ctx context.Context, id string, c models.Consultor) error {
	if err := validarConsultor(c); err != nil {
		return err
	}
	return s.gateway.AtualizarConsultor(ctx, id, c)
}

func (s *Store) RemoverConsultor(ctx context.Context, id string) error {
	return s.gateway.RemoverConsultor(ctx, id)
}

// AdicionarAquisicao grava o lead com status pendente; o total é derivado
// do cronograma na gravação.
func (s *Store) AdicionarAquisicao(ctx context.Context, a models.NovaAquisicao) error {
	if err := validar(a.ConsultorID != "" && a.SiteID != "", "consultor e site são obrigatórios"); err != nil {
		return err
	}
	return s.gateway.AdicionarAquisicao(ctx, a)
}

func (s *Store) AtualizarAquisicao(ctx context.Context, id string, p models.PatchAquisicao) error {
	if err := validar(!p.Vazio(), "nenhum campo para atualizar"); err != nil {
		return err
	}
	return s.gateway.AtualizarAquisicao(ctx, id, p)
}

func (s *Store) RemoverAquisicao(ctx context.Context, id string) error {
	return s.gateway.RemoverAquisicao(ctx, id)
}

// AtualizarSenha grava o novo código de acesso (já em hash).
func (s *Store) AtualizarSenha(ctx context.Context, valor string) error {
	if err := validar(!vazioOuEspacos(valor), "código de acesso vazio"); err != nil {
		return err
	}
	return s.gateway.AtualizarSenha(ctx, valor)
}
