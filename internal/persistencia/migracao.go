package persistencia

import (
	"fmt"
	"regexp"

	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/aquisicao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/categoria"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/configuracao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/consultor"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/sincronizacao"
	"github.com/tupamobilidadeurbana-ux/tupa-sistema-venda-ooo/internal/site"
	"gorm.io/gorm"
)

// Tabelas observadas pelo canal de mudanças.
var Tabelas = []string{
	sincronizacao.TabelaCategorias,
	sincronizacao.TabelaSites,
	sincronizacao.TabelaConsultores,
	sincronizacao.TabelaAquisicoes,
	sincronizacao.TabelaConfiguracoes,
}

// Migrar cria ou ajusta as cinco tabelas.
func Migrar(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&categoria.Categoria{},
		&site.Site{},
		&consultor.Consultor{},
		&aquisicao.Aquisicao{},
		&configuracao.Configuracao{},
	); err != nil {
		return fmt.Errorf("erro no AutoMigrate: %w", err)
	}
	return nil
}

const funcaoNotificar = `CREATE OR REPLACE FUNCTION painel_notificar_mudanca() RETURNS trigger AS $$
DECLARE
	linha jsonb;
BEGIN
	IF TG_OP = 'DELETE' THEN
		linha := to_jsonb(OLD);
	ELSE
		linha := to_jsonb(NEW);
	END IF;
	PERFORM pg_notify(TG_ARGV[0], json_build_object(
		'tabela', TG_TABLE_NAME,
		'operacao', TG_OP,
		'id', COALESCE(linha->>'id', linha->>'key')
	)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`

var identificador = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// InstalarGatilhos cria a função de aviso e um gatilho por tabela que
// publica {tabela, operacao, id} no canal LISTEN/NOTIFY. Só Postgres.
func InstalarGatilhos(db *gorm.DB, canal string) error {
	if !identificador.MatchString(canal) {
		return fmt.Errorf("nome de canal inválido: %q", canal)
	}
	if err := db.Exec(funcaoNotificar).Error; err != nil {
		return fmt.Errorf("erro ao criar função de aviso: %w", err)
	}
	for _, tabela := range Tabelas {
		nome := "painel_mudancas_" + tabela
		if err := db.Exec(fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", nome, tabela)).Error; err != nil {
			return fmt.Errorf("erro ao remover gatilho de %s: %w", tabela, err)
		}
		criar := fmt.Sprintf(
			"CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s FOR EACH ROW EXECUTE FUNCTION painel_notificar_mudanca('%s')",
			nome, tabela, canal)
		if err := db.Exec(criar).Error; err != nil {
			return fmt.Errorf("erro ao criar gatilho de %s: %w", tabela, err)
		}
	}
	return nil
}
