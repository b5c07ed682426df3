package configuracao

// ChaveSenhaGerente identifica o código de acesso do painel do gerente.
const ChaveSenhaGerente = "manager_password"

// Configuracao é a linha chave/valor da tabela settings.
type Configuracao struct {
	Chave string `gorm:"column:key;primaryKey;size:64" json:"key"`
	Valor string `gorm:"column:value;type:text" json:"value"`
}

func (Configuracao) TableName() string { return "settings" }
