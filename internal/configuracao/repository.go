package configuracao

import "gorm.io/gorm"

type Repository interface {
	// Buscar devolve (nil, nil) quando a chave não existe.
	Buscar(db *gorm.DB, chave string) (*Configuracao, error)
	Criar(db *gorm.DB, c *Configuracao) error
	AtualizarValor(db *gorm.DB, chave, valor string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Buscar(db *gorm.DB, chave string) (*Configuracao, error) {
	var c Configuracao
	err := db.Where(map[string]any{"key": chave}).Limit(1).Find(&c).Error
	if err != nil {
		return nil, err
	}
	if c.Chave == "" {
		return nil, nil
	}
	return &c, nil
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Configuracao) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) AtualizarValor(db *gorm.DB, chave, valor string) error {
	res := db.Model(&Configuracao{}).Where(map[string]any{"key": chave}).Update("value", valor)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
