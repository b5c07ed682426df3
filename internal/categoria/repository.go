package categoria

import "gorm.io/gorm"

type Repository interface {
	Listar(db *gorm.DB) ([]Categoria, error)
	BuscarPorID(db *gorm.DB, id string) (*Categoria, error)
	Inserir(db *gorm.DB, c *Categoria) error
	Renomear(db *gorm.DB, id, nome string) error
	Deletar(db *gorm.DB, id string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB) ([]Categoria, error) {
	var categorias []Categoria
	err := db.Order("name ASC").Find(&categorias).Error
	return categorias, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id string) (*Categoria, error) {
	var c Categoria
	err := db.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repositoryImpl) Inserir(db *gorm.DB, c *Categoria) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) Renomear(db *gorm.DB, id, nome string) error {
	res := db.Model(&Categoria{}).Where("id = ?", id).Update("name", nome)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id string) error {
	return db.Delete(&Categoria{}, "id = ?", id).Error
}
