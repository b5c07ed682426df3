package consultor

import "gorm.io/gorm"

type Repository interface {
	Listar(db *gorm.DB) ([]Consultor, error)
	BuscarPorID(db *gorm.DB, id string) (*Consultor, error)
	Inserir(db *gorm.DB, c *Consultor) error
	Atualizar(db *gorm.DB, id string, c *Consultor) error
	Deletar(db *gorm.DB, id string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB) ([]Consultor, error) {
	var consultores []Consultor
	err := db.Order("name ASC").Find(&consultores).Error
	return consultores, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id string) (*Consultor, error) {
	var c Consultor
	err := db.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repositoryImpl) Inserir(db *gorm.DB, c *Consultor) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id string, c *Consultor) error {
	c.ID = id
	res := db.Model(&Consultor{}).Where("id = ?", id).Select(ColunasEditaveis).Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id string) error {
	return db.Delete(&Consultor{}, "id = ?", id).Error
}
