package site

import "gorm.io/gorm"

type Repository interface {
	Listar(db *gorm.DB) ([]Site, error)
	BuscarPorID(db *gorm.DB, id string) (*Site, error)
	Inserir(db *gorm.DB, s *Site) error
	Atualizar(db *gorm.DB, id string, s *Site) error
	Deletar(db *gorm.DB, id string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB) ([]Site, error) {
	var sites []Site
	err := db.Order("created_at DESC").Find(&sites).Error
	return sites, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id string) (*Site, error) {
	var s Site
	err := db.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repositoryImpl) Inserir(db *gorm.DB, s *Site) error {
	return db.Create(s).Error
}

// Atualizar regrava as colunas editáveis. A atualização passa pela struct
// para que gallery_urls seja serializada em JSON.
func (r *repositoryImpl) Atualizar(db *gorm.DB, id string, s *Site) error {
	s.ID = id
	res := db.Model(&Site{}).Where("id = ?", id).Select(ColunasEditaveis).Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id string) error {
	return db.Delete(&Site{}, "id = ?", id).Error
}
