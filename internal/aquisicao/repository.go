package aquisicao

import (
	"errors"

	"gorm.io/gorm"
)

var ErrPatchVazio = errors.New("nenhum campo para atualizar")

type Repository interface {
	Listar(db *gorm.DB) ([]Aquisicao, error)
	BuscarPorID(db *gorm.DB, id string) (*Aquisicao, error)
	Inserir(db *gorm.DB, a *Aquisicao) error
	Atualizar(db *gorm.DB, id string, colunas map[string]any) error
	Deletar(db *gorm.DB, id string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Listar(db *gorm.DB) ([]Aquisicao, error) {
	var aquisicoes []Aquisicao
	err := db.Order("created_at DESC").Find(&aquisicoes).Error
	return aquisicoes, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id string) (*Aquisicao, error) {
	var a Aquisicao
	err := db.First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repositoryImpl) Inserir(db *gorm.DB, a *Aquisicao) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id string, colunas map[string]any) error {
	if len(colunas) == 0 {
		return ErrPatchVazio
	}
	res := db.Model(&Aquisicao{}).Where("id = ?", id).Updates(colunas)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id string) error {
	return db.Delete(&Aquisicao{}, "id = ?", id).Error
}
