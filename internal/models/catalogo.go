// models/catalogo.go
package models

import "slices"

// PosicaoPadrao é usada quando o enquadramento da mídia não foi informado.
const PosicaoPadrao = "50% 50%"

type TipoMidia string

const (
	MidiaImagem TipoMidia = "image"
	MidiaVideo  TipoMidia = "video"
)

// Categoria agrupa sites de demonstração.
type Categoria struct {
	ID   string `json:"id"`
	Nome string `json:"name"`
}

// Site é um site de demonstração exibido na vitrine.
type Site struct {
	ID          string    `json:"id"`
	Titulo      string    `json:"title"`
	Link        string    `json:"link"`
	MidiaURL    string    `json:"mediaUrl"`
	TipoMidia   TipoMidia `json:"mediaType"`
	CategoriaID string    `json:"categoryId"` // referência fraca; pode apontar para categoria removida
	Descricao   string    `json:"description"`
	Galeria     []string  `json:"galleryUrls"`
	Posicao     string    `json:"objectPosition"`
}

// Clone copia a galeria para que o chamador não altere o original.
func (s Site) Clone() Site {
	c := s
	c.Galeria = slices.Clone(s.Galeria)
	if c.Galeria == nil {
		c.Galeria = []string{}
	}
	return c
}

// Consultor é o agente de campo dono de uma página de vitrine.
type Consultor struct {
	ID          string  `json:"id"`
	Nome        string  `json:"name"`
	CPF         string  `json:"cpf"`
	WhatsApp    *string `json:"whatsapp,omitempty"`
	FotoURL     string  `json:"photoUrl"`
	PosicaoFoto string  `json:"photoPosition"`
}

// Clone copia o ponteiro de WhatsApp.
func (c Consultor) Clone() Consultor {
	r := c
	if c.WhatsApp != nil {
		w := *c.WhatsApp
		r.WhatsApp = &w
	}
	return r
}
