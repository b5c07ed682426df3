package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrWhatsAppInvalido = errors.New("Por favor, digite um número de WhatsApp válido primeiro.")

// MensagemSemLocalizacao é exibida no lugar do link de mapa.
const MensagemSemLocalizacao = "Localização não disponível."

// LinkConsultor monta o link público da página do consultor.
func LinkConsultor(origem, consultorID string) string {
	return strings.TrimRight(origem, "/") + "/#/consultant/" + consultorID
}

// LinkMapa monta a busca do Google Maps para o ponto.
func LinkMapa(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%s,%s",
		strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lng, 'f', -1, 64))
}

// LinkWhatsApp monta o link wa.me com o DDI do Brasil; exige ao menos 10 dígitos.
func LinkWhatsApp(telefone string) (string, error) {
	d := SomenteDigitos(telefone)
	if len(d) < 10 {
		return "", ErrWhatsAppInvalido
	}
	return "https://wa.me/55" + d, nil
}

// FormatarData converte YYYY-MM-DD em DD/MM/YYYY.
// Vazio vira "N/A"; formatos desconhecidos voltam sem alteração.
func FormatarData(data string) string {
	if data == "" {
		return "N/A"
	}
	partes := strings.Split(data, "-")
	if len(partes) != 3 {
		return data
	}
	return partes[2] + "/" + partes[1] + "/" + partes[0]
}
