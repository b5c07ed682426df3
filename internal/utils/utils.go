package utils

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashSenha gera um hash bcrypt para a senha informada.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha compara hash bcrypt com a senha em texto puro.
func VerificarSenha(hash, senha string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha))
	return err == nil
}

// EhHashBcrypt reconhece os prefixos gerados pelo bcrypt.
func EhHashBcrypt(valor string) bool {
	return strings.HasPrefix(valor, "$2a$") || strings.HasPrefix(valor, "$2b$") || strings.HasPrefix(valor, "$2y$")
}

// ConferirCodigo aceita o valor gravado como hash bcrypt ou, para bases
// antigas, como texto puro (comparação em tempo constante).
func ConferirCodigo(gravado, informado string) bool {
	if gravado == "" {
		return false
	}
	if EhHashBcrypt(gravado) {
		return VerificarSenha(gravado, informado)
	}
	return subtle.ConstantTimeCompare([]byte(gravado), []byte(informado)) == 1
}
