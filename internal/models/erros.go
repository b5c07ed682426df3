package models

import "errors"

// ErrValidacao marca falhas de validação feitas antes de qualquer escrita remota.
// Os pacotes embrulham com fmt.Errorf("%w: ...") para manter a classificação.
var ErrValidacao = errors.New("dados inválidos")

// ErrNaoEncontrado é devolvido quando o registro não está no snapshot ou no banco.
var ErrNaoEncontrado = errors.New("registro não encontrado")

// ErrPermissao agrupa recusas de permissão do usuário (ex.: localização).
var ErrPermissao = errors.New("permissão negada")
