package utils

import "strings"

// SomenteDigitos remove tudo que não for 0-9.
func SomenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarCPF confere o tamanho e os dois dígitos verificadores do CPF.
// Pontuação é ignorada; sequências repetidas (111.111.111-11) são rejeitadas.
func ValidarCPF(cpf string) bool {
	d := SomenteDigitos(cpf)
	if len(d) != 11 || strings.Count(d, d[:1]) == 11 {
		return false
	}
	return digitoVerificador(d[:9]) == d[9] && digitoVerificador(d[:10]) == d[10]
}

// digitoVerificador calcula o próximo dígito para os dígitos informados,
// com pesos decrescentes a partir de len+1.
func digitoVerificador(base string) byte {
	soma := 0
	peso := len(base) + 1
	for i := 0; i < len(base); i++ {
		soma += int(base[i]-'0') * (peso - i)
	}
	resto := (soma * 10) % 11
	if resto == 10 {
		resto = 0
	}
	return byte('0' + resto)
}
