// Package price extrai o preço do texto de um elemento.
package price

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrPriceNotFound indica que o elemento existe mas o texto não tem formato de preço
var ErrPriceNotFound = errors.New("preço não encontrado no texto")

// pricePattern captura dígitos, ponto e um único dígito decimal:
// "$396.96" resulta em "396.9".
// TODO: confirmar com os usuários se o preço deve manter as duas casas decimais.
var pricePattern = regexp.MustCompile(`\d+\.\d`)

// Extract retorna o primeiro trecho com formato de preço encontrado no texto
func Extract(text string) (string, error) {
	text = strings.TrimSpace(text)
	match := pricePattern.FindString(text)
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrPriceNotFound, text)
	}
	return match, nil
}

// Value converte o preço extraído para número, apenas para exibição
func Value(price string) (float64, error) {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return 0, fmt.Errorf("erro ao parsear preço '%s': %v", price, err)
	}
	return v, nil
}
