package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch casa com qualquer falha de transporte retornada pelo fetcher
	ErrFetch = errors.New("falha ao baixar a página")

	// ErrInvalidURL indica uma URL que não é absoluta http(s)
	ErrInvalidURL = errors.New("URL inválida")

	// ErrTimeout indica que a requisição excedeu o tempo limite
	ErrTimeout = errors.New("tempo limite excedido")

	// ErrStatus indica uma resposta HTTP fora da faixa 2xx
	ErrStatus = errors.New("status HTTP inesperado")

	// ErrBodyTooLarge indica uma resposta maior que o limite configurado
	ErrBodyTooLarge = errors.New("resposta muito grande")
)

// Error é a falha de transporte ao baixar uma página
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status code: %d (%s)", ErrFetch, e.URL, e.StatusCode, StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %v", ErrFetch, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is faz errors.Is(err, ErrFetch) valer para qualquer *Error
func (e *Error) Is(target error) bool {
	return target == ErrFetch
}
