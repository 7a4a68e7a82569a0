// Package fetcher baixa o HTML bruto das páginas de produto.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config contém as configurações do fetcher
type Config struct {
	Timeout        time.Duration
	UserAgent      string
	AcceptLanguage string
	MaxBodySize    int64
	MaxRedirects   int
}

// DefaultConfig retorna a configuração padrão
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		AcceptLanguage: "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   10,
	}
}

// Fetcher faz uma única requisição GET por chamada, sem novas tentativas
type Fetcher struct {
	client *resty.Client
	config Config
}

// New cria uma nova instância do fetcher
func New(cfg Config) *Fetcher {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.AcceptLanguage == "" {
		cfg.AcceptLanguage = def.AcceptLanguage
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = def.MaxBodySize
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = def.MaxRedirects
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(cfg.MaxRedirects)).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", cfg.AcceptLanguage)

	return &Fetcher{client: client, config: cfg}
}

// Fetch baixa o documento na URL informada e retorna o corpo bruto.
// Qualquer falha é retornada como *Error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	cleanURL, err := cleanURL(rawURL)
	if err != nil {
		return nil, &Error{URL: rawURL, Err: err}
	}

	res, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(cleanURL)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &Error{URL: cleanURL, Err: fmt.Errorf("%w: %v", ErrTimeout, err)}
		}
		return nil, &Error{URL: cleanURL, Err: err}
	}

	body := res.RawBody()
	defer func() { _ = body.Close() }()

	if !res.IsSuccess() {
		return nil, &Error{URL: cleanURL, StatusCode: res.StatusCode(), Err: ErrStatus}
	}

	data, err := io.ReadAll(io.LimitReader(body, f.config.MaxBodySize+1))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &Error{URL: cleanURL, Err: fmt.Errorf("%w: %v", ErrTimeout, err)}
		}
		return nil, &Error{URL: cleanURL, Err: fmt.Errorf("erro ao ler resposta: %w", err)}
	}
	if int64(len(data)) > f.config.MaxBodySize {
		return nil, &Error{URL: cleanURL, Err: fmt.Errorf("%w: limite de %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)}
	}

	return data, nil
}

// cleanURL valida a URL e remove o fragmento
func cleanURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: esquema %q não suportado", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: host ausente", ErrInvalidURL)
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// StatusText retorna o texto do status HTTP, usado nas mensagens de erro
func StatusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "status desconhecido"
}
