// Package store descreve as lojas suportadas e como localizar o preço
// na página de produto de cada uma.
package store

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrInvalidStore indica uma descrição de loja incompleta
var ErrInvalidStore = errors.New("loja inválida")

// Store descreve o elemento que contém o preço nas páginas de uma loja:
// o nome da tag e os atributos que precisam bater exatamente.
// Um Store é imutável depois de criado.
type Store struct {
	name    string
	tagName string
	query   map[string]string
	hosts   []string
}

// New cria uma nova descrição de loja
func New(name, tagName string, query map[string]string, hosts ...string) (Store, error) {
	name = strings.TrimSpace(name)
	tagName = strings.ToLower(strings.TrimSpace(tagName))
	if name == "" {
		return Store{}, fmt.Errorf("%w: nome vazio", ErrInvalidStore)
	}
	if tagName == "" {
		return Store{}, fmt.Errorf("%w: tag vazia para a loja %s", ErrInvalidStore, name)
	}

	q := make(map[string]string, len(query))
	for k, v := range query {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			return Store{}, fmt.Errorf("%w: atributo vazio para a loja %s", ErrInvalidStore, name)
		}
		q[key] = v
	}

	h := make([]string, 0, len(hosts))
	for _, host := range hosts {
		host = strings.ToLower(strings.TrimSpace(host))
		if host != "" {
			h = append(h, host)
		}
	}

	return Store{name: name, tagName: tagName, query: q, hosts: h}, nil
}

// MustNew é como New, mas entra em pânico se a descrição for inválida.
// Usado apenas para as lojas embutidas.
func MustNew(name, tagName string, query map[string]string, hosts ...string) Store {
	s, err := New(name, tagName, query, hosts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name retorna o nome da loja
func (s Store) Name() string { return s.name }

// TagName retorna o nome da tag que contém o preço
func (s Store) TagName() string { return s.tagName }

// Query retorna uma cópia dos atributos exigidos
func (s Store) Query() map[string]string {
	q := make(map[string]string, len(s.query))
	for k, v := range s.query {
		q[k] = v
	}
	return q
}

// Hosts retorna uma cópia dos domínios atendidos pela loja
func (s Store) Hosts() []string {
	return append([]string(nil), s.hosts...)
}

// CanHandle verifica se a URL pertence a um dos domínios da loja
func (s Store) CanHandle(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, h := range s.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// Selector descreve a busca em formato parecido com CSS, útil para logs
func (s Store) Selector() string {
	keys := make([]string, 0, len(s.query))
	for k := range s.query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(s.tagName)
	for _, k := range keys {
		fmt.Fprintf(&b, "[%s=%q]", k, s.query[k])
	}
	return b.String()
}

func (s Store) String() string {
	return fmt.Sprintf("<Store %s %s>", s.name, s.Selector())
}
