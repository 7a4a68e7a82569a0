package store

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lojas embutidas
var (
	// Amazon: <span id="priceblock_ourprice" class="a-size-medium a-color-price">$396.96</span>
	Amazon = MustNew("amazon", "span", map[string]string{"id": "priceblock_ourprice"},
		"amazon.com", "amazon.co.uk", "amazon.com.br")

	JohnLewis = MustNew("johnlewis", "p", map[string]string{"class": "price price--large"},
		"johnlewis.com")

	// Mercado Livre: <meta itemprop="price" content="1299.9">
	MercadoLivre = MustNew("mercadolivre", "meta", map[string]string{"itemprop": "price"},
		"mercadolivre.com.br", "mercadolibre.com")
)

// Registry mantém um registro de todas as lojas conhecidas
type Registry struct {
	stores map[string]Store
}

// NewRegistry cria um novo registro com as lojas fornecidas.
// Uma loja repetida substitui a anterior de mesmo nome.
func NewRegistry(stores ...Store) *Registry {
	r := &Registry{stores: make(map[string]Store, len(stores))}
	for _, s := range stores {
		r.stores[strings.ToLower(s.Name())] = s
	}
	return r
}

// Default cria um registro com as lojas embutidas
func Default() *Registry {
	return NewRegistry(Amazon, JohnLewis, MercadoLivre)
}

// With retorna um novo registro contendo as lojas atuais mais as fornecidas
func (r *Registry) With(stores ...Store) *Registry {
	return NewRegistry(append(r.All(), stores...)...)
}

// Lookup busca uma loja pelo nome (sem diferenciar maiúsculas)
func (r *Registry) Lookup(name string) (Store, bool) {
	s, ok := r.stores[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// FindByURL encontra a loja apropriada para uma URL
func (r *Registry) FindByURL(rawURL string) (Store, bool) {
	for _, s := range r.All() {
		if s.CanHandle(rawURL) {
			return s, true
		}
	}
	return Store{}, false
}

// All retorna todas as lojas ordenadas pelo nome
func (r *Registry) All() []Store {
	all := make([]Store, 0, len(r.stores))
	for _, s := range r.stores {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}

type fileStore struct {
	Name  string            `yaml:"name"`
	Tag   string            `yaml:"tag"`
	Query map[string]string `yaml:"query"`
	Hosts []string          `yaml:"hosts"`
}

type storesFile struct {
	Stores []fileStore `yaml:"stores"`
}

// LoadFile lê lojas adicionais de um arquivo YAML:
//
//	stores:
//	  - name: kabum
//	    tag: h4
//	    query: {class: finalPrice}
//	    hosts: [kabum.com.br]
func LoadFile(path string) ([]Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de lojas: %w", err)
	}
	return Parse(data)
}

// Parse decodifica a lista de lojas em YAML
func Parse(data []byte) ([]Store, error) {
	var f storesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("erro ao decodificar lojas: %w", err)
	}

	stores := make([]Store, 0, len(f.Stores))
	for i, fs := range f.Stores {
		s, err := New(fs.Name, fs.Tag, fs.Query, fs.Hosts...)
		if err != nil {
			return nil, fmt.Errorf("loja %d: %w", i+1, err)
		}
		stores = append(stores, s)
	}
	return stores, nil
}
