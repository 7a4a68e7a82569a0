// Package markup transforma o HTML bruto em uma árvore navegável e
// localiza o elemento de preço descrito por uma loja.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"bot-precos/internal/store"
)

// ErrElementNotFound indica que nenhum elemento da página corresponde à
// descrição da loja; normalmente o layout do site mudou.
var ErrElementNotFound = errors.New("elemento de preço não encontrado")

// Document é a árvore de um documento HTML
type Document struct {
	doc *goquery.Document
}

// Element é um elemento localizado no documento
type Element struct {
	sel *goquery.Selection
}

// Parse monta a árvore do documento. O parser HTML5 reconstrói marcação
// malformada (tags não fechadas, sem doctype) em vez de falhar.
func Parse(raw []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Find retorna o primeiro elemento, em ordem de documento, com a tag da
// loja e todos os atributos exigidos.
func Find(d *Document, s store.Store) (*Element, error) {
	tag := s.TagName()
	query := s.Query()

	var found *goquery.Selection
	d.doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		node := sel.Get(0)
		if node.Type != html.ElementNode || node.Data != tag {
			return true
		}
		if !matchesAll(node, query) {
			return true
		}
		found = sel
		return false
	})

	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, s.Selector())
	}
	return &Element{sel: found}, nil
}

func matchesAll(node *html.Node, query map[string]string) bool {
	for key, want := range query {
		got, ok := attr(node, key)
		if !ok || !attrMatches(key, got, want) {
			return false
		}
	}
	return true
}

// attrMatches compara valores exatos. Para class, o valor também casa com
// uma única classe da lista.
func attrMatches(key, got, want string) bool {
	if got == want {
		return true
	}
	if key != "class" {
		return false
	}
	for _, class := range strings.Fields(got) {
		if class == want {
			return true
		}
	}
	return false
}

func attr(node *html.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Text retorna o texto interno sem espaços nas pontas. Elementos sem texto,
// como <meta>, usam o atributo content.
func (e *Element) Text() string {
	text := strings.TrimSpace(e.sel.Text())
	if text == "" {
		text = strings.TrimSpace(e.sel.AttrOr("content", ""))
	}
	return text
}

// Attr retorna o valor de um atributo do elemento
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(strings.ToLower(name))
}

// TagName retorna o nome da tag do elemento
func (e *Element) TagName() string {
	return goquery.NodeName(e.sel)
}
