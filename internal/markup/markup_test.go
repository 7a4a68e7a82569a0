package markup_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot-precos/internal/markup"
	"bot-precos/internal/store"
)

const amazonPage = `<!DOCTYPE html>
<html>
<body>
  <div id="centerCol">
    <span id="productTitle">Cadeira</span>
    <span id="priceblock_ourprice" class="a-size-medium a-color-price">
      $396.96
    </span>
  </div>
</body>
</html>`

func mustParse(t *testing.T, raw string) *markup.Document {
	t.Helper()
	doc, err := markup.Parse([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestFind_ByTagAndID(t *testing.T) {
	el, err := markup.Find(mustParse(t, amazonPage), store.Amazon)

	require.NoError(t, err)
	assert.Equal(t, "$396.96", el.Text())
	assert.Equal(t, "span", el.TagName())
	class, ok := el.Attr("class")
	assert.True(t, ok)
	assert.Equal(t, "a-size-medium a-color-price", class)
}

func TestFind_ReturnsFirstMatchInDocumentOrder(t *testing.T) {
	s := store.MustNew("shop", "span", map[string]string{"class": "price"})
	page := `<div><div><span class="price">1.5</span></div></div><span class="price">2.5</span>`

	el, err := markup.Find(mustParse(t, page), s)

	require.NoError(t, err)
	assert.Equal(t, "1.5", el.Text())
}

func TestFind_AllAttributesMustMatch(t *testing.T) {
	s := store.MustNew("shop", "span", map[string]string{"id": "price", "data-kind": "final"})
	page := `<span id="price" data-kind="old">9.9</span><span id="price" data-kind="final">7.5</span>`

	el, err := markup.Find(mustParse(t, page), s)

	require.NoError(t, err)
	assert.Equal(t, "7.5", el.Text())
}

func TestFind_TagMustMatch(t *testing.T) {
	page := `<div id="priceblock_ourprice">$10.00</div>`

	_, err := markup.Find(mustParse(t, page), store.Amazon)

	assert.True(t, errors.Is(err, markup.ErrElementNotFound))
}

func TestFind_NoPartialAttributeMatch(t *testing.T) {
	page := `<span id="priceblock_ourprice_old">$10.00</span><span id="priceblock">$11.00</span>`

	_, err := markup.Find(mustParse(t, page), store.Amazon)

	assert.True(t, errors.Is(err, markup.ErrElementNotFound))
	assert.Contains(t, err.Error(), `span[id="priceblock_ourprice"]`)
}

func TestFind_ClassMatchesFullValueOrSingleToken(t *testing.T) {
	page := `<p class="price price--large">£129.00</p>`

	el, err := markup.Find(mustParse(t, page), store.JohnLewis)
	require.NoError(t, err)
	assert.Equal(t, "£129.00", el.Text())

	token := store.MustNew("token", "p", map[string]string{"class": "price--large"})
	el, err = markup.Find(mustParse(t, page), token)
	require.NoError(t, err)
	assert.Equal(t, "£129.00", el.Text())

	partial := store.MustNew("partial", "p", map[string]string{"class": "price--"})
	_, err = markup.Find(mustParse(t, page), partial)
	assert.ErrorIs(t, err, markup.ErrElementNotFound)
}

func TestFind_ToleratesMalformedMarkup(t *testing.T) {
	page := `<html><body><div><span id="priceblock_ourprice">R$ 1.299,90<div><p>unclosed`

	el, err := markup.Find(mustParse(t, page), store.Amazon)

	require.NoError(t, err)
	assert.Contains(t, el.Text(), "R$ 1.299,90")
}

func TestFind_MetaContentFallback(t *testing.T) {
	page := `<html><head><meta itemprop="price" content="1299.9"></head><body></body></html>`

	el, err := markup.Find(mustParse(t, page), store.MercadoLivre)

	require.NoError(t, err)
	assert.Equal(t, "1299.9", el.Text())
}

func TestFind_EmptyDocument(t *testing.T) {
	_, err := markup.Find(mustParse(t, ""), store.Amazon)
	assert.ErrorIs(t, err, markup.ErrElementNotFound)
}
