package price_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot-precos/internal/price"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"$396.96 today", "396.9"},
		{"  $396.96  ", "396.9"},
		{"£129.00", "129.0"},
		{"1299.9", "1299.9"},
		{"de 10.5 por 8.3", "10.5"},
		{"R$ 1.299,90", "1.2"},
		{"Preço: 42.7\n", "42.7"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := price.Extract(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_NotPriceShaped(t *testing.T) {
	for _, text := range []string{"Currently unavailable", "", "   ", "$396", "12,50", "3.", ".5", "1-5"} {
		t.Run(text, func(t *testing.T) {
			_, err := price.Extract(text)
			assert.True(t, errors.Is(err, price.ErrPriceNotFound), "err = %v", err)
		})
	}
}

func TestExtract_IsPure(t *testing.T) {
	first, err1 := price.Extract("$396.96 today")
	second, err2 := price.Extract("$396.96 today")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestValue(t *testing.T) {
	v, err := price.Value("396.9")
	require.NoError(t, err)
	assert.InDelta(t, 396.9, v, 1e-9)

	_, err = price.Value("abc")
	assert.Error(t, err)
}
