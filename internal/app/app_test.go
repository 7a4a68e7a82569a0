package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot-precos/config"
	"bot-precos/internal/logging"
)

func TestLoadRegistry_DefaultsOnly(t *testing.T) {
	registry, err := loadRegistry("")

	require.NoError(t, err)
	assert.Len(t, registry.All(), 3)
}

func TestLoadRegistry_MergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stores.yaml")
	content := "stores:\n  - name: kabum\n    tag: h4\n    query: {class: finalPrice}\n    hosts: [kabum.com.br]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	registry, err := loadRegistry(path)

	require.NoError(t, err)
	assert.Len(t, registry.All(), 4)
	s, ok := registry.FindByURL("https://www.kabum.com.br/produto/1")
	require.True(t, ok)
	assert.Equal(t, "kabum", s.Name())
}

func TestLoadRegistry_InvalidFile(t *testing.T) {
	_, err := loadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestServeMetrics_DisabledWithoutAddr(t *testing.T) {
	a := &App{Config: &config.Config{}, Logger: logging.Discard()}

	assert.NotPanics(t, func() { a.ServeMetrics(context.Background()) })
}
