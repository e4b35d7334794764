package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitonic/fatture-cli/internal/domain/entity"
)

func TestParseTipo(t *testing.T) {
	assert.Equal(t, entity.TipoFattura, parseTipo("fattura"))
	assert.Equal(t, entity.TipoFattura, parseTipo("TD01"))
	assert.Equal(t, entity.TipoNotaCredito, parseTipo("nota-credito"))
	assert.Equal(t, entity.TipoNotaCredito, parseTipo("td04"))
	assert.False(t, parseTipo("autofattura").Valido())
}

func TestAlberoComandi(t *testing.T) {
	c := New(Deps{})

	var names []string
	for _, cmd := range c.root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"login", "sync", "status", "contacts", "create"} {
		assert.Contains(t, names, want)
	}
}

func TestCreateFlags(t *testing.T) {
	c := New(Deps{})
	create, _, err := c.root.Find([]string{"create"})
	require.NoError(t, err)

	for _, flag := range []string{
		"tipo", "cliente", "importo", "data", "scadenza", "descrizione",
		"bollo", "upload", "pdf", "nuovo-denominazione", "nuovo-codice-sdi",
	} {
		assert.NotNil(t, create.Flags().Lookup(flag), "flag mancante: %s", flag)
	}
}
