package fatturapa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nitonic/fatture-cli/internal/domain/fatturapa"
)

// TestNormalizeVAT_FormaCanonica verifica la proprietà di canonicalizzazione:
// qualunque input produce 11 caratteri alfanumerici, senza punteggiatura,
// riempiti a sinistra con zeri.
func TestNormalizeVAT_FormaCanonica(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"solo cifre corte", "123456789", "00123456789"},
		{"gia undici cifre", "01234567890", "01234567890"},
		{"prefisso paese e trattini", "IT 123-456-789", "IT123456789"},
		{"prefisso paese compatto", "IT123456789", "IT123456789"},
		{"punteggiatura mista", "01.234.567-890", "01234567890"},
		{"vuota", "", "00000000000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fatturapa.NormalizeVAT(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Len(t, got, 11, "la forma normalizzata è sempre lunga 11")
		})
	}
}

// TestSameParty_FormeDiverseStessaParte due forme testuali diverse dello
// stesso identificativo devono collassare sulla stessa chiave.
func TestSameParty_FormeDiverseStessaParte(t *testing.T) {
	assert.True(t, fatturapa.SameParty("IT 123-456-789", "IT123456789"),
		"forme con e senza punteggiatura sono la stessa parte")
	assert.True(t, fatturapa.SameParty("123456789", "00123456789"))
	assert.False(t, fatturapa.SameParty("IT123456789", "IT123456780"))
}
