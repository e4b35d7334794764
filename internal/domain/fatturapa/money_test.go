package fatturapa_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitonic/fatture-cli/internal/domain/fatturapa"
)

func TestFormatAmount_DueDecimaliPuntoSenzaMigliaia(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(3910), "3910.00"},
		{decimal.NewFromFloat(1234567.5), "1234567.50"},
		{decimal.NewFromFloat(0.1), "0.10"},
		{decimal.Zero, "0.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fatturapa.FormatAmount(tc.in))
	}
}

func TestParseAmount(t *testing.T) {
	v, ok := fatturapa.ParseAmount("3910.50")
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromFloat(3910.5)))

	_, ok = fatturapa.ParseAmount("3.910,50")
	assert.False(t, ok, "il separatore delle migliaia non è ammesso")
	_, ok = fatturapa.ParseAmount("abc")
	assert.False(t, ok)
	_, ok = fatturapa.ParseAmount("-10.00")
	assert.False(t, ok, "gli importi sono sempre non negativi")
	_, ok = fatturapa.ParseAmount("")
	assert.False(t, ok)
}
