package fatturapa

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern forma accettata per gli importi inseriti dall'utente:
// cifre con al più un punto decimale (niente separatore delle migliaia).
var amountPattern = regexp.MustCompile(`^([0-9]+)(\.[0-9]+)?$`)

// FormatAmount rende un importo nel formato numerico di tracciato: due
// decimali esatti, punto come separatore, nessun separatore delle migliaia.
// È il formato richiesto dallo schema, distinto da qualsiasi formato di
// presentazione.
func FormatAmount(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// ParseAmount interpreta un importo testuale nel formato di tracciato.
// Restituisce ok=false se la forma non è valida.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
