package fatturapa

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nitonic/fatture-cli/internal/domain/entity"
)

// Prefissi per il nome file in base al tipo documento.
const (
	fsPrefixFattura     = "fatt"
	fsPrefixNotaCredito = "ncre"
)

// FSName deriva il nome file deterministico di un documento:
// {fatt|ncre}-{anno}-{numero a 5 cifre}-{slug della controparte}.
func FSName(d entity.Document) string {
	prefix := fsPrefixNotaCredito
	if d.Tipo() == entity.TipoFattura {
		prefix = fsPrefixFattura
	}
	return fmt.Sprintf("%s-%04d-%05d-%s",
		prefix,
		d.DataEmissione().Year(),
		d.NumeroInt(),
		Slug(d.Counterparty().DatiAnagrafici.Anagrafica.DisplayName()),
	)
}

// DisplayName deriva il nome di presentazione di un documento:
// {numero a 2 cifre} - {slug della controparte} - € {importo pagamento}.
func DisplayName(d entity.Document) string {
	return fmt.Sprintf("%02d - %s - € %s",
		d.NumeroInt(),
		Slug(d.Counterparty().DatiAnagrafici.Anagrafica.DisplayName()),
		FormatAmount(d.ImportoPagamento()),
	)
}

// Slug rende una stringa sicura per nomi file: minuscole, diacritici
// rimossi, ogni sequenza non alfanumerica collassata in un singolo "-".
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	flat, _, err := transform.String(t, s)
	if err != nil {
		flat = s
	}
	flat = strings.ToLower(flat)

	var b strings.Builder
	b.Grow(len(flat))
	lastDash := true // evita il separatore in testa
	for _, r := range flat {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
