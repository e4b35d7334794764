// Package fatturapa raccoglie gli algoritmi puri sul modello FatturaPA:
// normalizzazione degli identificativi fiscali, numerazione, naming,
// formattazione degli importi e sintesi anagrafica. Nessun I/O.
package fatturapa

import "strings"

// vatLength lunghezza canonica dell'identificativo fiscale normalizzato
// (partita IVA italiana: 11 cifre).
const vatLength = 11

// NormalizeVAT canonicalizza una partita IVA o un codice fiscale per i
// confronti di identità: rimuove ogni carattere non alfanumerico e riempie
// a sinistra con zeri fino a 11 caratteri. Due identificativi che
// normalizzano uguale sono la stessa parte per il catalogo, qualunque sia
// la loro forma testuale di partenza.
func NormalizeVAT(vat string) string {
	var b strings.Builder
	b.Grow(len(vat))
	for _, r := range vat {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) >= vatLength {
		return s[len(s)-vatLength:]
	}
	return strings.Repeat("0", vatLength-len(s)) + s
}

// SameParty confronta due identificativi fiscali sulla forma normalizzata.
func SameParty(a, b string) bool {
	return NormalizeVAT(a) == NormalizeVAT(b)
}
