package fatturapa

import (
	"strings"

	"github.com/nitonic/fatture-cli/internal/domain/entity"
)

// Normalize corregge le irregolarità note dei documenti di origine.
// Oggi l'unica patch è la sintesi della denominazione per le persone
// fisiche: se Denominazione è vuota viene ricostruita come "Nome Cognome".
// La funzione è pura e idempotente; a valle della normalizzazione tutto il
// resto del motore tratta Denominazione come sempre valorizzata.
func Normalize(d entity.Document) entity.Document {
	d.Header.CedentePrestatore.DatiAnagrafici.Anagrafica =
		normalizeAnagrafica(d.Header.CedentePrestatore.DatiAnagrafici.Anagrafica)
	d.Header.CessionarioCommittente.DatiAnagrafici.Anagrafica =
		normalizeAnagrafica(d.Header.CessionarioCommittente.DatiAnagrafici.Anagrafica)
	return d
}

func normalizeAnagrafica(a entity.Anagrafica) entity.Anagrafica {
	if strings.TrimSpace(a.Denominazione) != "" {
		return a
	}
	full := strings.TrimSpace(strings.TrimSpace(a.Nome) + " " + strings.TrimSpace(a.Cognome))
	if full == "" {
		return a
	}
	a.Denominazione = full
	return a
}
