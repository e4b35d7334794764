package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArchivedDocument è la riga di indice di un documento archiviato in locale:
// estremi del documento più il nome file dell'XML salvato in documents/.
type ArchivedDocument struct {
	ID          string // id del documento presso il provider
	Tipo        TipoDocumento
	Anno        int
	Numero      int
	Data        time.Time
	Importo     decimal.Decimal
	Controparte string // denominazione del cessionario
	PartitaIVA  string // forma normalizzata
	Filename    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
