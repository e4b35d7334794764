package entity

import "time"

// Contact è un contatto della rubrica clienti, ricavato dal cessionario
// dell'ultimo documento scambiato e sincronizzato su PostgreSQL.
type Contact struct {
	ID            string
	Denominazione string
	PartitaIVA    string // forma normalizzata a 11 caratteri (chiave di identità)
	Indirizzo     string
	NumeroCivico  string
	CAP           string
	Comune        string
	Provincia     string
	Nazione       string
	CodiceSDI     string // codice destinatario del canale SDI, se noto
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
