package domain

import "errors"

// Errori di dominio (senza dipendenze esterne).
var (
	// ErrMalformedDocument l'XML non ha la forma attesa del tracciato FatturaPA.
	ErrMalformedDocument = errors.New("documento malformato")
	// ErrNoTemplate il catalogo non contiene alcun documento del tipo richiesto
	// da usare come modello strutturale.
	ErrNoTemplate = errors.New("nessun documento modello disponibile")
	// ErrUnknownCounterparty nessun documento pregresso per la controparte.
	// Non è bloccante: una controparte nuova può comunque fatturare.
	ErrUnknownCounterparty = errors.New("controparte sconosciuta")
	// ErrValidation i valori forniti non superano i controlli di forma.
	ErrValidation = errors.New("dati non validi")

	ErrNotFound     = errors.New("risorsa non trovata")
	ErrDuplicate    = errors.New("risorsa duplicata")
	ErrUnauthorized = errors.New("non autorizzato")
)
