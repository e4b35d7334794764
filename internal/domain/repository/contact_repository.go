package repository

import "github.com/nitonic/fatture-cli/internal/domain/entity"

// ContactRepository persistenza della rubrica clienti.
type ContactRepository interface {
	// Upsert inserisce o aggiorna il contatto; la chiave è la partita IVA
	// normalizzata.
	Upsert(contact *entity.Contact) error
	GetByVAT(partitaIVA string) (*entity.Contact, error)
	List() ([]*entity.Contact, error)
}
