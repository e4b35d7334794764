package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nitonic/fatture-cli/internal/domain"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementazione di ContactRepository (usabile con pool o tx).
type ContactRepo struct {
	q Querier
}

// NewContactRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// Upsert inserisce o aggiorna il contatto; la chiave di conflitto è la
// partita IVA normalizzata, così un contatto risincronizzato si aggiorna
// senza duplicarsi.
func (r *ContactRepo) Upsert(contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, denominazione, partita_iva, indirizzo, numero_civico,
			cap, comune, provincia, nazione, codice_sdi, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (partita_iva) DO UPDATE SET
			denominazione = EXCLUDED.denominazione,
			indirizzo     = EXCLUDED.indirizzo,
			numero_civico = EXCLUDED.numero_civico,
			cap           = EXCLUDED.cap,
			comune        = EXCLUDED.comune,
			provincia     = EXCLUDED.provincia,
			nazione       = EXCLUDED.nazione,
			codice_sdi    = EXCLUDED.codice_sdi,
			updated_at    = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		contact.ID, contact.Denominazione, contact.PartitaIVA, contact.Indirizzo,
		contact.NumeroCivico, contact.CAP, contact.Comune, contact.Provincia,
		contact.Nazione, contact.CodiceSDI, contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		// Conflitto sull'id con partita IVA diversa: il chiamante sta
		// riusando un id già assegnato.
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("upsert contatto: %w", err)
	}
	return nil
}

// GetByVAT cerca un contatto per partita IVA normalizzata; nil se assente.
func (r *ContactRepo) GetByVAT(partitaIVA string) (*entity.Contact, error) {
	query := `
		SELECT id, denominazione, partita_iva, indirizzo, numero_civico,
			cap, comune, provincia, nazione, codice_sdi, created_at, updated_at
		FROM contacts WHERE partita_iva = $1`
	var c entity.Contact
	err := r.q.QueryRow(context.Background(), query, partitaIVA).Scan(
		&c.ID, &c.Denominazione, &c.PartitaIVA, &c.Indirizzo, &c.NumeroCivico,
		&c.CAP, &c.Comune, &c.Provincia, &c.Nazione, &c.CodiceSDI, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contatto: %w", err)
	}
	return &c, nil
}

// List restituisce la rubrica ordinata per denominazione.
func (r *ContactRepo) List() ([]*entity.Contact, error) {
	query := `
		SELECT id, denominazione, partita_iva, indirizzo, numero_civico,
			cap, comune, provincia, nazione, codice_sdi, created_at, updated_at
		FROM contacts ORDER BY denominazione`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list contatti: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.Denominazione, &c.PartitaIVA, &c.Indirizzo,
			&c.NumeroCivico, &c.CAP, &c.Comune, &c.Provincia, &c.Nazione,
			&c.CodiceSDI, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contatto: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
