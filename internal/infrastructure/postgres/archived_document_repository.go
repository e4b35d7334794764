package postgres

import (
	"context"
	"fmt"

	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/internal/domain/repository"
)

var _ repository.ArchivedDocumentRepository = (*ArchivedDocumentRepo)(nil)

// ArchivedDocumentRepo implementazione di ArchivedDocumentRepository
// (usabile con pool o tx).
type ArchivedDocumentRepo struct {
	q Querier
}

// NewArchivedDocumentRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewArchivedDocumentRepository(q Querier) *ArchivedDocumentRepo {
	return &ArchivedDocumentRepo{q: q}
}

// Upsert inserisce o aggiorna la riga di indice; la chiave è l'id del
// documento presso il provider.
func (r *ArchivedDocumentRepo) Upsert(doc *entity.ArchivedDocument) error {
	query := `
		INSERT INTO archived_documents (id, tipo, anno, numero, data, importo,
			controparte, partita_iva, filename, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			tipo        = EXCLUDED.tipo,
			anno        = EXCLUDED.anno,
			numero      = EXCLUDED.numero,
			data        = EXCLUDED.data,
			importo     = EXCLUDED.importo,
			controparte = EXCLUDED.controparte,
			partita_iva = EXCLUDED.partita_iva,
			filename    = EXCLUDED.filename,
			updated_at  = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, string(doc.Tipo), doc.Anno, doc.Numero, doc.Data, doc.Importo,
		doc.Controparte, doc.PartitaIVA, doc.Filename, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert indice documento: %w", err)
	}
	return nil
}

// ListByYear restituisce l'indice dell'anno ordinato per tipo e numero.
func (r *ArchivedDocumentRepo) ListByYear(anno int) ([]*entity.ArchivedDocument, error) {
	query := `
		SELECT id, tipo, anno, numero, data, importo, controparte,
			partita_iva, filename, created_at, updated_at
		FROM archived_documents WHERE anno = $1 ORDER BY tipo, numero`
	rows, err := r.q.Query(context.Background(), query, anno)
	if err != nil {
		return nil, fmt.Errorf("list indice documenti: %w", err)
	}
	defer rows.Close()
	var list []*entity.ArchivedDocument
	for rows.Next() {
		var d entity.ArchivedDocument
		var tipo string
		if err := rows.Scan(&d.ID, &tipo, &d.Anno, &d.Numero, &d.Data, &d.Importo,
			&d.Controparte, &d.PartitaIVA, &d.Filename, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan indice documento: %w", err)
		}
		d.Tipo = entity.TipoDocumento(tipo)
		list = append(list, &d)
	}
	return list, rows.Err()
}
