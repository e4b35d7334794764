package repository

import "github.com/nitonic/fatture-cli/internal/domain/entity"

// ArchivedDocumentRepository indice dei documenti archiviati in locale.
type ArchivedDocumentRepository interface {
	// Upsert inserisce o aggiorna la riga di indice; la chiave è l'id del
	// documento presso il provider.
	Upsert(doc *entity.ArchivedDocument) error
	ListByYear(anno int) ([]*entity.ArchivedDocument, error)
}
