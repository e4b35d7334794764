package billing

import (
	"context"

	"github.com/nitonic/fatture-cli/internal/domain/entity"
)

// DocumentRef riferimento di un documento presso il provider (dal listing,
// prima del fetch del contenuto XML).
type DocumentRef struct {
	ID          string
	Tipo        entity.TipoDocumento
	RecipientID string // identificativo del destinatario secondo il provider
}

// DocumentSource è la porta verso il provider dei documenti emessi.
// Nessuna politica di retry è imposta qui: un fetch fallito viene trattato
// dal catalogo come "documento non disponibile".
type DocumentSource interface {
	// ListDocuments elenca i riferimenti dei documenti attivi dell'utente.
	ListDocuments(ctx context.Context) ([]DocumentRef, error)
	// FetchXML scarica il contenuto XML di un documento.
	FetchXML(ctx context.Context, id string) ([]byte, error)
}

// UploadSink è la porta di consegna di un documento appena compilato.
type UploadSink interface {
	Upload(ctx context.Context, doc entity.Document, xml []byte, filename string) error
}

// Codec è la porta verso il codec del tracciato FatturaPA.
type Codec interface {
	Decode(data []byte) (entity.Document, error)
	Encode(doc entity.Document) ([]byte, error)
}

// DocumentArchive è la porta verso l'archivio XML locale.
type DocumentArchive interface {
	WriteDocument(filename string, data []byte) error
}
