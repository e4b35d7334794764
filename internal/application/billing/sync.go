package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/internal/domain/fatturapa"
	"github.com/nitonic/fatture-cli/internal/domain/repository"
	"github.com/nitonic/fatture-cli/pkg/logger"
)

// SyncUseCase allinea rubrica e archivio locale al corpus remoto: per ogni
// documento scrive l'XML in documents/, aggiorna la riga di indice e fa
// l'upsert del contatto del cessionario.
type SyncUseCase struct {
	source   DocumentSource
	codec    Codec
	archive  DocumentArchive
	contacts repository.ContactRepository
	index    repository.ArchivedDocumentRepository
	log      *logger.Logger
}

// NewSyncUseCase costruisce il caso d'uso.
func NewSyncUseCase(
	source DocumentSource,
	codec Codec,
	archive DocumentArchive,
	contacts repository.ContactRepository,
	index repository.ArchivedDocumentRepository,
	log *logger.Logger,
) *SyncUseCase {
	return &SyncUseCase{
		source:   source,
		codec:    codec,
		archive:  archive,
		contacts: contacts,
		index:    index,
		log:      log,
	}
}

// SyncResult esito della sincronizzazione.
type SyncResult struct {
	Archived int
	Contacts int
	Skipped  int
}

// Execute scarica l'elenco remoto e processa ogni documento. Un documento
// che non si riesce a scaricare o decodificare viene saltato e loggato,
// come nel caricamento del catalogo.
func (uc *SyncUseCase) Execute(ctx context.Context) (*SyncResult, error) {
	refs, err := uc.source.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("elenco documenti: %w", err)
	}

	res := &SyncResult{}
	seenVAT := make(map[string]bool)
	now := time.Now()

	for _, ref := range refs {
		raw, err := uc.source.FetchXML(ctx, ref.ID)
		if err != nil {
			uc.log.Warn().Err(err).Str("doc_id", ref.ID).Msg("documento non disponibile, saltato")
			res.Skipped++
			continue
		}
		doc, err := uc.codec.Decode(raw)
		if err != nil {
			uc.log.Warn().Err(err).Str("doc_id", ref.ID).Msg("documento non decodificabile, saltato")
			res.Skipped++
			continue
		}
		doc = fatturapa.Normalize(doc)

		filename := fatturapa.FSName(doc) + ".xml"
		if err := uc.archive.WriteDocument(filename, raw); err != nil {
			return res, fmt.Errorf("archiviazione %s: %w", filename, err)
		}

		vat := fatturapa.NormalizeVAT(doc.Counterparty().DatiAnagrafici.TaxID())
		if err := uc.index.Upsert(&entity.ArchivedDocument{
			ID:          ref.ID,
			Tipo:        doc.Tipo(),
			Anno:        doc.DataEmissione().Year(),
			Numero:      doc.NumeroInt(),
			Data:        doc.DataEmissione(),
			Importo:     doc.ImportoTotale(),
			Controparte: doc.Counterparty().DatiAnagrafici.Anagrafica.DisplayName(),
			PartitaIVA:  vat,
			Filename:    filename,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return res, fmt.Errorf("indice documento %s: %w", ref.ID, err)
		}
		res.Archived++

		// Un upsert per controparte: vince il primo documento incontrato.
		if seenVAT[vat] {
			continue
		}
		seenVAT[vat] = true
		cp := doc.Counterparty()
		if err := uc.contacts.Upsert(&entity.Contact{
			ID:            uuid.New().String(),
			Denominazione: cp.DatiAnagrafici.Anagrafica.DisplayName(),
			PartitaIVA:    vat,
			Indirizzo:     cp.Sede.Indirizzo,
			NumeroCivico:  cp.Sede.NumeroCivico,
			CAP:           cp.Sede.CAP,
			Comune:        cp.Sede.Comune,
			Provincia:     cp.Sede.Provincia,
			Nazione:       cp.Sede.Nazione,
			CodiceSDI:     doc.Header.DatiTrasmissione.CodiceDestinatario,
			CreatedAt:     now,
			UpdatedAt:     now,
		}); err != nil {
			return res, fmt.Errorf("rubrica %s: %w", vat, err)
		}
		res.Contacts++
	}

	uc.log.Info().
		Int("archiviati", res.Archived).
		Int("contatti", res.Contacts).
		Int("saltati", res.Skipped).
		Msg("sincronizzazione completata")
	return res, nil
}
