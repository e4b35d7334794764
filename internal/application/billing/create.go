package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nitonic/fatture-cli/internal/domain"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/internal/domain/fatturapa"
	"github.com/nitonic/fatture-cli/pkg/logger"
)

// CreateRequest dati grezzi per l'emissione di un nuovo documento.
// Importi e date arrivano come stringhe e vengono validati qui, prima che
// qualunque compilazione abbia inizio.
type CreateRequest struct {
	Tipo            entity.TipoDocumento
	CounterpartyVAT string // identificativo fiscale della controparte (forma libera)
	// NewCounterparty anagrafica completa per una controparte mai fatturata;
	// ignorata se la controparte è già nel catalogo.
	NewCounterparty *entity.CessionarioCommittente
	RecipientCode   string // codice destinatario SDI per le controparti nuove
	IssueDate       string // "2006-01-02"
	DueDate         string // "2006-01-02"
	Description     string
	Amount          string // formato di tracciato, es. "3910.00"
	StampDuty       bool
	Upload          bool
}

// CreateResult il documento emesso con il suo XML e i nomi derivati.
type CreateResult struct {
	Document    entity.Document
	XML         []byte
	Filename    string
	DisplayName string
	Number      int
	Uploaded    bool
}

// CreateUseCase orchestration dell'emissione: catalogo → numerazione →
// modello → compilazione → encoding → eventuale consegna.
type CreateUseCase struct {
	catalogue *Catalogue
	compiler  *Compiler
	codec     Codec
	sink      UploadSink
	log       *logger.Logger
}

// NewCreateUseCase costruisce il caso d'uso.
func NewCreateUseCase(catalogue *Catalogue, compiler *Compiler, codec Codec, sink UploadSink, log *logger.Logger) *CreateUseCase {
	return &CreateUseCase{
		catalogue: catalogue,
		compiler:  compiler,
		codec:     codec,
		sink:      sink,
		log:       log,
	}
}

// Execute emette un nuovo documento. Se la validazione o la compilazione
// falliscono non viene prodotto né consegnato alcun artefatto.
func (uc *CreateUseCase) Execute(ctx context.Context, in CreateRequest) (*CreateResult, error) {
	if !in.Tipo.Valido() {
		return nil, fmt.Errorf("%w: tipo documento %q", domain.ErrValidation, string(in.Tipo))
	}
	amount, ok := fatturapa.ParseAmount(in.Amount)
	if !ok {
		return nil, fmt.Errorf("%w: importo %q non numerico", domain.ErrValidation, in.Amount)
	}
	issueDate, err := time.Parse("2006-01-02", in.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: data di emissione %q", domain.ErrValidation, in.IssueDate)
	}
	dueDate, err := time.Parse("2006-01-02", in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: data di scadenza %q", domain.ErrValidation, in.DueDate)
	}

	// Controparte: prima si cerca nel catalogo; una controparte mai vista
	// non è un errore, ma serve l'anagrafica completa fornita dal chiamante.
	counterparty, recipientCode, err := uc.resolveCounterparty(ctx, in)
	if err != nil {
		return nil, err
	}

	number, err := uc.catalogue.NextNumber(ctx, in.Tipo, issueDate.Year())
	if err != nil {
		return nil, err
	}

	template, err := uc.catalogue.FirstOfType(ctx, in.Tipo)
	if err != nil {
		return nil, err
	}

	doc, err := uc.compiler.Compile(template, CompileInput{
		Counterparty:  counterparty,
		RecipientCode: recipientCode,
		Number:        number,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Description:   in.Description,
		Amount:        amount,
		StampDuty:     in.StampDuty,
	})
	if err != nil {
		return nil, err
	}

	xml, err := uc.codec.Encode(doc)
	if err != nil {
		return nil, err
	}

	res := &CreateResult{
		Document:    doc,
		XML:         xml,
		Filename:    fatturapa.FSName(doc) + ".xml",
		DisplayName: fatturapa.DisplayName(doc),
		Number:      number,
	}

	if in.Upload {
		if err := uc.sink.Upload(ctx, doc, xml, res.Filename); err != nil {
			return nil, fmt.Errorf("consegna documento: %w", err)
		}
		res.Uploaded = true
		uc.log.Info().Str("file", res.Filename).Msg("documento consegnato al provider")
	}

	return res, nil
}

// resolveCounterparty restituisce l'anagrafica da intestare e il codice
// destinatario da usare. Controparte nota: anagrafica del documento più
// recente e relativo codice destinatario. Controparte nuova: anagrafica e
// codice forniti nella richiesta.
func (uc *CreateUseCase) resolveCounterparty(ctx context.Context, in CreateRequest) (entity.CessionarioCommittente, string, error) {
	probe := entity.CessionarioCommittente{}
	probe.DatiAnagrafici.IdFiscaleIVA.IdCodice = in.CounterpartyVAT

	last, err := uc.catalogue.LastDocumentFor(ctx, probe)
	switch {
	case err == nil:
		return last.Counterparty(), last.Header.DatiTrasmissione.CodiceDestinatario, nil
	case errors.Is(err, domain.ErrUnknownCounterparty):
		if in.NewCounterparty == nil {
			return entity.CessionarioCommittente{}, "",
				fmt.Errorf("%w: %s (fornire l'anagrafica completa)", domain.ErrUnknownCounterparty, in.CounterpartyVAT)
		}
		return *in.NewCounterparty, in.RecipientCode, nil
	default:
		return entity.CessionarioCommittente{}, "", err
	}
}
