package billing

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nitonic/fatture-cli/internal/domain"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/internal/domain/fatturapa"
	"github.com/nitonic/fatture-cli/pkg/logger"
)

// defaultFetchConcurrency fan-out massimo dei fetch durante il Load.
const defaultFetchConcurrency = 8

// Catalogue è la cache di processo dei documenti emessi: popolata in modo
// lazy alla prima Load, riusata per tutta la vita del processo, mai
// invalidata. Non è thread-safe per scelta: il chiamante esegue Load una
// volta sola prima di qualsiasi lettura concorrente.
type Catalogue struct {
	source      DocumentSource
	codec       Codec
	log         *logger.Logger
	concurrency int

	loaded bool
	docs   []entity.Document
}

// NewCatalogue costruisce il catalogo. concurrency <= 0 usa il default.
func NewCatalogue(source DocumentSource, codec Codec, log *logger.Logger, concurrency int) *Catalogue {
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	return &Catalogue{
		source:      source,
		codec:       codec,
		log:         log,
		concurrency: concurrency,
	}
}

// Load restituisce il corpus completo, ordinato per data di emissione
// decrescente. Alla prima chiamata scarica e decodifica ogni documento del
// provider (fetch concorrenti, fan-out limitato); un singolo documento che
// non si riesce a scaricare o decodificare viene scartato con un log, mai
// fatale per l'intero caricamento. Le chiamate successive restituiscono la
// cache.
func (c *Catalogue) Load(ctx context.Context) ([]entity.Document, error) {
	if c.loaded {
		return c.docs, nil
	}

	refs, err := c.source.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("elenco documenti: %w", err)
	}

	var (
		mu   sync.Mutex
		docs = make([]entity.Document, 0, len(refs))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, ref := range refs {
		g.Go(func() error {
			raw, err := c.source.FetchXML(gctx, ref.ID)
			if err != nil {
				c.log.Warn().Err(err).Str("doc_id", ref.ID).Msg("documento non disponibile, scartato")
				return nil
			}
			doc, err := c.codec.Decode(raw)
			if err != nil {
				c.log.Warn().Err(err).Str("doc_id", ref.ID).Msg("documento non decodificabile, scartato")
				return nil
			}
			doc = fatturapa.Normalize(doc)
			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Più recenti per primi; a parità di data decide il numero, così
	// l'ordinamento resta deterministico tra esecuzioni.
	sort.SliceStable(docs, func(i, j int) bool {
		di, dj := docs[i].DataEmissione(), docs[j].DataEmissione()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return docs[i].NumeroInt() > docs[j].NumeroInt()
	})

	c.docs = docs
	c.loaded = true
	c.log.Info().Int("documenti", len(docs)).Int("scartati", len(refs)-len(docs)).Msg("catalogo caricato")
	return c.docs, nil
}

// UniqueCounterparties raggruppa il corpus per identificativo fiscale
// normalizzato del cessionario e restituisce una parte per gruppo: quella
// del documento più recente (il corpus è già ordinato per data decrescente).
func (c *Catalogue) UniqueCounterparties(ctx context.Context) ([]entity.CessionarioCommittente, error) {
	docs, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(docs))
	out := make([]entity.CessionarioCommittente, 0, len(docs))
	for _, d := range docs {
		key := fatturapa.NormalizeVAT(d.Counterparty().DatiAnagrafici.TaxID())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d.Counterparty())
	}
	return out, nil
}

// LastDocumentFor restituisce il documento più recente della controparte
// indicata (confronto sull'identificativo fiscale normalizzato).
// domain.ErrUnknownCounterparty se non esiste: per i chiamanti significa
// "controparte nuova", non un errore bloccante.
func (c *Catalogue) LastDocumentFor(ctx context.Context, party entity.CessionarioCommittente) (entity.Document, error) {
	docs, err := c.Load(ctx)
	if err != nil {
		return entity.Document{}, err
	}
	key := fatturapa.NormalizeVAT(party.DatiAnagrafici.TaxID())
	for _, d := range docs {
		if fatturapa.NormalizeVAT(d.Counterparty().DatiAnagrafici.TaxID()) == key {
			return d, nil
		}
	}
	return entity.Document{}, domain.ErrUnknownCounterparty
}

// FirstOfType restituisce il documento più recente del tipo indicato, da
// usare come modello strutturale. domain.ErrNoTemplate se il corpus non ne
// contiene nessuno.
func (c *Catalogue) FirstOfType(ctx context.Context, tipo entity.TipoDocumento) (entity.Document, error) {
	docs, err := c.Load(ctx)
	if err != nil {
		return entity.Document{}, err
	}
	for _, d := range docs {
		if d.Tipo() == tipo {
			return d, nil
		}
	}
	return entity.Document{}, fmt.Errorf("%w: tipo %s", domain.ErrNoTemplate, tipo)
}

// NextNumber calcola il prossimo numero per il tipo nell'anno fiscale del
// documento da creare (vedi fatturapa.NextNumber).
func (c *Catalogue) NextNumber(ctx context.Context, tipo entity.TipoDocumento, anno int) (int, error) {
	docs, err := c.Load(ctx)
	if err != nil {
		return 0, err
	}
	return fatturapa.NextNumber(docs, tipo, anno), nil
}
