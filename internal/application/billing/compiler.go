package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nitonic/fatture-cli/internal/domain"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/internal/domain/fatturapa"
)

// Valori fissi usati in compilazione.
const (
	// StampDutyAmount importo del bollo virtuale (art. 13 Tariffa DPR 642/72).
	StampDutyAmount = "2.00"

	bolloSI = "SI"
	bolloNO = "NO"
)

// CompileInput i dati transazionali che si innestano sul modello.
type CompileInput struct {
	Counterparty entity.CessionarioCommittente
	// RecipientCode codice destinatario SDI della controparte; vuoto per le
	// controparti già note (si eredita quello del modello).
	RecipientCode string
	Number        int
	IssueDate     time.Time
	DueDate       time.Time
	Description   string
	Amount        decimal.Decimal
	StampDuty     bool
}

// validate controlli di forma prima di toccare qualunque cosa: o l'input è
// valido o non si produce niente di parziale.
func (in CompileInput) validate() error {
	if in.Number <= 0 {
		return fmt.Errorf("%w: numero documento %d", domain.ErrValidation, in.Number)
	}
	if in.Amount.IsNegative() || in.Amount.IsZero() {
		return fmt.Errorf("%w: importo %s", domain.ErrValidation, in.Amount)
	}
	if in.IssueDate.IsZero() {
		return fmt.Errorf("%w: data di emissione assente", domain.ErrValidation)
	}
	if in.DueDate.IsZero() {
		return fmt.Errorf("%w: data di scadenza assente", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: descrizione della prestazione assente", domain.ErrValidation)
	}
	if in.Counterparty.DatiAnagrafici.TaxID() == "" {
		return fmt.Errorf("%w: controparte senza identificativo fiscale", domain.ErrValidation)
	}
	return nil
}

// Compiler produce un nuovo documento fondendo un modello con i dati
// transazionali. L'elenco dei campi sovrascritti è chiuso ed esplicito:
// tutto il resto è riportato pari pari dal modello, ed è questo a rendere
// raggiungibile la validità di schema senza codificare l'intero schema.
type Compiler struct{}

// NewCompiler crea il compilatore.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile copia in profondità il modello e applica le sovrascritture.
// Il modello non viene mai mutato; la funzione è pura a meno della
// generazione del progressivo di invio.
func (c *Compiler) Compile(template entity.Document, in CompileInput) (entity.Document, error) {
	if err := in.validate(); err != nil {
		return entity.Document{}, err
	}
	if !template.Tipo().Valido() {
		return entity.Document{}, fmt.Errorf("%w: il modello non ha un tipo documento valido", domain.ErrNoTemplate)
	}

	// Il modello contiene solo value type: l'assegnazione è una copia profonda.
	doc := template
	amount := fatturapa.FormatAmount(in.Amount)

	// Trasmissione: progressivo sempre nuovo; codice destinatario della
	// controparte se fornito, altrimenti ereditato dal modello.
	doc.Header.DatiTrasmissione.ProgressivoInvio = fatturapa.NewProgressivoInvio()
	if in.RecipientCode != "" {
		doc.Header.DatiTrasmissione.CodiceDestinatario = in.RecipientCode
	}

	// Controparte: sostituita per intero, con l'identificativo normalizzato.
	counterparty := in.Counterparty
	counterparty.DatiAnagrafici.IdFiscaleIVA.IdCodice =
		fatturapa.NormalizeVAT(counterparty.DatiAnagrafici.IdFiscaleIVA.IdCodice)
	doc.Header.CessionarioCommittente = counterparty

	// Cedente ereditato dal modello, ma con l'identificativo rinormalizzato.
	doc.Header.CedentePrestatore.DatiAnagrafici.IdFiscaleIVA.IdCodice =
		fatturapa.NormalizeVAT(doc.Header.CedentePrestatore.DatiAnagrafici.IdFiscaleIVA.IdCodice)

	// Dati generali.
	gen := &doc.Body.DatiGenerali.DatiGeneraliDocumento
	gen.Data = in.IssueDate.Format("2006-01-02")
	gen.Numero = strconv.Itoa(in.Number)
	gen.ImportoTotaleDocumento = amount
	if in.StampDuty {
		gen.DatiBollo = entity.DatiBollo{BolloVirtuale: bolloSI, ImportoBollo: StampDutyAmount}
	} else {
		gen.DatiBollo = entity.DatiBollo{BolloVirtuale: bolloNO}
	}

	// Linea unica a IVA zero, quantità 1; il riepilogo segue.
	linea := &doc.Body.DatiBeniServizi.DettaglioLinee
	linea.Descrizione = in.Description
	linea.Quantita = "1.00"
	linea.PrezzoUnitario = amount
	linea.PrezzoTotale = amount
	linea.AliquotaIVA = "0.00"

	riep := &doc.Body.DatiBeniServizi.DatiRiepilogo
	riep.AliquotaIVA = "0.00"
	riep.Imposta = "0.00"
	riep.Arrotondamento = "0.00"
	riep.ImponibileImporto = amount

	// Pagamento: scadenza e importo; beneficiario, coordinate e modalità
	// restano quelli del modello.
	pag := &doc.Body.DatiPagamento.DettaglioPagamento
	pag.DataRiferimentoTerminiPagamento = in.DueDate.Format("2006-01-02")
	pag.ImportoPagamento = amount

	return doc, nil
}
