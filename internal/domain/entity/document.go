package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipi documento FatturaPA gestiti (Tabella TipoDocumento, Agenzia delle Entrate).
type TipoDocumento string

const (
	TipoFattura     TipoDocumento = "TD01" // Fattura
	TipoNotaCredito TipoDocumento = "TD04" // Nota di credito
)

// Valido indica se il tipo è uno dei due gestiti dal motore.
func (t TipoDocumento) Valido() bool {
	return t == TipoFattura || t == TipoNotaCredito
}

// Document è il modello canonico di una fattura elettronica (tracciato FatturaPA v1.2).
// I campi rispecchiano i nomi degli elementi XML; importi e date restano stringhe
// nel formato di tracciato ("1234.56", "2006-01-02") per garantire il round-trip
// esatto decode→encode; gli accessor tipizzati servono per confronti e calcoli.
// Un Document è immutabile dopo la costruzione: chi deriva un nuovo documento
// lavora su una copia (il modello contiene solo value type, la copia è profonda).
type Document struct {
	Header FatturaElettronicaHeader
	Body   FatturaElettronicaBody
}

// FatturaElettronicaHeader raggruppa trasmissione, cedente e cessionario.
type FatturaElettronicaHeader struct {
	DatiTrasmissione       DatiTrasmissione
	CedentePrestatore      CedentePrestatore
	CessionarioCommittente CessionarioCommittente
}

// IDFiscale coppia paese + codice della partita IVA.
type IDFiscale struct {
	IdPaese  string
	IdCodice string
}

// ContattiTrasmittente recapiti del trasmittente.
type ContattiTrasmittente struct {
	Telefono string
}

// DatiTrasmissione metadati di invio verso il Sistema di Interscambio.
type DatiTrasmissione struct {
	IdTrasmittente       IDFiscale
	ProgressivoInvio     string
	FormatoTrasmissione  string // "FPR12"
	CodiceDestinatario   string // codice univoco SDI del destinatario
	ContattiTrasmittente ContattiTrasmittente
}

// Anagrafica denominazione oppure nome/cognome per le persone fisiche.
type Anagrafica struct {
	Denominazione string
	Nome          string
	Cognome       string
}

// DisplayName restituisce il nome da mostrare. Dopo la normalizzazione del
// documento Denominazione è sempre valorizzata; il fallback nome+cognome
// copre documenti non ancora normalizzati.
func (a Anagrafica) DisplayName() string {
	if a.Denominazione != "" {
		return a.Denominazione
	}
	return strings.TrimSpace(a.Nome + " " + a.Cognome)
}

// DatiAnagrafici identificativi fiscali e anagrafica di una parte.
type DatiAnagrafici struct {
	IdFiscaleIVA  IDFiscale
	CodiceFiscale string
	Anagrafica    Anagrafica
	RegimeFiscale string // es. RF19 (forfettario)
}

// TaxID restituisce l'identificativo usato per i confronti di identità:
// la partita IVA se presente, altrimenti il codice fiscale.
func (d DatiAnagrafici) TaxID() string {
	if d.IdFiscaleIVA.IdCodice != "" {
		return d.IdFiscaleIVA.IdCodice
	}
	return d.CodiceFiscale
}

// Sede indirizzo della sede legale.
type Sede struct {
	Indirizzo    string
	NumeroCivico string
	CAP          string
	Comune       string
	Provincia    string
	Nazione      string
}

// IscrizioneREA dati camerali del cedente.
type IscrizioneREA struct {
	Ufficio           string
	NumeroREA         string
	StatoLiquidazione string
}

// CedentePrestatore la parte che emette il documento.
type CedentePrestatore struct {
	DatiAnagrafici DatiAnagrafici
	Sede           Sede
	IscrizioneREA  IscrizioneREA
}

// CessionarioCommittente la controparte a cui il documento è intestato.
type CessionarioCommittente struct {
	DatiAnagrafici DatiAnagrafici
	Sede           Sede
}

// FatturaElettronicaBody corpo del documento.
type FatturaElettronicaBody struct {
	DatiGenerali    DatiGenerali
	DatiBeniServizi DatiBeniServizi
	DatiPagamento   DatiPagamento
}

// DatiGenerali contenitore dei dati generali del documento.
type DatiGenerali struct {
	DatiGeneraliDocumento DatiGeneraliDocumento
}

// DatiBollo bollo virtuale (obbligatorio per operazioni senza IVA oltre soglia).
type DatiBollo struct {
	BolloVirtuale string // "SI" / "NO"
	ImportoBollo  string // "2.00" quando applicato, vuoto altrimenti
}

// DatiGeneraliDocumento tipo, data, numero e importo del documento.
type DatiGeneraliDocumento struct {
	TipoDocumento          TipoDocumento
	Divisa                 string // "EUR"
	Data                   string // "2006-01-02"
	Numero                 string
	DatiBollo              DatiBollo
	ImportoTotaleDocumento string
	Causale                string
}

// DettaglioLinee l'unica linea di dettaglio del documento.
type DettaglioLinee struct {
	NumeroLinea    string
	Descrizione    string
	Quantita       string
	PrezzoUnitario string
	PrezzoTotale   string
	AliquotaIVA    string
	Natura         string // es. N2.2 (operazioni non soggette, forfettario)
}

// DatiRiepilogo riepilogo IVA della linea.
type DatiRiepilogo struct {
	AliquotaIVA       string
	Natura            string
	Arrotondamento    string
	ImponibileImporto string
	Imposta           string
}

// DatiBeniServizi linea di dettaglio + riepilogo.
type DatiBeniServizi struct {
	DettaglioLinee DettaglioLinee
	DatiRiepilogo  DatiRiepilogo
}

// DettaglioPagamento coordinate e scadenza del pagamento.
type DettaglioPagamento struct {
	Beneficiario                    string
	ModalitaPagamento               string // es. MP05 (bonifico)
	DataRiferimentoTerminiPagamento string
	ImportoPagamento                string
	IstitutoFinanziario             string
	IBAN                            string
	ABI                             string
	CAB                             string
}

// DatiPagamento condizioni e dettaglio del pagamento.
type DatiPagamento struct {
	CondizioniPagamento string // es. TP02 (pagamento completo)
	DettaglioPagamento  DettaglioPagamento
}

// ── Accessor tipizzati ────────────────────────────────────────────────────────

// Tipo restituisce il tipo documento.
func (d Document) Tipo() TipoDocumento {
	return d.Body.DatiGenerali.DatiGeneraliDocumento.TipoDocumento
}

// DataEmissione interpreta la data del documento ("2006-01-02").
// Restituisce lo zero time se la data non è interpretabile.
func (d Document) DataEmissione() time.Time {
	t, err := time.Parse("2006-01-02", d.Body.DatiGenerali.DatiGeneraliDocumento.Data)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NumeroInt restituisce il numero documento come intero; il confronto tra
// numerazioni avviene sempre sul valore numerico, mai sulla stringa.
func (d Document) NumeroInt() int {
	n, err := strconv.Atoi(strings.TrimSpace(d.Body.DatiGenerali.DatiGeneraliDocumento.Numero))
	if err != nil {
		return 0
	}
	return n
}

// ImportoTotale restituisce il totale documento come decimale (zero se assente).
func (d Document) ImportoTotale() decimal.Decimal {
	return parseAmount(d.Body.DatiGenerali.DatiGeneraliDocumento.ImportoTotaleDocumento)
}

// ImportoPagamento restituisce l'importo del pagamento come decimale.
func (d Document) ImportoPagamento() decimal.Decimal {
	return parseAmount(d.Body.DatiPagamento.DettaglioPagamento.ImportoPagamento)
}

// Counterparty restituisce il cessionario committente del documento.
func (d Document) Counterparty() CessionarioCommittente {
	return d.Header.CessionarioCommittente
}

func parseAmount(s string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return v
}
