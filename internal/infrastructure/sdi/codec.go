// Package sdi implementa il codec XML del tracciato FatturaPA v1.2
// (il formato scambiato con il Sistema di Interscambio).
package sdi

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/nitonic/fatture-cli/internal/domain"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
)

// Costanti del tracciato.
const (
	rootTag          = "FatturaElettronica"
	rootPrefix       = "ns3"
	nsFatturaPA      = "http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2"
	versioneTracciat = "FPR12"
)

// latinEntities entità nominate non-XML che compaiono nei documenti storici
// di alcuni gestionali (il tracciato ammetterebbe solo le cinque entità XML).
var latinEntities = map[string]string{
	"agrave": "à", "egrave": "è", "eacute": "é", "igrave": "ì",
	"ograve": "ò", "ugrave": "ù", "Agrave": "À", "Egrave": "È",
	"Eacute": "É", "deg": "°", "euro": "€", "nbsp": " ",
}

// Codec decodifica e codifica documenti FatturaPA.
// Encode è deterministico: stesso Document, stessi byte in uscita.
type Codec struct{}

// NewCodec crea il codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode interpreta un payload XML FatturaPA nel modello canonico.
// Restituisce domain.ErrMalformedDocument se manca l'elemento radice o uno
// dei gruppi obbligatori (trasmissione, parti, dati generali, beni, pagamento).
func (c *Codec) Decode(data []byte) (entity.Document, error) {
	var d entity.Document

	xdoc := etree.NewDocument()
	xdoc.ReadSettings.Permissive = true
	xdoc.ReadSettings.Entity = latinEntities
	if err := xdoc.ReadFromBytes(data); err != nil {
		return d, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	root := xdoc.Root()
	if root == nil || root.Tag != rootTag {
		return d, fmt.Errorf("%w: elemento radice %s assente", domain.ErrMalformedDocument, rootTag)
	}

	header := child(root, "FatturaElettronicaHeader")
	body := child(root, "FatturaElettronicaBody")
	if header == nil || body == nil {
		return d, fmt.Errorf("%w: header o body assenti", domain.ErrMalformedDocument)
	}

	trasm := child(header, "DatiTrasmissione")
	cedente := child(header, "CedentePrestatore")
	cessionario := child(header, "CessionarioCommittente")
	if trasm == nil || cedente == nil || cessionario == nil {
		return d, fmt.Errorf("%w: gruppi obbligatori dell'header assenti", domain.ErrMalformedDocument)
	}

	generali := childPath(body, "DatiGenerali", "DatiGeneraliDocumento")
	beni := child(body, "DatiBeniServizi")
	pagamento := child(body, "DatiPagamento")
	if generali == nil || beni == nil || pagamento == nil {
		return d, fmt.Errorf("%w: gruppi obbligatori del body assenti", domain.ErrMalformedDocument)
	}

	tipo := entity.TipoDocumento(text(generali, "TipoDocumento"))
	if !tipo.Valido() {
		return d, fmt.Errorf("%w: tipo documento %q non gestito", domain.ErrMalformedDocument, string(tipo))
	}

	d.Header.DatiTrasmissione = entity.DatiTrasmissione{
		IdTrasmittente:      decodeIDFiscale(child(trasm, "IdTrasmittente")),
		ProgressivoInvio:    text(trasm, "ProgressivoInvio"),
		FormatoTrasmissione: text(trasm, "FormatoTrasmissione"),
		CodiceDestinatario:  text(trasm, "CodiceDestinatario"),
		ContattiTrasmittente: entity.ContattiTrasmittente{
			Telefono: textPath(trasm, "ContattiTrasmittente", "Telefono"),
		},
	}
	d.Header.CedentePrestatore = entity.CedentePrestatore{
		DatiAnagrafici: decodeDatiAnagrafici(child(cedente, "DatiAnagrafici")),
		Sede:           decodeSede(child(cedente, "Sede")),
		IscrizioneREA: entity.IscrizioneREA{
			Ufficio:           textPath(cedente, "IscrizioneREA", "Ufficio"),
			NumeroREA:         textPath(cedente, "IscrizioneREA", "NumeroREA"),
			StatoLiquidazione: textPath(cedente, "IscrizioneREA", "StatoLiquidazione"),
		},
	}
	d.Header.CessionarioCommittente = entity.CessionarioCommittente{
		DatiAnagrafici: decodeDatiAnagrafici(child(cessionario, "DatiAnagrafici")),
		Sede:           decodeSede(child(cessionario, "Sede")),
	}

	d.Body.DatiGenerali.DatiGeneraliDocumento = entity.DatiGeneraliDocumento{
		TipoDocumento: tipo,
		Divisa:        text(generali, "Divisa"),
		Data:          text(generali, "Data"),
		Numero:        text(generali, "Numero"),
		DatiBollo: entity.DatiBollo{
			BolloVirtuale: textPath(generali, "DatiBollo", "BolloVirtuale"),
			ImportoBollo:  textPath(generali, "DatiBollo", "ImportoBollo"),
		},
		ImportoTotaleDocumento: text(generali, "ImportoTotaleDocumento"),
		Causale:                text(generali, "Causale"),
	}

	linee := child(beni, "DettaglioLinee")
	riepilogo := child(beni, "DatiRiepilogo")
	d.Body.DatiBeniServizi = entity.DatiBeniServizi{
		DettaglioLinee: entity.DettaglioLinee{
			NumeroLinea:    text(linee, "NumeroLinea"),
			Descrizione:    text(linee, "Descrizione"),
			Quantita:       text(linee, "Quantita"),
			PrezzoUnitario: text(linee, "PrezzoUnitario"),
			PrezzoTotale:   text(linee, "PrezzoTotale"),
			AliquotaIVA:    text(linee, "AliquotaIVA"),
			Natura:         text(linee, "Natura"),
		},
		DatiRiepilogo: entity.DatiRiepilogo{
			AliquotaIVA:       text(riepilogo, "AliquotaIVA"),
			Natura:            text(riepilogo, "Natura"),
			Arrotondamento:    text(riepilogo, "Arrotondamento"),
			ImponibileImporto: text(riepilogo, "ImponibileImporto"),
			Imposta:           text(riepilogo, "Imposta"),
		},
	}

	dettaglio := child(pagamento, "DettaglioPagamento")
	d.Body.DatiPagamento = entity.DatiPagamento{
		CondizioniPagamento: text(pagamento, "CondizioniPagamento"),
		DettaglioPagamento: entity.DettaglioPagamento{
			Beneficiario:                    text(dettaglio, "Beneficiario"),
			ModalitaPagamento:               text(dettaglio, "ModalitaPagamento"),
			DataRiferimentoTerminiPagamento: text(dettaglio, "DataRiferimentoTerminiPagamento"),
			ImportoPagamento:                text(dettaglio, "ImportoPagamento"),
			IstitutoFinanziario:             text(dettaglio, "IstitutoFinanziario"),
			IBAN:                            text(dettaglio, "IBAN"),
			ABI:                             text(dettaglio, "ABI"),
			CAB:                             text(dettaglio, "CAB"),
		},
	}

	return d, nil
}

// Encode serializza il documento nel tracciato FatturaPA. Ordine degli
// elementi fisso secondo lo schema, indentazione a due spazi, gli elementi
// opzionali vuoti vengono omessi: a parità di Document l'output è identico
// byte per byte.
func (c *Codec) Encode(d entity.Document) ([]byte, error) {
	xdoc := etree.NewDocument()
	xdoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := xdoc.CreateElement(rootPrefix + ":" + rootTag)
	root.CreateAttr("xmlns:"+rootPrefix, nsFatturaPA)
	root.CreateAttr("versione", versioneTracciat)

	header := root.CreateElement("FatturaElettronicaHeader")
	encodeTrasmissione(header, d.Header.DatiTrasmissione)
	encodeCedente(header, d.Header.CedentePrestatore)
	encodeCessionario(header, d.Header.CessionarioCommittente)

	body := root.CreateElement("FatturaElettronicaBody")
	encodeDatiGenerali(body, d.Body.DatiGenerali.DatiGeneraliDocumento)
	encodeBeniServizi(body, d.Body.DatiBeniServizi)
	encodePagamento(body, d.Body.DatiPagamento)

	xdoc.Indent(2)
	out, err := xdoc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializzazione XML: %w", err)
	}
	return out, nil
}

// ── Decode: helper di navigazione (insensibili al prefisso di namespace) ──────

func child(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, ch := range el.ChildElements() {
		if ch.Tag == tag {
			return ch
		}
	}
	return nil
}

func childPath(el *etree.Element, tags ...string) *etree.Element {
	for _, tag := range tags {
		el = child(el, tag)
		if el == nil {
			return nil
		}
	}
	return el
}

func text(el *etree.Element, tag string) string {
	ch := child(el, tag)
	if ch == nil {
		return ""
	}
	return ch.Text()
}

func textPath(el *etree.Element, tags ...string) string {
	ch := childPath(el, tags...)
	if ch == nil {
		return ""
	}
	return ch.Text()
}

func decodeIDFiscale(el *etree.Element) entity.IDFiscale {
	return entity.IDFiscale{
		IdPaese:  text(el, "IdPaese"),
		IdCodice: text(el, "IdCodice"),
	}
}

func decodeDatiAnagrafici(el *etree.Element) entity.DatiAnagrafici {
	return entity.DatiAnagrafici{
		IdFiscaleIVA:  decodeIDFiscale(child(el, "IdFiscaleIVA")),
		CodiceFiscale: text(el, "CodiceFiscale"),
		Anagrafica: entity.Anagrafica{
			Denominazione: textPath(el, "Anagrafica", "Denominazione"),
			Nome:          textPath(el, "Anagrafica", "Nome"),
			Cognome:       textPath(el, "Anagrafica", "Cognome"),
		},
		RegimeFiscale: text(el, "RegimeFiscale"),
	}
}

func decodeSede(el *etree.Element) entity.Sede {
	return entity.Sede{
		Indirizzo:    text(el, "Indirizzo"),
		NumeroCivico: text(el, "NumeroCivico"),
		CAP:          text(el, "CAP"),
		Comune:       text(el, "Comune"),
		Provincia:    text(el, "Provincia"),
		Nazione:      text(el, "Nazione"),
	}
}

// ── Encode: un helper per gruppo, nell'ordine dello schema ───────────────────

func setText(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}

// setOpt scrive l'elemento solo se il valore non è vuoto.
func setOpt(parent *etree.Element, tag, value string) {
	if value != "" {
		setText(parent, tag, value)
	}
}

func encodeIDFiscale(parent *etree.Element, tag string, id entity.IDFiscale) {
	if id.IdCodice == "" {
		return
	}
	el := parent.CreateElement(tag)
	setText(el, "IdPaese", id.IdPaese)
	setText(el, "IdCodice", id.IdCodice)
}

func encodeTrasmissione(parent *etree.Element, t entity.DatiTrasmissione) {
	el := parent.CreateElement("DatiTrasmissione")
	encodeIDFiscale(el, "IdTrasmittente", t.IdTrasmittente)
	setText(el, "ProgressivoInvio", t.ProgressivoInvio)
	setText(el, "FormatoTrasmissione", t.FormatoTrasmissione)
	setText(el, "CodiceDestinatario", t.CodiceDestinatario)
	if t.ContattiTrasmittente.Telefono != "" {
		setText(el.CreateElement("ContattiTrasmittente"), "Telefono", t.ContattiTrasmittente.Telefono)
	}
}

func encodeAnagrafica(parent *etree.Element, a entity.DatiAnagrafici) {
	el := parent.CreateElement("DatiAnagrafici")
	encodeIDFiscale(el, "IdFiscaleIVA", a.IdFiscaleIVA)
	setOpt(el, "CodiceFiscale", a.CodiceFiscale)
	anag := el.CreateElement("Anagrafica")
	if a.Anagrafica.Denominazione != "" {
		setText(anag, "Denominazione", a.Anagrafica.Denominazione)
	} else {
		setOpt(anag, "Nome", a.Anagrafica.Nome)
		setOpt(anag, "Cognome", a.Anagrafica.Cognome)
	}
	setOpt(el, "RegimeFiscale", a.RegimeFiscale)
}

func encodeSede(parent *etree.Element, s entity.Sede) {
	el := parent.CreateElement("Sede")
	setText(el, "Indirizzo", s.Indirizzo)
	setOpt(el, "NumeroCivico", s.NumeroCivico)
	setText(el, "CAP", s.CAP)
	setText(el, "Comune", s.Comune)
	setOpt(el, "Provincia", s.Provincia)
	setText(el, "Nazione", s.Nazione)
}

func encodeCedente(parent *etree.Element, c entity.CedentePrestatore) {
	el := parent.CreateElement("CedentePrestatore")
	encodeAnagrafica(el, c.DatiAnagrafici)
	encodeSede(el, c.Sede)
	if c.IscrizioneREA.NumeroREA != "" || c.IscrizioneREA.Ufficio != "" {
		rea := el.CreateElement("IscrizioneREA")
		setText(rea, "Ufficio", c.IscrizioneREA.Ufficio)
		setText(rea, "NumeroREA", c.IscrizioneREA.NumeroREA)
		setOpt(rea, "StatoLiquidazione", c.IscrizioneREA.StatoLiquidazione)
	}
}

func encodeCessionario(parent *etree.Element, c entity.CessionarioCommittente) {
	el := parent.CreateElement("CessionarioCommittente")
	encodeAnagrafica(el, c.DatiAnagrafici)
	encodeSede(el, c.Sede)
}

func encodeDatiGenerali(parent *etree.Element, g entity.DatiGeneraliDocumento) {
	el := parent.CreateElement("DatiGenerali").CreateElement("DatiGeneraliDocumento")
	setText(el, "TipoDocumento", string(g.TipoDocumento))
	setText(el, "Divisa", g.Divisa)
	setText(el, "Data", g.Data)
	setText(el, "Numero", g.Numero)
	if g.DatiBollo.BolloVirtuale != "" {
		bollo := el.CreateElement("DatiBollo")
		setText(bollo, "BolloVirtuale", g.DatiBollo.BolloVirtuale)
		setOpt(bollo, "ImportoBollo", g.DatiBollo.ImportoBollo)
	}
	setOpt(el, "ImportoTotaleDocumento", g.ImportoTotaleDocumento)
	setOpt(el, "Causale", g.Causale)
}

func encodeBeniServizi(parent *etree.Element, b entity.DatiBeniServizi) {
	el := parent.CreateElement("DatiBeniServizi")

	linea := el.CreateElement("DettaglioLinee")
	setText(linea, "NumeroLinea", b.DettaglioLinee.NumeroLinea)
	setText(linea, "Descrizione", b.DettaglioLinee.Descrizione)
	setOpt(linea, "Quantita", b.DettaglioLinee.Quantita)
	setText(linea, "PrezzoUnitario", b.DettaglioLinee.PrezzoUnitario)
	setText(linea, "PrezzoTotale", b.DettaglioLinee.PrezzoTotale)
	setText(linea, "AliquotaIVA", b.DettaglioLinee.AliquotaIVA)
	setOpt(linea, "Natura", b.DettaglioLinee.Natura)

	riep := el.CreateElement("DatiRiepilogo")
	setText(riep, "AliquotaIVA", b.DatiRiepilogo.AliquotaIVA)
	setOpt(riep, "Natura", b.DatiRiepilogo.Natura)
	setOpt(riep, "Arrotondamento", b.DatiRiepilogo.Arrotondamento)
	setText(riep, "ImponibileImporto", b.DatiRiepilogo.ImponibileImporto)
	setText(riep, "Imposta", b.DatiRiepilogo.Imposta)
}

func encodePagamento(parent *etree.Element, p entity.DatiPagamento) {
	el := parent.CreateElement("DatiPagamento")
	setText(el, "CondizioniPagamento", p.CondizioniPagamento)

	det := el.CreateElement("DettaglioPagamento")
	setOpt(det, "Beneficiario", p.DettaglioPagamento.Beneficiario)
	setText(det, "ModalitaPagamento", p.DettaglioPagamento.ModalitaPagamento)
	setOpt(det, "DataRiferimentoTerminiPagamento", p.DettaglioPagamento.DataRiferimentoTerminiPagamento)
	setText(det, "ImportoPagamento", p.DettaglioPagamento.ImportoPagamento)
	setOpt(det, "IstitutoFinanziario", p.DettaglioPagamento.IstitutoFinanziario)
	setOpt(det, "IBAN", p.DettaglioPagamento.IBAN)
	setOpt(det, "ABI", p.DettaglioPagamento.ABI)
	setOpt(det, "CAB", p.DettaglioPagamento.CAB)
}
