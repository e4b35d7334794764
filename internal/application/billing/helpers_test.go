package billing_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nitonic/fatture-cli/internal/application/billing"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/internal/infrastructure/sdi"
	"github.com/nitonic/fatture-cli/pkg/logger"
)

// fakeSource DocumentSource in memoria: id -> XML. Gli id in failing
// falliscono il fetch, per esercitare lo scarto dei singoli documenti.
type fakeSource struct {
	mu      sync.Mutex
	refs    []billing.DocumentRef
	bodies  map[string][]byte
	failing map[string]bool
	lists   int
	fetches int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		bodies:  make(map[string][]byte),
		failing: make(map[string]bool),
	}
}

func (s *fakeSource) add(id string, xml []byte) {
	s.refs = append(s.refs, billing.DocumentRef{ID: id})
	s.bodies[id] = xml
}

func (s *fakeSource) ListDocuments(ctx context.Context) ([]billing.DocumentRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	return s.refs, nil
}

func (s *fakeSource) FetchXML(ctx context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.failing[id] {
		return nil, errors.New("fetch fallito")
	}
	body, ok := s.bodies[id]
	if !ok {
		return nil, errors.New("documento inesistente")
	}
	return body, nil
}

// fakeSink registra le consegne.
type fakeSink struct {
	uploads []string
	err     error
}

func (s *fakeSink) Upload(ctx context.Context, doc entity.Document, xml []byte, filename string) error {
	if s.err != nil {
		return s.err
	}
	s.uploads = append(s.uploads, filename)
	return nil
}

// fakeArchive e fake repo per il sync.
type fakeArchive struct {
	files map[string][]byte
}

func (a *fakeArchive) WriteDocument(filename string, data []byte) error {
	if a.files == nil {
		a.files = make(map[string][]byte)
	}
	a.files[filename] = data
	return nil
}

type fakeContactRepo struct {
	upserts []*entity.Contact
}

func (r *fakeContactRepo) Upsert(c *entity.Contact) error {
	r.upserts = append(r.upserts, c)
	return nil
}
func (r *fakeContactRepo) GetByVAT(string) (*entity.Contact, error) { return nil, nil }
func (r *fakeContactRepo) List() ([]*entity.Contact, error)         { return r.upserts, nil }

type fakeIndexRepo struct {
	upserts []*entity.ArchivedDocument
}

func (r *fakeIndexRepo) Upsert(d *entity.ArchivedDocument) error {
	r.upserts = append(r.upserts, d)
	return nil
}
func (r *fakeIndexRepo) ListByYear(int) ([]*entity.ArchivedDocument, error) { return r.upserts, nil }

// sampleXML genera la fixture XML di un documento coerente col tracciato.
func sampleXML(tipo entity.TipoDocumento, data, numero, vat, denominazione string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<ns3:FatturaElettronica xmlns:ns3="http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2" versione="FPR12">
  <FatturaElettronicaHeader>
    <DatiTrasmissione>
      <IdTrasmittente><IdPaese>IT</IdPaese><IdCodice>01234567890</IdCodice></IdTrasmittente>
      <ProgressivoInvio>a1b2c3d4e5</ProgressivoInvio>
      <FormatoTrasmissione>FPR12</FormatoTrasmissione>
      <CodiceDestinatario>XYZ9876</CodiceDestinatario>
    </DatiTrasmissione>
    <CedentePrestatore>
      <DatiAnagrafici>
        <IdFiscaleIVA><IdPaese>IT</IdPaese><IdCodice>01234567890</IdCodice></IdFiscaleIVA>
        <Anagrafica><Denominazione>NITONIC DI MARIO ROSSI</Denominazione></Anagrafica>
        <RegimeFiscale>RF19</RegimeFiscale>
      </DatiAnagrafici>
      <Sede>
        <Indirizzo>VIA ROMA</Indirizzo><NumeroCivico>1</NumeroCivico><CAP>90100</CAP>
        <Comune>PALERMO</Comune><Provincia>PA</Provincia><Nazione>IT</Nazione>
      </Sede>
      <IscrizioneREA><Ufficio>PA</Ufficio><NumeroREA>123456</NumeroREA><StatoLiquidazione>LN</StatoLiquidazione></IscrizioneREA>
    </CedentePrestatore>
    <CessionarioCommittente>
      <DatiAnagrafici>
        <IdFiscaleIVA><IdPaese>IT</IdPaese><IdCodice>%s</IdCodice></IdFiscaleIVA>
        <Anagrafica><Denominazione>%s</Denominazione></Anagrafica>
      </DatiAnagrafici>
      <Sede>
        <Indirizzo>VIA MILANO</Indirizzo><NumeroCivico>2</NumeroCivico><CAP>20100</CAP>
        <Comune>MILANO</Comune><Provincia>MI</Provincia><Nazione>IT</Nazione>
      </Sede>
    </CessionarioCommittente>
  </FatturaElettronicaHeader>
  <FatturaElettronicaBody>
    <DatiGenerali>
      <DatiGeneraliDocumento>
        <TipoDocumento>%s</TipoDocumento>
        <Divisa>EUR</Divisa>
        <Data>%s</Data>
        <Numero>%s</Numero>
        <DatiBollo><BolloVirtuale>SI</BolloVirtuale><ImportoBollo>2.00</ImportoBollo></DatiBollo>
        <ImportoTotaleDocumento>1500.00</ImportoTotaleDocumento>
        <Causale>DITTA IN REGIME CONTABILE FORFETTARIO L. 190/2014 - ART. 1 C. 54/89</Causale>
      </DatiGeneraliDocumento>
    </DatiGenerali>
    <DatiBeniServizi>
      <DettaglioLinee>
        <NumeroLinea>1</NumeroLinea>
        <Descrizione>Prestazione di servizi</Descrizione>
        <Quantita>1.00</Quantita>
        <PrezzoUnitario>1500.00</PrezzoUnitario>
        <PrezzoTotale>1500.00</PrezzoTotale>
        <AliquotaIVA>0.00</AliquotaIVA>
        <Natura>N2.2</Natura>
      </DettaglioLinee>
      <DatiRiepilogo>
        <AliquotaIVA>0.00</AliquotaIVA>
        <Natura>N2.2</Natura>
        <Arrotondamento>0.00</Arrotondamento>
        <ImponibileImporto>1500.00</ImponibileImporto>
        <Imposta>0.00</Imposta>
      </DatiRiepilogo>
    </DatiBeniServizi>
    <DatiPagamento>
      <CondizioniPagamento>TP02</CondizioniPagamento>
      <DettaglioPagamento>
        <Beneficiario>MARIO ROSSI</Beneficiario>
        <ModalitaPagamento>MP05</ModalitaPagamento>
        <DataRiferimentoTerminiPagamento>%s</DataRiferimentoTerminiPagamento>
        <ImportoPagamento>1500.00</ImportoPagamento>
        <IstitutoFinanziario>BANCA INTESA SAN PAOLO</IstitutoFinanziario>
        <IBAN>IT84O0306904632100000000120</IBAN>
        <ABI>03069</ABI>
        <CAB>04632</CAB>
      </DettaglioPagamento>
    </DatiPagamento>
  </FatturaElettronicaBody>
</ns3:FatturaElettronica>`, vat, denominazione, string(tipo), data, numero, data))
}

// newCatalogue costruisce un catalogo reale su source e codec reali.
func newCatalogue(source *fakeSource) *billing.Catalogue {
	return billing.NewCatalogue(source, sdi.NewCodec(), logger.Nop(), 4)
}
