package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitonic/fatture-cli/internal/domain"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
)

func TestCatalogueLoadOrdinaPerDataDecrescente(t *testing.T) {
	source := newFakeSource()
	source.add("a", sampleXML(entity.TipoFattura, "2024-01-10", "1", "11111111111", "ACME S.R.L."))
	source.add("b", sampleXML(entity.TipoFattura, "2024-06-20", "4", "22222222222", "BETA S.P.A."))
	source.add("c", sampleXML(entity.TipoFattura, "2024-03-05", "2", "11111111111", "ACME S.R.L."))

	cat := newCatalogue(source)
	docs, err := cat.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "2024-06-20", docs[0].Body.DatiGenerali.DatiGeneraliDocumento.Data)
	assert.Equal(t, "2024-03-05", docs[1].Body.DatiGenerali.DatiGeneraliDocumento.Data)
	assert.Equal(t, "2024-01-10", docs[2].Body.DatiGenerali.DatiGeneraliDocumento.Data)
}

func TestCatalogueLoadAParitaDiDataDecideIlNumero(t *testing.T) {
	source := newFakeSource()
	source.add("a", sampleXML(entity.TipoFattura, "2024-06-20", "3", "11111111111", "ACME S.R.L."))
	source.add("b", sampleXML(entity.TipoFattura, "2024-06-20", "7", "22222222222", "BETA S.P.A."))

	cat := newCatalogue(source)
	docs, err := cat.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, 7, docs[0].NumeroInt(), "a parità di data viene prima il numero più alto")
	assert.Equal(t, 3, docs[1].NumeroInt())
}

func TestCatalogueLoadScartaIDocumentiNonDisponibili(t *testing.T) {
	source := newFakeSource()
	source.add("ok", sampleXML(entity.TipoFattura, "2024-01-10", "1", "11111111111", "ACME S.R.L."))
	source.add("rotto", []byte("<non-xml"))
	source.add("irraggiungibile", sampleXML(entity.TipoFattura, "2024-02-10", "2", "11111111111", "ACME S.R.L."))
	source.failing["irraggiungibile"] = true

	cat := newCatalogue(source)
	docs, err := cat.Load(context.Background())
	require.NoError(t, err, "i documenti corrotti si scartano, non fermano il caricamento")
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].NumeroInt())
}

func TestCatalogueLoadUsaLaCache(t *testing.T) {
	source := newFakeSource()
	source.add("a", sampleXML(entity.TipoFattura, "2024-01-10", "1", "11111111111", "ACME S.R.L."))

	cat := newCatalogue(source)
	_, err := cat.Load(context.Background())
	require.NoError(t, err)
	_, err = cat.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, source.lists, "la seconda Load non deve interrogare il provider")
	assert.Equal(t, 1, source.fetches)
}

func TestCatalogueUniqueCounterpartiesDeduplicaSullaPartitaIVANormalizzata(t *testing.T) {
	source := newFakeSource()
	// Stessa partita IVA scritta in due forme diverse: un solo gruppo.
	source.add("a", sampleXML(entity.TipoFattura, "2024-05-01", "3", "00123456789", "ACME S.R.L."))
	source.add("b", sampleXML(entity.TipoFattura, "2024-01-01", "1", "123456789", "ACME SRL (VECCHIA RAGIONE)"))
	source.add("c", sampleXML(entity.TipoFattura, "2024-03-01", "2", "22222222222", "BETA S.P.A."))

	cat := newCatalogue(source)
	parties, err := cat.UniqueCounterparties(context.Background())
	require.NoError(t, err)
	require.Len(t, parties, 2)

	// Vince la parte del documento più recente.
	assert.Equal(t, "ACME S.R.L.", parties[0].DatiAnagrafici.Anagrafica.Denominazione)
	assert.Equal(t, "BETA S.P.A.", parties[1].DatiAnagrafici.Anagrafica.Denominazione)
}

func TestCatalogueLastDocumentForConfrontaFormeDiverse(t *testing.T) {
	source := newFakeSource()
	source.add("a", sampleXML(entity.TipoFattura, "2024-01-01", "1", "00123456789", "ACME S.R.L."))
	source.add("b", sampleXML(entity.TipoFattura, "2024-05-01", "2", "00123456789", "ACME S.R.L."))

	cat := newCatalogue(source)
	probe := entity.CessionarioCommittente{}
	probe.DatiAnagrafici.IdFiscaleIVA.IdCodice = "123-456-789"

	last, err := cat.LastDocumentFor(context.Background(), probe)
	require.NoError(t, err)
	assert.Equal(t, 2, last.NumeroInt(), "deve tornare il documento più recente della controparte")
}

func TestCatalogueLastDocumentForContraparteSconosciuta(t *testing.T) {
	source := newFakeSource()
	source.add("a", sampleXML(entity.TipoFattura, "2024-01-01", "1", "11111111111", "ACME S.R.L."))

	cat := newCatalogue(source)
	probe := entity.CessionarioCommittente{}
	probe.DatiAnagrafici.IdFiscaleIVA.IdCodice = "99999999999"

	_, err := cat.LastDocumentFor(context.Background(), probe)
	assert.ErrorIs(t, err, domain.ErrUnknownCounterparty)
}

func TestCatalogueFirstOfType(t *testing.T) {
	source := newFakeSource()
	source.add("a", sampleXML(entity.TipoFattura, "2024-01-01", "1", "11111111111", "ACME S.R.L."))
	source.add("b", sampleXML(entity.TipoNotaCredito, "2024-02-01", "1", "11111111111", "ACME S.R.L."))
	source.add("c", sampleXML(entity.TipoFattura, "2024-03-01", "2", "11111111111", "ACME S.R.L."))

	cat := newCatalogue(source)
	tpl, err := cat.FirstOfType(context.Background(), entity.TipoFattura)
	require.NoError(t, err)
	assert.Equal(t, entity.TipoFattura, tpl.Tipo())
	assert.Equal(t, 2, tpl.NumeroInt(), "il modello è il documento più recente del tipo")

	nc, err := cat.FirstOfType(context.Background(), entity.TipoNotaCredito)
	require.NoError(t, err)
	assert.Equal(t, entity.TipoNotaCredito, nc.Tipo())
}

func TestCatalogueFirstOfTypeSenzaModello(t *testing.T) {
	source := newFakeSource()
	source.add("a", sampleXML(entity.TipoFattura, "2024-01-01", "1", "11111111111", "ACME S.R.L."))

	cat := newCatalogue(source)
	_, err := cat.FirstOfType(context.Background(), entity.TipoNotaCredito)
	assert.ErrorIs(t, err, domain.ErrNoTemplate)
}

func TestCatalogueNextNumber(t *testing.T) {
	source := newFakeSource()
	source.add("a", sampleXML(entity.TipoFattura, "2024-03-01", "7", "11111111111", "ACME S.R.L."))
	source.add("b", sampleXML(entity.TipoNotaCredito, "2024-04-01", "2", "11111111111", "ACME S.R.L."))
	source.add("c", sampleXML(entity.TipoFattura, "2023-12-01", "12", "11111111111", "ACME S.R.L."))

	cat := newCatalogue(source)
	ctx := context.Background()

	n, err := cat.NextNumber(ctx, entity.TipoFattura, 2024)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = cat.NextNumber(ctx, entity.TipoNotaCredito, 2024)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = cat.NextNumber(ctx, entity.TipoFattura, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "la numerazione riparte da 1 in un anno nuovo")
}
