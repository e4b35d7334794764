package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitonic/fatture-cli/internal/application/billing"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/internal/infrastructure/sdi"
	"github.com/nitonic/fatture-cli/pkg/logger"
)

func newSyncUseCase(source *fakeSource, archive *fakeArchive, contacts *fakeContactRepo, index *fakeIndexRepo) *billing.SyncUseCase {
	return billing.NewSyncUseCase(source, sdi.NewCodec(), archive, contacts, index, logger.Nop())
}

func TestSyncArchiviaEIndicizza(t *testing.T) {
	source := newFakeSource()
	source.add("id-1", sampleXML(entity.TipoFattura, "2024-03-05", "4", "00123456789", "ACME S.R.L."))
	source.add("id-2", sampleXML(entity.TipoNotaCredito, "2024-04-01", "1", "00123456789", "ACME S.R.L."))

	archive := &fakeArchive{}
	contacts := &fakeContactRepo{}
	index := &fakeIndexRepo{}

	res, err := newSyncUseCase(source, archive, contacts, index).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Archived)
	assert.Zero(t, res.Skipped)

	// L'archivio contiene l'XML grezzo, con il nome derivato dal documento.
	require.Contains(t, archive.files, "fatt-2024-00004-acme-s-r-l.xml")
	require.Contains(t, archive.files, "ncre-2024-00001-acme-s-r-l.xml")
	assert.Equal(t, source.bodies["id-1"], archive.files["fatt-2024-00004-acme-s-r-l.xml"])

	require.Len(t, index.upserts, 2)
	row := index.upserts[0]
	assert.Equal(t, "id-1", row.ID)
	assert.Equal(t, entity.TipoFattura, row.Tipo)
	assert.Equal(t, 2024, row.Anno)
	assert.Equal(t, 4, row.Numero)
	assert.Equal(t, "1500.00", row.Importo.StringFixed(2))
	assert.Equal(t, "ACME S.R.L.", row.Controparte)
	assert.Equal(t, "00123456789", row.PartitaIVA)
	assert.Equal(t, "fatt-2024-00004-acme-s-r-l.xml", row.Filename)
}

func TestSyncUnContattoPerControparte(t *testing.T) {
	source := newFakeSource()
	// Due forme diverse della stessa partita IVA più una controparte distinta.
	source.add("id-1", sampleXML(entity.TipoFattura, "2024-03-05", "4", "00123456789", "ACME S.R.L."))
	source.add("id-2", sampleXML(entity.TipoFattura, "2024-01-05", "1", "123456789", "ACME S.R.L."))
	source.add("id-3", sampleXML(entity.TipoFattura, "2024-02-05", "2", "22222222222", "BETA S.P.A."))

	contacts := &fakeContactRepo{}
	res, err := newSyncUseCase(source, &fakeArchive{}, contacts, &fakeIndexRepo{}).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Contacts)
	require.Len(t, contacts.upserts, 2)

	primo := contacts.upserts[0]
	assert.NotEmpty(t, primo.ID)
	assert.Equal(t, "ACME S.R.L.", primo.Denominazione)
	assert.Equal(t, "00123456789", primo.PartitaIVA)
	assert.Equal(t, "MILANO", primo.Comune)
	assert.Equal(t, "XYZ9876", primo.CodiceSDI)
	assert.Equal(t, "BETA S.P.A.", contacts.upserts[1].Denominazione)
}

func TestSyncSaltaIDocumentiNonProcessabili(t *testing.T) {
	source := newFakeSource()
	source.add("ok", sampleXML(entity.TipoFattura, "2024-03-05", "4", "00123456789", "ACME S.R.L."))
	source.add("rotto", []byte("<non-xml"))
	source.add("irraggiungibile", sampleXML(entity.TipoFattura, "2024-04-05", "5", "00123456789", "ACME S.R.L."))
	source.failing["irraggiungibile"] = true

	archive := &fakeArchive{}
	res, err := newSyncUseCase(source, archive, &fakeContactRepo{}, &fakeIndexRepo{}).Execute(context.Background())
	require.NoError(t, err, "i documenti non processabili si saltano, non fermano il sync")

	assert.Equal(t, 1, res.Archived)
	assert.Equal(t, 2, res.Skipped)
	assert.Len(t, archive.files, 1)
}
