package fatturapa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/internal/domain/fatturapa"
)

// TestNextNumber_ScenarioAnnoCorrente riproduce lo scenario di riferimento:
// una fattura n.7 e una nota di credito n.2 nel 2024. Le due numerazioni
// avanzano in modo indipendente e il 2023, vuoto, riparte da 1.
func TestNextNumber_ScenarioAnnoCorrente(t *testing.T) {
	corpus := []entity.Document{
		buildDoc(entity.TipoFattura, "2024-03-10", "7"),
		buildDoc(entity.TipoNotaCredito, "2024-05-01", "2"),
	}

	assert.Equal(t, 8, fatturapa.NextNumber(corpus, entity.TipoFattura, 2024))
	assert.Equal(t, 3, fatturapa.NextNumber(corpus, entity.TipoNotaCredito, 2024))
	assert.Equal(t, 1, fatturapa.NextNumber(corpus, entity.TipoFattura, 2023),
		"anno senza documenti del tipo: la numerazione riparte da 1")
}

// TestNextNumber_ScopeSullAnnoFiscale i documenti di altri anni non
// influenzano la numerazione dell'anno richiesto.
func TestNextNumber_ScopeSullAnnoFiscale(t *testing.T) {
	corpus := []entity.Document{
		buildDoc(entity.TipoFattura, "2023-12-28", "41"),
		buildDoc(entity.TipoFattura, "2024-01-05", "1"),
		buildDoc(entity.TipoFattura, "2024-02-11", "2"),
	}

	assert.Equal(t, 3, fatturapa.NextNumber(corpus, entity.TipoFattura, 2024))
	assert.Equal(t, 42, fatturapa.NextNumber(corpus, entity.TipoFattura, 2023))
}

// TestNextNumber_CorpusVuoto nessun documento -> 1, mai un errore.
func TestNextNumber_CorpusVuoto(t *testing.T) {
	assert.Equal(t, 1, fatturapa.NextNumber(nil, entity.TipoFattura, 2024))
}

// TestNextNumber_DuplicatiDeterministico numeri duplicati (non dovrebbero
// esistere nel corpus di origine) non rompono il calcolo: vince il massimo.
func TestNextNumber_DuplicatiDeterministico(t *testing.T) {
	corpus := []entity.Document{
		buildDoc(entity.TipoFattura, "2024-03-10", "5"),
		buildDoc(entity.TipoFattura, "2024-04-10", "5"),
		buildDoc(entity.TipoFattura, "2024-05-10", "3"),
	}
	assert.Equal(t, 6, fatturapa.NextNumber(corpus, entity.TipoFattura, 2024))
}
