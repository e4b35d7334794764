package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nitonic/fatture-cli/internal/domain/entity"
)

// YearStatus aggregato annuale del fatturato.
type YearStatus struct {
	Anno               int
	NumFatture         int
	NumNoteCredito     int
	ImportoFatture     decimal.Decimal
	ImportoNoteCredito decimal.Decimal
}

// Netto fatturato al netto delle note di credito.
func (s YearStatus) Netto() decimal.Decimal {
	return s.ImportoFatture.Sub(s.ImportoNoteCredito)
}

// StatusUseCase calcola gli aggregati annuali sul catalogo.
type StatusUseCase struct {
	catalogue *Catalogue
}

// NewStatusUseCase costruisce il caso d'uso.
func NewStatusUseCase(catalogue *Catalogue) *StatusUseCase {
	return &StatusUseCase{catalogue: catalogue}
}

// Execute conta e somma i documenti dell'anno. Per il regime di cassa le
// fatture competono all'anno della data dei termini di pagamento; le note
// di credito a quello della data di emissione.
func (uc *StatusUseCase) Execute(ctx context.Context, anno int) (*YearStatus, error) {
	docs, err := uc.catalogue.Load(ctx)
	if err != nil {
		return nil, err
	}

	st := &YearStatus{Anno: anno}
	prefix := yearPrefix(anno)
	for _, d := range docs {
		switch d.Tipo() {
		case entity.TipoFattura:
			if strings.HasPrefix(d.Body.DatiPagamento.DettaglioPagamento.DataRiferimentoTerminiPagamento, prefix) {
				st.NumFatture++
				st.ImportoFatture = st.ImportoFatture.Add(d.ImportoTotale())
			}
		case entity.TipoNotaCredito:
			if strings.HasPrefix(d.Body.DatiGenerali.DatiGeneraliDocumento.Data, prefix) {
				st.NumNoteCredito++
				st.ImportoNoteCredito = st.ImportoNoteCredito.Add(d.ImportoTotale())
			}
		}
	}
	return st, nil
}

func yearPrefix(anno int) string {
	return fmt.Sprintf("%04d-", anno)
}
