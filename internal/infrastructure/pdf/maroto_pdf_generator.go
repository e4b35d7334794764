// Package pdf genera la copia di cortesia di una fattura elettronica:
// una resa leggibile del tracciato XML, senza alcun valore fiscale.
//
// Layout della pagina A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cedente + P.IVA  │  Tipo doc + Numero + Data        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CEDENTE: sede, REA, regime fiscale                          │
//	│  CESSIONARIO: denominazione, P.IVA, sede                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELLA: Qta | Descrizione | Prezzo | IVA | Totale          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALI: Imponibile / Bollo / TOTALE DOCUMENTO               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAGAMENTO: scadenza + IBAN + leggenda di cortesia           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/nitonic/fatture-cli/internal/domain/entity"
)

// ── Palette ──────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator genera la copia di cortesia con Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator costruisce il generatore.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate produce il PDF del documento e ne restituisce i byte.
func (g *MarotoPDFGenerator) Generate(doc entity.Document) ([]byte, error) {
	cedente := doc.Header.CedentePrestatore
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Copia di cortesia fattura elettronica", true).
		WithAuthor(cedente.DatiAnagrafici.Anagrafica.DisplayName(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(cedenteRow(cedente))
	m.AddRows(cessionarioRow(doc.Header.CessionarioCommittente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(lineaRow(doc.Body.DatiBeniServizi.DettaglioLinee))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(doc) {
		m.AddRows(r)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generazione documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Sezioni ──────────────────────────────────────────────────────────────────

func tipoLabel(t entity.TipoDocumento) string {
	if t == entity.TipoNotaCredito {
		return "NOTA DI CREDITO"
	}
	return "FATTURA"
}

// headerRow: cedente + P.IVA (sx), tipo documento + numero + data (dx).
func headerRow(doc entity.Document) core.Row {
	cedente := doc.Header.CedentePrestatore.DatiAnagrafici
	gen := doc.Body.DatiGenerali.DatiGeneraliDocumento

	return row.New(18).Add(
		col.New(7).Add(
			text.New(cedente.Anagrafica.DisplayName(), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("P.IVA: "+cedente.IdFiscaleIVA.IdPaese+cedente.IdFiscaleIVA.IdCodice, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(tipoLabel(gen.TipoDocumento)+" ELETTRONICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("n. "+gen.Numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+gen.Data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// cedenteRow: sede, REA e regime fiscale del cedente.
func cedenteRow(c entity.CedentePrestatore) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CEDENTE / PRESTATORE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s %s, %s %s (%s)   |   REA %s-%s   |   Regime %s",
				c.Sede.Indirizzo, c.Sede.NumeroCivico, c.Sede.CAP, c.Sede.Comune, c.Sede.Provincia,
				c.IscrizioneREA.Ufficio, c.IscrizioneREA.NumeroREA,
				nonEmpty(c.DatiAnagrafici.RegimeFiscale, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// cessionarioRow: denominazione, identificativo fiscale e sede del cessionario.
func cessionarioRow(c entity.CessionarioCommittente) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CESSIONARIO / COMMITTENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.DatiAnagrafici.Anagrafica.DisplayName(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("P.IVA/CF: %s   |   %s %s, %s %s (%s)",
				c.DatiAnagrafici.TaxID(),
				c.Sede.Indirizzo, c.Sede.NumeroCivico, c.Sede.CAP, c.Sede.Comune, c.Sede.Provincia,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: intestazione della tabella delle prestazioni.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qta", 1, align.Center),
		h("Descrizione della prestazione", 5, align.Left),
		h("Prezzo unit.", 2, align.Right),
		h("IVA", 1, align.Center),
		h("Totale", 3, align.Right),
	)
}

// lineaRow: la riga dell'unica linea di dettaglio.
func lineaRow(l entity.DettaglioLinee) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(l.Quantita,
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(l.Descrizione,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New("€ "+l.PrezzoUnitario,
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(l.AliquotaIVA+"% "+l.Natura,
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New("€ "+l.PrezzoTotale,
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalsRow: blocco totali allineato a destra.
func totalsRow(doc entity.Document) core.Row {
	gen := doc.Body.DatiGenerali.DatiGeneraliDocumento
	riep := doc.Body.DatiBeniServizi.DatiRiepilogo

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	bollo := "—"
	if gen.DatiBollo.BolloVirtuale == "SI" {
		bollo = "€ " + gen.DatiBollo.ImportoBollo
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Imponibile:"),
			label("Bollo virtuale:"),
			grandLabel("TOTALE DOCUMENTO:"),
		),
		col.New(3).Add(
			value("€ "+riep.ImponibileImporto),
			value(bollo),
			grandValue("€ "+gen.ImportoTotaleDocumento),
		),
		col.New(3),
	)
}

// footerRows: estremi di pagamento + leggenda di cortesia.
func footerRows(doc entity.Document) []core.Row {
	pag := doc.Body.DatiPagamento.DettaglioPagamento

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAGAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Scadenza: %s   |   Beneficiario: %s   |   IBAN: %s",
				nonEmpty(pag.DataRiferimentoTerminiPagamento, "—"),
				nonEmpty(pag.Beneficiario, "—"),
				nonEmpty(pag.IBAN, "—"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		)),
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Copia di cortesia priva di valore fiscale. L'originale è il tracciato XML "+
				"trasmesso al Sistema di Interscambio dell'Agenzia delle Entrate.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helper ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
