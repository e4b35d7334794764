package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nitonic/fatture-cli/internal/application/billing"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
)

// createCommand emette un nuovo documento: compila il tracciato a partire
// dal modello, lo archivia in locale e su richiesta lo consegna e/o ne
// genera la copia di cortesia in PDF.
func (c *CLI) createCommand() *cobra.Command {
	var (
		tipo        string
		cliente     string
		importo     string
		data        string
		scadenza    string
		descrizione string
		bollo       bool
		upload      bool
		withPDF     bool

		nuovaDenominazione string
		nuovoCodiceSDI     string
		nuovoIndirizzo     string
		nuovoCivico        string
		nuovoCAP           string
		nuovoComune        string
		nuovaProvincia     string
		nuovaNazione       string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Emette una nuova fattura o nota di credito",
		Example: `  fatture create --cliente 00123456789 --importo 3910.00 \
      --data 2024-07-15 --scadenza 2024-08-15 \
      --descrizione "Consulenza di luglio" --bollo --upload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.ensureSession(cmd.Context()); err != nil {
				return err
			}

			req := billing.CreateRequest{
				Tipo:            parseTipo(tipo),
				CounterpartyVAT: cliente,
				RecipientCode:   nuovoCodiceSDI,
				IssueDate:       data,
				DueDate:         scadenza,
				Description:     descrizione,
				Amount:          importo,
				StampDuty:       bollo,
				Upload:          upload,
			}
			if nuovaDenominazione != "" {
				party := &entity.CessionarioCommittente{}
				party.DatiAnagrafici.IdFiscaleIVA = entity.IDFiscale{IdPaese: "IT", IdCodice: cliente}
				party.DatiAnagrafici.Anagrafica.Denominazione = nuovaDenominazione
				party.Sede = entity.Sede{
					Indirizzo:    nuovoIndirizzo,
					NumeroCivico: nuovoCivico,
					CAP:          nuovoCAP,
					Comune:       nuovoComune,
					Provincia:    nuovaProvincia,
					Nazione:      nuovaNazione,
				}
				req.NewCounterparty = party
			}

			res, err := c.deps.Create.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			if err := c.deps.Archive.WriteDocument(res.Filename, res.XML); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, string(res.XML))
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\narchiviato come %s\n", res.DisplayName, res.Filename)
			fmt.Fprintln(cmd.ErrOrStderr(), "Verifica il tracciato su https://fex-app.com/servizi/inizia")

			if withPDF {
				pdfBytes, err := c.deps.PDF.Generate(res.Document)
				if err != nil {
					return err
				}
				pdfName := strings.TrimSuffix(res.Filename, ".xml") + ".pdf"
				if err := c.deps.Archive.WriteDocument(pdfName, pdfBytes); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "copia di cortesia: %s\n", pdfName)
			}
			if res.Uploaded {
				fmt.Fprintln(cmd.ErrOrStderr(), "Documento consegnato al Sistema di Interscambio")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tipo, "tipo", "fattura", "tipo documento: fattura o nota-credito")
	cmd.Flags().StringVar(&cliente, "cliente", "", "identificativo fiscale della controparte")
	cmd.Flags().StringVar(&importo, "importo", "", "importo totale, es. 3910.00")
	cmd.Flags().StringVar(&data, "data", "", "data di emissione (YYYY-MM-DD)")
	cmd.Flags().StringVar(&scadenza, "scadenza", "", "data di scadenza del pagamento (YYYY-MM-DD)")
	cmd.Flags().StringVar(&descrizione, "descrizione", "", "descrizione della prestazione")
	cmd.Flags().BoolVar(&bollo, "bollo", false, "applica il bollo virtuale da € 2.00")
	cmd.Flags().BoolVar(&upload, "upload", false, "consegna il documento al provider")
	cmd.Flags().BoolVar(&withPDF, "pdf", false, "genera anche la copia di cortesia in PDF")

	cmd.Flags().StringVar(&nuovaDenominazione, "nuovo-denominazione", "", "denominazione della controparte nuova")
	cmd.Flags().StringVar(&nuovoCodiceSDI, "nuovo-codice-sdi", "", "codice destinatario SDI della controparte nuova")
	cmd.Flags().StringVar(&nuovoIndirizzo, "nuovo-indirizzo", "", "indirizzo della controparte nuova")
	cmd.Flags().StringVar(&nuovoCivico, "nuovo-civico", "", "numero civico della controparte nuova")
	cmd.Flags().StringVar(&nuovoCAP, "nuovo-cap", "", "CAP della controparte nuova")
	cmd.Flags().StringVar(&nuovoComune, "nuovo-comune", "", "comune della controparte nuova")
	cmd.Flags().StringVar(&nuovaProvincia, "nuovo-provincia", "", "provincia della controparte nuova")
	cmd.Flags().StringVar(&nuovaNazione, "nuovo-nazione", "IT", "nazione della controparte nuova")

	_ = cmd.MarkFlagRequired("cliente")
	_ = cmd.MarkFlagRequired("importo")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("scadenza")
	_ = cmd.MarkFlagRequired("descrizione")
	return cmd
}

// parseTipo traduce il nome del tipo nel codice di tracciato; un nome
// sconosciuto produce un TipoDocumento non valido che la validazione del
// caso d'uso rifiuta.
func parseTipo(s string) entity.TipoDocumento {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fattura", "td01":
		return entity.TipoFattura
	case "nota-credito", "td04":
		return entity.TipoNotaCredito
	default:
		return entity.TipoDocumento(s)
	}
}
