package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitonic/fatture-cli/internal/domain/fatturapa"
)

// contactsCommand elenca la rubrica clienti: dal database se configurato,
// altrimenti direttamente dal catalogo dei documenti.
func (c *CLI) contactsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "Elenca la rubrica clienti",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if c.deps.Contacts != nil {
				list, err := c.deps.Contacts.List()
				if err != nil {
					return err
				}
				for _, ct := range list {
					fmt.Fprintf(out, "%-11s  %-40s  %s %s, %s %s (%s)\n",
						ct.PartitaIVA, ct.Denominazione,
						ct.Indirizzo, ct.NumeroCivico, ct.CAP, ct.Comune, ct.Provincia)
				}
				return nil
			}

			if err := c.ensureSession(cmd.Context()); err != nil {
				return err
			}
			parties, err := c.deps.Catalogue.UniqueCounterparties(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range parties {
				fmt.Fprintf(out, "%-11s  %-40s  %s %s, %s %s (%s)\n",
					fatturapa.NormalizeVAT(p.DatiAnagrafici.TaxID()),
					p.DatiAnagrafici.Anagrafica.DisplayName(),
					p.Sede.Indirizzo, p.Sede.NumeroCivico, p.Sede.CAP, p.Sede.Comune, p.Sede.Provincia)
			}
			return nil
		},
	}
}
