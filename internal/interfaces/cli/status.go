package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCommand stampa gli aggregati annuali del fatturato.
func (c *CLI) statusCommand() *cobra.Command {
	var anno int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Mostra il fatturato aggregato dell'anno",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.ensureSession(cmd.Context()); err != nil {
				return err
			}
			if anno == 0 {
				anno = timeNow().Year()
			}

			st, err := c.deps.Status.Execute(cmd.Context(), anno)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Anno %d\n", st.Anno)
			fmt.Fprintf(out, "  Fatture:         %3d   € %s\n", st.NumFatture, st.ImportoFatture.StringFixed(2))
			fmt.Fprintf(out, "  Note di credito: %3d   € %s\n", st.NumNoteCredito, st.ImportoNoteCredito.StringFixed(2))
			fmt.Fprintf(out, "  Netto:                 € %s\n", st.Netto().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().IntVar(&anno, "anno", 0, "anno fiscale (default: anno corrente)")
	return cmd
}
