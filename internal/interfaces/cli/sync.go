package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// syncCommand allinea archivio locale, indice e rubrica al corpus remoto.
func (c *CLI) syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sincronizza documenti, indice e rubrica dal provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.deps.Sync == nil {
				return fmt.Errorf("sync richiede il database: configurare DATABASE_URL o DB_*")
			}
			if err := c.ensureSession(cmd.Context()); err != nil {
				return err
			}

			res, err := c.deps.Sync.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Sincronizzazione completata: %d documenti archiviati, %d contatti, %d saltati\n",
				res.Archived, res.Contacts, res.Skipped)
			return nil
		},
	}
}
