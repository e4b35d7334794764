package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// loginCommand salva le credenziali del provider e verifica la login.
func (c *CLI) loginCommand() *cobra.Command {
	var (
		codiceFiscale string
		userID        string
		secret        string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Salva le credenziali TeamSystem/Agyo e verifica la login",
		Example: `  fatture login --codice-fiscale RSSMRA80A01H501U \
      --user-id mario.rossi@example.com --secret 's3greto!'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := c.deps.Credentials
			if codiceFiscale != "" {
				if err := store.SetCodiceFiscale(codiceFiscale); err != nil {
					return err
				}
			}
			if userID != "" {
				if err := store.SetUserID(userID); err != nil {
					return err
				}
			}
			if secret != "" {
				if err := store.SetUserSecret(secret); err != nil {
					return err
				}
			}
			if !store.Complete() {
				return fmt.Errorf("credenziali incomplete: servono --codice-fiscale, --user-id e --secret")
			}

			bearer, err := c.deps.Agyo.ResolveBearer(cmd.Context())
			if err != nil {
				// Credenziali sbagliate salvate sono peggio di nessuna
				// credenziale: si riparte puliti come fa il provisioning.
				if delErr := store.Delete(); delErr != nil {
					c.deps.Log.Warn().Err(delErr).Msg("pulizia credenziali fallita")
				}
				return fmt.Errorf("login fallita, credenziali rimosse: %w", err)
			}
			if err := store.SetBearer(bearer); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Login effettuata")
			return nil
		},
	}

	cmd.Flags().StringVar(&codiceFiscale, "codice-fiscale", "", "codice fiscale dell'emittente")
	cmd.Flags().StringVar(&userID, "user-id", "", "userId del portale TeamSystem")
	cmd.Flags().StringVar(&secret, "secret", "", "secret del portale TeamSystem")
	return cmd
}
