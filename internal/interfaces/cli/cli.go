// Package cli espone i comandi dell'applicazione. Nessun singleton: tutte
// le dipendenze arrivano dal main via Deps e i comandi le usano tramite
// closure.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nitonic/fatture-cli/internal/application/billing"
	"github.com/nitonic/fatture-cli/internal/domain"
	"github.com/nitonic/fatture-cli/internal/domain/repository"
	"github.com/nitonic/fatture-cli/internal/infrastructure/agyo"
	"github.com/nitonic/fatture-cli/internal/infrastructure/archive"
	"github.com/nitonic/fatture-cli/internal/infrastructure/credentials"
	"github.com/nitonic/fatture-cli/internal/infrastructure/pdf"
	"github.com/nitonic/fatture-cli/pkg/logger"
)

// Deps le dipendenze dei comandi, cablate esplicitamente nel main.
// Sync e Contacts sono nil quando il database non è configurato: i comandi
// che li richiedono falliscono con un messaggio chiaro.
type Deps struct {
	Log         *logger.Logger
	Credentials *credentials.Store
	Agyo        *agyo.Client
	Archive     *archive.FS
	Catalogue   *billing.Catalogue
	Create      *billing.CreateUseCase
	Status      *billing.StatusUseCase
	Sync        *billing.SyncUseCase
	Contacts    repository.ContactRepository
	PDF         *pdf.MarotoPDFGenerator
}

// timeNow iniettabile nei test.
var timeNow = time.Now

// CLI l'albero dei comandi dell'applicazione.
type CLI struct {
	deps Deps
	root *cobra.Command
}

// New costruisce l'albero dei comandi.
func New(deps Deps) *CLI {
	c := &CLI{deps: deps}
	c.root = &cobra.Command{
		Use:           "fatture",
		Short:         "Motore documenti FatturaPA da riga di comando",
		Long:          "fatture sincronizza, interroga ed emette fatture elettroniche\n(tracciato FatturaPA v1.2) tramite la console TeamSystem/Agyo.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.root.AddCommand(
		c.loginCommand(),
		c.syncCommand(),
		c.statusCommand(),
		c.contactsCommand(),
		c.createCommand(),
	)
	return c
}

// Execute esegue il comando richiesto.
func (c *CLI) Execute(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// ensureSession garantisce un bearer valido prima di parlare con la
// console: se quello salvato è scaduto rifà la login con le credenziali
// memorizzate.
func (c *CLI) ensureSession(ctx context.Context) error {
	if !c.deps.Credentials.Complete() {
		return fmt.Errorf("credenziali assenti: eseguire prima `fatture login`")
	}
	if c.deps.Credentials.BearerValid(timeNow()) {
		return nil
	}

	c.deps.Log.Debug().Msg("bearer assente o scaduto, login al portale")
	bearer, err := c.deps.Agyo.ResolveBearer(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return fmt.Errorf("login rifiutata dal portale: verificare le credenziali con `fatture login`")
		}
		return fmt.Errorf("login al portale: %w", err)
	}
	if err := c.deps.Credentials.SetBearer(bearer); err != nil {
		return err
	}
	return nil
}
