package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nitonic/fatture-cli/internal/application/billing"
	"github.com/nitonic/fatture-cli/internal/domain/repository"
	"github.com/nitonic/fatture-cli/internal/infrastructure/agyo"
	"github.com/nitonic/fatture-cli/internal/infrastructure/archive"
	"github.com/nitonic/fatture-cli/internal/infrastructure/credentials"
	"github.com/nitonic/fatture-cli/internal/infrastructure/pdf"
	"github.com/nitonic/fatture-cli/internal/infrastructure/postgres"
	"github.com/nitonic/fatture-cli/internal/infrastructure/sdi"
	"github.com/nitonic/fatture-cli/internal/interfaces/cli"
	"github.com/nitonic/fatture-cli/pkg/config"
	"github.com/nitonic/fatture-cli/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("caricamento configurazione: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := credentials.NewStore(provisionHome(cfg, log))
	if err != nil {
		log.Fatal().Err(err).Msg("store credenziali")
	}
	fsArchive, err := archive.Provision(cfg.App.HomeDir)
	if err != nil {
		log.Fatal().Err(err).Msg("archivio locale")
	}

	client := agyo.NewClient(cfg.Agyo.BaseURL, cfg.Agyo.PortalURL, store, log)
	codec := sdi.NewCodec()
	catalogue := billing.NewCatalogue(client, codec, log, cfg.App.FetchConcurrency)
	compiler := billing.NewCompiler()

	// Il database è opzionale: senza, sync e rubrica persistente restano
	// spenti ma emissione e status funzionano.
	var (
		syncUC      *billing.SyncUseCase
		contactRepo repository.ContactRepository
	)
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connessione a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrazione schema")
		}

		contactRepo = postgres.NewContactRepository(pool)
		indexRepo := postgres.NewArchivedDocumentRepository(pool)
		syncUC = billing.NewSyncUseCase(client, codec, fsArchive, contactRepo, indexRepo, log)
	}

	app := cli.New(cli.Deps{
		Log:         log,
		Credentials: store,
		Agyo:        client,
		Archive:     fsArchive,
		Catalogue:   catalogue,
		Create:      billing.NewCreateUseCase(catalogue, compiler, codec, client, log),
		Status:      billing.NewStatusUseCase(catalogue),
		Sync:        syncUC,
		Contacts:    contactRepo,
		PDF:         pdf.NewMarotoPDFGenerator(),
	})

	if err := app.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Errore:", err)
		os.Exit(1)
	}
}

// provisionHome garantisce l'esistenza della home dell'applicazione prima
// di usarla per credenziali e archivio.
func provisionHome(cfg *config.Config, log *logger.Logger) string {
	if err := os.MkdirAll(cfg.App.HomeDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.App.HomeDir).Msg("creazione home applicazione")
	}
	return cfg.App.HomeDir
}
