// Package postgres implementa la persistenza di rubrica e indice archivio.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nitonic/fatture-cli/pkg/config"
)

// NewPool crea il pool di connessioni PostgreSQL dalla configurazione.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	// È una CLI, non un server: bastano poche connessioni di breve vita.
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = 5 * time.Minute

	// Codec NUMERIC/DECIMAL -> shopspring/decimal su tutte le connessioni.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creazione pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Migrate crea lo schema se assente. Due tabelle: la rubrica clienti e
// l'indice dei documenti archiviati in locale.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS contacts (
			id            TEXT PRIMARY KEY,
			denominazione TEXT NOT NULL,
			partita_iva   TEXT NOT NULL UNIQUE,
			indirizzo     TEXT NOT NULL DEFAULT '',
			numero_civico TEXT NOT NULL DEFAULT '',
			cap           TEXT NOT NULL DEFAULT '',
			comune        TEXT NOT NULL DEFAULT '',
			provincia     TEXT NOT NULL DEFAULT '',
			nazione       TEXT NOT NULL DEFAULT '',
			codice_sdi    TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS archived_documents (
			id           TEXT PRIMARY KEY,
			tipo         TEXT NOT NULL,
			anno         INTEGER NOT NULL,
			numero       INTEGER NOT NULL,
			data         DATE NOT NULL,
			importo      NUMERIC(12,2) NOT NULL,
			controparte  TEXT NOT NULL,
			partita_iva  TEXT NOT NULL,
			filename     TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS archived_documents_anno_idx
			ON archived_documents (anno, tipo);`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrazione schema: %w", err)
	}
	return nil
}
