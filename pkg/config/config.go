package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config raggruppa la configurazione dell'applicazione (lettura via Viper
// da variabili d'ambiente e opzionalmente da file .env).
type Config struct {
	App  AppConfig
	Agyo AgyoConfig
	DB   DBConfig
}

// AppConfig configurazione generale.
type AppConfig struct {
	Env              string // development, production
	Name             string
	HomeDir          string // directory dati dell'utente (credenziali + documents/)
	FetchConcurrency int    // fan-out dei fetch nel caricamento del catalogo
}

// AgyoConfig endpoint del provider TeamSystem/Agyo.
type AgyoConfig struct {
	BaseURL   string // API console fatturazione
	PortalURL string // API portale (login)
}

// DBConfig configurazione PostgreSQL per rubrica e indice archivio.
// Se DatabaseURL non è vuoto viene usato come connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Enabled indica se la persistenza è configurata; senza database i comandi
// che la richiedono (sync, contacts) falliscono con un messaggio chiaro.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Password != ""
}

// ConnectionString restituisce il DSN da usare.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load legge la configurazione da variabili d'ambiente (e opzionalmente da
// un file .env nella directory corrente). Le env var hanno priorità.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoriamo l'errore se il file non esiste

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home directory: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:              getString(v, "APP_ENV", "development"),
			Name:             getString(v, "APP_NAME", "fatture-cli"),
			HomeDir:          getString(v, "APP_HOME_DIR", filepath.Join(home, ".fatture")),
			FetchConcurrency: getInt(v, "FETCH_CONCURRENCY", 8),
		},
		Agyo: AgyoConfig{
			BaseURL:   getString(v, "AGYO_BASE_URL", "https://ts-console-api.agyo.io"),
			PortalURL: getString(v, "AGYO_PORTAL_URL", "https://ts-portale-api.agyo.io"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "fatture"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
