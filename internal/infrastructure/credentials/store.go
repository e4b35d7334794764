// Package credentials gestisce le credenziali del provider su file locale
// (secrets.json nella home dell'applicazione): codice fiscale, userId,
// secret offuscato in base64 e bearer corrente.
package credentials

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	secretsFile     = "secrets.json"
	secretsFileMode = 0o600
)

// credentials la forma su disco del file dei segreti.
type credentials struct {
	CodiceFiscale string `json:"codiceFiscale"`
	Bearer        string `json:"bearer"`
	UserID        string `json:"userId"`
	UserSecret    string `json:"userSecret"` // base64
}

// Store legge e scrive le credenziali. Ogni lettura passa dal disco, così
// processi concorrenti vedono sempre l'ultimo bearer salvato.
type Store struct {
	path string
}

// NewStore crea lo store dentro homeDir e provisiona il file se assente.
func NewStore(homeDir string) (*Store, error) {
	s := &Store{path: filepath.Join(homeDir, secretsFile)}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(credentials{}); err != nil {
			return nil, fmt.Errorf("credenziali: provisioning: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("credenziali: %w", err)
	}
	return s, nil
}

func (s *Store) read() credentials {
	var c credentials
	data, err := os.ReadFile(s.path)
	if err != nil {
		return credentials{}
	}
	_ = json.Unmarshal(data, &c)
	return c
}

func (s *Store) write(c credentials) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, secretsFileMode)
}

// ── Lettura (implementa agyo.CredentialsProvider) ────────────────────────────

func (s *Store) Bearer() string        { return s.read().Bearer }
func (s *Store) CodiceFiscale() string { return s.read().CodiceFiscale }
func (s *Store) UserID() string        { return s.read().UserID }

// UserSecret restituisce il secret in chiaro. Su disco è offuscato in
// base64: deve rimanere recuperabile perché serve a ogni login.
func (s *Store) UserSecret() string {
	decoded, err := base64.StdEncoding.DecodeString(s.read().UserSecret)
	if err != nil {
		return ""
	}
	return string(decoded)
}

// ── Scrittura ────────────────────────────────────────────────────────────────

// SetCodiceFiscale salva il codice fiscale in maiuscolo.
func (s *Store) SetCodiceFiscale(cf string) error {
	c := s.read()
	c.CodiceFiscale = strings.ToUpper(strings.TrimSpace(cf))
	return s.write(c)
}

func (s *Store) SetBearer(bearer string) error {
	c := s.read()
	c.Bearer = bearer
	return s.write(c)
}

func (s *Store) SetUserID(userID string) error {
	c := s.read()
	c.UserID = strings.TrimSpace(userID)
	return s.write(c)
}

func (s *Store) SetUserSecret(secret string) error {
	c := s.read()
	c.UserSecret = base64.StdEncoding.EncodeToString([]byte(secret))
	return s.write(c)
}

// Complete indica se tutte le credenziali di login sono presenti.
func (s *Store) Complete() bool {
	c := s.read()
	return c.CodiceFiscale != "" && c.UserID != "" && c.UserSecret != ""
}

// BearerValid controlla che il bearer salvato esista e non sia scaduto.
// Il token è un JWT: la scadenza si legge dal claim exp senza verificare
// la firma (la verifica spetta al server, qui si evita solo una chiamata
// destinata a fallire).
func (s *Store) BearerValid(now time.Time) bool {
	raw := s.read().Bearer
	if raw == "" {
		return false
	}
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.Before(exp.Time)
}

// Delete rimuove il file dei segreti; il prossimo avvio riparte pulito.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("credenziali: rimozione: %w", err)
	}
	return nil
}
