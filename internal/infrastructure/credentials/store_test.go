package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestProvisioningCreaIlFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewStore(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "secrets.json"))
	require.NoError(t, err)

	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "codiceFiscale")
	assert.Contains(t, raw, "userSecret")
}

func TestRoundTripCredenziali(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.SetCodiceFiscale("rssmra80a01h501u"))
	require.NoError(t, s.SetUserID("user@example.com"))
	require.NoError(t, s.SetUserSecret("s3greto!"))
	require.NoError(t, s.SetBearer("un-bearer"))

	assert.Equal(t, "RSSMRA80A01H501U", s.CodiceFiscale(), "il codice fiscale si salva in maiuscolo")
	assert.Equal(t, "user@example.com", s.UserID())
	assert.Equal(t, "s3greto!", s.UserSecret(), "il secret deve tornare in chiaro")
	assert.Equal(t, "un-bearer", s.Bearer())
	assert.True(t, s.Complete())
}

func TestSecretOffuscatoSuDisco(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetUserSecret("s3greto!"))

	data, err := os.ReadFile(filepath.Join(dir, "secrets.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "s3greto!")
}

func TestCompleteConCredenzialiParziali(t *testing.T) {
	s := newStore(t)
	assert.False(t, s.Complete())

	require.NoError(t, s.SetCodiceFiscale("RSSMRA80A01H501U"))
	require.NoError(t, s.SetUserID("user@example.com"))
	assert.False(t, s.Complete(), "manca ancora il secret")
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"sub": "user@example.com",
	})
	raw, err := token.SignedString([]byte("chiave-di-prova"))
	require.NoError(t, err)
	return raw
}

func TestBearerValid(t *testing.T) {
	s := newStore(t)
	now := time.Now()

	assert.False(t, s.BearerValid(now), "senza bearer non è valido")

	require.NoError(t, s.SetBearer(signedToken(t, now.Add(time.Hour))))
	assert.True(t, s.BearerValid(now))

	require.NoError(t, s.SetBearer(signedToken(t, now.Add(-time.Hour))))
	assert.False(t, s.BearerValid(now), "un bearer scaduto non è valido")

	require.NoError(t, s.SetBearer("non-un-jwt"))
	assert.False(t, s.BearerValid(now))
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Delete())
	_, err = os.Stat(filepath.Join(dir, "secrets.json"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Delete(), "la doppia rimozione non è un errore")
}
