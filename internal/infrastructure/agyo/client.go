// Package agyo implementa il client HTTP verso la console fatturazione
// TeamSystem/Agyo: listing e download dei documenti emessi, consegna dei
// nuovi documenti e login al portale per l'ottenimento del bearer.
package agyo

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nitonic/fatture-cli/internal/application/billing"
	"github.com/nitonic/fatture-cli/internal/domain"
	"github.com/nitonic/fatture-cli/internal/domain/entity"
	"github.com/nitonic/fatture-cli/pkg/logger"
)

// flowTypes i flussi inclusi nel listing dei documenti attivi.
var flowTypes = []string{"AUTOINVIO", "SDI", "SDIPA", "SDIPR", "SELFINV", "SELFSEND", "STORE"}

// maxResponseSize limite di lettura delle risposte (i documenti XML sono
// nell'ordine dei KB, il listing di qualche centinaio di righe).
const maxResponseSize = 8 << 20

// CredentialsProvider fornisce al client le credenziali correnti.
// L'implementazione concreta è lo store su file in infrastructure/credentials.
type CredentialsProvider interface {
	Bearer() string
	CodiceFiscale() string
	UserID() string
	UserSecret() string
}

// Client parla con la console Agyo. Implementa billing.DocumentSource e
// billing.UploadSink.
type Client struct {
	baseURL     string
	portalURL   string
	httpClient  *http.Client
	credentials CredentialsProvider
	log         *logger.Logger
}

// NewClient costruisce il client con un timeout di rete generoso: la
// console può impiegare diversi secondi sul listing completo dell'anno.
func NewClient(baseURL, portalURL string, credentials CredentialsProvider, log *logger.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		portalURL:   strings.TrimRight(portalURL, "/"),
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		credentials: credentials,
		log:         log,
	}
}

// consoleHeaders intestazioni attese dalla console; la loro assenza fa
// rifiutare la richiesta come non proveniente dall'app ufficiale.
func (c *Client) consoleHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.credentials.Bearer())
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Origin", "https://apps.agyo.io")
	req.Header.Set("Referer", "https://apps.agyo.io/")
	req.Header.Set("X-App-Name", "ts-console.invoices")
	req.Header.Set("X-App-Version", "1.99.3-HOT")
	req.Header.Set("X-Correlation-Id", uuid.New().String())
}

// portalHeaders intestazioni per le chiamate di login al portale.
func (c *Client) portalHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Origin", "https://app.teamsystemdigital.com")
	req.Header.Set("Referer", "https://app.teamsystemdigital.com/")
	req.Header.Set("Accept-Language", "it-IT")
	req.Header.Set("X-App-Name", "PORTALE")
	req.Header.Set("X-App-Version", "1.0")
	req.Header.Set("X-Correlation-Id", uuid.New().String())
}

// ListDocuments elenca i documenti attivi (non cestinati) dell'utente.
func (c *Client) ListDocuments(ctx context.Context) ([]billing.DocumentRef, error) {
	invoices, err := c.listInvoices(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]billing.DocumentRef, 0, len(invoices))
	for _, inv := range invoices {
		refs = append(refs, billing.DocumentRef{
			ID:          inv.ID,
			Tipo:        entity.TipoDocumento(inv.DocumentType),
			RecipientID: inv.RecipientID,
		})
	}
	c.log.Debug().Int("documenti", len(refs)).Msg("listing documenti completato")
	return refs, nil
}

func (c *Client) listInvoices(ctx context.Context) ([]Invoice, error) {
	q := url.Values{}
	q.Set("senderId", c.credentials.CodiceFiscale())
	q.Set("trashed", "false")
	q.Set("first", "200")
	for i, ft := range flowTypes {
		q.Set(fmt.Sprintf("flowTypes[%d]", i), ft)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/invoices/active?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("agyo: creazione richiesta listing: %w", err)
	}
	c.consoleHeaders(req)

	var out listResponse
	if err := c.doJSON(req, &out); err != nil {
		return nil, fmt.Errorf("agyo: listing documenti: %w", err)
	}
	return out.Embedded.Invoices, nil
}

// FetchXML scarica il tracciato XML di un documento.
func (c *Client) FetchXML(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/invoices/active/"+url.PathEscape(id)+"/content?format=xml", nil)
	if err != nil {
		return nil, fmt.Errorf("agyo: creazione richiesta contenuto: %w", err)
	}
	c.consoleHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agyo: download %s: %w", id, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, fmt.Errorf("agyo: download %s: %w", id, err)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("agyo: lettura contenuto %s: %w", id, err)
	}
	return data, nil
}

// FetchPDF scarica la copia di cortesia in PDF resa dall'Agenzia delle
// Entrate per un documento.
func (c *Client) FetchPDF(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/invoices/active/"+url.PathEscape(id)+"/content?format=pdf&type=ade", nil)
	if err != nil {
		return nil, fmt.Errorf("agyo: creazione richiesta PDF: %w", err)
	}
	c.consoleHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agyo: download PDF %s: %w", id, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, fmt.Errorf("agyo: download PDF %s: %w", id, err)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
}

// Upload consegna un documento appena compilato alla console, che lo
// inoltra al Sistema di Interscambio.
func (c *Client) Upload(ctx context.Context, doc entity.Document, xml []byte, filename string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("agyo: preparazione upload: %w", err)
	}
	if _, err := part.Write(xml); err != nil {
		return fmt.Errorf("agyo: preparazione upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("agyo: preparazione upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/invoices/active", &buf)
	if err != nil {
		return fmt.Errorf("agyo: creazione richiesta upload: %w", err)
	}
	c.consoleHeaders(req)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("agyo: upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return fmt.Errorf("agyo: upload %s: %w", filename, err)
	}
	c.log.Info().Str("file", filename).Msg("documento consegnato alla console")
	return nil
}

// ResolveBearer esegue la login al portale: richiede un nonce per lo
// userId e risponde con il digest calcolato su credenziali e nonce.
// Restituisce il bearer da usare verso la console.
func (c *Client) ResolveBearer(ctx context.Context) (string, error) {
	userID := c.credentials.UserID()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.portalURL+"/login/agyo/nonce?userId="+url.QueryEscape(userID), nil)
	if err != nil {
		return "", fmt.Errorf("agyo: creazione richiesta nonce: %w", err)
	}
	c.portalHeaders(req)

	var nonce nonceResponse
	if err := c.doJSON(req, &nonce); err != nil {
		return "", fmt.Errorf("agyo: richiesta nonce: %w", err)
	}

	body, err := json.Marshal(loginRequest{
		ID:     userID,
		Digest: loginDigest(userID, c.credentials.UserSecret(), nonce.Nonce),
	})
	if err != nil {
		return "", fmt.Errorf("agyo: serializzazione login: %w", err)
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodPost,
		c.portalURL+"/login/agyo", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("agyo: creazione richiesta login: %w", err)
	}
	c.portalHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	var login loginResponse
	if err := c.doJSON(req, &login); err != nil {
		return "", fmt.Errorf("agyo: login: %w", err)
	}
	if login.Token == "" {
		return "", fmt.Errorf("agyo: login: %w", domain.ErrUnauthorized)
	}
	return login.Token, nil
}

// TestBearer verifica il bearer corrente con un listing di prova.
func (c *Client) TestBearer(ctx context.Context) bool {
	_, err := c.listInvoices(ctx)
	return err == nil
}

// doJSON esegue la richiesta e decodifica il corpo JSON in out.
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return fmt.Errorf("timeout o annullamento: %w", req.Context().Err())
		}
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("lettura risposta: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decodifica risposta: %w", err)
	}
	return nil
}

// checkStatus traduce gli stati HTTP di errore; 401/403 diventano
// domain.ErrUnauthorized così il chiamante può rifare la login.
func (c *Client) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrUnauthorized
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
}

// loginDigest calcola il digest di login del portale:
// SHA256(lower(SHA256(lower(userId)+secret)) + nonce), in esadecimale.
func loginDigest(userID, secret, nonce string) string {
	inner := sha256Hex(strings.ToLower(userID) + secret)
	return sha256Hex(strings.ToLower(inner) + nonce)
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
