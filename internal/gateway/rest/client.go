// Package rest implements the DataGateway against the local intake API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vendasul/sugestao-vendedor/internal/gateway"
	"github.com/vendasul/sugestao-vendedor/pkg/config"
	pkgerrors "github.com/vendasul/sugestao-vendedor/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

// Client calls the intake API with the static X-API-Key shared secret.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the intake API client.
func NewClient(cfg config.APIClientConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("api token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      cfg.Token,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

var _ gateway.DataGateway = (*Client)(nil)

func (c *Client) Authenticate(ctx context.Context, login, password string) (gateway.AuthResult, error) {
	if !gateway.CredentialsPresent(login, password) {
		return gateway.AuthResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "login and password are required")
	}

	payload := map[string]string{"login": strings.TrimSpace(login), "senha": password}
	var resp struct {
		OK   bool    `json:"ok"`
		Nome *string `json:"nome"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/login", payload, &resp); err != nil {
		return gateway.AuthResult{}, err
	}

	result := gateway.AuthResult{OK: resp.OK}
	if resp.Nome != nil {
		result.DisplayName = *resp.Nome
	}
	return result, nil
}

func (c *Client) FetchSuggestions(ctx context.Context) ([]gateway.RawRecord, error) {
	var rows []map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/sugestoes", nil, &rows); err != nil {
		return nil, err
	}

	records := make([]gateway.RawRecord, 0, len(rows))
	for _, row := range rows {
		record := make(gateway.RawRecord, len(row))
		for key, value := range row {
			record[key] = stringify(value)
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *Client) FetchItemsForReference(ctx context.Context, reference string) ([]gateway.Item, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return []gateway.Item{}, nil
	}

	var rows []struct {
		Codigo    *string `json:"codigo"`
		Descricao *string `json:"descricao"`
	}
	path := "/itens/" + url.PathEscape(reference)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}

	items := make([]gateway.Item, 0, len(rows))
	for _, row := range rows {
		item := gateway.Item{}
		if row.Codigo != nil {
			item.Code = *row.Codigo
		}
		if row.Descricao != nil {
			item.Description = *row.Descricao
		}
		items = append(items, item)
	}
	return gateway.DedupeItems(items), nil
}

func (c *Client) InsertSuggestion(ctx context.Context, input gateway.SuggestionInput) error {
	payload := map[string]any{
		"referencia": input.Reference,
		"quantidade": input.Quantity,
		"marca":      input.Brand,
		"tipo":       input.Type.String(),
		"comentario": input.Comment,
		"codigo":     input.ItemCode,
		"descricao":  input.ItemDescription,
		"vendedor":   input.Seller,
	}
	return c.doJSON(ctx, http.MethodPost, "/sugestao", payload, nil)
}

func (c *Client) CheckHealth(ctx context.Context) bool {
	var resp struct {
		OK bool `json:"ok"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return false
	}
	return resp.OK
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build request")
	}
	req.Header.Set("X-API-Key", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("call %s", path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "api key rejected")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, cause, fmt.Sprintf("%s failed", path)).
			WithDetails(map[string]any{"status": resp.StatusCode, "body": string(msg)})
	}

	if out == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", path))
	}
	return nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}
