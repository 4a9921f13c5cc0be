// Package sheets talks to the Google Sheets values API, which backs the
// invoice ledger and the inventory table.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2/google"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com"
	sheetsScope    = "https://www.googleapis.com/auth/spreadsheets"
)

// Client is the ranged read/append/write contract the admin tools depend on.
// Ranges use A1 notation, e.g. "Inventory!A:B".
type Client interface {
	ReadRange(ctx context.Context, readRange string) ([][]string, error)
	AppendRow(ctx context.Context, appendRange string, row []any) error
	WriteRange(ctx context.Context, writeRange string, values [][]any) error
}

// Config carries the spreadsheet binding and service-account credentials.
type Config struct {
	SpreadsheetID      string
	ServiceAccountJSON string
	// BaseURL overrides the Sheets endpoint, mainly for tests.
	BaseURL string
}

// HTTPClient implements Client against the Sheets REST API with an
// OAuth2-authenticated transport.
type HTTPClient struct {
	httpClient    *http.Client
	spreadsheetID string
	baseURL       string
}

// NewClient builds an authenticated Sheets client from service-account JSON.
func NewClient(ctx context.Context, cfg Config) (*HTTPClient, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if cfg.ServiceAccountJSON == "" {
		return nil, fmt.Errorf("service account credentials are required")
	}

	jwtCfg, err := google.JWTConfigFromJSON([]byte(cfg.ServiceAccountJSON), sheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &HTTPClient{
		httpClient:    jwtCfg.Client(ctx),
		spreadsheetID: cfg.SpreadsheetID,
		baseURL:       baseURL,
	}, nil
}

// ReadRange fetches the cells in readRange as formatted strings. Blank
// trailing cells may be omitted by the API, so rows can be ragged.
func (c *HTTPClient) ReadRange(ctx context.Context, readRange string) ([][]string, error) {
	endpoint := c.valuesURL(readRange, "")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Values [][]string `json:"values"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return payload.Values, nil
}

// AppendRow appends a single row after the table at appendRange.
func (c *HTTPClient) AppendRow(ctx context.Context, appendRange string, row []any) error {
	endpoint := c.valuesURL(appendRange, ":append") + "?valueInputOption=USER_ENTERED"

	body, err := json.Marshal(map[string]any{"values": [][]any{row}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

// WriteRange overwrites the cells at writeRange.
func (c *HTTPClient) WriteRange(ctx context.Context, writeRange string, values [][]any) error {
	endpoint := c.valuesURL(writeRange, "") + "?valueInputOption=USER_ENTERED"

	body, err := json.Marshal(map[string]any{"values": values})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *HTTPClient) valuesURL(cellRange, suffix string) string {
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s%s",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(cellRange), suffix)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("sheets api returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode sheets response: %w", err)
	}
	return nil
}
