package provider

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// sidPrefix marks provider call identifiers issued by the SignalWire-style API.
const sidPrefix = "SW_"

// SignalWireClient places calls through the provider HTTP API.
type SignalWireClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewSignalWireClient returns a client for the given API base URL and key.
func NewSignalWireClient(apiKey, baseURL string) *SignalWireClient {
	return &SignalWireClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Dial asks the provider to place the call and returns the call SID from the response.
func (c *SignalWireClient) Dial(ctx context.Context, dreq DialRequest) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("provider: API key not configured")
	}
	body := map[string]any{
		"to":     dreq.PhoneNumber,
		"record": dreq.Record,
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/calls", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("provider: dial failed status=%d body=%s", resp.StatusCode, string(b))
	}
	var out struct {
		CallSID string `json:"call_sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.CallSID == "" {
		return "", fmt.Errorf("provider: dial response missing call_sid")
	}
	return out.CallSID, nil
}

// Simulated is an in-process CallProvider that always accepts and mints a
// synthetic SID. Used when no provider is configured (dev mode) and in tests.
type Simulated struct{}

// Dial returns a synthetic provider call identifier (SW_ + 10 hex chars).
func (Simulated) Dial(ctx context.Context, _ DialRequest) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return sidPrefix + hex.EncodeToString(b[:]), nil
}
