// internal/ollama/client.go
// Package ollama provides a small HTTP client for a local Ollama server:
// a connectivity probe, the model list, running models, and the server
// version. Nothing here performs inference.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mjarrell/otune/internal/appconfig"
	"github.com/mjarrell/otune/internal/logging"
)

// Remediation is appended to connectivity errors so the panel can surface
// an actionable message instead of a bare dial failure.
const Remediation = `start it with "ollama serve"`

// Client talks to one Ollama host.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// New constructs a Client configured with the application's host and request timeout.
func New(cfg *appconfig.Config) *Client {
	timeout := cfg.RequestTimeout()
	return &Client{
		baseURL: cfg.HostURL(),
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		timeout: timeout,
	}
}

// BaseURL returns the host endpoint this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// tagsResponse defines the structure of the /api/tags response. A missing
// models key decodes to a nil slice, which callers treat as an empty list.
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Ping probes connectivity to the Ollama server. The root endpoint answers
// plain "Ollama is running" when the server is up. A failure is returned as
// an error whose text carries the remediation instruction.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/"
	logging.LogRequest("OTUNE->OLLAMA", c.baseURL, "", map[string]string{"method": http.MethodGet, "url": endpoint})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama is not reachable at %s (%s): %w", c.baseURL, Remediation, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama is not reachable at %s (%s): probe returned %s", c.baseURL, Remediation, resp.Status)
	}
	return nil
}

// ListModels returns the names of the models installed on the host via
// /api/tags. An absent models array yields an empty list, not an error.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/api/tags")
	if err != nil {
		return nil, err
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("ollama: parsing /api/tags response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// RunningModels returns the set of models currently loaded in memory on the
// host by querying /api/ps.
func (c *Client) RunningModels(ctx context.Context) (map[string]struct{}, error) {
	body, err := c.get(ctx, "/api/ps")
	if err != nil {
		return nil, err
	}

	var ps tagsResponse
	if err := json.Unmarshal(body, &ps); err != nil {
		return nil, fmt.Errorf("ollama: parsing /api/ps response: %w", err)
	}

	running := make(map[string]struct{}, len(ps.Models))
	for _, m := range ps.Models {
		running[m.Name] = struct{}{}
	}
	return running, nil
}

// Version returns the server version string from /api/version.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/api/version")
	if err != nil {
		return "", err
	}

	var v struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("ollama: parsing /api/version response: %w", err)
	}
	return v.Version, nil
}

// get executes a GET against the Ollama API with context cancellation support.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	logging.LogRequest("OTUNE->OLLAMA", c.baseURL, "", map[string]string{"method": http.MethodGet, "url": endpoint})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	logging.LogRequest("OLLAMA->OTUNE", c.baseURL, "", body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama: %s returned %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}
