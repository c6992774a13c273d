// Package backend is the HTTP client of the HR REST backend.
//
// A Client holds the connection settings shared by every session. ForSession
// returns a Session bound to one browser session's credential store; its
// transport is a BearerTransport reading the token from that store.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

var errMalformedBody = errors.New("malformed response body")

// Config captures the settings of the HR backend connection.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport is the base round tripper under the bearer transport.
	// Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Client is shared by all sessions.
type Client struct {
	baseURL   *url.URL
	timeout   time.Duration
	transport http.RoundTripper
	log       zerolog.Logger
}

// New validates cfg and returns a Client.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend: base url %q must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	log.Info().Str("base_url", u.String()).Msg("hr backend configured")
	return &Client{baseURL: u, timeout: timeout, transport: transport, log: log}, nil
}

// ForSession returns the backend view authenticated with store's token.
func (c *Client) ForSession(store ports.CredentialStore) ports.Backend {
	return &Session{
		client: c,
		http: &http.Client{
			Timeout:   c.timeout,
			Transport: &BearerTransport{Store: store, Base: c.transport},
		},
	}
}

// Session issues requests on behalf of one browser session.
type Session struct {
	client *Client
	http   *http.Client
}

func (s *Session) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}
	return s.client.baseURL.String() + "/" + strings.Join(escaped, "/")
}

// doJSON sends body (if any) as JSON and decodes a 2xx answer into out (if
// non-nil).
func (s *Session) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req, out, false)
}

func (s *Session) send(req *http.Request, out any, credentialsCall bool) error {
	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Path, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	s.client.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("hr backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, credentialsCall)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w: %w", req.Method, req.URL.Path, errMalformedBody, err)
	}
	return nil
}

// idValue sends numeric ids as JSON numbers, which is what the relational
// collections of the backend expect.
func idValue(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
