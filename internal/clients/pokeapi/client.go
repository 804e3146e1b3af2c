// Package pokeapi looks up national dex numbers for species names
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/KirkDiggler/cobblemon-transporter/internal/clients/pokeapi Client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/schema"
)

const (
	// DefaultBaseURL is the public PokeAPI host
	DefaultBaseURL = "https://pokeapi.co"

	// MaxResponseBytes caps how much of a species document is read
	MaxResponseBytes = 32 << 10

	userAgent = "PokemonPC/1.0"
)

// Client defines the species lookup
type Client interface {
	// SpeciesID returns the national dex number of a species
	SpeciesID(ctx context.Context, species string) (int, error)
}

// Config contains configuration options for the client
type Config struct {
	// BaseURL of the API (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPClient used for requests (optional)
	HTTPClient *http.Client
	// Attempts per lookup (optional, defaults to 3)
	Attempts int
	// RetryDelay is multiplied by the attempt number between tries
	// (optional, defaults to 1 second)
	RetryDelay time.Duration
	// AttemptTimeout bounds each request (optional, defaults to 10 seconds)
	AttemptTimeout time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.AttemptTimeout == 0 {
		cfg.AttemptTimeout = 10 * time.Second
	}

	vb := errors.NewValidationBuilder()
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		vb.InvalidField("BaseURL", err.Error())
	}
	if cfg.Attempts < 0 {
		vb.InvalidField("Attempts", "must be positive")
	}
	return vb.Build()
}

type client struct {
	baseURL        string
	http           *http.Client
	attempts       int
	retryDelay     time.Duration
	attemptTimeout time.Duration
}

// New creates a new client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           cfg.HTTPClient,
		attempts:       cfg.Attempts,
		retryDelay:     cfg.RetryDelay,
		attemptTimeout: cfg.AttemptTimeout,
	}, nil
}

type speciesDoc struct {
	ID int `json:"id"`
}

// slug turns a species name into the API's path form
func slug(species string) string {
	s := strings.ToLower(strings.TrimSpace(schema.StripNamespace(species)))
	return strings.ReplaceAll(s, " ", "-")
}

func (c *client) SpeciesID(ctx context.Context, species string) (int, error) {
	name := slug(species)
	if name == "" {
		return 0, errors.InvalidArgument("species is required")
	}
	endpoint := c.baseURL + "/api/v2/pokemon-species/" + url.PathEscape(name) + "/"

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		id, retry, err := c.fetch(ctx, endpoint)
		if err == nil {
			return id, nil
		}
		lastErr = err
		if !retry || attempt == c.attempts {
			break
		}

		slog.DebugContext(ctx, "Retrying species lookup", "species", name, "attempt", attempt, "error", err.Error())
		select {
		case <-ctx.Done():
			return 0, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "species lookup canceled")
		case <-time.After(c.retryDelay * time.Duration(attempt)):
		}
	}
	return 0, errors.Wrapf(lastErr, "failed to look up species %s", name)
}

func (c *client) fetch(ctx context.Context, endpoint string) (id int, retry bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, true, errors.WrapWithCode(err, errors.CodeUnavailable, "species request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return 0, true, errors.ResourceExhausted("species service rate limited")
	case resp.StatusCode == http.StatusNotFound:
		return 0, false, errors.NotFound("unknown species")
	case resp.StatusCode != http.StatusOK:
		return 0, false, errors.Unavailablef("species service returned %d", resp.StatusCode).
			WithMeta("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return 0, true, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read species response")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return 0, true, errors.Unavailable("empty species response")
	}

	var doc speciesDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return 0, false, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed species response")
	}
	if doc.ID <= 0 {
		return 0, false, errors.DataLoss("species response has no id")
	}
	return doc.ID, false, nil
}
