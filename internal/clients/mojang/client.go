// Package mojang resolves player UUIDs to usernames
package mojang

//go:generate mockgen -destination=mock/mock_client.go -package=mojangmock github.com/KirkDiggler/cobblemon-transporter/internal/clients/mojang Client

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
)

const (
	// DefaultBaseURL is the public profile service
	DefaultBaseURL = "https://api.mojang.com"

	// UserAgent is sent with every request
	UserAgent = "PokemonPC/1.0"

	maxBody = 16 << 10
)

// Client defines the username lookup
type Client interface {
	// Username returns the current name of the player with the given UUID
	Username(ctx context.Context, id string) (string, error)
}

// Config contains configuration options for the client
type Config struct {
	// BaseURL of the profile service (optional, defaults to DefaultBaseURL)
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

type profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *client) Username(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", errors.InvalidArgument("id is required")
	}
	endpoint := c.baseURL + "/user/profile/" + url.PathEscape(id)

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		name, retry, err := c.fetch(ctx, endpoint)
		if err == nil {
			return name, nil
		}
		lastErr = err
		if !retry || attempt == c.attempts {
			break
		}

		slog.DebugContext(ctx, "Retrying username lookup", "id", id, "attempt", attempt, "error", err.Error())
		select {
		case <-ctx.Done():
			return "", errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "username lookup canceled")
		case <-time.After(c.retryDelay * time.Duration(attempt)):
		}
	}
	return "", errors.Wrapf(lastErr, "failed to resolve username for %s", id)
}

// fetch makes one attempt. retry reports whether another attempt may help.
func (c *client) fetch(ctx context.Context, endpoint string) (name string, retry bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, errors.WrapWithCode(err, errors.CodeUnavailable, "profile request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", true, errors.ResourceExhausted("profile service rate limited")
	case resp.StatusCode != http.StatusOK:
		return "", false, errors.NotFoundf("profile service returned %d", resp.StatusCode).
			WithMeta("status", resp.StatusCode)
	}

	var p profile
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&p); err != nil {
		return "", false, errors.WrapWithCode(err, errors.CodeDataLoss, "malformed profile response")
	}
	if p.Name == "" {
		return "", false, errors.NotFound("profile has no name")
	}
	return p.Name, false, nil
}
