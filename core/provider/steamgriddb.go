package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is the SteamGridDB v2 API root.
const DefaultBaseURL = "https://www.steamgriddb.com/api/v2"

// SteamGridDB is an ImageProvider backed by the SteamGridDB API.
type SteamGridDB struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu       sync.RWMutex
	searches map[string][]Game
	sf       singleflight.Group
}

// Option configures a SteamGridDB client.
type Option func(*SteamGridDB)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(s *SteamGridDB) {
		s.httpClient = c
	}
}

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(s *SteamGridDB) {
		if u != "" {
			s.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(s *SteamGridDB) {
		if d > 0 {
			s.httpClient = &http.Client{Timeout: d}
		}
	}
}

// NewSteamGridDB creates a client that authenticates with apiKey.
func NewSteamGridDB(apiKey string, opts ...Option) *SteamGridDB {
	s := &SteamGridDB{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		searches:   make(map[string][]Game),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig creates a client from cfg.
func NewFromConfig(cfg Config) *SteamGridDB {
	return NewSteamGridDB(cfg.APIKey,
		WithBaseURL(cfg.BaseURL),
		WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
	)
}

type envelope[T any] struct {
	Success bool     `json:"success"`
	Data    []T      `json:"data"`
	Errors  []string `json:"errors"`
}

// SearchByName implements ImageProvider.
func (s *SteamGridDB) SearchByName(ctx context.Context, name string) ([]Game, error) {
	s.mu.RLock()
	games, ok := s.searches[name]
	s.mu.RUnlock()
	if ok {
		return games, nil
	}

	result, err, _ := s.sf.Do(name, func() (any, error) {
		s.mu.RLock()
		games, ok := s.searches[name]
		s.mu.RUnlock()
		if ok {
			return games, nil
		}

		endpoint := s.baseURL + "/search/autocomplete/" + url.PathEscape(name)
		games, err := getJSON[Game](ctx, s, endpoint)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.searches[name] = games
		s.mu.Unlock()
		return games, nil
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}
	return result.([]Game), nil
}

// FetchURLs implements ImageProvider.
func (s *SteamGridDB) FetchURLs(ctx context.Context, gameID int, kind Kind) ([]Image, error) {
	resource, err := resourceFor(kind)
	if err != nil {
		return nil, err
	}
	endpoint := s.baseURL + "/" + resource + "/game/" + strconv.Itoa(gameID)
	images, err := getJSON[Image](ctx, s, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch %s for game %d: %w", kind, gameID, err)
	}
	return images, nil
}

// Download implements ImageProvider.
func (s *SteamGridDB) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	if err := statusError(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	return resp.Body, nil
}

// resourceFor maps a kind to its API collection. Home capsules are landscape grids.
func resourceFor(kind Kind) (string, error) {
	switch kind {
	case KindGrid, KindHome:
		return "grids", nil
	case KindHero:
		return "heroes", nil
	case KindLogo:
		return "logos", nil
	default:
		return "", fmt.Errorf("unknown artwork kind %q", kind)
	}
}

func getJSON[T any](ctx context.Context, s *SteamGridDB, endpoint string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parsing response JSON: %w", err)
	}
	if !env.Success {
		if len(env.Errors) > 0 {
			return nil, fmt.Errorf("request unsuccessful: %s", strings.Join(env.Errors, "; "))
		}
		return nil, fmt.Errorf("request unsuccessful")
	}
	return env.Data, nil
}

func statusError(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrUnauthorized, code)
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}
