// Package deezer resolves catalog entries to playable preview tracks via
// the Deezer search API, falling back across configured proxy mirrors.
package deezer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/llehouerou/mixera/internal/catalog"
)

const (
	defaultBaseURL = "https://api.deezer.com"
	userAgent      = "mixera/1.0 (https://github.com/llehouerou/mixera)"
)

var (
	// ErrNoResult is returned when the search yields nothing.
	ErrNoResult = errors.New("no track found")
	// ErrNoPreview is returned when the best hit has no playable preview.
	ErrNoPreview = errors.New("no preview available")
)

// Track is the resolved, playable form of a catalog entry. Immutable once
// built; discarded at round end.
type Track struct {
	ID      string
	Title   string
	Artist  string
	Year    int
	Cover   string
	Preview string
}

// Client queries the Deezer search API. When one endpoint fails (network
// error, blocked, bad payload) the next one in the chain is tried.
type Client struct {
	httpClient *http.Client
	endpoints  []string
}

// New creates a client using the public API plus the given proxy mirrors.
func New(proxies ...string) *Client {
	endpoints := append([]string{defaultBaseURL}, proxies...)
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoints:  endpoints,
	}
}

// NewWithEndpoints creates a client with an explicit endpoint chain.
// Used by tests to point at a local server.
func NewWithEndpoints(endpoints ...string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoints:  endpoints,
	}
}

type searchResponse struct {
	Data []struct {
		Title  string `json:"title"`
		Artist struct {
			Name string `json:"name"`
		} `json:"artist"`
		Album struct {
			CoverMedium string `json:"cover_medium"`
			CoverXL     string `json:"cover_xl"`
		} `json:"album"`
		Preview string `json:"preview"`
	} `json:"data"`
}

// Resolve searches for entry's artist and title and returns a playable
// track. The entry's id and year are carried through: the Deezer payload
// is only trusted for display fields and the preview URL.
func (c *Client) Resolve(ctx context.Context, entry catalog.Entry) (Track, error) {
	query := fmt.Sprintf("%s %s", entry.Artist, entry.Title)

	var lastErr error
	for _, base := range c.endpoints {
		track, err := c.search(ctx, base, query)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		track.ID = entry.ID
		track.Year = entry.Year
		return track, nil
	}

	if lastErr == nil {
		lastErr = ErrNoResult
	}
	return Track{}, fmt.Errorf("resolve %q: %w", query, lastErr)
}

func (c *Client) search(ctx context.Context, base, query string) (Track, error) {
	params := url.Values{}
	params.Set("q", query)
	reqURL := fmt.Sprintf("%s/search?%s", base, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return Track{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Track{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Track{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Track{}, fmt.Errorf("decode response: %w", err)
	}

	if len(result.Data) == 0 {
		return Track{}, ErrNoResult
	}
	hit := result.Data[0]
	if hit.Preview == "" {
		return Track{}, ErrNoPreview
	}

	cover := hit.Album.CoverXL
	if cover == "" {
		cover = hit.Album.CoverMedium
	}

	return Track{
		Title:   hit.Title,
		Artist:  hit.Artist.Name,
		Cover:   cover,
		Preview: hit.Preview,
	}, nil
}
