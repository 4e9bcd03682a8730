package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultBaseURL is the puzzle site.
	DefaultBaseURL = "https://adventofcode.com"
	userAgent      = "github.com/verte-zerg/aocrun"
)

// Fetcher retrieves a puzzle input from the remote source.
type Fetcher interface {
	Fetch(ctx context.Context, year, day int, session string) (string, error)
}

// HTTPFetcher fetches inputs over HTTP, authenticating with the session cookie.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher returns a fetcher for baseURL. The client has no timeout;
// callers bound the request through ctx if they want one.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{},
	}
}

// URL returns the input address for year and day.
func (f *HTTPFetcher) URL(year, day int) string {
	return fmt.Sprintf("%s/%d/day/%d/input", f.BaseURL, year, day)
}

// Fetch implements Fetcher with exactly one GET request.
func (f *HTTPFetcher) Fetch(ctx context.Context, year, day int, session string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(year, day), http.NoBody)
	if err != nil {
		return "", &FetchError{Year: year, Day: day, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Cookie", "session="+session)
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", &FetchError{Year: year, Day: day, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{
			Year:       year,
			Day:        day,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Year: year, Day: day, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return string(body), nil
}
