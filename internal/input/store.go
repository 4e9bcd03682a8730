// Package input resolves puzzle inputs from the local cache, falling back to
// an authenticated fetch from the puzzle site.
package input

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/verte-zerg/aocrun/internal/fsutil"
	"github.com/verte-zerg/aocrun/internal/logging"
	"github.com/verte-zerg/aocrun/internal/session"
)

// Store is a cache of raw puzzle inputs laid out as <dir>/<year>/dayNN.
// Cached entries are never invalidated.
type Store struct {
	dir     string
	fetcher Fetcher
	creds   session.Provider
	logger  *zap.Logger
	group   singleflight.Group
}

// NewStore returns a store rooted at dir.
func NewStore(dir string, fetcher Fetcher, creds session.Provider, logger *zap.Logger) *Store {
	return &Store{
		dir:     dir,
		fetcher: fetcher,
		creds:   creds,
		logger:  logging.OrNop(logger),
	}
}

// Path returns the cache file for year and day.
func (s *Store) Path(year, day int) string {
	return filepath.Join(s.dir, strconv.Itoa(year), fmt.Sprintf("day%02d", day))
}

// Get returns the input for year and day. A cache hit performs no network
// request and does not touch the credential.
func (s *Store) Get(ctx context.Context, year, day int) (string, error) {
	path := s.Path(year, day)
	s.logger.Debug("checking for cached input", zap.Int("day", day), zap.String("path", path))
	data, err := os.ReadFile(path)
	if err == nil {
		s.logger.Debug("input cache hit", zap.Int("day", day))
		return string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", &CacheError{Op: "read", Path: path, Err: err}
	}

	v, err, _ := s.group.Do(path, func() (any, error) {
		return s.fetchAndStore(ctx, year, day, path)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Store) fetchAndStore(ctx context.Context, year, day int, path string) (string, error) {
	cookie, err := s.creds.Credential(ctx)
	if err != nil {
		return "", err
	}

	s.logger.Info("input not cached, fetching from puzzle site", zap.Int("year", year), zap.Int("day", day))
	body, err := s.fetcher.Fetch(ctx, year, day, cookie)
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			return "", err
		}
		return "", &FetchError{Year: year, Day: day, Err: err}
	}

	if err := fsutil.WriteFileAtomic(path, []byte(body), 0o644); err != nil {
		return "", &CacheError{Op: "write", Path: path, Err: err}
	}
	s.logger.Info("saved input", zap.Int("day", day), zap.String("path", path), zap.Int("bytes", len(body)))
	return body, nil
}
