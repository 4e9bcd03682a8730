package input

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/aocrun/internal/session"
)

type failingFetcher struct {
	t *testing.T
}

func (f failingFetcher) Fetch(context.Context, int, int, string) (string, error) {
	f.t.Fatalf("fetch must not be called")
	return "", nil
}

type failingProvider struct {
	t *testing.T
}

func (p failingProvider) Credential(context.Context) (string, error) {
	p.t.Fatalf("credential must not be requested")
	return "", nil
}

type countingProvider struct {
	calls int
}

func (p *countingProvider) Credential(context.Context) (string, error) {
	p.calls++
	return "", &session.CredentialError{Path: "session", Err: session.ErrNoPrompter}
}

func newInputServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/2024/day/3/input", r.URL.Path)
		assert.Equal(t, "session=cookie", r.Header.Get("Cookie"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, rel)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestGetCacheHitNeverFetches(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, failingFetcher{t: t}, failingProvider{t: t}, nil)
	for _, day := range []int{1, 9, 25} {
		path := store.Path(2023, day)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("cached\n"), 0o644))

		got, err := store.Get(context.Background(), 2023, day)
		require.NoError(t, err)
		assert.Equal(t, "cached\n", got)
	}
	assert.Equal(t, filepath.Join(dir, "2023", "day09"), store.Path(2023, 9))
}

func TestGetFetchesOnceAndCaches(t *testing.T) {
	dir := t.TempDir()
	srv, hits := newInputServer(t, http.StatusOK, "1 2\n3 4\n")
	store := NewStore(dir, NewHTTPFetcher(srv.URL), session.Static("cookie"), nil)

	got, err := store.Get(context.Background(), 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "1 2\n3 4\n", got)

	cached, err := os.ReadFile(store.Path(2024, 3))
	require.NoError(t, err)
	assert.Equal(t, "1 2\n3 4\n", string(cached))

	got, err = store.Get(context.Background(), 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "1 2\n3 4\n", got)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestGetFetchFailureLeavesNoCacheEntry(t *testing.T) {
	dir := t.TempDir()
	before := listFiles(t, dir)
	srv, hits := newInputServer(t, http.StatusNotFound, "not yet")
	store := NewStore(dir, NewHTTPFetcher(srv.URL), session.Static("cookie"), nil)

	_, err := store.Get(context.Background(), 2024, 3)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, 3, fetchErr.Day)
	assert.Equal(t, before, listFiles(t, dir))

	// Retrying issues a fresh request.
	_, err = store.Get(context.Background(), 2024, 3)
	require.Error(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(hits))
}

func TestGetTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	dir := t.TempDir()
	store := NewStore(dir, NewHTTPFetcher(url), session.Static("cookie"), nil)
	_, err := store.Get(context.Background(), 2024, 3)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	assert.Empty(t, listFiles(t, dir))
}

func TestGetMissingCredential(t *testing.T) {
	dir := t.TempDir()
	srv, hits := newInputServer(t, http.StatusOK, "body")
	creds := &countingProvider{}
	store := NewStore(dir, NewHTTPFetcher(srv.URL), creds, nil)

	_, err := store.Get(context.Background(), 2024, 3)
	var credErr *session.CredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, 1, creds.calls)
	assert.Zero(t, atomic.LoadInt32(hits))
	assert.Empty(t, listFiles(t, dir))
}

func TestGetUnreadableCache(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, failingFetcher{t: t}, failingProvider{t: t}, nil)
	require.NoError(t, os.MkdirAll(store.Path(2024, 4), 0o755))

	_, err := store.Get(context.Background(), 2024, 4)
	var cacheErr *CacheError
	require.ErrorAs(t, err, &cacheErr)
	assert.Equal(t, "read", cacheErr.Op)
}

func TestGetWrapsPlainFetcherErrors(t *testing.T) {
	boom := errors.New("boom")
	store := NewStore(t.TempDir(), fetcherFunc(func() (string, error) { return "", boom }), session.Static("cookie"), nil)

	_, err := store.Get(context.Background(), 2024, 5)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, fetchErr.Day)
}

type fetcherFunc func() (string, error)

func (f fetcherFunc) Fetch(context.Context, int, int, string) (string, error) {
	return f()
}

type slowFetcher struct {
	calls   int32
	release chan struct{}
}

func (f *slowFetcher) Fetch(context.Context, int, int, string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	<-f.release
	return "shared\n", nil
}

func TestGetConcurrentCallersShareOneFetch(t *testing.T) {
	fetcher := &slowFetcher{release: make(chan struct{})}
	store := NewStore(t.TempDir(), fetcher, session.Static("cookie"), nil)

	const callers = 8
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
		results = make([]string, callers)
		errs    = make([]error, callers)
	)
	started.Add(callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			results[i], errs[i] = store.Get(context.Background(), 2024, 1)
		}(i)
	}
	started.Wait()
	// Give every caller time to join the in-flight fetch before it returns.
	time.Sleep(50 * time.Millisecond)
	close(fetcher.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared\n", results[i])
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&fetcher.calls))
}
