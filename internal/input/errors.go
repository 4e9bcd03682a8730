package input

import (
	"fmt"
)

// FetchError reports a failed remote retrieval. StatusCode is 0 when the
// request never got a response.
type FetchError struct {
	Year       int
	Day        int
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch input %d day %d: HTTP %d: %v", e.Year, e.Day, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch input %d day %d: %v", e.Year, e.Day, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// CacheError reports a filesystem failure on the input cache.
type CacheError struct {
	Op   string
	Path string
	Err  error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("input cache %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}
