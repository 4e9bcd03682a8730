// Package session provides the puzzle-site session credential.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/verte-zerg/aocrun/internal/fsutil"
	"github.com/verte-zerg/aocrun/internal/logging"
)

var (
	// ErrEmptyCredential is returned when the stored or entered value is blank.
	ErrEmptyCredential = errors.New("session credential is empty")
	// ErrNoPrompter is returned when no file exists and nothing can ask for one.
	ErrNoPrompter = errors.New("no session file and no prompt available")
)

// CredentialError reports a missing or unreadable session credential.
type CredentialError struct {
	Path string
	Err  error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("session credential %s: %v", e.Path, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// Provider yields the session credential.
type Provider interface {
	Credential(ctx context.Context) (string, error)
}

// Prompter asks the user for a credential.
type Prompter interface {
	Prompt(ctx context.Context) (string, error)
}

// FileProvider reads the credential from a file, prompting and persisting it
// when the file does not exist. The first value obtained is kept for the
// lifetime of the provider.
type FileProvider struct {
	path     string
	prompter Prompter
	logger   *zap.Logger

	mu    sync.Mutex
	value string
}

// NewFileProvider returns a provider backed by path. prompter may be nil.
func NewFileProvider(path string, prompter Prompter, logger *zap.Logger) *FileProvider {
	return &FileProvider{path: path, prompter: prompter, logger: logging.OrNop(logger)}
}

// Credential implements Provider.
func (p *FileProvider) Credential(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.value != "" {
		return p.value, nil
	}

	p.logger.Debug("checking for session file", zap.String("path", p.path))
	data, err := os.ReadFile(p.path)
	switch {
	case err == nil:
		value := strings.TrimSpace(string(data))
		if value == "" {
			return "", &CredentialError{Path: p.path, Err: ErrEmptyCredential}
		}
		p.value = value
		return value, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", &CredentialError{Path: p.path, Err: err}
	}

	if p.prompter == nil {
		return "", &CredentialError{Path: p.path, Err: ErrNoPrompter}
	}
	p.logger.Info("session file not found, prompting for session cookie")
	entered, err := p.prompter.Prompt(ctx)
	if err != nil {
		return "", &CredentialError{Path: p.path, Err: err}
	}
	value := strings.TrimSpace(entered)
	if value == "" {
		return "", &CredentialError{Path: p.path, Err: ErrEmptyCredential}
	}
	if err := fsutil.WriteFileAtomic(p.path, []byte(value), 0o600); err != nil {
		return "", &CredentialError{Path: p.path, Err: err}
	}
	p.logger.Info("saved session cookie", zap.String("path", p.path))
	p.value = value
	return value, nil
}

// Static is a Provider with a fixed value.
type Static string

// Credential implements Provider.
func (s Static) Credential(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", &CredentialError{Path: "<static>", Err: ErrEmptyCredential}
	}
	return string(s), nil
}
