package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/luisalamo/servicekit/secrets"
)

// Well-known keys the loader reads out of the already-loaded local
// configuration before the remote fetch can occur. Both must be present
// in the local source (or ambient environment) for shared secrets to be
// loaded at all.
const (
	// RegionKey holds the region string locating the remote secret store.
	RegionKey = "AWS_DEFAULT_REGION"

	// SharedSecretNamesKey holds a JSON-encoded array of secret names to
	// fetch, in fetch order.
	SharedSecretNamesKey = "SHARED_SECRET_NAMES_LIST"
)

// SecretFetcher retrieves a named secret payload from a region-scoped
// remote store. A (nil, nil) result means "no secret" and is skipped.
// Implemented by secrets.Manager.
type SecretFetcher interface {
	FetchSecret(ctx context.Context, name, region string) (map[string]string, error)
}

// loader carries the injectable collaborators of Load.
type loader struct {
	fetcher SecretFetcher
	environ func() []string
}

// Option customizes Load. Options exist so construction is a function of
// its inputs in tests; production callers normally pass none.
type Option func(*loader)

// WithFetcher replaces the secret fetcher used for the remote phase.
func WithFetcher(f SecretFetcher) Option {
	return func(l *loader) { l.fetcher = f }
}

// WithEnviron replaces the ambient-environment snapshot function.
func WithEnviron(fn func() []string) Option {
	return func(l *loader) { l.environ = fn }
}

// Load builds the configuration store for the application. It loads the
// local environment-definition file at sourcePath into the ambient
// process environment, captures the full environment as the base layer,
// then fetches the configured shared secrets and merges them over it
// (last writer wins).
//
// Loading the local file mutates the ambient process environment; that
// side effect is how the file seeds process-wide configuration, and it
// is why Load is intended to run exactly once at startup. An empty
// sourcePath skips the file and uses the ambient environment alone.
//
// Either phase failing aborts construction: the failure is logged with
// its phase and source and returned wrapped in ErrLoadFailed. No partial
// store is returned.
func Load(ctx context.Context, sourcePath string, opts ...Option) (*Store, error) {
	l := &loader{
		fetcher: secrets.NewManager(),
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}

	store := &Store{
		entries:    make(map[string]string),
		sourcePath: sourcePath,
	}

	local, err := l.loadLocalSource(sourcePath)
	if err != nil {
		slog.Error("configuration load failed",
			"phase", "local_source",
			"source", sourcePath,
			"error", err)
		return nil, fmt.Errorf("%w: local source %q: %w", ErrLoadFailed, sourcePath, err)
	}
	store.merge(local)

	shared, err := l.loadSharedSecrets(ctx, store)
	if err != nil {
		slog.Error("configuration load failed",
			"phase", "shared_secrets",
			"source", sourcePath,
			"error", err)
		// Keep the cause in the chain so callers can still match the
		// originating taxonomy (e.g. secrets.ErrFetchFailed).
		return nil, fmt.Errorf("%w: shared secrets: %w", ErrLoadFailed, err)
	}
	store.merge(shared)

	return store, nil
}

// loadLocalSource loads the definition file into the ambient process
// environment, then captures the resulting environment in full.
//
// A missing file is not fatal: ambient environment variables are a valid
// local source on their own, so the loader logs a warning and proceeds
// with whatever is already set. Any other read or parse failure is fatal.
func (l *loader) loadLocalSource(sourcePath string) (map[string]string, error) {
	if sourcePath != "" {
		if err := godotenv.Load(sourcePath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Warn("local configuration source not found, using ambient environment only",
					"source", sourcePath)
			} else {
				return nil, fmt.Errorf("loading local source: %w", err)
			}
		}
	}

	entries := make(map[string]string)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		entries[name] = value
	}
	return entries, nil
}

// loadSharedSecrets fetches every secret named by the store's secret
// list, in the literal order given, and returns their merged payloads.
//
// An absent (or empty) secret-name list means shared secrets are not
// configured: the result is empty and no remote call is made. A failure
// fetching any individual secret aborts the whole operation; payloads
// already fetched are discarded rather than merged partially.
func (l *loader) loadSharedSecrets(ctx context.Context, store *Store) (map[string]string, error) {
	rawList := store.Get(SharedSecretNamesKey)
	if rawList == "" {
		return nil, nil
	}

	var names []string
	if err := json.Unmarshal([]byte(rawList), &names); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", SharedSecretNamesKey, err)
	}

	region := store.Get(RegionKey)
	merged := make(map[string]string)
	for _, name := range names {
		payload, err := l.fetcher.FetchSecret(ctx, name, region)
		if err != nil {
			return nil, err
		}
		for k, v := range payload {
			merged[k] = v
		}
	}
	return merged, nil
}
