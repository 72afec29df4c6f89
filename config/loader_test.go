package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisalamo/servicekit/secrets"
)

// fakeFetcher implements SecretFetcher with canned payloads per secret
// name. It records every call so tests can assert call counts and order.
type fakeFetcher struct {
	payloads map[string]map[string]string
	failOn   string
	failErr  error

	calls   int
	fetched []string
	regions []string
}

func (f *fakeFetcher) FetchSecret(ctx context.Context, name, region string) (map[string]string, error) {
	f.calls++
	f.fetched = append(f.fetched, name)
	f.regions = append(f.regions, region)
	if name == f.failOn {
		return nil, f.failErr
	}
	return f.payloads[name], nil
}

// environ builds an ambient-environment snapshot function from a map.
func environ(entries map[string]string) func() []string {
	return func() []string {
		out := make([]string, 0, len(entries))
		for k, v := range entries {
			out = append(out, k+"="+v)
		}
		return out
	}
}

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadLocalSourceFromFile(t *testing.T) {
	path := writeEnvFile(t, "SVCKIT_TEST_KEY1=value1\nSVCKIT_TEST_KEY2=value2\n")

	store, err := Load(context.Background(), path, WithFetcher(&fakeFetcher{}))
	require.NoError(t, err)

	assert.Equal(t, "value1", store.Get("SVCKIT_TEST_KEY1"))
	assert.Equal(t, "value2", store.Get("SVCKIT_TEST_KEY2"))
	assert.Equal(t, path, store.SourcePath())
}

func TestLoadCapturesAmbientEnvironment(t *testing.T) {
	t.Setenv("SVCKIT_TEST_AMBIENT", "from-process")

	path := writeEnvFile(t, "SVCKIT_TEST_FILE=from-file\n")

	store, err := Load(context.Background(), path, WithFetcher(&fakeFetcher{}))
	require.NoError(t, err)

	// The captured snapshot contains both the file's entries and
	// everything already present in the process environment.
	assert.Equal(t, "from-process", store.Get("SVCKIT_TEST_AMBIENT"))
	assert.Equal(t, "from-file", store.Get("SVCKIT_TEST_FILE"))
}

// A missing source file is not fatal when ambient environment variables
// are already populated. This boundary differs from a "file is
// mandatory" model on purpose: the ambient environment alone is a valid
// local source.
func TestLoadMissingSourceFileSucceeds(t *testing.T) {
	t.Setenv("SVCKIT_TEST_PRESET", "already-here")

	missing := filepath.Join(t.TempDir(), "nope.env")

	store, err := Load(context.Background(), missing, WithFetcher(&fakeFetcher{}))
	require.NoError(t, err)
	assert.Equal(t, "already-here", store.Get("SVCKIT_TEST_PRESET"))
}

func TestLoadEmptySourcePathUsesAmbientOnly(t *testing.T) {
	t.Parallel()

	store, err := Load(context.Background(), "",
		WithFetcher(&fakeFetcher{}),
		WithEnviron(environ(map[string]string{"ONLY": "ambient"})))
	require.NoError(t, err)
	assert.Equal(t, "ambient", store.Get("ONLY"))
	assert.Equal(t, 1, store.Len())
}

func TestLoadMalformedSourceFileFails(t *testing.T) {
	t.Parallel()

	path := writeEnvFile(t, "this line has no separator\n")

	store, err := Load(context.Background(), path, WithFetcher(&fakeFetcher{}))
	assert.Nil(t, store)
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestLoadWithoutSecretListSkipsRemote(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	store, err := Load(context.Background(), "",
		WithFetcher(fetcher),
		WithEnviron(environ(map[string]string{"SOME_KEY": "v"})))
	require.NoError(t, err)

	assert.Zero(t, fetcher.calls, "no remote call may happen without a secret list")
	assert.Equal(t, "v", store.Get("SOME_KEY"))
}

func TestLoadMergesSecretsInArrayOrder(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{payloads: map[string]map[string]string{
		"a": {"x": "1"},
		"b": {"x": "2", "y": "3"},
	}}

	store, err := Load(context.Background(), "",
		WithFetcher(fetcher),
		WithEnviron(environ(map[string]string{
			SharedSecretNamesKey: `["a","b"]`,
			RegionKey:            "us-west-2",
		})))
	require.NoError(t, err)

	// Later array entry wins on key collision.
	assert.Equal(t, "2", store.Get("x"))
	assert.Equal(t, "3", store.Get("y"))
	assert.Equal(t, []string{"a", "b"}, fetcher.fetched)
	assert.Equal(t, []string{"us-west-2", "us-west-2"}, fetcher.regions)
}

func TestLoadSecretsOverrideLocalValues(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{payloads: map[string]map[string]string{
		"shared": {"DB_PASSWORD": "from-secret"},
	}}

	store, err := Load(context.Background(), "",
		WithFetcher(fetcher),
		WithEnviron(environ(map[string]string{
			SharedSecretNamesKey: `["shared"]`,
			RegionKey:            "eu-central-1",
			"DB_PASSWORD":        "from-env",
		})))
	require.NoError(t, err)

	assert.Equal(t, "from-secret", store.Get("DB_PASSWORD"))
}

func TestLoadFetchFailureAbortsConstruction(t *testing.T) {
	t.Parallel()

	fetchErr := fmt.Errorf("%w: secret %q: AccessDeniedException", secrets.ErrFetchFailed, "b")
	fetcher := &fakeFetcher{
		payloads: map[string]map[string]string{"a": {"x": "1"}},
		failOn:   "b",
		failErr:  fetchErr,
	}

	store, err := Load(context.Background(), "",
		WithFetcher(fetcher),
		WithEnviron(environ(map[string]string{
			SharedSecretNamesKey: `["a","b","c"]`,
			RegionKey:            "us-west-2",
		})))

	// No partial store: the payload fetched from "a" is discarded and
	// "c" is never attempted.
	assert.Nil(t, store)
	require.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, secrets.ErrFetchFailed)
	assert.Equal(t, []string{"a", "b"}, fetcher.fetched)
}

func TestLoadMalformedSecretListFails(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	store, err := Load(context.Background(), "",
		WithFetcher(fetcher),
		WithEnviron(environ(map[string]string{
			SharedSecretNamesKey: `not-json`,
			RegionKey:            "us-west-2",
		})))

	assert.Nil(t, store)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.Zero(t, fetcher.calls)
}

func TestLoadSkipsNilSecretPayloads(t *testing.T) {
	t.Parallel()

	// Region missing: the fetcher contract returns (nil, nil) for every
	// name, which merges nothing but is not an error.
	fetcher := &fakeFetcher{}
	store, err := Load(context.Background(), "",
		WithFetcher(fetcher),
		WithEnviron(environ(map[string]string{
			SharedSecretNamesKey: `["a"]`,
		})))
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	_, ok := store.Lookup("x")
	assert.False(t, ok)
}
