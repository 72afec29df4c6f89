package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
)

// secretCache abstracts the caching client so tests can substitute a
// stub without touching AWS.
type secretCache interface {
	GetSecretStringWithContext(ctx context.Context, secretID string) (string, error)
}

// cacheFactory builds a region-scoped caching client.
type cacheFactory func(ctx context.Context, region string) (secretCache, error)

// Manager retrieves secrets from AWS Secrets Manager. The zero value is
// not usable; construct it with NewManager.
type Manager struct {
	newCache cacheFactory
}

// NewManager creates a Manager backed by the AWS SDK and the official
// secret cache. Credentials are resolved through the SDK's default chain.
func NewManager() *Manager {
	return &Manager{newCache: newAWSSecretCache}
}

// newAWSSecretCache opens a Secrets Manager client scoped to region and
// wraps it in the caching layer.
func newAWSSecretCache(ctx context.Context, region string) (secretCache, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for region %q: %w", region, err)
	}

	client := secretsmanager.NewFromConfig(cfg)
	cache, err := secretcache.New(func(c *secretcache.Cache) {
		c.Client = client
	})
	if err != nil {
		return nil, fmt.Errorf("creating secret cache: %w", err)
	}
	return cache, nil
}

// FetchSecret retrieves the secret identified by name from the store in
// region and returns its payload as a flat key-value map.
//
// A missing name or region yields (nil, nil): the secret is simply not
// configured, which is not an error. An empty payload yields an empty,
// non-nil map. Any client failure is logged and returned wrapped in
// ErrFetchFailed; it is never converted to "no secret".
func (m *Manager) FetchSecret(ctx context.Context, name, region string) (map[string]string, error) {
	if name == "" || region == "" {
		return nil, nil
	}

	cache, err := m.newCache(ctx, region)
	if err != nil {
		slog.Error("failed to create secret store client",
			"secret_name", name,
			"region", region,
			"error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	payload, err := cache.GetSecretStringWithContext(ctx, name)
	if err != nil {
		var notFound *types.ResourceNotFoundException
		slog.Error("failed to retrieve secret",
			"secret_name", name,
			"region", region,
			"not_found", errors.As(err, &notFound),
			"error", err)
		return nil, fmt.Errorf("%w: secret %q: %v", ErrFetchFailed, name, err)
	}

	if payload == "" {
		return map[string]string{}, nil
	}

	entries := make(map[string]string)
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		slog.Error("secret payload is not a JSON object of strings",
			"secret_name", name,
			"region", region,
			"error", err)
		return nil, fmt.Errorf("%w: decoding secret %q: %v", ErrFetchFailed, name, err)
	}
	return entries, nil
}
