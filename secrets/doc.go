// Package secrets fetches named secret payloads from AWS Secrets Manager
// through the official caching client. Each payload is a JSON object of
// string key-value pairs; refresh and TTL policy are entirely delegated
// to the caching layer.
package secrets
