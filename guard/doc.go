// Package guard provides request guards for HTTP services: an API-key
// check, a dummy-response bypass for endpoints under development, and a
// trace-ID middleware for log correlation. Each guard is configured with
// an explicit struct and exposes a Wrap method compatible with chi and
// any other net/http router.
package guard
