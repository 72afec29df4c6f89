// Package config loads application configuration by merging two tiered
// sources into one flat key-value store: a local .env definition file
// layered into the ambient process environment, then shared secrets
// fetched from a remote secret store. Later sources win on key
// collisions. Any failure during loading aborts construction; a service
// should refuse to start with incomplete configuration rather than run
// with silently-missing secrets.
package config
