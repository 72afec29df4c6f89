package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Registers the pgx stdlib driver under the name "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
)

// defaultSQLDriver is the database/sql driver the gateway opens by
// default. The DSN's driver segment selects the server-side protocol;
// this names the client driver implementation.
const defaultSQLDriver = "pgx"

// Gateway owns a non-pooled database connection, hands out dedicated
// sessions, and holds the schema reflected at connect time. Construct
// it with New; the zero value reports ErrNotConnected from Session.
type Gateway struct {
	db     *sql.DB
	cfg    Config
	schema []TableDescriptor
}

// GatewayOption customizes New.
type GatewayOption func(*gatewayOptions)

type gatewayOptions struct {
	sqlDriver string
	catalog   SchemaCatalog
}

// WithSQLDriver overrides the database/sql driver name used to open the
// connection. Intended for engines other than PostgreSQL and for tests.
func WithSQLDriver(name string) GatewayOption {
	return func(o *gatewayOptions) { o.sqlDriver = name }
}

// WithCatalog overrides the schema catalog used for reflection.
func WithCatalog(c SchemaCatalog) GatewayOption {
	return func(o *gatewayOptions) { o.catalog = c }
}

// New opens a connection described by cfg, verifies it within the
// configured connect timeout, and reflects the live schema. Pooling is
// disabled: at most one open connection, no idle connections kept.
//
// An unreachable engine fails construction with ErrConnectionFailed; a
// gateway is never returned half-connected.
func New(ctx context.Context, cfg Config, opts ...GatewayOption) (*Gateway, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	o := gatewayOptions{sqlDriver: defaultSQLDriver}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open(o.sqlDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: opening connection: %v", ErrConnectionFailed, err)
	}

	// NullPool behavior: one connection at a time, nothing kept idle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		slog.Error("database connection failed",
			"host", cfg.Host,
			"port", cfg.Port,
			"database", cfg.Database,
			"error", err)
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	catalog := o.catalog
	if catalog == nil {
		catalog = NewInformationSchemaCatalog(db)
	}
	schema, err := catalog.Describe(ctx)
	if err != nil {
		_ = db.Close()
		slog.Error("schema reflection failed",
			"host", cfg.Host,
			"database", cfg.Database,
			"error", err)
		return nil, fmt.Errorf("reflecting schema: %w", err)
	}

	slog.Info("database connection established",
		"host", cfg.Host,
		"database", cfg.Database,
		"tables", len(schema))

	return &Gateway{db: db, cfg: cfg, schema: schema}, nil
}

// DB returns the underlying connection handle, or nil when the gateway
// never connected.
func (g *Gateway) DB() *sql.DB {
	return g.db
}

// Session returns a dedicated connection from the gateway. The caller
// owns the session and must Close it. It fails with ErrNotConnected
// when no successful connection was ever established.
func (g *Gateway) Session(ctx context.Context) (*sql.Conn, error) {
	if g == nil || g.db == nil {
		return nil, ErrNotConnected
	}
	conn, err := g.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring session: %w", err)
	}
	return conn, nil
}

// Schema returns the table descriptors reflected at connect time.
func (g *Gateway) Schema() []TableDescriptor {
	return g.schema
}

// Close releases the underlying connection handle.
func (g *Gateway) Close() error {
	if g == nil || g.db == nil {
		return nil
	}
	return g.db.Close()
}
