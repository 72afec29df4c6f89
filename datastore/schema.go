package datastore

import (
	"context"
	"database/sql"
	"fmt"
)

// ColumnDescriptor describes one column of a reflected table.
type ColumnDescriptor struct {
	Name     string
	DataType string
	Nullable bool
}

// TableDescriptor describes one table discovered at connect time.
type TableDescriptor struct {
	Schema  string
	Name    string
	Columns []ColumnDescriptor
}

// SchemaCatalog reflects the set of tables and columns visible on the
// live database. Implementations query whatever native introspection
// facility their engine provides.
type SchemaCatalog interface {
	Describe(ctx context.Context) ([]TableDescriptor, error)
}

// informationSchemaCatalog reflects the schema through the standard
// information_schema views, which PostgreSQL and most other engines
// expose.
type informationSchemaCatalog struct {
	db *sql.DB
}

// NewInformationSchemaCatalog returns a SchemaCatalog backed by the
// given connection's information_schema views. System schemas are
// excluded from the reflection.
func NewInformationSchemaCatalog(db *sql.DB) SchemaCatalog {
	return &informationSchemaCatalog{db: db}
}

const describeQuery = `
SELECT table_schema, table_name, column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY table_schema, table_name, ordinal_position`

func (c *informationSchemaCatalog) Describe(ctx context.Context) ([]TableDescriptor, error) {
	rows, err := c.db.QueryContext(ctx, describeQuery)
	if err != nil {
		return nil, fmt.Errorf("querying information_schema: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []columnRow
	for rows.Next() {
		var row columnRow
		if err := rows.Scan(&row.schema, &row.table, &row.column, &row.dataType, &row.nullable); err != nil {
			return nil, fmt.Errorf("scanning information_schema row: %w", err)
		}
		cols = append(cols, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading information_schema rows: %w", err)
	}

	return groupColumns(cols), nil
}

// columnRow is one row of the information_schema.columns result.
type columnRow struct {
	schema   string
	table    string
	column   string
	dataType string
	nullable string
}

// groupColumns folds ordered column rows into table descriptors. Rows
// must arrive grouped by schema and table, as describeQuery guarantees.
func groupColumns(cols []columnRow) []TableDescriptor {
	var tables []TableDescriptor
	for _, row := range cols {
		last := len(tables) - 1
		if last < 0 || tables[last].Schema != row.schema || tables[last].Name != row.table {
			tables = append(tables, TableDescriptor{Schema: row.schema, Name: row.table})
			last++
		}
		tables[last].Columns = append(tables[last].Columns, ColumnDescriptor{
			Name:     row.column,
			DataType: row.dataType,
			Nullable: row.nullable == "YES",
		})
	}
	return tables
}
