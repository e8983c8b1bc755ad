package schema

import (
	"context"
	"database/sql"
	"fmt"

	"duck-sync/internal/dialect"
)

// ---------------------------------------------------------------------
// Catalog: source-side introspection and full-table reads
// ---------------------------------------------------------------------

// Catalog reads metadata and table contents from a source database.
type Catalog struct {
	db *sql.DB
	d  dialect.Dialect
}

// NewCatalog wraps an open handle.
func NewCatalog(db *sql.DB, d dialect.Dialect) *Catalog {
	return &Catalog{db: db, d: d}
}

// OpenCatalog opens the source read-only through the dialect's driver and
// checks that it is reachable.
func OpenCatalog(ctx context.Context, d dialect.Dialect, dsn string) (*Catalog, error) {
	db, err := sql.Open(d.DriverName(), d.ReadOnlyDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open source db: %w", err)
	}
	c := NewCatalog(db, d)
	if err := c.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to source db: %w", err)
	}
	return nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// ListColumns returns the columns of t ordered by ordinal position. An
// absent table yields an empty slice and no error.
func (c *Catalog) ListColumns(ctx context.Context, t TableDescriptor) ([]ColumnDescriptor, error) {
	query, args := c.d.ColumnsQuery(c.d.GetSchemaName(t.Schema), t.Name)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns (table: %s): %w", t, err)
	}
	defer rows.Close()

	var cols []ColumnDescriptor
	for rows.Next() {
		var name, dataType sql.NullString
		var pos sql.NullInt64
		if err := rows.Scan(&name, &dataType, &pos); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", t, err)
		}
		if !name.Valid {
			continue // Skip invalid rows
		}
		cols = append(cols, ColumnDescriptor{
			Name:       name.String,
			SourceType: dataType.String,
			Position:   int(pos.Int64),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns (table: %s): %w", t, err)
	}
	return cols, nil
}

// ListTables returns the table and view names in schemaName, sorted. A
// missing schema yields an empty slice.
func (c *Catalog) ListTables(ctx context.Context, schemaName string) ([]string, error) {
	query, args := c.d.TablesQuery(c.d.GetSchemaName(schemaName))

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables (schema: %s): %w", schemaName, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return names, nil
}

// ReadTable loads every row of t into memory. Values are selected by the
// names in cols, in that order, so row positions line up with cols.
func (c *Catalog) ReadTable(ctx context.Context, t TableDescriptor, cols []ColumnDescriptor) (*Batch, error) {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}

	query := c.d.SelectQuery(c.d.GetSchemaName(t.Schema), t.Name, names)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", t, err)
	}
	defer rows.Close()

	batch := &Batch{Columns: names}
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", len(batch.Rows), t, err)
		}
		batch.Rows = append(batch.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", t, err)
	}
	return batch, nil
}
