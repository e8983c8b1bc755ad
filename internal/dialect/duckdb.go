package dialect

import (
	"strings"
)

type DuckDBDialect struct{}

func (d *DuckDBDialect) DriverName() string { return "duckdb" }

// ReadOnlyDSN opens database files with access_mode=READ_ONLY. In-memory
// databases cannot be opened read-only and are returned unchanged.
func (d *DuckDBDialect) ReadOnlyDSN(dsn string) string {
	if dsn == "" || strings.HasPrefix(dsn, ":memory:") {
		return dsn
	}
	return AppendURLParam(dsn, "access_mode", "READ_ONLY")
}

func (d *DuckDBDialect) TablesQuery(schema string) (string, []any) {
	// Views are included: dbt staging/marts models are commonly views.
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = ? AND table_type IN ('BASE TABLE', 'VIEW') ORDER BY table_name`, []any{schema}
}

func (d *DuckDBDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT column_name, data_type, ordinal_position FROM information_schema.columns WHERE table_schema = ? AND table_name = ? ORDER BY ordinal_position`, []any{schema, table}
}

func (d *DuckDBDialect) SelectQuery(schema, table string, cols []string) string {
	return BuildSelect(d, schema, table, cols)
}

func (d *DuckDBDialect) QuoteIdent(name string) string {
	return QuoteWith(name, `"`, `"`)
}

func (d *DuckDBDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}
