package dialect

import (
	"strings"
)

// SQLiteDialect reads SQLite databases through modernc.org/sqlite. Schemas
// are attached database names ("main", or the alias given to ATTACH).
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string { return "sqlite" }

func (d *SQLiteDialect) ReadOnlyDSN(dsn string) string {
	if strings.HasPrefix(dsn, "file:") {
		return AppendURLParam(dsn, "mode", "ro")
	}
	return dsn
}

func (d *SQLiteDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT name FROM pragma_table_list WHERE schema = ? AND type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' ORDER BY name`, []any{d.GetSchemaName(schema)}
}

func (d *SQLiteDialect) ColumnsQuery(schema, table string) (string, []any) {
	// pragma_table_info takes the schema as its trailing argument.
	return `SELECT name, type, cid + 1 FROM pragma_table_info(?, ?) ORDER BY cid`, []any{table, d.GetSchemaName(schema)}
}

func (d *SQLiteDialect) SelectQuery(schema, table string, cols []string) string {
	return BuildSelect(d, d.GetSchemaName(schema), table, cols)
}

func (d *SQLiteDialect) QuoteIdent(name string) string {
	return QuoteWith(name, `"`, `"`)
}

func (d *SQLiteDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}
