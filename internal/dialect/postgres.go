package dialect

import (
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string { return "postgres" }

// ReadOnlyDSN sets default_transaction_read_only, which lib/pq forwards as a
// run-time parameter. Both URL and keyword/value DSNs are accepted.
func (d *PostgresDialect) ReadOnlyDSN(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return AppendURLParam(dsn, "default_transaction_read_only", "on")
	}
	return AppendKVParam(dsn, "default_transaction_read_only", "on", " ")
}

func (d *PostgresDialect) TablesQuery(schema string) (string, []any) {
	// use $1 placeholder
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type IN ('BASE TABLE', 'VIEW') ORDER BY table_name`, []any{schema}
}

func (d *PostgresDialect) ColumnsQuery(schema, table string) (string, []any) {
	// data_type is used rather than udt_name: "timestamp without time zone"
	// and friends carry the family tokens the type translator matches on.
	return `SELECT column_name, data_type, ordinal_position FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`, []any{schema, table}
}

func (d *PostgresDialect) SelectQuery(schema, table string, cols []string) string {
	return BuildSelect(d, schema, table, cols)
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return QuoteWith(name, `"`, `"`)
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
