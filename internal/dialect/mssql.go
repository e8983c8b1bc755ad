package dialect

import (
	"strings"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) DriverName() string { return "sqlserver" }

// ReadOnlyDSN declares read-only application intent.
func (d *MSSQLDialect) ReadOnlyDSN(dsn string) string {
	if strings.HasPrefix(dsn, "sqlserver://") {
		return AppendURLParam(dsn, "ApplicationIntent", "ReadOnly")
	}
	return AppendKVParam(dsn, "ApplicationIntent", "ReadOnly", ";")
}

// Helper: MSSQL Driver (go-mssqldb) prefers @p1, @p2 named parameters over ?

func (d *MSSQLDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE IN ('BASE TABLE', 'VIEW') ORDER BY TABLE_NAME`, []any{schema}
}

func (d *MSSQLDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, ORDINAL_POSITION FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 ORDER BY ORDINAL_POSITION`, []any{schema, table}
}

func (d *MSSQLDialect) SelectQuery(schema, table string, cols []string) string {
	return BuildSelect(d, schema, table, cols)
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return QuoteWith(name, "[", "]")
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
