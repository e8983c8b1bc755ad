package dialect

type MysqlDialect struct{}

func (d *MysqlDialect) DriverName() string { return "mysql" }

// ReadOnlyDSN makes the session read-only; go-sql-driver/mysql sends
// unknown DSN parameters as session system variables. parseTime makes
// DATETIME/DATE columns scan as time.Time.
func (d *MysqlDialect) ReadOnlyDSN(dsn string) string {
	dsn = AppendURLParam(dsn, "parseTime", "true")
	return AppendURLParam(dsn, "transaction_read_only", "1")
}

func (d *MysqlDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE IN ('BASE TABLE', 'VIEW') ORDER BY TABLE_NAME`, []any{schema}
}

func (d *MysqlDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, ORDINAL_POSITION FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`, []any{schema, table}
}

func (d *MysqlDialect) SelectQuery(schema, table string, cols []string) string {
	return BuildSelect(d, schema, table, cols)
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return QuoteWith(name, "`", "`")
}

func (d *MysqlDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}
