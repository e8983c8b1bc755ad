package dialect

import (
	"strings"
)

type OracleDialect struct{}

func (d *OracleDialect) DriverName() string { return "oracle" }

func (d *OracleDialect) ReadOnlyDSN(dsn string) string {
	return dsn
}

func (d *OracleDialect) TablesQuery(schema string) (string, []any) {
	// Owners are stored upper case unless created quoted. Views are listed
	// through ALL_VIEWS; ALL_TABLES holds base tables only.
	owner := d.GetSchemaName(schema)
	return `
SELECT TABLE_NAME FROM ALL_TABLES WHERE OWNER = :1
UNION
SELECT VIEW_NAME FROM ALL_VIEWS WHERE OWNER = :2
ORDER BY 1`, []any{owner, owner}
}

func (d *OracleDialect) ColumnsQuery(schema, table string) (string, []any) {
	// NUMBER is reported as BIGINT or DOUBLE depending on scale so the
	// type translator sees a family token.
	return `
SELECT
    COLUMN_NAME,
    CASE
        WHEN DATA_TYPE = 'NUMBER' AND COALESCE(DATA_SCALE, 0) > 0 THEN 'DOUBLE'
        WHEN DATA_TYPE = 'NUMBER' THEN 'BIGINT'
        ELSE DATA_TYPE
    END,
    COLUMN_ID
FROM ALL_TAB_COLUMNS
WHERE OWNER = :1 AND TABLE_NAME = :2
ORDER BY COLUMN_ID`, []any{d.GetSchemaName(schema), table}
}

func (d *OracleDialect) SelectQuery(schema, table string, cols []string) string {
	return BuildSelect(d, d.GetSchemaName(schema), table, cols)
}

func (d *OracleDialect) QuoteIdent(name string) string {
	return QuoteWith(name, `"`, `"`)
}

func (d *OracleDialect) GetSchemaName(input string) string {
	return strings.ToUpper(input)
}
