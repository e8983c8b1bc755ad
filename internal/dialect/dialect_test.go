package dialect_test

import (
	"testing"

	"duck-sync/internal/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDialect(t *testing.T) {
	for driver, want := range map[string]string{
		"":          "duckdb",
		"duckdb":    "duckdb",
		"postgres":  "postgres",
		"mysql":     "mysql",
		"mssql":     "sqlserver",
		"sqlserver": "sqlserver",
		"oracle":    "oracle",
		"sqlite":    "sqlite",
	} {
		d, err := dialect.GetDialect(driver)
		require.NoError(t, err, driver)
		assert.Equal(t, want, d.DriverName())
	}

	_, err := dialect.GetDialect("db2")
	assert.Error(t, err)
}

func TestSelectQuery_QuotesReservedWords(t *testing.T) {
	cols := []string{"order", "select", `we"ird`}

	cases := []struct {
		driver string
		want   string
	}{
		{"duckdb", `SELECT "order", "select", "we""ird" FROM "raw"."group"`},
		{"postgres", `SELECT "order", "select", "we""ird" FROM "raw"."group"`},
		{"mysql", "SELECT `order`, `select`, `we\"ird` FROM `raw`.`group`"},
		{"sqlserver", `SELECT [order], [select], [we"ird] FROM [raw].[group]`},
		{"sqlite", `SELECT "order", "select", "we""ird" FROM "raw"."group"`},
		{"oracle", `SELECT "order", "select", "we""ird" FROM "RAW"."group"`},
	}

	for _, tc := range cases {
		d, err := dialect.GetDialect(tc.driver)
		require.NoError(t, err)
		assert.Equal(t, tc.want, d.SelectQuery("raw", "group", cols), tc.driver)
	}
}

func TestQuoteWith_DoublesClosing(t *testing.T) {
	assert.Equal(t, "[a]]b]", dialect.QuoteWith("a]b", "[", "]"))
	assert.Equal(t, "`a``b`", dialect.QuoteWith("a`b", "`", "`"))
}

func TestReadOnlyDSN(t *testing.T) {
	duck := &dialect.DuckDBDialect{}
	assert.Equal(t, "/data/olist.duckdb?access_mode=READ_ONLY", duck.ReadOnlyDSN("/data/olist.duckdb"))
	assert.Equal(t, "/data/olist.duckdb?threads=4&access_mode=READ_ONLY", duck.ReadOnlyDSN("/data/olist.duckdb?threads=4"))
	assert.Equal(t, "/data/x.duckdb?access_mode=READ_ONLY", duck.ReadOnlyDSN("/data/x.duckdb?access_mode=READ_ONLY"))
	assert.Equal(t, "", duck.ReadOnlyDSN(""))

	pg := &dialect.PostgresDialect{}
	assert.Equal(t, "postgres://u:p@h/db?sslmode=disable&default_transaction_read_only=on",
		pg.ReadOnlyDSN("postgres://u:p@h/db?sslmode=disable"))
	assert.Equal(t, "host=h dbname=db default_transaction_read_only=on", pg.ReadOnlyDSN("host=h dbname=db"))

	my := &dialect.MysqlDialect{}
	assert.Equal(t, "u:p@tcp(h:3306)/db?parseTime=true&transaction_read_only=1", my.ReadOnlyDSN("u:p@tcp(h:3306)/db"))

	ms := &dialect.MSSQLDialect{}
	assert.Equal(t, "server=h;database=db;ApplicationIntent=ReadOnly", ms.ReadOnlyDSN("server=h;database=db;"))
	assert.Equal(t, "sqlserver://u:p@h?database=db&ApplicationIntent=ReadOnly", ms.ReadOnlyDSN("sqlserver://u:p@h?database=db"))

	lite := &dialect.SQLiteDialect{}
	assert.Equal(t, "file:x.db?mode=ro", lite.ReadOnlyDSN("file:x.db"))
	assert.Equal(t, ":memory:", lite.ReadOnlyDSN(":memory:"))
}

func TestColumnsQuery_ArgumentOrder(t *testing.T) {
	_, args := (&dialect.DuckDBDialect{}).ColumnsQuery("raw", "orders")
	assert.Equal(t, []any{"raw", "orders"}, args)

	// pragma_table_info(table, schema)
	_, args = (&dialect.SQLiteDialect{}).ColumnsQuery("raw", "orders")
	assert.Equal(t, []any{"orders", "raw"}, args)

	q, args := (&dialect.OracleDialect{}).TablesQuery("analytics")
	assert.Equal(t, []any{"ANALYTICS", "ANALYTICS"}, args)
	assert.Contains(t, q, "FROM ALL_TABLES")
	assert.Contains(t, q, "FROM ALL_VIEWS")
}
