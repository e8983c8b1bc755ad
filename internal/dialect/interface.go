package dialect

// Dialect abstracts the source-engine specifics the catalog reader needs.
type Dialect interface {
	// Driver
	DriverName() string
	ReadOnlyDSN(dsn string) string

	// Metadata Queries (Catalog Introspection)
	// TablesQuery returns table_name rows for one schema.
	TablesQuery(schema string) (string, []any)
	// ColumnsQuery returns (column_name, data_type, ordinal_position) rows
	// ordered by ordinal position.
	ColumnsQuery(schema, table string) (string, []any)

	// Query Generation
	SelectQuery(schema, table string, cols []string) string
	QuoteIdent(name string) string

	// Helpers
	GetSchemaName(input string) string
}
