package dialect

import (
	"strings"
)

// QuoteWith wraps name in open/closing, doubling any embedded closing character.
func QuoteWith(name, open, closing string) string {
	return open + strings.ReplaceAll(name, closing, closing+closing) + closing
}

// BuildSelect lists cols explicitly so the result order is the catalog order
// regardless of how the engine expands SELECT *.
func BuildSelect(d Dialect, schema, table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	return "SELECT " + strings.Join(quoted, ", ") + " FROM " + d.QuoteIdent(schema) + "." + d.QuoteIdent(table)
}

// AppendURLParam adds key=value to a URL-style DSN unless key is already set.
func AppendURLParam(dsn, key, value string) string {
	if hasParam(dsn, key, "&") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + value
}

// AppendKVParam adds key=value to a space or semicolon separated DSN
// (lib/pq keyword form, SQL Server ADO form) unless key is already set.
func AppendKVParam(dsn, key, value, sep string) string {
	if hasParam(dsn, key, sep) {
		return dsn
	}
	trimmed := strings.TrimRight(dsn, " "+sep)
	if trimmed == "" {
		return key + "=" + value
	}
	return trimmed + sep + key + "=" + value
}

func hasParam(dsn, key, sep string) bool {
	lower := strings.ToLower(dsn)
	k := strings.ToLower(key) + "="
	for _, prefix := range []string{"?", sep, " ", ";"} {
		if strings.Contains(lower, prefix+k) {
			return true
		}
	}
	return strings.HasPrefix(lower, k)
}

// DefaultGetSchemaName is a default implementation for Getting Schema Name (identity).
func DefaultGetSchemaName(input string) string {
	return input
}
