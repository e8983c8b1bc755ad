package sink

import (
	"fmt"
	"strings"

	"duck-sync/internal/schema"
)

// DefaultEngine stores rows in insertion order with no sort key.
const DefaultEngine = "MergeTree()"

// QuoteIdent backquotes a ClickHouse identifier.
func QuoteIdent(name string) string {
	r := strings.NewReplacer(`\`, `\\`, "`", "\\`")
	return "`" + r.Replace(name) + "`"
}

// QualifiedName returns `schema`.`table`.
func QualifiedName(t schema.TableDescriptor) string {
	return QuoteIdent(t.Schema) + "." + QuoteIdent(t.Name)
}

func CreateDatabaseQuery(name string) string {
	return "CREATE DATABASE IF NOT EXISTS " + QuoteIdent(name)
}

func DropTableQuery(t schema.TableDescriptor) string {
	return "DROP TABLE IF EXISTS " + QualifiedName(t)
}

// CreateTableQuery renders the table with cols in order. ORDER BY tuple()
// declares no sort key.
func CreateTableQuery(t schema.TableDescriptor, cols []schema.DestinationColumn, engine string) string {
	if engine == "" {
		engine = DefaultEngine
	}
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("%s %s", QuoteIdent(c.Name), c.DDLType())
	}
	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n) ENGINE = %s\nORDER BY tuple()",
		QualifiedName(t), strings.Join(defs, ",\n    "), engine)
}

// ValidateColumnNames rejects names the batch insert cannot bind. The
// client re-parses the INSERT column list, splitting on commas and only
// trimming the surrounding backquotes.
func ValidateColumnNames(cols []schema.DestinationColumn) error {
	for _, c := range cols {
		if c.Name == "" || strings.ContainsAny(c.Name, ",`") {
			return fmt.Errorf("column name %q cannot be bound by the ClickHouse batch insert (empty, or contains ',' or '`')", c.Name)
		}
	}
	return nil
}

// InsertQuery is the statement a batch is prepared from.
func InsertQuery(t schema.TableDescriptor, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = QuoteIdent(c)
	}
	return fmt.Sprintf("INSERT INTO %s (%s)", QualifiedName(t), strings.Join(quoted, ", "))
}

func CountRowsQuery(t schema.TableDescriptor) string {
	return "SELECT count() FROM " + QualifiedName(t)
}

const tableStatsQuery = `SELECT name, total_rows FROM system.tables WHERE database = ? ORDER BY name`
