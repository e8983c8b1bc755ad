package schema

import (
	"fmt"
	"strings"
)

// TableDescriptor identifies a table by namespace and name. The same
// identity is used on the source and destination side.
type TableDescriptor struct {
	Schema string
	Name   string
}

func (t TableDescriptor) String() string {
	return t.Schema + "." + t.Name
}

// ParseTableDescriptor parses "schema.table". Only the first dot separates
// the parts, so table names may themselves contain dots.
func ParseTableDescriptor(s string) (TableDescriptor, error) {
	schemaName, tableName, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || schemaName == "" || tableName == "" {
		return TableDescriptor{}, fmt.Errorf("invalid table %q: expected schema.table", s)
	}
	return TableDescriptor{Schema: schemaName, Name: tableName}, nil
}

// ColumnDescriptor is a source column as reported by the catalog.
// Position is the 1-based ordinal; columns are always handled in that order.
type ColumnDescriptor struct {
	Name       string
	SourceType string
	Position   int
}

// DestinationColumn is a translated column ready for DDL.
type DestinationColumn struct {
	Name     string
	Type     string // base destination type, e.g. Int64
	Nullable bool
}

// DDLType returns the column type as written in CREATE TABLE.
func (c DestinationColumn) DDLType() string {
	if c.Nullable {
		return "Nullable(" + c.Type + ")"
	}
	return c.Type
}

// ColumnNames returns the names of cols in order.
func ColumnNames(cols []DestinationColumn) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// Batch is a fully materialized table. Every row has len(Columns) values
// in column order.
type Batch struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Rows)
}

// TableStat is a destination table with its reported row count.
type TableStat struct {
	Schema string
	Name   string
	Rows   uint64
}
