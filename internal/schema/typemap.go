package schema

import "strings"

// Destination (ClickHouse) base types produced by the translator.
const (
	TypeInt64    = "Int64"
	TypeInt32    = "Int32"
	TypeFloat64  = "Float64"
	TypeString   = "String"
	TypeDateTime = "DateTime"
	TypeDate     = "Date"
	TypeUInt8    = "UInt8"
)

// TypeMappingRule maps every source type containing Pattern to Destination.
// An empty Pattern always matches.
type TypeMappingRule struct {
	Pattern     string
	Destination string
}

// DefaultRules is the ordered rule list. Order matters: the first pattern
// contained in the upper-cased source type wins, so longer or more specific
// tokens must come before the tokens they contain (DATETIME before DATE).
var DefaultRules = []TypeMappingRule{
	// nested DuckDB types are shipped as their text form
	{"[]", TypeString},
	{"STRUCT", TypeString},
	{"MAP(", TypeString},
	{"UNION(", TypeString},
	// contain INT but are not integers, or exceed Int64
	{"INTERVAL", TypeString},
	{"POINT", TypeString},
	{"HUGEINT", TypeString},
	{"BIGINT", TypeInt64},
	{"INT8", TypeInt64},
	{"INTEGER", TypeInt32},
	{"SMALLINT", TypeInt32},
	{"TINYINT", TypeInt32},
	{"INT4", TypeInt32},
	{"INT2", TypeInt32},
	{"INT", TypeInt32}, // int, mediumint, int unsigned
	{"DOUBLE", TypeFloat64},
	{"FLOAT", TypeFloat64},
	{"REAL", TypeFloat64},
	{"VARCHAR", TypeString},
	{"CHAR", TypeString},
	{"TEXT", TypeString},
	{"TIMESTAMP", TypeDateTime},
	{"DATETIME", TypeDateTime},
	{"DATE", TypeDate},
	{"BOOL", TypeUInt8},
	{"", TypeString},
}

// Translator maps source type tokens to destination types. It holds no
// connection and is safe for concurrent use.
type Translator struct {
	rules []TypeMappingRule
}

// NewTranslator returns a translator over rules. If rules does not end with
// a catch-all rule, one mapping to String is appended.
func NewTranslator(rules []TypeMappingRule) *Translator {
	rs := make([]TypeMappingRule, 0, len(rules)+1)
	for _, r := range rules {
		rs = append(rs, TypeMappingRule{Pattern: strings.ToUpper(r.Pattern), Destination: r.Destination})
	}
	if len(rs) == 0 || rs[len(rs)-1].Pattern != "" {
		rs = append(rs, TypeMappingRule{Pattern: "", Destination: TypeString})
	}
	return &Translator{rules: rs}
}

// DefaultTranslator uses DefaultRules.
func DefaultTranslator() *Translator {
	return NewTranslator(DefaultRules)
}

// Translate returns the destination type for sourceType.
func (t *Translator) Translate(sourceType string) string {
	upper := strings.ToUpper(sourceType)
	for _, r := range t.rules {
		if strings.Contains(upper, r.Pattern) {
			return r.Destination
		}
	}
	return TypeString
}

// Columns translates cols in order. Every destination column is nullable:
// source nullability metadata is not trusted.
func (t *Translator) Columns(cols []ColumnDescriptor) []DestinationColumn {
	out := make([]DestinationColumn, len(cols))
	for i, c := range cols {
		out[i] = DestinationColumn{
			Name:     c.Name,
			Type:     t.Translate(c.SourceType),
			Nullable: true,
		}
	}
	return out
}

// IsFloat reports whether destType is a floating-point type.
func IsFloat(destType string) bool {
	return destType == TypeFloat64
}

// IsTemporal reports whether destType is a date or time type.
func IsTemporal(destType string) bool {
	return destType == TypeDateTime || destType == TypeDate
}
