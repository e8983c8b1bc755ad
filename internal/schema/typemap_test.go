package schema_test

import (
	"strings"
	"testing"

	"duck-sync/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_Baseline(t *testing.T) {
	tr := schema.DefaultTranslator()

	cases := map[string]string{
		"BIGINT":                   schema.TypeInt64,
		"INTEGER":                  schema.TypeInt32,
		"DOUBLE":                   schema.TypeFloat64,
		"VARCHAR":                  schema.TypeString,
		"TIMESTAMP":                schema.TypeDateTime,
		"DATE":                     schema.TypeDate,
		"BOOLEAN":                  schema.TypeUInt8,
		"timestamp with time zone": schema.TypeDateTime,
		"double precision":         schema.TypeFloat64,
		"character varying":        schema.TypeString,
		"datetime":                 schema.TypeDateTime,
		"SMALLINT":                 schema.TypeInt32,
		"UBIGINT":                  schema.TypeInt64,
		"DECIMAL(18,3)":            schema.TypeString,
		"INTERVAL":                 schema.TypeString,
		"interval":                 schema.TypeString,
		"int":                      schema.TypeInt32,
		"INT":                      schema.TypeInt32,
		"mediumint":                schema.TypeInt32,
		"int unsigned":             schema.TypeInt32,
		"point":                    schema.TypeString,
		"TIME":                     schema.TypeString,
		"HUGEINT":                  schema.TypeString,
		"INTEGER[]":                schema.TypeString,
		"STRUCT(a INTEGER)":        schema.TypeString,
		"":                         schema.TypeString,
	}

	for in, want := range cases {
		assert.Equal(t, want, tr.Translate(in), "translate(%q)", in)
	}
}

func TestTranslate_CaseInsensitiveAndDeterministic(t *testing.T) {
	tr := schema.DefaultTranslator()

	for _, r := range schema.DefaultRules {
		if r.Pattern == "" {
			continue
		}
		lower := strings.ToLower(r.Pattern)
		first := tr.Translate(lower)
		assert.Equal(t, first, tr.Translate(lower))
		assert.Equal(t, first, tr.Translate(r.Pattern))
		assert.Equal(t, tr.Translate("varchar"), tr.Translate("VARCHAR"))
	}
}

func TestTranslate_FirstMatchWins(t *testing.T) {
	tr := schema.NewTranslator([]schema.TypeMappingRule{
		{Pattern: "int", Destination: "Int16"},
		{Pattern: "bigint", Destination: "Int64"},
	})

	// "int" is listed first and is contained in BIGINT.
	assert.Equal(t, "Int16", tr.Translate("BIGINT"))
	// A catch-all is appended when the rule list lacks one.
	assert.Equal(t, schema.TypeString, tr.Translate("BLOB"))
}

func TestColumns_PreservesOrderAndNullability(t *testing.T) {
	tr := schema.DefaultTranslator()
	cols := []schema.ColumnDescriptor{
		{Name: "order_id", SourceType: "BIGINT", Position: 1},
		{Name: "order_status", SourceType: "VARCHAR", Position: 2},
		{Name: "order_ts", SourceType: "TIMESTAMP", Position: 3},
	}

	out := tr.Columns(cols)
	require.Len(t, out, 3)

	var ddl []string
	for _, c := range out {
		assert.True(t, c.Nullable)
		ddl = append(ddl, c.Name+" "+c.DDLType())
	}
	assert.Equal(t, []string{
		"order_id Nullable(Int64)",
		"order_status Nullable(String)",
		"order_ts Nullable(DateTime)",
	}, ddl)
}

func TestParseTableDescriptor(t *testing.T) {
	td, err := schema.ParseTableDescriptor(" raw.orders ")
	require.NoError(t, err)
	assert.Equal(t, schema.TableDescriptor{Schema: "raw", Name: "orders"}, td)
	assert.Equal(t, "raw.orders", td.String())

	for _, bad := range []string{"orders", ".orders", "raw.", ""} {
		_, err := schema.ParseTableDescriptor(bad)
		assert.Error(t, err, bad)
	}
}
