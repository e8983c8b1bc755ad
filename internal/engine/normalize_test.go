package engine_test

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"duck-sync/internal/engine"
	"duck-sync/internal/schema"

	"github.com/stretchr/testify/assert"
)

var mixedCols = []schema.DestinationColumn{
	{Name: "price", Type: schema.TypeFloat64, Nullable: true},
	{Name: "ts", Type: schema.TypeDateTime, Nullable: true},
	{Name: "day", Type: schema.TypeDate, Nullable: true},
	{Name: "label", Type: schema.TypeString, Nullable: true},
}

func TestNormalizeSentinels(t *testing.T) {
	ts := time.Date(2018, 1, 1, 12, 0, 0, 0, time.UTC)
	price := 9.5

	batch := &schema.Batch{
		Columns: schema.ColumnNames(mixedCols),
		Rows: [][]any{
			{math.NaN(), time.Time{}, sql.NullTime{}, "n/a"},
			{float32(math.NaN()), (*time.Time)(nil), time.Time{}, math.NaN()},
			{sql.NullFloat64{}, sql.NullTime{Time: ts, Valid: true}, ts, nil},
			{&price, &ts, ts, "ok"},
			{1.25, ts, nil, "ok"},
		},
	}

	replaced := engine.NormalizeSentinels(batch, mixedCols)
	assert.Equal(t, 7, replaced)

	assert.Equal(t, []any{nil, nil, nil, "n/a"}, batch.Rows[0])
	assert.Nil(t, batch.Rows[1][0])
	assert.Nil(t, batch.Rows[1][1])
	assert.Nil(t, batch.Rows[1][2])
	// String columns are passed through untouched, NaN included.
	assert.True(t, math.IsNaN(batch.Rows[1][3].(float64)))
	assert.Equal(t, []any{nil, ts, ts, nil}, batch.Rows[2])
	assert.Equal(t, []any{9.5, ts, ts, "ok"}, batch.Rows[3])
	assert.Equal(t, []any{1.25, ts, nil, "ok"}, batch.Rows[4])
}

func TestNormalizeSentinels_Idempotent(t *testing.T) {
	ts := time.Date(2018, 1, 1, 12, 0, 0, 0, time.UTC)
	batch := &schema.Batch{
		Columns: schema.ColumnNames(mixedCols),
		Rows: [][]any{
			{math.NaN(), time.Time{}, ts, "a"},
			{2.0, ts, time.Time{}, "b"},
		},
	}

	first := engine.NormalizeSentinels(batch, mixedCols)
	snapshot := make([][]any, len(batch.Rows))
	for i, r := range batch.Rows {
		snapshot[i] = append([]any(nil), r...)
	}

	second := engine.NormalizeSentinels(batch, mixedCols)
	assert.Equal(t, 3, first)
	assert.Equal(t, 0, second)
	assert.Equal(t, snapshot, batch.Rows)
}

func TestNormalizeSentinels_EmptyBatch(t *testing.T) {
	batch := &schema.Batch{Columns: schema.ColumnNames(mixedCols)}
	assert.Equal(t, 0, engine.NormalizeSentinels(batch, mixedCols))
	assert.Equal(t, 0, batch.Len())
}
