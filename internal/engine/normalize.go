package engine

import (
	"database/sql"
	"math"
	"time"

	"duck-sync/internal/schema"
)

// NormalizeSentinels replaces in-band missing-value markers with nil in the
// floating-point and temporal columns of batch and returns how many values
// were replaced. Other columns are left untouched. Running it again on the
// same batch replaces nothing.
//
// Markers: NaN floats, the zero time.Time, invalid sql.NullFloat64 /
// sql.NullTime values and nil pointers. Valid wrappers and non-nil pointers
// are unwrapped to their value.
func NormalizeSentinels(batch *schema.Batch, cols []schema.DestinationColumn) int {
	replaced := 0
	for ci, col := range cols {
		var check func(any) (any, bool)
		switch {
		case schema.IsFloat(col.Type):
			check = floatValue
		case schema.IsTemporal(col.Type):
			check = timeValue
		default:
			continue
		}

		for _, row := range batch.Rows {
			if ci >= len(row) || row[ci] == nil {
				continue
			}
			v, ok := check(row[ci])
			if !ok {
				row[ci] = nil
				replaced++
				continue
			}
			row[ci] = v
		}
	}
	return replaced
}

// floatValue returns the plain value and false if v encodes a missing float.
func floatValue(v any) (any, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return x, !math.IsNaN(float64(x))
	case *float64:
		if x == nil {
			return nil, false
		}
		return floatValue(*x)
	case sql.NullFloat64:
		if !x.Valid {
			return nil, false
		}
		return floatValue(x.Float64)
	}
	return v, true
}

// timeValue returns the plain value and false if v encodes a missing time.
func timeValue(v any) (any, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return nil, false
		}
		return timeValue(*x)
	case sql.NullTime:
		if !x.Valid {
			return nil, false
		}
		return timeValue(x.Time)
	}
	return v, true
}
