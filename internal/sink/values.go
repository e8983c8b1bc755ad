package sink

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"duck-sync/internal/schema"
)

// layouts accepted when a temporal column arrives as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ConvertRow coerces every value of row for the matching column in cols.
func ConvertRow(cols []schema.DestinationColumn, row []any) ([]any, error) {
	if len(row) != len(cols) {
		return nil, fmt.Errorf("row has %d values, table has %d columns", len(row), len(cols))
	}
	out := make([]any, len(row))
	for i, v := range row {
		cv, err := ConvertValue(cols[i].Type, v)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", cols[i].Name, err)
		}
		out[i] = cv
	}
	return out, nil
}

// ConvertValue returns v as the Go type the ClickHouse client binds to
// destType. nil is passed through for every type.
func ConvertValue(destType string, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch destType {
	case schema.TypeInt64:
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		return n, nil
	case schema.TypeInt32:
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("value %d overflows Int32", n)
		}
		return int32(n), nil
	case schema.TypeFloat64:
		return toFloat64(v)
	case schema.TypeUInt8:
		return toUInt8(v)
	case schema.TypeDateTime, schema.TypeDate:
		return toTime(v)
	default:
		return toString(v)
	}
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows Int64", x)
		}
		return int64(x), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows Int64", x)
		}
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64)
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	}
	return 0, fmt.Errorf("cannot convert %T to integer", v)
}

func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	if n, err := toInt64(v); err == nil {
		return float64(n), nil
	}
	if f, ok := v.(interface{ Float64() float64 }); ok {
		return f.Float64(), nil
	}
	return 0, fmt.Errorf("cannot convert %T to float", v)
}

func toUInt8(v any) (uint8, error) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint8 {
		return 0, fmt.Errorf("value %d overflows UInt8", n)
	}
	return uint8(n), nil
}

func toTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case []byte:
		return parseTime(string(x))
	case string:
		return parseTime(x)
	}
	return time.Time{}, fmt.Errorf("cannot convert %T to time", v)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", s)
}

// timeOfDayLayout renders TIME values, which drivers such as go-duckdb scan
// as a time.Time on 0001-01-01.
const timeOfDayLayout = "15:04:05.999999"

func isTimeOfDay(t time.Time) bool {
	y, m, d := t.Date()
	return y == 1 && m == time.January && d == 1
}

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case time.Time:
		if isTimeOfDay(x) {
			return x.Format(timeOfDayLayout), nil
		}
		return x.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("cannot encode %T: %w", v, err)
		}
		return string(b), nil
	}
	return fmt.Sprint(v), nil
}
