package projection

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Row is the working structure a fetch stage hands to the assembly stage.
// It carries every catalogue field, internal lookup keys included; public
// response types are built from it explicitly, so internal keys can never
// leak into a response.
type Row map[string]any

// CollectRow materializes the current row of a query built from cat.
// The select list and the field descriptions share catalogue order, so the
// mapping is positional.
func CollectRow(rows pgx.Rows, cat *Catalog) (Row, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	if len(values) != cat.Len() {
		return nil, fmt.Errorf("projection: query returned %d fields, catalogue has %d", len(values), cat.Len())
	}
	row := make(Row, len(values))
	for i, fd := range rows.FieldDescriptions() {
		row[fd.Name] = values[i]
	}
	return row, nil
}

func (r Row) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the field as *string, nil for SQL NULL or a missing key.
func (r Row) String(key string) *string {
	switch v := r[key].(type) {
	case string:
		return &v
	default:
		return nil
	}
}

func (r Row) Int64(key string) *int64 {
	var out int64
	switch v := r[key].(type) {
	case int64:
		out = v
	case int32:
		out = int64(v)
	case int16:
		out = int64(v)
	default:
		return nil
	}
	return &out
}

func (r Row) Float64(key string) *float64 {
	var out float64
	switch v := r[key].(type) {
	case float64:
		out = v
	case float32:
		out = float64(v)
	case pgtype.Numeric:
		fv, err := v.Float64Value()
		if err != nil || !fv.Valid {
			return nil
		}
		out = fv.Float64
	default:
		return nil
	}
	return &out
}

func (r Row) Time(key string) *time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return &v
	default:
		return nil
	}
}

// Date renders a date field as YYYY-MM-DD, nil for NULL.
func (r Row) Date(key string) *string {
	t := r.Time(key)
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// StringSlice returns a text[] field, empty for NULL.
func (r Row) StringSlice(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
