// Package projection turns a catalogue of external field names into the
// select list of a SQL query. A catalogue maps each external name to its
// source: either a bare column reference or a computed expression. The two
// kinds are kept apart so callers can reason about them separately, the way
// a values/annotate split works in an ORM.
package projection

import (
	"fmt"
	"strings"
)

// InternalPrefix marks fields that exist only to pass lookup keys between
// the fetch and assembly stages. They are never part of a public response
// type; response structs are built field by field from the working Row.
const InternalPrefix = "_"

type Field struct {
	// External is the name the field is addressed by in the working row.
	External string
	// Source is a column reference, or a SQL expression when Computed.
	Source string
	// Computed marks Source as an expression rather than a bare column.
	Computed bool
}

func (f Field) Internal() bool {
	return strings.HasPrefix(f.External, InternalPrefix)
}

// Catalog is an ordered, duplicate-free set of fields. Order is part of the
// contract: the select list and the scanned row follow catalogue order.
type Catalog struct {
	fields []Field
	index  map[string]int
}

// NewCatalog validates the field set. A duplicate or empty external name, or
// an empty source, is a programming defect in the catalogue itself and is
// reported as an error rather than resolved by precedence.
func NewCatalog(fields ...Field) (*Catalog, error) {
	c := &Catalog{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.External == "" {
			return nil, fmt.Errorf("projection: field with empty external name (source %q)", f.Source)
		}
		if f.Source == "" {
			return nil, fmt.Errorf("projection: field %q has no source expression", f.External)
		}
		if _, ok := c.index[f.External]; ok {
			return nil, fmt.Errorf("projection: duplicate external name %q", f.External)
		}
		c.index[f.External] = len(c.fields)
		c.fields = append(c.fields, f)
	}
	return c, nil
}

// MustCatalog is for package-level catalogue variables, so drift between
// variants fails at startup instead of at request time.
func MustCatalog(fields ...Field) *Catalog {
	c, err := NewCatalog(fields...)
	if err != nil {
		panic(err)
	}
	return c
}

// Columns returns the direct-select fields in catalogue order.
func (c *Catalog) Columns() []Field {
	return c.split(false)
}

// Annotations returns the computed fields in catalogue order.
func (c *Catalog) Annotations() []Field {
	return c.split(true)
}

func (c *Catalog) split(computed bool) []Field {
	out := make([]Field, 0, len(c.fields))
	for _, f := range c.fields {
		if f.Computed == computed {
			out = append(out, f)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.fields)
}

func (c *Catalog) Externals() []string {
	out := make([]string, len(c.fields))
	for i, f := range c.fields {
		out[i] = f.External
	}
	return out
}

func (c *Catalog) Source(external string) (Field, bool) {
	i, ok := c.index[external]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

// Extend returns a new catalogue with the extra fields appended. An extra
// field whose external name is already present replaces the existing source
// in place, keeping its original position.
func (c *Catalog) Extend(fields ...Field) (*Catalog, error) {
	merged := make([]Field, len(c.fields))
	copy(merged, c.fields)
	for _, f := range fields {
		if i, ok := c.index[f.External]; ok {
			merged[i] = f
			continue
		}
		merged = append(merged, f)
	}
	return NewCatalog(merged...)
}

func (c *Catalog) MustExtend(fields ...Field) *Catalog {
	ext, err := c.Extend(fields...)
	if err != nil {
		panic(err)
	}
	return ext
}

// SelectList renders the catalogue as a SQL select list: direct columns
// first, computed expressions after, each aliased to its quoted external
// name. Quoting keeps the scanned field descriptions byte-identical to the
// catalogue's external names.
func (c *Catalog) SelectList() string {
	parts := make([]string, 0, len(c.fields))
	for _, f := range c.Columns() {
		parts = append(parts, fmt.Sprintf(`%s AS %q`, f.Source, f.External))
	}
	for _, f := range c.Annotations() {
		parts = append(parts, fmt.Sprintf(`(%s) AS %q`, f.Source, f.External))
	}
	return strings.Join(parts, ", ")
}
