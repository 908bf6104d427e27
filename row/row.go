// Package row holds the ordered column/value record shared by the casting,
// hydration and result packages.
package row

import (
	"bytes"
	"iter"
	"sort"

	json "github.com/goccy/go-json"
)

// Row is an ordered mapping from column name to value. Column names are
// unique; the order is the order in which the driver reported the columns.
type Row struct {
	cols  []string
	vals  []any
	index map[string]int
}

// New builds a Row from parallel column and value slices. When a column name
// repeats, the first position is kept and the later value wins, which is what
// associative fetches of joined tables usually produce.
func New(cols []string, vals []any) *Row {
	r := &Row{
		cols:  make([]string, 0, len(cols)),
		vals:  make([]any, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		var v any
		if i < len(vals) {
			v = vals[i]
		}
		r.Set(c, v)
	}
	return r
}

// FromMap builds a Row from a plain map. Columns are sorted by name since the
// map carries no order of its own.
func FromMap(m map[string]any) *Row {
	cols := make([]string, 0, len(m))
	for k := range m {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	vals := make([]any, len(cols))
	for i, c := range cols {
		vals[i] = m[c]
	}
	return New(cols, vals)
}

// Get returns the value stored under name and whether the column exists.
func (r *Row) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.vals[i], true
}

// Value returns the value stored under name, or nil.
func (r *Row) Value(name string) any {
	v, _ := r.Get(name)
	return v
}

// Has reports whether the row carries the named column.
func (r *Row) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Set replaces the value of an existing column, or appends a new one.
func (r *Row) Set(name string, v any) {
	if i, ok := r.index[name]; ok {
		r.vals[i] = v
		return
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[name] = len(r.cols)
	r.cols = append(r.cols, name)
	r.vals = append(r.vals, v)
}

// Columns returns a copy of the column names in order.
func (r *Row) Columns() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.cols...)
}

// Len returns the number of columns.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.cols)
}

// Clone returns a shallow copy. Byte slices are copied as well so the clone
// never aliases a driver buffer.
func (r *Row) Clone() *Row {
	if r == nil {
		return nil
	}
	c := &Row{
		cols:  append([]string(nil), r.cols...),
		vals:  make([]any, len(r.vals)),
		index: make(map[string]int, len(r.index)),
	}
	for i, v := range r.vals {
		if b, ok := v.([]byte); ok {
			v = bytes.Clone(b)
		}
		c.vals[i] = v
	}
	for k, v := range r.index {
		c.index[k] = v
	}
	return c
}

// Map returns the row as an unordered map.
func (r *Row) Map() map[string]any {
	m := make(map[string]any, r.Len())
	for k, v := range r.All() {
		m[k] = v
	}
	return m
}

// All iterates over the columns in order.
func (r *Row) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}
		for i, c := range r.cols {
			if !yield(c, r.vals[i]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the row as a JSON object keeping column order.
func (r *Row) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v := r.vals[i]
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(enc)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
