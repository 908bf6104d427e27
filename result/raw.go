package result

import (
	"github.com/nlimpid/sqlrows/row"
)

// RawSet is the seekable row source a driver hands back for a statement that
// produced rows. Values are the driver's raw scalars.
type RawSet interface {
	// RowCount reports the number of rows. It does not change for the
	// lifetime of the set.
	RowCount() int
	// Fetch returns the row at the set's position and advances it. It
	// returns false once the rows are exhausted or the set is closed.
	Fetch() (*row.Row, bool)
	// Seek moves the position so the next Fetch returns row n.
	Seek(n int) bool
	// Close releases the set.
	Close() error
}

// MemorySet is a RawSet over rows that were already read from the driver,
// the equivalent of a buffered (stored) result.
type MemorySet struct {
	cols   []string
	data   [][]any
	pos    int
	closed bool
}

var _ RawSet = (*MemorySet)(nil)

// NewMemorySet returns a set over data; every entry holds one value per
// column in cols.
func NewMemorySet(cols []string, data [][]any) *MemorySet {
	return &MemorySet{cols: cols, data: data}
}

// Columns returns the column names.
func (m *MemorySet) Columns() []string {
	return append([]string(nil), m.cols...)
}

func (m *MemorySet) RowCount() int { return len(m.data) }

// Fetch returns a fresh Row so callers may modify it without touching the
// buffered data.
func (m *MemorySet) Fetch() (*row.Row, bool) {
	if m.closed || m.pos >= len(m.data) {
		return nil, false
	}
	r := row.New(m.cols, m.data[m.pos])
	m.pos++
	return r, true
}

func (m *MemorySet) Seek(n int) bool {
	if m.closed || n < 0 || n >= len(m.data) {
		return false
	}
	m.pos = n
	return true
}

func (m *MemorySet) Close() error {
	m.closed = true
	m.data = nil
	return nil
}
