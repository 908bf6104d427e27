package result

import (
	"errors"
	"sync/atomic"

	"github.com/nlimpid/sqlrows/hydrate"
	"github.com/nlimpid/sqlrows/row"
)

type Cat struct {
	ID   int64
	Name string
}

func (c *Cat) LoadFromRow(r *row.Row) error {
	return hydrate.Bind(r, map[string]any{
		"id":   &c.ID,
		"name": &c.Name,
	})
}

func (c *Cat) Serialize() (any, error) {
	return map[string]any{"kind": "cat", "name": c.Name}, nil
}

func (c *Cat) Key() string { return "cat-" + c.Name }

type Dog struct {
	ID   int64
	Name string
}

func (d *Dog) LoadFromRow(r *row.Row) error {
	return hydrate.Bind(r, map[string]any{
		"id":   &d.ID,
		"name": &d.Name,
	})
}

type Broken struct{}

func (*Broken) LoadFromRow(*row.Row) error { return errors.New("broken row") }

type Plain struct {
	ID int64
}

func newRegistry() *hydrate.Registry {
	reg := hydrate.NewRegistry()
	hydrate.Register[Cat](reg, "Cat")
	hydrate.Register[Dog](reg, "Dog")
	hydrate.Register[Broken](reg, "Broken")
	reg.Add("Plain", Plain{})
	return reg
}

// trackingSet counts Close calls and can stop yielding rows to simulate a
// set invalidated underneath the cursor.
type trackingSet struct {
	*MemorySet
	closes atomic.Int32
	dry    bool
}

func (t *trackingSet) Fetch() (*row.Row, bool) {
	if t.dry {
		return nil, false
	}
	return t.MemorySet.Fetch()
}

func (t *trackingSet) Close() error {
	t.closes.Add(1)
	return t.MemorySet.Close()
}

func newTrackingSet(cols []string, data [][]any) *trackingSet {
	return &trackingSet{MemorySet: NewMemorySet(cols, data)}
}

func peopleSet() *trackingSet {
	return newTrackingSet(
		[]string{"id", "name", "is_active", "created_at"},
		[][]any{
			{"1", "A", "1", "2020-01-01"},
			{"2", "B", "0", nil},
			{"3", "C", "1", "2020-01-03"},
		},
	)
}

func animalSet(classes ...string) *trackingSet {
	data := make([][]any, len(classes))
	for i, c := range classes {
		data[i] = []any{int64(i + 1), c, "pet" + string(rune('A'+i))}
	}
	return newTrackingSet([]string{"id", "type", "name"}, data)
}
