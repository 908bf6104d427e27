package hydrate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlimpid/sqlrows/row"
)

type Foo struct {
	ID        int64
	Name      string
	ClassTime time.Time
	Deposit   float32
	Active    bool
}

func (f *Foo) LoadFromRow(r *row.Row) error {
	return Bind(r, map[string]any{
		"id":         &f.ID,
		"name":       &f.Name,
		"class_time": &f.ClassTime,
		"deposit":    &f.Deposit,
		"is_active":  &f.Active,
	})
}

type Order struct {
	ID        int64      `db:"id"`
	Customer  string     `db:"customer"`
	CreatedAt time.Time  `db:"created_at"`
	ShippedAt *time.Time `db:"shipped_at"`
	Note      string
}

func (o *Order) LoadFromRow(r *row.Row) error {
	return Decode(r, o)
}

type NotLoader struct {
	ID int64
}

func TestBind(t *testing.T) {
	tests := []struct {
		name string
		cols []string
		vals []any
		want Foo
	}{
		{
			name: "text values",
			cols: []string{"id", "name", "deposit", "is_active"},
			vals: []any{"1", "foo", "100.5", "1"},
			want: Foo{ID: 1, Name: "foo", Deposit: 100.5, Active: true},
		},
		{
			name: "driver values",
			cols: []string{"id", "name", "class_time"},
			vals: []any{int64(42), []byte("bar"), "2020-01-01 08:00:00"},
			want: Foo{ID: 42, Name: "bar", ClassTime: time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC)},
		},
		{
			name: "unknown columns and nulls",
			cols: []string{"id", "extra", "name"},
			vals: []any{int64(7), "ignored", nil},
			want: Foo{ID: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Foo
			require.NoError(t, got.LoadFromRow(row.New(tt.cols, tt.vals)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBind_Error(t *testing.T) {
	var f Foo
	err := f.LoadFromRow(row.New([]string{"id"}, []any{"abc"}))
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	shipped := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	r := row.New(
		[]string{"id", "customer", "created_at", "shipped_at", "note", "extra"},
		[]any{"3", []byte("acme"), "2021-03-01", "2021-03-04", "fragile", 1},
	)

	o, err := Load[Order](r)
	require.NoError(t, err)
	assert.Equal(t, int64(3), o.ID)
	assert.Equal(t, "acme", o.Customer)
	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), o.CreatedAt)
	require.NotNil(t, o.ShippedAt)
	assert.Equal(t, shipped, *o.ShippedAt)
	assert.Equal(t, "fragile", o.Note)

	o, err = Load[Order](row.New([]string{"id", "shipped_at"}, []any{int64(4), nil}))
	require.NoError(t, err)
	assert.Equal(t, int64(4), o.ID)
	assert.Nil(t, o.ShippedAt)
}

func TestFactory(t *testing.T) {
	newFoo := Factory[Foo]()
	a, b := newFoo(), newFoo()
	assert.IsType(t, &Foo{}, a)
	assert.NotSame(t, a, b)
}

func BenchmarkBind(b *testing.B) {
	r := row.New(
		[]string{"id", "name", "class_time", "deposit"},
		[]any{int64(1), "foo", "2020-01-01", 1.5},
	)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var f Foo
		if err := f.LoadFromRow(r); err != nil {
			b.Fatal(err)
		}
	}
}
