package result

import (
	"errors"
	"fmt"
	"iter"
	"reflect"

	json "github.com/goccy/go-json"
	"golang.org/x/xerrors"

	"github.com/nlimpid/sqlrows/cast"
	"github.com/nlimpid/sqlrows/hydrate"
	"github.com/nlimpid/sqlrows/row"
)

// View is the read-only handle callers receive for a query that produced
// rows. It layers indexed access, iteration and serialization over a Cursor.
//
// A nil *View stands for a result without rows: Count is 0, iteration yields
// nothing, ToArray returns an empty slice and it serializes to [].
//
// Indexed access and ToArray move the shared cursor. All starts every pass by
// seeking to row 0, Get always seeks to its index, and ToArray consumes from
// the current position onwards, so call ToArray before any manual Next or
// Seek if the full result is wanted.
type View struct {
	cur *Cursor
}

// New wraps raw in a View. It fails like NewCursor.
func New(raw RawSet, opts ...Option) (*View, error) {
	cur, err := NewCursor(raw, opts...)
	if err != nil {
		return nil, err
	}
	return &View{cur: cur}, nil
}

// Cursor returns the underlying cursor.
func (v *View) Cursor() *Cursor {
	if v == nil {
		return nil
	}
	return v.cur
}

// Count returns the number of rows.
func (v *View) Count() int {
	if v == nil {
		return 0
	}
	return v.cur.Count()
}

// Exists reports whether i is a valid row index.
func (v *View) Exists(i int) bool {
	return i >= 0 && i < v.Count()
}

// Get returns row i, seeking the cursor to it. It returns nil without error
// when i is out of range.
func (v *View) Get(i int) (any, error) {
	if v == nil {
		return nil, nil
	}
	return v.cur.RowAt(i)
}

// Set always fails with ErrUnsupportedOperation.
func (v *View) Set(i int, _ any) error {
	return xerrors.Errorf("set row %d: %w", i, ErrUnsupportedOperation)
}

// Unset always fails with ErrUnsupportedOperation.
func (v *View) Unset(i int) error {
	return xerrors.Errorf("unset row %d: %w", i, ErrUnsupportedOperation)
}

// All iterates over every row from the first one. Each range loop starts a
// new pass at row 0. A row that fails to materialize is yielded with its
// error; the loop may continue with the following rows. Closing the view ends
// the pass after yielding ErrResourceClosed once.
//
//	for rec, err := range view.All() {
//	    if err != nil {
//	        return err
//	    }
//	    r := rec.(*row.Row)
//	}
func (v *View) All() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		if v == nil {
			return
		}
		ok, err := v.cur.Seek(0)
		if err != nil {
			yield(nil, err)
			return
		}
		if !ok {
			return
		}
		for {
			ok, err := v.cur.Next()
			if err != nil {
				if !yield(nil, err) || errors.Is(err, ErrResourceClosed) {
					return
				}
				continue
			}
			if !ok {
				return
			}
			if !yield(v.cur.Current(), nil) {
				return
			}
		}
	}
}

// ToArray materializes the rows from the current position to the end. When a
// row fails, the rows built before it are returned with the error.
func (v *View) ToArray() ([]any, error) {
	if v == nil {
		return []any{}, nil
	}
	out := make([]any, 0, v.cur.Count()-v.cur.Position())
	for {
		ok, err := v.cur.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v.cur.Current())
	}
}

// ToArrayIndexedBy is ToArray keyed by the value of key in each record: a
// column in Array mode, an exported zero-argument method or field on hydrated
// objects. Keys are formatted with fmt.Sprint, byte slices as text. Later
// rows win on collision.
func (v *View) ToArrayIndexedBy(key string) (map[string]any, error) {
	rows, err := v.ToArray()
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(rows))
	for i, rec := range rows {
		k, err := keyOf(rec, key)
		if err != nil {
			return nil, xerrors.Errorf("row %d: %w", i, err)
		}
		out[keyString(k)] = rec
	}
	return out, nil
}

func keyString(k any) string {
	if b, ok := k.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(k)
}

// IndexBy is ToArrayIndexedBy with typed keys. A key whose value is not a K
// fails with ErrInvalidInput.
func IndexBy[K comparable](v *View, key string) (map[K]any, error) {
	rows, err := v.ToArray()
	if err != nil {
		return nil, err
	}
	out := make(map[K]any, len(rows))
	for i, rec := range rows {
		k, err := keyOf(rec, key)
		if err != nil {
			return nil, xerrors.Errorf("row %d: %w", i, err)
		}
		typed, ok := k.(K)
		if !ok {
			return nil, xerrors.Errorf("row %d: key %s is %T: %w", i, key, k, ErrInvalidInput)
		}
		out[typed] = rec
	}
	return out, nil
}

// Collect is ToArray with every record asserted to T, e.g. *row.Row or the
// hydrated pointer type.
func Collect[T any](v *View) ([]T, error) {
	rows, err := v.ToArray()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for i, rec := range rows {
		typed, ok := rec.(T)
		if !ok {
			var zero T
			return nil, xerrors.Errorf("row %d is %T, not %T: %w", i, rec, zero, ErrInvalidInput)
		}
		out = append(out, typed)
	}
	return out, nil
}

// Serialize returns every row in order, starting from row 0. Hydrated objects
// implementing hydrate.Serializer contribute their serialized form.
func (v *View) Serialize() ([]any, error) {
	out := make([]any, 0, v.Count())
	for rec, err := range v.All() {
		if err != nil {
			return nil, err
		}
		if s, ok := rec.(hydrate.Serializer); ok {
			data, err := s.Serialize()
			if err != nil {
				return nil, xerrors.Errorf("failed to serialize %T: %w", rec, err)
			}
			rec = data
		}
		out = append(out, rec)
	}
	return out, nil
}

// MarshalJSON encodes Serialize as a JSON array.
func (v *View) MarshalJSON() ([]byte, error) {
	data, err := v.Serialize()
	if err != nil {
		return nil, err
	}
	return json.Marshal(data)
}

// ReturnArrays switches to Array mode for rows fetched from now on.
func (v *View) ReturnArrays() {
	if v != nil {
		v.cur.ReturnArrays()
	}
}

// ReturnObjectsByClass switches to ObjectByClass mode, see
// Cursor.ReturnObjectsByClass.
func (v *View) ReturnObjectsByClass(name string) error {
	if v == nil {
		return nil
	}
	return v.cur.ReturnObjectsByClass(name)
}

// ReturnObjectsByField switches to ObjectByField mode, see
// Cursor.ReturnObjectsByField.
func (v *View) ReturnObjectsByField(field string) error {
	if v == nil {
		return nil
	}
	return v.cur.ReturnObjectsByField(field)
}

// SetCaster replaces the caster used in Array mode.
func (v *View) SetCaster(cs cast.Caster) {
	if v != nil {
		v.cur.SetCaster(cs)
	}
}

// Close frees the underlying raw set. It is safe to call more than once.
func (v *View) Close() error {
	if v == nil {
		return nil
	}
	return v.cur.Free()
}

// keyOf extracts key from a record: a column of a row, or a zero-argument
// method, or an exported field, of a hydrated object.
func keyOf(rec any, key string) (any, error) {
	if r, ok := rec.(*row.Row); ok {
		k, ok := r.Get(key)
		if !ok {
			return nil, xerrors.Errorf("no column %s: %w", key, ErrInvalidInput)
		}
		return k, nil
	}

	rv := reflect.ValueOf(rec)
	if m := rv.MethodByName(key); m.IsValid() {
		mt := m.Type()
		if mt.NumIn() == 0 && (mt.NumOut() == 1 || (mt.NumOut() == 2 && mt.Out(1) == errorType)) {
			out := m.Call(nil)
			if len(out) == 2 && !out[1].IsNil() {
				return nil, out[1].Interface().(error)
			}
			return out[0].Interface(), nil
		}
	}
	sv := reflect.Indirect(rv)
	if sv.Kind() == reflect.Struct {
		if f := sv.FieldByName(key); f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	}
	return nil, xerrors.Errorf("%T has no accessor %s: %w", rec, key, ErrInvalidInput)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
