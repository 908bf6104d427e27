package hydrate

import (
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"golang.org/x/xerrors"

	"github.com/nlimpid/sqlrows/cast"
	"github.com/nlimpid/sqlrows/row"
)

// Loader describes a type that knows how to populate itself from a raw
// result row. Values handed to LoadFromRow are the driver's values before any
// casting; converting them is up to the implementation.
type Loader interface {
	// LoadFromRow copies the columns it recognises from r into the receiver.
	// Unknown columns must be ignored.
	LoadFromRow(r *row.Row) error
}

// Ptr is a generic type constraint requiring a pointer to T that also
// implements Loader. It lets Factory and friends allocate new values while
// the user controls LoadFromRow.
type Ptr[T any] interface {
	*T
	Loader
}

// Serializer is implemented by hydrated objects that provide their own
// structured form for result serialization.
type Serializer interface {
	Serialize() (any, error)
}

// Factory returns a zero-argument constructor for T.
func Factory[T any, P Ptr[T]]() func() Loader {
	return func() Loader {
		return P(new(T))
	}
}

// Load allocates a T and hydrates it from r.
func Load[T any, P Ptr[T]](r *row.Row) (*T, error) {
	var result T
	if err := P(&result).LoadFromRow(r); err != nil {
		return nil, xerrors.Errorf("failed to load row: %w", err)
	}
	return &result, nil
}

var timeType = reflect.TypeOf(time.Time{})

// timeHook parses time.Time destinations with the same layouts the casting
// rules use.
func timeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	v, err := cast.ToTime(data)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return time.Time{}, nil
	}
	return v, nil
}

func newDecoder(result any) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(timeHook),
		WeaklyTypedInput: true,
		TagName:          "db",
		Result:           result,
	})
}

// Bind assigns the row's values to the pointer targets keyed by column name.
// Columns not present in targets are skipped and targets without a column are
// left untouched. Values are converted with weak typing, so "1" fills an
// int64 and []byte fills a string.
//
//	func (u *User) LoadFromRow(r *row.Row) error {
//	    return hydrate.Bind(r, map[string]any{
//	        "id":   &u.ID,
//	        "name": &u.Name,
//	    })
//	}
func Bind(r *row.Row, targets map[string]any) error {
	for col, v := range r.All() {
		target, ok := targets[col]
		if !ok {
			continue
		}
		if v == nil {
			continue
		}
		dec, err := newDecoder(target)
		if err != nil {
			return xerrors.Errorf("failed to bind column %s: %w", col, err)
		}
		if err := dec.Decode(v); err != nil {
			return xerrors.Errorf("failed to bind column %s: %w", col, err)
		}
	}
	return nil
}

// Decode fills the struct pointed to by dst from the row. Fields bind by
// `db:"name"` first; otherwise by case-insensitive field name. Extra columns
// are ignored.
func Decode(r *row.Row, dst any) error {
	dec, err := newDecoder(dst)
	if err != nil {
		return xerrors.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(r.Map()); err != nil {
		return xerrors.Errorf("failed to decode row: %w", err)
	}
	return nil
}
