package result

import (
	"golang.org/x/exp/slog"

	"github.com/nlimpid/sqlrows/cast"
	"github.com/nlimpid/sqlrows/hydrate"
)

// Mode selects how raw rows are turned into delivered records.
type Mode int

const (
	// Array delivers each row as a *row.Row with values cast by the Caster.
	Array Mode = iota
	// ObjectByClass hydrates every row into a new instance of one type.
	ObjectByClass
	// ObjectByField hydrates every row into the type named by one of its
	// columns.
	ObjectByField
)

func (m Mode) String() string {
	switch m {
	case Array:
		return "array"
	case ObjectByClass:
		return "object-by-class"
	case ObjectByField:
		return "object-by-field"
	}
	return "unknown"
}

// Option configures a Cursor or View at construction.
type Option func(*config)

type config struct {
	mode     Mode
	class    string
	factory  func() hydrate.Loader
	field    string
	registry *hydrate.Registry
	caster   cast.Caster
	logger   *slog.Logger
}

// Arrays delivers rows as cast *row.Row values, undoing an earlier object
// option.
func Arrays() Option {
	return func(c *config) {
		c.mode = Array
		c.class = ""
		c.factory = nil
		c.field = ""
	}
}

// WithClass hydrates rows into the type registered under name.
func WithClass(name string) Option {
	return func(c *config) {
		c.mode = ObjectByClass
		c.class = name
		c.factory = nil
	}
}

// WithFactory hydrates rows into values produced by newObj.
func WithFactory(newObj func() hydrate.Loader) Option {
	return func(c *config) {
		c.mode = ObjectByClass
		c.class = ""
		c.factory = newObj
	}
}

// As hydrates rows into *T.
func As[T any, P hydrate.Ptr[T]]() Option {
	return WithFactory(hydrate.Factory[T, P]())
}

// WithField hydrates each row into the type named by its column field.
func WithField(field string) Option {
	return func(c *config) {
		c.mode = ObjectByField
		c.field = field
	}
}

// WithRegistry sets the registry class names are resolved against.
// hydrate.Default() is used otherwise.
func WithRegistry(reg *hydrate.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithCaster replaces the default caster used in Array mode.
func WithCaster(cs cast.Caster) Option {
	return func(c *config) {
		c.caster = cs
	}
}

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
