package result

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"

	"github.com/nlimpid/sqlrows/cast"
	"github.com/nlimpid/sqlrows/hydrate"
	"github.com/nlimpid/sqlrows/row"
)

// handle owns the raw set and closes it exactly once, whether through Free or
// through the cleanup of an unreachable cursor.
type handle struct {
	raw    RawSet
	once   sync.Once
	closed atomic.Bool
}

// close reports whether this call released the set, and the error of doing so.
func (h *handle) close() (released bool, err error) {
	h.once.Do(func() {
		h.closed.Store(true)
		released = true
		err = h.raw.Close()
	})
	return released, err
}

type leak struct {
	h    *handle
	rows int
	log  *slog.Logger
}

func releaseLeaked(l leak) {
	released, err := l.h.close()
	if !released {
		return
	}
	l.log.Warn("result released without Free", "rows", l.rows, "error", err)
}

// Cursor is the exclusive owner of one raw set. It tracks the position of the
// next fetch and materializes rows according to its Mode.
//
// A Cursor is not safe for concurrent use.
type Cursor struct {
	h     *handle
	count int
	pos   int
	cur   any

	mode     Mode
	class    string
	factory  func() hydrate.Loader
	field    string
	registry *hydrate.Registry

	caster cast.Caster
	log    *slog.Logger
}

// NewCursor takes ownership of raw. It fails with ErrInvalidInput when raw is
// nil or holds no rows, or when the configured class cannot be hydrated; raw
// is left open in that case.
func NewCursor(raw RawSet, opts ...Option) (*Cursor, error) {
	if raw == nil {
		return nil, xerrors.Errorf("nil raw set: %w", ErrInvalidInput)
	}
	n := raw.RowCount()
	if n <= 0 {
		return nil, xerrors.Errorf("raw set has no rows: %w", ErrInvalidInput)
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Cursor{
		h:        &handle{raw: raw},
		count:    n,
		registry: cfg.registry,
		caster:   cfg.caster,
		log:      cfg.logger,
	}
	if c.registry == nil {
		c.registry = hydrate.Default()
	}
	if c.log == nil {
		c.log = slog.Default()
	}

	switch cfg.mode {
	case ObjectByClass:
		if cfg.factory != nil {
			c.ReturnObjectsWith(cfg.factory)
		} else if err := c.ReturnObjectsByClass(cfg.class); err != nil {
			return nil, err
		}
	case ObjectByField:
		if err := c.ReturnObjectsByField(cfg.field); err != nil {
			return nil, err
		}
	}

	runtime.AddCleanup(c, releaseLeaked, leak{h: c.h, rows: n, log: c.log})
	return c, nil
}

// Count returns the number of rows reported by the driver. It stays
// available after Free.
func (c *Cursor) Count() int { return c.count }

// Position returns the number of rows consumed since the last seek, i.e. the
// index the next Next call fetches.
func (c *Cursor) Position() int { return c.pos }

// Mode returns the active return mode.
func (c *Cursor) Mode() Mode { return c.mode }

// Seek moves the cursor so the next Next call returns row n. It returns
// false, leaving the position unchanged, when n is outside [0, Count()).
func (c *Cursor) Seek(n int) (bool, error) {
	if err := c.checkOpen(); err != nil {
		return false, err
	}
	if n < 0 || n >= c.count {
		return false, nil
	}
	if !c.h.raw.Seek(n) {
		return false, nil
	}
	c.pos = n
	return true, nil
}

// Next fetches the row at the current position, advances the position and
// materializes the row as the current row. It returns false, keeping the
// current row, once every row was consumed or the raw set yields nothing.
//
// A materialization error is returned with false. The position has already
// moved past the offending row, so the caller may keep iterating.
func (c *Cursor) Next() (bool, error) {
	if err := c.checkOpen(); err != nil {
		return false, err
	}
	if c.pos >= c.count {
		return false, nil
	}
	raw, ok := c.h.raw.Fetch()
	if !ok {
		return false, nil
	}
	n := c.pos
	c.pos++
	v, err := c.materialize(n, raw)
	if err != nil {
		return false, err
	}
	c.cur = v
	return true, nil
}

// Current returns the most recently materialized row: a *row.Row in Array
// mode, a hydrate.Loader otherwise. It is nil before the first fetch.
func (c *Cursor) Current() any { return c.cur }

// RowAt seeks to n and fetches it. It returns nil without error when n is
// out of range.
func (c *Cursor) RowAt(n int) (any, error) {
	ok, err := c.Seek(n)
	if err != nil || !ok {
		return nil, err
	}
	ok, err = c.Next()
	if err != nil || !ok {
		return nil, err
	}
	return c.cur, nil
}

// Free releases the raw set. Calling it again is a no-op.
func (c *Cursor) Free() error {
	released, err := c.h.close()
	if released {
		c.log.Debug("result freed", "rows", c.count, "position", c.pos, "error", err)
	}
	if err != nil {
		return xerrors.Errorf("failed to close raw set: %w", err)
	}
	return nil
}

// Closed reports whether Free was called.
func (c *Cursor) Closed() bool { return c.h.closed.Load() }

// ReturnArrays switches to Array mode for rows fetched from now on.
func (c *Cursor) ReturnArrays() {
	c.mode = Array
}

// ReturnObjectsByClass hydrates rows fetched from now on into the type
// registered under name. It fails with ErrInvalidInput, keeping the previous
// mode, when name does not resolve to a hydratable type.
func (c *Cursor) ReturnObjectsByClass(name string) error {
	if err := c.registry.Check(name); err != nil {
		return xerrors.Errorf("class %q: %v: %w", name, err, ErrInvalidInput)
	}
	c.mode = ObjectByClass
	c.class = name
	c.factory = nil
	return nil
}

// ReturnObjectsWith hydrates rows fetched from now on into values produced by
// newObj.
func (c *Cursor) ReturnObjectsWith(newObj func() hydrate.Loader) {
	c.mode = ObjectByClass
	c.class = ""
	c.factory = newObj
}

// ReturnObjectsByField hydrates each row fetched from now on into the type
// named by its column field. The class is resolved per row.
func (c *Cursor) ReturnObjectsByField(field string) error {
	if field == "" {
		return xerrors.Errorf("empty class field: %w", ErrInvalidInput)
	}
	c.mode = ObjectByField
	c.field = field
	return nil
}

// SetCaster replaces the caster used in Array mode.
func (c *Cursor) SetCaster(cs cast.Caster) {
	c.caster = cs
}

// Caster returns the Array mode caster, building the default one on first
// use.
func (c *Cursor) Caster() cast.Caster {
	if c.caster == nil {
		c.caster = cast.New()
	}
	return c.caster
}

func (c *Cursor) checkOpen() error {
	if c.h.closed.Load() {
		return ErrResourceClosed
	}
	return nil
}

func (c *Cursor) materialize(n int, raw *row.Row) (any, error) {
	switch c.mode {
	case ObjectByClass:
		var obj hydrate.Loader
		if c.factory != nil {
			obj = c.factory()
		} else {
			var err error
			if obj, err = c.registry.New(c.class); err != nil {
				return nil, &ClassError{Row: n, Class: c.class, Err: err}
			}
		}
		return hydrateRow(n, obj, raw)
	case ObjectByField:
		name := className(raw.Value(c.field))
		if name == "" {
			return nil, &ClassError{Row: n, Err: xerrors.Errorf("column %q holds no class name", c.field)}
		}
		obj, err := c.registry.New(name)
		if err != nil {
			return nil, &ClassError{Row: n, Class: name, Err: err}
		}
		return hydrateRow(n, obj, raw)
	default:
		typed := raw.Clone()
		if err := c.Caster().CastRow(typed); err != nil {
			return nil, xerrors.Errorf("row %d: %w", n, err)
		}
		return typed, nil
	}
}

func hydrateRow(n int, obj hydrate.Loader, raw *row.Row) (any, error) {
	if err := obj.LoadFromRow(raw); err != nil {
		return nil, xerrors.Errorf("row %d: failed to hydrate %T: %w", n, obj, err)
	}
	return obj, nil
}

func className(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return ""
}
