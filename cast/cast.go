package cast

import (
	"time"

	"github.com/nlimpid/sqlrows/row"
)

// Caster turns raw driver scalars into typed values based on the column name.
type Caster interface {
	// Cast converts a single raw value read from the named column.
	Cast(field string, raw any) (any, error)
	// CastRow converts every value of r in place. The set of columns is
	// never altered.
	CastRow(r *row.Row) error
}

// Option configures a RuleCaster.
type Option func(*RuleCaster)

// WithOverride registers fn for the exact column name field. Overrides take
// precedence over every rule.
func WithOverride(field string, fn Func) Option {
	return func(c *RuleCaster) {
		c.overrides[field] = fn
	}
}

// WithRules replaces the rule list, including the defaults.
func WithRules(rules ...Rule) Option {
	return func(c *RuleCaster) {
		c.rules = append([]Rule(nil), rules...)
	}
}

// PrependRules evaluates rules ahead of the current list.
func PrependRules(rules ...Rule) Option {
	return func(c *RuleCaster) {
		c.rules = append(append([]Rule(nil), rules...), c.rules...)
	}
}

// WithLocation sets the zone used for timestamps that carry none. UTC is used
// otherwise.
func WithLocation(loc *time.Location) Option {
	return func(c *RuleCaster) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// RuleCaster is the default Caster. Rules are evaluated top to bottom and the
// first match wins; a column without a match passes through unchanged. A
// RuleCaster holds no mutable state once built and is safe for concurrent use.
type RuleCaster struct {
	rules     []Rule
	overrides map[string]Func
	loc       *time.Location
}

// New returns a RuleCaster carrying DefaultRules, adjusted by opts.
func New(opts ...Option) *RuleCaster {
	c := &RuleCaster{
		rules:     DefaultRules(),
		overrides: make(map[string]Func),
		loc:       time.UTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cast implements Caster.
func (c *RuleCaster) Cast(field string, raw any) (any, error) {
	fn := c.lookup(field)
	if fn == nil {
		return raw, nil
	}
	v, err := fn(raw, c.loc)
	if err != nil {
		return nil, &Error{Field: field, Value: raw, Err: err}
	}
	return v, nil
}

// CastRow implements Caster.
func (c *RuleCaster) CastRow(r *row.Row) error {
	for _, col := range r.Columns() {
		raw, _ := r.Get(col)
		v, err := c.Cast(col, raw)
		if err != nil {
			return err
		}
		r.Set(col, v)
	}
	return nil
}

// Rules returns a copy of the active rule list.
func (c *RuleCaster) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

func (c *RuleCaster) lookup(field string) Func {
	if fn, ok := c.overrides[field]; ok {
		return fn
	}
	for _, rule := range c.rules {
		if rule.Match(field) {
			return rule.Cast
		}
	}
	return nil
}
