// Package cast converts raw driver values into typed Go values by column
// naming convention.
//
// # Default rules
//
// The rules are evaluated in order and the first match wins:
//
//	id, row_count   -> int64
//	*_id            -> int64
//	is_*            -> bool ("1" is true, "0" is false)
//	*_at, *_on      -> time.Time
//
// Every other column keeps its raw value. NULL is never coerced: a nil raw
// value stays nil under every built-in rule.
//
// # Overrides
//
// Exact column overrides win over every rule:
//
//	c := cast.New(
//	    cast.WithOverride("price", func(raw any, _ *time.Location) (any, error) {
//	        return cast.ToFloat(raw)
//	    }),
//	)
//
// Rule lists can be extended with PrependRules or replaced with WithRules:
//
//	c := cast.New(cast.PrependRules(cast.UUIDRule()))
//
// Conversion failures are reported as *Error values wrapping ErrUnparsable or
// ErrUnsupportedType.
package cast
