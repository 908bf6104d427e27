package cast

import (
	"strings"
	"time"
)

// Func converts a raw value. loc is the zone for timestamps without one.
type Func func(raw any, loc *time.Location) (any, error)

// Matcher selects columns by name.
type Matcher func(field string) bool

// Rule pairs a column matcher with the conversion applied on a match.
type Rule struct {
	Name  string
	Match Matcher
	Cast  Func
}

// Exact matches any of the listed names.
func Exact(names ...string) Matcher {
	return func(field string) bool {
		for _, n := range names {
			if field == n {
				return true
			}
		}
		return false
	}
}

// Prefix matches names starting with p.
func Prefix(p string) Matcher {
	return func(field string) bool { return strings.HasPrefix(field, p) }
}

// Suffix matches names ending with any of the given suffixes.
func Suffix(suffixes ...string) Matcher {
	return func(field string) bool {
		for _, s := range suffixes {
			if strings.HasSuffix(field, s) {
				return true
			}
		}
		return false
	}
}

// DefaultRules returns the naming conventions applied when no rule list is
// supplied:
//
//	id, row_count   -> int64
//	*_id            -> int64
//	is_*            -> bool
//	*_at, *_on      -> time.Time
//
// NULL stays nil under every rule.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "identity", Match: Exact("id", "row_count"), Cast: intFunc},
		{Name: "foreign key", Match: Suffix("_id"), Cast: intFunc},
		{Name: "flag", Match: Prefix("is_"), Cast: boolFunc},
		{Name: "timestamp", Match: Suffix("_at", "_on"), Cast: timeFunc},
	}
}

// UUIDRule casts *_uuid columns to uuid.UUID. It is not part of the defaults.
func UUIDRule() Rule {
	return Rule{Name: "uuid", Match: Suffix("_uuid"), Cast: uuidFunc}
}

// FloatRule casts columns ending with any of the suffixes to float64.
func FloatRule(suffixes ...string) Rule {
	return Rule{Name: "float", Match: Suffix(suffixes...), Cast: floatFunc}
}

func intFunc(raw any, _ *time.Location) (any, error)    { return ToInt(raw) }
func boolFunc(raw any, _ *time.Location) (any, error)   { return ToBool(raw) }
func floatFunc(raw any, _ *time.Location) (any, error)  { return ToFloat(raw) }
func uuidFunc(raw any, _ *time.Location) (any, error)   { return ToUUID(raw) }
func timeFunc(raw any, loc *time.Location) (any, error) { return ToTimeIn(raw, loc) }
