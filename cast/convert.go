package cast

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	spcast "github.com/spf13/cast"
	"golang.org/x/xerrors"
)

// extraTimeLayouts cover minute-precision text the spf13/cast layouts miss.
var extraTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// maxIntFloat is 2^63, the first float64 above the int64 range.
const maxIntFloat = float64(1 << 63)

// ToInt converts raw to int64. nil stays nil. Values outside the int64 range
// fail with ErrUnparsable.
func ToInt(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []byte:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	case float64:
		return floatToInt(v)
	case float32:
		return floatToInt(float64(v))
	case uint64:
		if v > math.MaxInt64 {
			return nil, xerrors.Errorf("%d overflows int64: %w", v, ErrUnparsable)
		}
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, xerrors.Errorf("%d overflows int64: %w", v, ErrUnparsable)
		}
	case int, int8, int16, int32, int64, uint8, uint16, uint32, bool:
	default:
		return nil, xerrors.Errorf("int from %T: %w", raw, ErrUnsupportedType)
	}
	n, err := spcast.ToInt64E(raw)
	if err != nil {
		return nil, xerrors.Errorf("int from %T: %v: %w", raw, err, ErrUnsupportedType)
	}
	return n, nil
}

func floatToInt(f float64) (any, error) {
	if math.IsInf(f, 0) || f != math.Trunc(f) || f < -maxIntFloat || f >= maxIntFloat {
		return nil, xerrors.Errorf("%v is not an int64: %w", f, ErrUnparsable)
	}
	return int64(f), nil
}

// parseInt accepts decimal text, including DECIMAL renderings such as "3.0".
func parseInt(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, xerrors.Errorf("int from empty text: %w", ErrUnparsable)
	}
	n, err := spcast.ToInt64E(decimalText(s))
	if err != nil {
		return nil, xerrors.Errorf("int from %q: %w", s, ErrUnparsable)
	}
	return n, nil
}

// decimalText drops leading zeros so "010" is never read as octal.
func decimalText(s string) string {
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	t := strings.TrimLeft(s, "0")
	if t == "" || t[0] == '.' {
		t = "0" + t
	}
	return sign + t
}

// ToBool converts raw to bool. "1" and any other non-empty text that is not a
// recognised false spelling is true; nil stays nil.
func ToBool(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []byte:
		return parseBool(string(v)), nil
	case string:
		return parseBool(v), nil
	}
	b, err := spcast.ToBoolE(raw)
	if err != nil {
		return nil, xerrors.Errorf("bool from %T: %w", raw, ErrUnsupportedType)
	}
	return b, nil
}

func parseBool(s string) bool {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "no", "off", "n":
		return false
	}
	if b, err := spcast.ToBoolE(s); err == nil {
		return b
	}
	return true
}

// ToFloat converts raw to float64. nil stays nil.
func ToFloat(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []byte:
		return parseFloat(string(v))
	case string:
		return parseFloat(v)
	}
	f, err := spcast.ToFloat64E(raw)
	if err != nil {
		return nil, xerrors.Errorf("float from %T: %w", raw, ErrUnsupportedType)
	}
	return f, nil
}

func parseFloat(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, xerrors.Errorf("float from empty text: %w", ErrUnparsable)
	}
	f, err := spcast.ToFloat64E(s)
	if err != nil {
		return nil, xerrors.Errorf("float from %q: %w", s, ErrUnparsable)
	}
	return f, nil
}

// ToTime converts raw to time.Time using UTC for zone-less text.
func ToTime(raw any) (any, error) {
	return ToTimeIn(raw, time.UTC)
}

// ToTimeIn converts raw to time.Time. Text is parsed with the common SQL
// layouts, integers are unix seconds. nil and zero dates such as
// "0000-00-00 00:00:00" become nil.
func ToTimeIn(raw any, loc *time.Location) (any, error) {
	if loc == nil {
		loc = time.UTC
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v, nil
	case []byte:
		return parseTime(string(v), loc)
	case string:
		return parseTime(v, loc)
	case int, int32, int64, uint32:
		t, err := spcast.ToTimeInDefaultLocationE(v, loc)
		if err != nil {
			return nil, xerrors.Errorf("time from %T: %v: %w", raw, err, ErrUnparsable)
		}
		return t.In(loc), nil
	}
	return nil, xerrors.Errorf("time from %T: %w", raw, ErrUnsupportedType)
}

func parseTime(s string, loc *time.Location) (any, error) {
	s = strings.TrimSpace(s)
	if isZeroDate(s) {
		return nil, nil
	}
	if t, err := spcast.ToTimeInDefaultLocationE(s, loc); err == nil {
		return t, nil
	}
	for _, layout := range extraTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return nil, xerrors.Errorf("time from %q: %w", s, ErrUnparsable)
}

func isZeroDate(s string) bool {
	return strings.HasPrefix(s, "0000-00-00")
}

// ToUUID converts raw to uuid.UUID. 16-byte binary values are taken as is.
func ToUUID(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case uuid.UUID:
		return v, nil
	case []byte:
		if len(v) == 16 {
			return uuid.FromBytes(v)
		}
		return parseUUID(string(v))
	case string:
		return parseUUID(v)
	}
	return nil, xerrors.Errorf("uuid from %T: %w", raw, ErrUnsupportedType)
}

func parseUUID(s string) (any, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, xerrors.Errorf("uuid from %q: %w", s, ErrUnparsable)
	}
	return id, nil
}
