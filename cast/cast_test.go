package cast

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlimpid/sqlrows/row"
)

func TestRuleCaster_DefaultRules(t *testing.T) {
	c := New()
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		field string
		raw   any
		want  any
	}{
		{name: "id from text", field: "id", raw: "1", want: int64(1)},
		{name: "id from bytes", field: "id", raw: []byte("42"), want: int64(42)},
		{name: "id null", field: "id", raw: nil, want: nil},
		{name: "row_count", field: "row_count", raw: "7", want: int64(7)},
		{name: "foreign key", field: "user_id", raw: "12", want: int64(12)},
		{name: "foreign key from int64", field: "user_id", raw: int64(12), want: int64(12)},
		{name: "foreign key null", field: "user_id", raw: nil, want: nil},
		{name: "foreign key decimal text", field: "user_id", raw: "3.0", want: int64(3)},
		{name: "flag true", field: "is_active", raw: "1", want: true},
		{name: "flag false", field: "is_active", raw: "0", want: false},
		{name: "flag from int", field: "is_active", raw: int64(1), want: true},
		{name: "flag null", field: "is_active", raw: nil, want: nil},
		{name: "flag empty text", field: "is_active", raw: "", want: false},
		{name: "created date", field: "created_at", raw: "2020-01-01", want: day},
		{name: "created datetime", field: "created_at", raw: "2020-01-01 10:30:00",
			want: time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC)},
		{name: "created rfc3339", field: "created_at", raw: "2020-01-01T10:30:00Z",
			want: time.Date(2020, 1, 1, 10, 30, 0, 0, time.UTC)},
		{name: "created null", field: "created_at", raw: nil, want: nil},
		{name: "created zero date", field: "created_at", raw: "0000-00-00 00:00:00", want: nil},
		{name: "published on", field: "published_on", raw: []byte("2020-01-01"), want: day},
		{name: "timestamp passthrough", field: "updated_at", raw: day, want: day},
		{name: "unix seconds", field: "updated_at", raw: int64(1577836800), want: day},
		{name: "no rule text", field: "name", raw: "A", want: "A"},
		{name: "no rule null", field: "name", raw: nil, want: nil},
		{name: "no rule keeps numeric text", field: "idx", raw: "5", want: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Cast(tt.field, tt.raw)
			require.NoError(t, err)
			if want, ok := tt.want.(time.Time); ok {
				gotTime, isTime := got.(time.Time)
				require.True(t, isTime, "got %T", got)
				assert.True(t, want.Equal(gotTime), "want %v got %v", want, gotTime)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleCaster_FirstMatchWins(t *testing.T) {
	// "is_parent_id" matches both *_id and is_*; *_id comes first.
	got, err := New().Cast("is_parent_id", "9")
	require.NoError(t, err)
	assert.Equal(t, int64(9), got)
}

func TestRuleCaster_Errors(t *testing.T) {
	c := New()

	_, err := c.Cast("user_id", "abc")
	require.Error(t, err)
	var castErr *Error
	require.True(t, errors.As(err, &castErr))
	assert.Equal(t, "user_id", castErr.Field)
	assert.ErrorIs(t, err, ErrUnparsable)

	_, err = c.Cast("created_at", "not a date")
	assert.ErrorIs(t, err, ErrUnparsable)

	_, err = c.Cast("id", struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	outOfRange := []any{
		"99999999999999999999",
		"-99999999999999999999",
		"1e30",
		[]byte("9223372036854775808"),
		1e30,
		-1e30,
		float64(1 << 63),
		math.Inf(1),
		math.Inf(-1),
		math.NaN(),
		uint64(math.MaxUint64),
		2.5,
		"",
	}
	for _, raw := range outOfRange {
		got, err := c.Cast("user_id", raw)
		assert.ErrorIs(t, err, ErrUnparsable, "raw %#v", raw)
		assert.Nil(t, got, "raw %#v", raw)
	}
}

func TestToInt_Bounds(t *testing.T) {
	tests := []struct {
		raw  any
		want int64
	}{
		{raw: "9223372036854775807", want: math.MaxInt64},
		{raw: "-9223372036854775808", want: math.MinInt64},
		{raw: float64(-1 << 63), want: math.MinInt64},
		{raw: uint64(math.MaxInt64), want: math.MaxInt64},
		{raw: "007", want: 7},
		{raw: "-010", want: -10},
		{raw: " 42 ", want: 42},
		{raw: "0", want: 0},
		{raw: true, want: 1},
	}
	for _, tt := range tests {
		got, err := ToInt(tt.raw)
		require.NoError(t, err, "raw %#v", tt.raw)
		assert.Equal(t, tt.want, got, "raw %#v", tt.raw)
	}
}

func TestRuleCaster_Overrides(t *testing.T) {
	c := New(
		WithOverride("id", func(raw any, _ *time.Location) (any, error) {
			return "override", nil
		}),
		WithOverride("price", func(raw any, _ *time.Location) (any, error) {
			return ToFloat(raw)
		}),
	)

	got, err := c.Cast("id", "1")
	require.NoError(t, err)
	assert.Equal(t, "override", got)

	got, err = c.Cast("price", "9.5")
	require.NoError(t, err)
	assert.Equal(t, 9.5, got)

	// Overrides apply to exact names only.
	got, err = c.Cast("user_id", "2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestRuleCaster_RuleLists(t *testing.T) {
	prepended := New(PrependRules(UUIDRule(), FloatRule("_amount")))
	id := uuid.New()

	got, err := prepended.Cast("owner_uuid", id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = prepended.Cast("owner_uuid", id[:])
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = prepended.Cast("total_amount", "1.25")
	require.NoError(t, err)
	assert.Equal(t, 1.25, got)

	assert.Len(t, prepended.Rules(), len(DefaultRules())+2)

	replaced := New(WithRules(FloatRule("_amount")))
	got, err = replaced.Cast("id", "1")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestRuleCaster_Location(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got, err := New(WithLocation(loc)).Cast("created_at", "2020-01-01 02:00:00")
	require.NoError(t, err)
	assert.True(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Equal(got.(time.Time)))
}

func TestRuleCaster_CastRow(t *testing.T) {
	r := row.New(
		[]string{"id", "name", "is_active", "created_at"},
		[]any{"1", "A", "1", "2020-01-01"},
	)
	require.NoError(t, New().CastRow(r))

	assert.Equal(t, []string{"id", "name", "is_active", "created_at"}, r.Columns())
	assert.Equal(t, int64(1), r.Value("id"))
	assert.Equal(t, "A", r.Value("name"))
	assert.Equal(t, true, r.Value("is_active"))
	assert.IsType(t, time.Time{}, r.Value("created_at"))
}

func TestToBool(t *testing.T) {
	tests := []struct {
		raw  any
		want any
	}{
		{raw: "true", want: true},
		{raw: "false", want: false},
		{raw: "yes", want: true},
		{raw: "off", want: false},
		{raw: 0.0, want: false},
		{raw: int64(0), want: false},
		{raw: nil, want: nil},
	}
	for _, tt := range tests {
		got, err := ToBool(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "raw %#v", tt.raw)
	}
}
