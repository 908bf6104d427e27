package conn

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

func (d *DB) logStatement(query string, args []any, dur time.Duration, err error) {
	slow := d.cfg.SlowQuery > 0 && dur >= d.cfg.SlowQuery
	if !d.cfg.LogSQL && !slow {
		return
	}

	attrs := []any{"sql", truncateSQL(query, maxLogSQLLen), "dur", dur}
	if d.cfg.LogArgs {
		attrs = append(attrs, "args", formatArgs(args))
	} else {
		attrs = append(attrs, "argc", len(args))
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}

	if slow {
		d.log.Warn("slow query", attrs...)
		return
	}
	d.log.Info("query", attrs...)
}

const (
	maxLogSQLLen    = 2048
	maxLogArgsItems = 20
	maxLogArgsLen   = 512
)

func truncateSQL(sql string, maxLen int) string {
	if len(sql) <= maxLen {
		return sql
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(sql[cut]) {
		cut--
	}
	return sql[:cut] + "…"
}

func formatArgs(args []any) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < len(args) && i < maxLogArgsItems; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatArg(args[i]))
		if b.Len() > maxLogArgsLen {
			b.WriteString("…")
			break
		}
	}
	if len(args) > maxLogArgsItems {
		b.WriteString(", …")
	}
	b.WriteByte(']')
	return b.String()
}

// formatArg keeps numbers and booleans and hides the content of everything
// that may carry user data.
func formatArg(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("redacted(len=%d)", len(x))
	case []byte:
		return fmt.Sprintf("bytes(len=%d)", len(x))
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", v)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%T(redacted)", v)
	}
}
