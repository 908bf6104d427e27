package conn

import (
	"database/sql"

	"go.uber.org/multierr"
	"golang.org/x/xerrors"

	"github.com/nlimpid/sqlrows/result"
)

// Buffer reads every remaining row into a MemorySet and closes rows. Driver
// byte slices are copied, so the set stays valid after the connection moves
// on to the next statement.
func Buffer(rows *sql.Rows) (*result.MemorySet, error) {
	return bufferRows(rows, 0)
}

func bufferRows(rows *sql.Rows, sizeHint int) (set *result.MemorySet, err error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = multierr.Append(err, xerrors.Errorf("failed to close rows: %w", cerr))
			set = nil
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, xerrors.Errorf("failed to get columns: %w", err)
	}

	data := make([][]any, 0, sizeHint)
	for rows.Next() {
		vals := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, xerrors.Errorf("failed to scan row: %w", err)
		}
		data = append(data, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Errorf("rows iteration error: %w", err)
	}

	return result.NewMemorySet(cols, data), nil
}
