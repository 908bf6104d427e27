package conn

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
)

type handler func(query string, args []driver.NamedValue) (cols []string, rows [][]driver.Value, err error)

type testConnector struct {
	h handler
}

func (c *testConnector) Connect(context.Context) (driver.Conn, error) { return &testConn{h: c.h}, nil }
func (c *testConnector) Driver() driver.Driver                        { return testDriver{} }

type testDriver struct{}

func (testDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("testDriver.Open should not be called; use sql.OpenDB with connector")
}

type testConn struct {
	h handler
}

func (c *testConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *testConn) Close() error                        { return nil }
func (c *testConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

func (c *testConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	cols, data, err := c.h(query, args)
	if err != nil {
		return nil, err
	}
	return &testRows{cols: cols, data: data}, nil
}

type testRows struct {
	cols    []string
	data    [][]driver.Value
	i       int
	nextErr error
}

func (r *testRows) Columns() []string { return append([]string(nil), r.cols...) }
func (r *testRows) Close() error      { return nil }
func (r *testRows) Next(dest []driver.Value) error {
	if r.i >= len(r.data) {
		if r.nextErr != nil {
			return r.nextErr
		}
		return io.EOF
	}
	row := r.data[r.i]
	for i := range dest {
		if i < len(row) {
			dest[i] = row[i]
		} else {
			dest[i] = nil
		}
	}
	r.i++
	return nil
}

var errDriverNext = errors.New("driver next error")

func newTestDB(t *testing.T, h handler) *sql.DB {
	t.Helper()
	db := sql.OpenDB(&testConnector{h: h})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newErrNextDB(t *testing.T) *sql.DB {
	t.Helper()
	db := sql.OpenDB(&failingConnector{})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// failingConnector yields one row and then fails, which database/sql reports
// through rows.Err.
type failingConnector struct{}

func (c *failingConnector) Connect(context.Context) (driver.Conn, error) { return &failingConn{}, nil }
func (c *failingConnector) Driver() driver.Driver                        { return testDriver{} }

type failingConn struct{ testConn }

func (c *failingConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	return &testRows{
		cols:    []string{"a"},
		data:    [][]driver.Value{{int64(1)}},
		nextErr: errDriverNext,
	}, nil
}
