// Package conn runs statements on a database/sql handle and hands back
// buffered result views.
//
// # Basic Usage
//
// Register a driver, then open a handle from a Config:
//
//	import _ "github.com/mattn/go-sqlite3"
//
//	cfg, err := conn.LoadConfig("APP") // APP_DRIVER, APP_DSN, ...
//	if err != nil {
//	    return err
//	}
//	db, err := conn.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
// # Query Rows
//
// Query returns a *result.View. Zero rows give a nil view, which behaves as
// the empty result:
//
//	v, err := db.Query(ctx, "SELECT id, name, created_at FROM users WHERE id > ?", 10)
//	if err != nil {
//	    return err
//	}
//	defer v.Close()
//
//	for rec, err := range v.All() {
//	    if err != nil {
//	        return err
//	    }
//	    r := rec.(*row.Row) // id is an int64, created_at a time.Time
//	}
//
// Each closes the view when the callback returns:
//
//	err := db.Each(ctx, "SELECT * FROM animals", nil, func(v *result.View) error {
//	    pets, err := v.ToArrayIndexedBy("id")
//	    ...
//	}, result.WithField("type"))
//
// # Query Objects
//
//	users, err := conn.QueryObjects[User](ctx, db, "SELECT * FROM users")
//
// Row and Value fetch the first row and its first column, returning
// sql.ErrNoRows when there is none:
//
//	n, err := db.Value(ctx, "SELECT COUNT(*) AS row_count FROM users")
//
// # Buffering
//
// Result sets are read completely into memory before the view is returned, so
// a view never holds a driver cursor open. Drivers that stream rows lazily are
// still safe to use with several views at once. Use WithExpectedSize to
// pre-allocate the buffer for large results.
//
// # Logging
//
// Statements are logged through slog when Config.LogSQL is set, and
// statements slower than Config.SlowQuery are logged at warn level. String
// and byte arguments are logged by length only.
package conn
