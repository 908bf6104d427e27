// Package result exposes driver result sets as lazily materialized,
// seekable, read-only collections.
//
// # Return modes
//
// Every row is materialized when it is fetched, according to the Mode:
//
//   - Array: the row is copied and every value goes through a cast.Caster,
//     so "1" in an id column becomes int64(1). Records are *row.Row.
//   - ObjectByClass: a new value of one type is hydrated from the raw row
//     through hydrate.Loader. Casting is left to the type.
//   - ObjectByField: like ObjectByClass, but the class name is read from a
//     column of each row and resolved through a hydrate.Registry. A row
//     whose class cannot be resolved fails with ErrClassNotHydratable
//     while the rows before it stay valid.
//
// # Usage
//
//	view, err := result.New(raw, result.WithField("type"), result.WithRegistry(reg))
//	if err != nil {
//	    return err
//	}
//	defer view.Close()
//
//	for rec, err := range view.All() {
//	    if err != nil {
//	        return err
//	    }
//	    switch a := rec.(type) {
//	    case *Cat:
//	        a.Purr()
//	    case *Dog:
//	        a.Bark()
//	    }
//	}
//
// # Cursor state
//
// A View shares one cursor between all of its access paths. All seeks to the
// first row at the start of every pass, Get seeks to the requested index, and
// ToArray continues from wherever the cursor stands. Seeking outside
// [0, Count()) is reported as false rather than as an error.
//
// # Lifetime
//
// The raw set is released exactly once, by Close (or Cursor.Free). Operations
// after that fail with ErrResourceClosed, except Count and further Close
// calls. A cursor that becomes unreachable without being freed is released
// by a runtime cleanup and logged, but callers should not rely on it.
//
// Drivers that stream results allow a single unconsumed result per
// connection. Buffered sets such as MemorySet do not hold the connection.
package result
