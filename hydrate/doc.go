// Package hydrate defines the capability application types implement to be
// built from result rows, and the registry used to resolve them by name.
//
// # Basic Usage
//
// To use this package, implement the Loader interface for your struct type:
//
//	type User struct {
//	    ID   int64
//	    Name string
//	    Age  int
//	}
//
//	func (u *User) LoadFromRow(r *row.Row) error {
//	    return hydrate.Bind(r, map[string]any{
//	        "id":   &u.ID,
//	        "name": &u.Name,
//	        "age":  &u.Age,
//	    })
//	}
//
// The row carries the driver's raw values. Bind converts them with weak
// typing, so text "42" fills an int64 and a date string fills a time.Time.
//
// # Struct Decoding
//
// Types with many columns can decode the whole row through struct tags:
//
//	type Order struct {
//	    ID        int64     `db:"id"`
//	    CreatedAt time.Time `db:"created_at"`
//	}
//
//	func (o *Order) LoadFromRow(r *row.Row) error {
//	    return hydrate.Decode(r, o)
//	}
//
// # Registry
//
// Results that carry the class of each row in a column resolve it through a
// Registry:
//
//	reg := hydrate.NewRegistry()
//	hydrate.Register[Cat](reg, "Cat")
//	hydrate.Register[Dog](reg, "Dog")
//
//	animal, err := reg.New("Cat")
//
// Register checks the Loader capability at compile time. Add accepts any
// value and defers the check to New, which then fails with ErrNotHydratable.
// Unregistered names fail with ErrUnknownClass.
//
// # Serialization
//
// Hydrated objects that implement Serializer control their own structured
// form when a whole result is serialized; other objects are emitted as is.
package hydrate
