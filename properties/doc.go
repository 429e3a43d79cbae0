// Package properties provides the dynamic value model used for extension data
// on every management API entity.
//
// A Value is a JSON-shaped tagged union: null, bool, number, string, array or
// object. Objects are held in a Properties store, an ordered string-keyed map
// that keeps insertion order so entities serialize the same way every time.
//
// # Conversions
//
// Going from a Go value to a Value never fails:
//
//	props := properties.New().
//		Set("name", "weather-feed").
//		Set("version", 3).
//		Set("tags", []string{"open", "hourly"})
//
// Going back is checked at the call site. The store has no schema; the type
// argument decides how the stored value is read:
//
//	version, ok, err := properties.Get[int](props, "version")
//
// An absent key reports ok == false with a nil error. A present key whose
// value has the wrong shape, or a number that does not fit the requested type,
// reports a *ConversionError. Raw returns the stored Value untouched.
//
// Domain types take part in conversions by implementing Marshaler and
// Unmarshaler.
package properties
