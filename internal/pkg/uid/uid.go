// Package uid provides identifier generators behind small interfaces so
// callers can swap deterministic fakes in tests.
package uid

// NumberID generates numeric identifiers, typically for database rows.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers, typically for tokens and
// correlation ids.
type StringID interface {
	Generate() string
}
