// Package uid provides unique identifier generators used across the
// application. Numeric IDs are time-sortable snowflakes, string IDs are
// UUIDs.
package uid

// NumberID generates unique numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
