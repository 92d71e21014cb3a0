// Package validator wraps struct validation behind a small interface.
//
// Callers depend on the Validator interface so validation stays consistent
// and testable; the concrete go-playground/validator v10 implementation
// lives alongside it.
package validator
