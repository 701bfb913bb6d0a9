// Package errors provides classified error primitives used across the portfolio tooling.
//
// A ClassifiedError carries a category and a severity next to the message and the
// wrapped cause. The CLI adapter turns categories into process exit codes, so a
// resolution miss surfaces as a "not found" exit instead of a generic failure.
//
// Example usage:
//
//	err := errors.NotFoundError("post not found").
//		WithContext("slug", slug).
//		WithCause(content.ErrNotFound).
//		Build()
package errors
