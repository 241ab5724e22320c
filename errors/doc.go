// Package errors provides structured error types for the hierquery module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a detail message, an optional hierarchical path,
// the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseElaborate, errors.KindElaboration).
//		Path("top", "u_core").
//		Detail("definition %q not found", "work@core").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.SessionNotFound(id)
//	err := errors.Load(path, cause)
//
// The caller-facing taxonomy is exposed as sentinels that match on Kind:
//
//	errors.Is(err, errors.ErrLoad)
//	errors.Is(err, errors.ErrElaboration)
//	errors.Is(err, errors.ErrNotFound)
//	errors.Is(err, errors.ErrNotLoaded)
//	errors.Is(err, errors.ErrInvalidHandle)
package errors
