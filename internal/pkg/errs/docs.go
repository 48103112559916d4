// Package errs provides the typed errors shared by the dispatch domain.
//
// Each error type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound) with a struct carrying the offending
// parameter and an optional cause. Error() formats a single-line message and
// Unwrap() returns the sentinel, so errors.Is works across layers:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return c.JSON(http.StatusNotFound, ...)
//	}
package errs
