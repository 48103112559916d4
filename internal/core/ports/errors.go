package ports

import "errors"

var (
	// ErrCapacityConflict means a conditional capacity increment matched no
	// row: the courier filled up, went offline or was deactivated after it was
	// read. The dispatch engine retries candidate selection from scratch.
	ErrCapacityConflict = errors.New("courier capacity conflict")

	// ErrOrderStateConflict means the order row no longer matched the state it
	// was read in (cancelled, already assigned by a parallel call). It is a
	// soft failure and is never retried automatically.
	ErrOrderStateConflict = errors.New("order state conflict")

	// ErrStorageUnavailable wraps driver failures and timeouts. Callers may
	// retry later.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
