package streams

import "errors"

var (
	// ErrNoStartID and ErrNoEndID flag a summary pending reply whose
	// count is non-zero but whose id boundary came back null. The
	// server guarantees both boundaries whenever anything is pending,
	// so these indicate an illegal reply state, not a shape mismatch.
	ErrNoStartID = errors.New("non-zero pending count without a start id")
	ErrNoEndID   = errors.New("non-zero pending count without an end id")
)
