package resolver

import (
	"errors"
	"fmt"
)

// ErrPostInsertMissing signals the invariant breach in spec.md §4.5 step 5:
// the SELECT issued right after a successful INSERT IGNORE still returned
// no row.
var ErrPostInsertMissing = errors.New("SEED_ID_SELECT_AFTER_INSERT_FAIL")

// DatabaseError wraps any failure from the backing store. Network-level
// failures are neither retried nor circuit-broken at this layer; they
// simply propagate as a DatabaseError.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("resolver: %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
