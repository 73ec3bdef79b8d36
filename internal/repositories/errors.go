// Package repositories defines the data-access interfaces and the error
// taxonomy shared by every store-backed layer. The sentinel values let the
// service layer distinguish retryable transaction conflicts from terminal
// failures without knowing which store implementation is underneath.
package repositories

import "errors"

// ErrNotFound is returned when a document does not exist. Repositories map
// their driver's not-found condition onto this value.
var ErrNotFound = errors.New("not found")

// ErrTransactionConflict is returned when a transaction could not commit
// because of concurrent modification. The caller may retry with fresh reads.
var ErrTransactionConflict = errors.New("transaction conflict")

// ErrUnavailable is returned when the store cannot be reached, or when a
// retryable conflict persisted past the retry budget.
var ErrUnavailable = errors.New("store unavailable")
