package results

import "errors"

var (
	// ErrClosed is returned by any store-touching operation once the attachment is closed.
	ErrClosed = errors.New("results: store is closed")

	// ErrConcurrentModification is returned when a cursor is used after its collection was
	// refreshed to a version other than the one captured by the cursor.
	ErrConcurrentModification = errors.New("results: collection modified since the cursor was created")

	// ErrNoWriteTransaction is returned by structural removals attempted outside a write
	// transaction.
	ErrNoWriteTransaction = errors.New("results: no write transaction in progress")

	// ErrNoElementReturned is returned by Remove when Next or Previous was not called since
	// the cursor was created or since the last removal.
	ErrNoElementReturned = errors.New("results: no element to remove")

	// ErrOutOfRange is returned for indexes outside [0, size) on direct access, outside
	// [0, size] when building a cursor, and by cursors moved past either end.
	ErrOutOfRange = errors.New("results: index out of range")

	// ErrUnsupportedEdit is returned by every attempt to set or insert through a cursor.
	// Objects are created and updated through the store.
	ErrUnsupportedEdit = errors.New("results: collection is a query projection and cannot be edited")

	// ErrInvalidHandle is returned by field access on a handle whose row was deleted.
	ErrInvalidHandle = errors.New("results: object is no longer valid")
)
