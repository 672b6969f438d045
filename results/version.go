package results

// Version identifies one committed state of the store. Versions grow monotonically.
type Version uint64

// RowID identifies one stored row across all versions.
type RowID int64

// ObjectHandle references one stored row as resolved against a version.
type ObjectHandle interface {
	ID() RowID
	Version() Version
	IsValid() bool
}

// Backend is the store attachment a collection is bound to.
type Backend[H ObjectHandle] interface {
	IsOpen() bool
	// Version returns the currently attached version.
	Version() Version
	InWriteTransaction() bool
	Resolve(id RowID, v Version) (H, error)
	// DeleteRow is legal only inside a write transaction.
	DeleteRow(id RowID) error
}

// Evaluator produces the ordered row identifiers matching a query at a given version.
type Evaluator interface {
	Evaluate(v Version) ([]RowID, error)
}
