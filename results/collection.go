package results

import (
	"fmt"
	"iter"
	"slices"
)

// Collection is the ordered result of a query evaluated against the version its backend is
// attached to. The row sequence is frozen until Refresh, except for rows removed through
// the collection itself which disappear immediately.
type Collection[H ObjectHandle] struct {
	backend   Backend[H]
	evaluator Evaluator
	version   Version
	rows      []RowID
	released  bool
}

func New[H ObjectHandle](backend Backend[H], evaluator Evaluator) (*Collection[H], error) {
	c := &Collection[H]{
		backend:   backend,
		evaluator: evaluator,
	}

	err := c.Refresh()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Refresh re-evaluates the query against the currently attached version.
func (c *Collection[H]) Refresh() error {
	if !c.backend.IsOpen() {
		return ErrClosed
	}

	version := c.backend.Version()
	rows, err := c.evaluator.Evaluate(version)
	if err != nil {
		return fmt.Errorf("evaluate at version %d: %w", version, err)
	}

	c.version = version
	c.rows = rows

	return nil
}

func (c *Collection[H]) Version() Version {
	return c.version
}

func (c *Collection[H]) Size() (int, error) {
	if !c.backend.IsOpen() {
		return 0, ErrClosed
	}
	return len(c.rows), nil
}

func (c *Collection[H]) Get(i int) (H, error) {
	var zero H

	if !c.backend.IsOpen() {
		return zero, ErrClosed
	}

	if i < 0 || i >= len(c.rows) {
		return zero, fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, len(c.rows))
	}

	return c.backend.Resolve(c.rows[i], c.version)
}

// RemoveAt deletes the i-th row from the store and from this collection. The size shrinks
// right away, without waiting for a refresh.
func (c *Collection[H]) RemoveAt(i int) error {
	if !c.backend.IsOpen() {
		return ErrClosed
	}

	if !c.backend.InWriteTransaction() {
		return ErrNoWriteTransaction
	}

	if i < 0 || i >= len(c.rows) {
		return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, len(c.rows))
	}

	err := c.backend.DeleteRow(c.rows[i])
	if err != nil {
		return fmt.Errorf("delete row %d: %w", c.rows[i], err)
	}

	c.rows = slices.Delete(c.rows, i, i+1)

	return nil
}

// Release detaches the collection from its backend, which stops refreshing it.
func (c *Collection[H]) Release() {
	c.released = true
}

func (c *Collection[H]) Released() bool {
	return c.released
}

func (c *Collection[H]) Iterator() *Cursor[H] {
	return &Cursor[H]{
		collection: c,
		size:       len(c.rows),
		version:    c.version,
		last:       -1,
	}
}

func (c *Collection[H]) ListIterator() *ListCursor[H] {
	return &ListCursor[H]{Cursor: c.Iterator()}
}

// ListIteratorAt returns a bidirectional cursor whose next element is the one at index i.
func (c *Collection[H]) ListIteratorAt(i int) (*ListCursor[H], error) {
	size, err := c.Size()
	if err != nil {
		return nil, err
	}

	if i < 0 || i > size {
		return nil, fmt.Errorf("%w: start index %d, size %d", ErrOutOfRange, i, size)
	}

	it := c.ListIterator()
	it.position = i

	return it, nil
}

// All iterates the collection from the first element, stopping at the first error.
func (c *Collection[H]) All() iter.Seq2[H, error] {
	return func(yield func(H, error) bool) {
		it := c.Iterator()
		for {
			ok, err := it.HasNext()
			if err != nil {
				var zero H
				yield(zero, err)
				return
			}
			if !ok {
				return
			}

			h, err := it.Next()
			if !yield(h, err) || err != nil {
				return
			}
		}
	}
}
