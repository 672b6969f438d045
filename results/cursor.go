package results

import "fmt"

// Cursor walks a collection forward. It captures the collection size and version when
// created; a refresh of the collection to another version makes it stale.
type Cursor[H ObjectHandle] struct {
	collection *Collection[H]
	size       int
	version    Version

	// position is the index of the next element to resolve
	position int
	// last is the index of the most recently returned element, -1 if none
	last int
}

// HasNext only looks at the captured size, so a stale cursor can still tell whether it
// is exhausted.
func (it *Cursor[H]) HasNext() (bool, error) {
	if !it.collection.backend.IsOpen() {
		return false, ErrClosed
	}
	return it.position < it.size, nil
}

func (it *Cursor[H]) Next() (H, error) {
	var zero H

	err := it.check()
	if err != nil {
		return zero, err
	}

	if it.position >= it.size {
		return zero, fmt.Errorf("%w: no element after index %d", ErrOutOfRange, it.position-1)
	}

	h, err := it.collection.Get(it.position)
	if err != nil {
		return zero, err
	}

	it.last = it.position
	it.position++

	return h, nil
}

// Remove deletes the element returned by the last call to Next (or Previous) from the
// store. The position is kept, so after Next the following element shifts into the
// removed slot and Next resolves the one after it.
func (it *Cursor[H]) Remove() error {
	if !it.collection.backend.IsOpen() {
		return ErrClosed
	}

	if !it.collection.backend.InWriteTransaction() {
		return ErrNoWriteTransaction
	}

	if it.last < 0 {
		return ErrNoElementReturned
	}

	err := it.check()
	if err != nil {
		return err
	}

	err = it.collection.RemoveAt(it.last)
	if err != nil {
		return err
	}

	it.size--
	if it.position > it.size {
		it.position = it.size
	}
	it.last = -1

	return nil
}

func (it *Cursor[H]) check() error {
	if !it.collection.backend.IsOpen() {
		return ErrClosed
	}

	if it.version != it.collection.version {
		return ErrConcurrentModification
	}

	return nil
}
