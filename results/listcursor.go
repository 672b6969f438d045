package results

import "fmt"

// ListCursor is a Cursor that can also move backwards.
type ListCursor[H ObjectHandle] struct {
	*Cursor[H]
}

func (it *ListCursor[H]) HasPrevious() (bool, error) {
	if !it.collection.backend.IsOpen() {
		return false, ErrClosed
	}
	return it.position > 0, nil
}

func (it *ListCursor[H]) Previous() (H, error) {
	var zero H

	err := it.check()
	if err != nil {
		return zero, err
	}

	if it.position <= 0 {
		return zero, fmt.Errorf("%w: no element before index 0", ErrOutOfRange)
	}

	h, err := it.collection.Get(it.position - 1)
	if err != nil {
		return zero, err
	}

	it.position--
	it.last = it.position

	return h, nil
}

// PreviousIndex does not touch the store and keeps working after it is closed.
func (it *ListCursor[H]) PreviousIndex() int {
	return it.position - 1
}

// NextIndex does not touch the store and keeps working after it is closed.
func (it *ListCursor[H]) NextIndex() int {
	return it.position
}

func (it *ListCursor[H]) Set(value any) error {
	return ErrUnsupportedEdit
}

func (it *ListCursor[H]) Add(value any) error {
	return ErrUnsupportedEdit
}
