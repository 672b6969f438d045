package apitablev1

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/versiondb/store"
)

type failingWriter struct {
	err error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func newObject() *store.Object {
	att := store.New().Attach()
	biff.AssertNil(att.BeginWrite())
	obj, err := att.Create("numbers", map[string]any{"n": 1})
	biff.AssertNil(err)
	_, err = att.Commit()
	biff.AssertNil(err)
	return obj
}

func TestWriteObject(t *testing.T) {
	buffer := &bytes.Buffer{}

	err := writeObject(buffer)(newObject())
	biff.AssertNil(err)
	biff.AssertEqual(buffer.String(), `{"n":1}`+"\n")
}

func TestWriteObject_WriteError(t *testing.T) {
	broken := errors.New("broken pipe")

	err := writeObject(&failingWriter{err: broken})(newObject())
	biff.AssertTrue(errors.Is(err, broken))
}
