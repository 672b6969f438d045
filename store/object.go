package store

import (
	"fmt"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/versiondb/results"
)

// Object is a live handle on a row. Its content is read from the store on every access.
type Object struct {
	attachment *Attachment
	row        *Row
	version    results.Version
}

var _ results.ObjectHandle = (*Object)(nil)

func (o *Object) ID() results.RowID {
	return o.row.ID
}

func (o *Object) Version() results.Version {
	return o.version
}

func (o *Object) Table() string {
	return o.row.Table
}

// IsValid is false once the row is deleted, either committed or pending in the
// attachment's own write transaction, or once the attachment is closed.
func (o *Object) IsValid() bool {
	_, err := o.Payload()
	return err == nil
}

func (o *Object) Payload() (jsontext.Value, error) {
	if !o.attachment.IsOpen() {
		return nil, results.ErrClosed
	}

	o.attachment.store.mutex.RLock()
	payload, alive := o.attachment.current(o.row)
	o.attachment.store.mutex.RUnlock()

	if !alive {
		return nil, fmt.Errorf("row %d: %w", o.row.ID, results.ErrInvalidHandle)
	}

	return payload, nil
}

func (o *Object) Decode(v any) error {
	payload, err := o.Payload()
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, v)
}

func (o *Object) Get(field string) (any, error) {
	payload, err := o.Payload()
	if err != nil {
		return nil, err
	}

	doc, err := decodeDocument(payload)
	if err != nil {
		return nil, err
	}

	value, exists := doc[field]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrFieldNotFound, field)
	}

	return value, nil
}

func (o *Object) GetInt(field string) (int64, error) {
	f, err := o.GetFloat(field)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func (o *Object) GetFloat(field string) (float64, error) {
	return getAs[float64](o, field)
}

func (o *Object) GetString(field string) (string, error) {
	return getAs[string](o, field)
}

func (o *Object) GetBool(field string) (bool, error) {
	return getAs[bool](o, field)
}

func getAs[T any](o *Object, field string) (T, error) {
	var zero T

	value, err := o.Get(field)
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: '%s' is %T", ErrFieldType, field, value)
	}

	return typed, nil
}

// Set changes one field of the row inside the current write transaction.
func (o *Object) Set(field string, value any) error {
	return o.attachment.update(o.row, func(doc map[string]any) {
		doc[field] = value
	})
}

// Remove deletes the row from the store. Collections holding the row keep their size until
// the next refresh, the row is just seen as invalid.
func (o *Object) Remove() error {
	return o.attachment.DeleteRow(o.row.ID)
}
