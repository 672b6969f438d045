package store

import (
	"fmt"
	"slices"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/versiondb/results"
)

// Attachment is a handle on the store pinned to one version. It moves to a newer version
// only on Refresh, which also re-evaluates every collection obtained from it. An
// attachment must be used from a single goroutine.
type Attachment struct {
	id          string
	store       *Store
	open        bool
	version     results.Version
	txn         *transaction
	collections []*results.Collection[*Object]
}

var _ results.Backend[*Object] = (*Attachment)(nil)

func (a *Attachment) ID() string {
	return a.id
}

func (a *Attachment) IsOpen() bool {
	return a.open
}

func (a *Attachment) Version() results.Version {
	return a.version
}

func (a *Attachment) InWriteTransaction() bool {
	return a.txn != nil
}

// Close is terminal. A pending write transaction is rolled back.
func (a *Attachment) Close() error {
	if !a.open {
		return nil
	}

	if a.txn != nil {
		a.store.mutex.Lock()
		a.txn.rollback(a.store)
		a.store.writer = nil
		a.store.mutex.Unlock()
		a.txn = nil
	}

	for _, c := range a.collections {
		c.Release()
	}
	a.collections = nil
	a.open = false

	return nil
}

func (a *Attachment) BeginWrite() error {
	if !a.open {
		return results.ErrClosed
	}

	if a.txn != nil {
		return ErrWriteInProgress
	}

	a.store.mutex.Lock()
	defer a.store.mutex.Unlock()

	if a.store.writer != nil {
		return ErrWriteLocked
	}

	a.store.writer = a
	a.txn = newTransaction()

	return nil
}

// Commit publishes the transaction as a new version. The attachment itself stays on its
// version until Refresh.
func (a *Attachment) Commit() (results.Version, error) {
	if !a.open {
		return 0, results.ErrClosed
	}

	if a.txn == nil {
		return 0, results.ErrNoWriteTransaction
	}

	a.store.mutex.Lock()
	commit := a.txn.apply(a.store, a.id)
	a.store.writer = nil
	a.store.mutex.Unlock()

	a.txn = nil

	return commit.Version, nil
}

// Cancel discards the transaction. Collections are re-evaluated because rows removed
// through them are back.
func (a *Attachment) Cancel() error {
	if !a.open {
		return results.ErrClosed
	}

	if a.txn == nil {
		return results.ErrNoWriteTransaction
	}

	a.store.mutex.Lock()
	a.txn.rollback(a.store)
	a.store.writer = nil
	a.store.mutex.Unlock()

	a.txn = nil

	return a.refreshCollections()
}

// Refresh moves the attachment to the latest committed version and re-evaluates every
// collection bound to it. Cursors created before become stale when the version moved.
func (a *Attachment) Refresh() (results.Version, error) {
	if !a.open {
		return 0, results.ErrClosed
	}

	if a.txn != nil {
		return 0, ErrWriteInProgress
	}

	a.version = a.store.Latest()

	return a.version, a.refreshCollections()
}

func (a *Attachment) refreshCollections() error {
	a.collections = slices.DeleteFunc(a.collections, func(c *results.Collection[*Object]) bool {
		return c.Released()
	})

	for _, c := range a.collections {
		err := c.Refresh()
		if err != nil {
			return fmt.Errorf("refresh collection: %w", err)
		}
	}

	return nil
}

// Find evaluates the query at the attached version. The collection follows the attachment
// on every Refresh until released.
func (a *Attachment) Find(q Query) (*results.Collection[*Object], error) {
	if !a.open {
		return nil, results.ErrClosed
	}

	c, err := results.New[*Object](a, &evaluator{attachment: a, query: q})
	if err != nil {
		return nil, err
	}

	a.collections = append(a.collections, c)

	return c, nil
}

// All returns every row of the table, sorted by the given fields.
func (a *Attachment) All(table string, sort ...string) (*results.Collection[*Object], error) {
	return a.Find(Query{
		Table: table,
		Sort:  sort,
	})
}

func (a *Attachment) Release(c *results.Collection[*Object]) {
	c.Release()
	a.collections = slices.DeleteFunc(a.collections, func(item *results.Collection[*Object]) bool {
		return item == c
	})
}

// Create inserts a new row in the table. doc must marshal to a JSON object.
func (a *Attachment) Create(table string, doc any) (*Object, error) {
	if !a.open {
		return nil, results.ErrClosed
	}

	if a.txn == nil {
		return nil, results.ErrNoWriteTransaction
	}

	payload, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	a.store.mutex.Lock()
	defer a.store.mutex.Unlock()

	row := a.store.newRow(table)
	a.txn.record(row, func(c *change) {
		c.created = true
		c.payload = payload
	})

	return &Object{
		attachment: a,
		row:        row,
		version:    a.version,
	}, nil
}

// Resolve never fails for a known row, the returned handle may already be invalid.
func (a *Attachment) Resolve(id results.RowID, v results.Version) (*Object, error) {
	if !a.open {
		return nil, results.ErrClosed
	}

	a.store.mutex.RLock()
	row, exists := a.store.rows[id]
	a.store.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}

	return &Object{
		attachment: a,
		row:        row,
		version:    v,
	}, nil
}

func (a *Attachment) DeleteRow(id results.RowID) error {
	if !a.open {
		return results.ErrClosed
	}

	if a.txn == nil {
		return results.ErrNoWriteTransaction
	}

	a.store.mutex.Lock()
	defer a.store.mutex.Unlock()

	row, exists := a.store.rows[id]
	if !exists {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}

	if _, alive := a.current(row); !alive {
		return fmt.Errorf("row %d: %w", id, results.ErrInvalidHandle)
	}

	a.txn.record(row, func(c *change) {
		c.deleted = true
		c.payload = nil
	})

	return nil
}

func (a *Attachment) update(row *Row, f func(doc map[string]any)) error {
	if !a.open {
		return results.ErrClosed
	}

	if a.txn == nil {
		return results.ErrNoWriteTransaction
	}

	a.store.mutex.Lock()
	defer a.store.mutex.Unlock()

	payload, alive := a.current(row)
	if !alive {
		return results.ErrInvalidHandle
	}

	doc, err := decodeDocument(payload)
	if err != nil {
		return err
	}
	f(doc)

	newPayload, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	a.txn.record(row, func(c *change) {
		c.payload = newPayload
	})

	return nil
}

// current returns the newest content of the row known to this attachment: its own
// pending change or else the latest committed revision. Must be called with the lock held.
func (a *Attachment) current(row *Row) (jsontext.Value, bool) {
	if a.txn != nil {
		if c, exists := a.txn.changes[row.ID]; exists {
			return c.payload, !c.deleted
		}
	}

	rev := row.latest()
	if rev == nil || rev.Deleted {
		return nil, false
	}

	return rev.Payload, true
}

// visible returns the content of the row as seen at version v plus this attachment's
// pending changes. Must be called with the lock held.
func (a *Attachment) visible(row *Row, v results.Version) (jsontext.Value, bool) {
	if a.txn != nil {
		if c, exists := a.txn.changes[row.ID]; exists {
			return c.payload, !c.deleted
		}
	}

	rev := row.at(v)
	if rev == nil || rev.Deleted {
		return nil, false
	}

	return rev.Payload, true
}

func encodeDocument(doc any) (jsontext.Value, error) {
	payload, err := json.Marshal(doc, json.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	if jsontext.Value(payload).Kind() != '{' {
		return nil, ErrNotDocument
	}

	return payload, nil
}

func decodeDocument(payload jsontext.Value) (map[string]any, error) {
	doc := map[string]any{}
	err := json.Unmarshal(payload, &doc)
	if err != nil {
		return nil, fmt.Errorf("json decode payload: %w", err)
	}
	return doc, nil
}
