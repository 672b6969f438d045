package store

import (
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/btree"

	"github.com/fulldump/versiondb/results"
)

type Row struct {
	ID    results.RowID
	Table string

	// revisions are ordered by version, a row is deleted for good once its last revision
	// is a deletion
	revisions []revision
}

type revision struct {
	Version results.Version
	Payload jsontext.Value
	Deleted bool
}

// Less returns true if the row is less than the other row.
// This is required for btree.Item interface.
func (r *Row) Less(than *Row) bool {
	return r.ID < than.ID
}

// at returns the newest revision visible at version v
func (r *Row) at(v results.Version) *revision {
	for i := len(r.revisions) - 1; i >= 0; i-- {
		if r.revisions[i].Version <= v {
			return &r.revisions[i]
		}
	}
	return nil
}

func (r *Row) latest() *revision {
	if len(r.revisions) == 0 {
		return nil
	}
	return &r.revisions[len(r.revisions)-1]
}

type Table struct {
	Name string
	rows *btree.BTreeG[*Row]
}

func newTable(name string) *Table {
	return &Table{
		Name: name,
		rows: btree.NewG(32, func(a, b *Row) bool { return a.Less(b) }),
	}
}

func (t *Table) Len() int {
	return t.rows.Len()
}
