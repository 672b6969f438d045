package store

import (
	"time"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"

	"github.com/fulldump/versiondb/results"
)

type transaction struct {
	uuid    string
	changes map[results.RowID]*change
	order   []results.RowID
}

type change struct {
	row     *Row
	payload jsontext.Value
	deleted bool
	created bool
}

func newTransaction() *transaction {
	return &transaction{
		uuid:    uuid.NewString(),
		changes: map[results.RowID]*change{},
	}
}

func (t *transaction) record(row *Row, f func(c *change)) {
	c, exists := t.changes[row.ID]
	if !exists {
		c = &change{row: row}
		t.changes[row.ID] = c
		t.order = append(t.order, row.ID)
	}
	f(c)
}

// apply publishes every pending change as a new version. Must be called with the write
// lock held.
func (t *transaction) apply(s *Store, attachment string) Commit {
	version := s.latest + 1

	commit := Commit{
		Uuid:       t.uuid,
		Timestamp:  time.Now().UnixNano(),
		Version:    version,
		Attachment: attachment,
	}

	for _, id := range t.order {
		c := t.changes[id]

		// rows created and deleted in the same transaction keep a tombstone, collections
		// evaluated during the transaction may still hold them
		c.row.revisions = append(c.row.revisions, revision{
			Version: version,
			Payload: c.payload,
			Deleted: c.deleted,
		})

		switch {
		case c.created && c.deleted:
		case c.deleted:
			commit.Deleted++
		case c.created:
			commit.Inserted++
		default:
			commit.Updated++
		}
	}

	s.latest = version
	s.commits = append(s.commits, commit)

	return commit
}

// rollback drops the rows created inside the transaction. Must be called with the write
// lock held.
func (t *transaction) rollback(s *Store) {
	for _, c := range t.changes {
		if c.created {
			s.dropRow(c.row)
		}
	}
}
