package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fulldump/versiondb/results"
	"github.com/fulldump/versiondb/utils"
)

// Store keeps every committed revision of every row in memory. Attachments read it at
// the version they are attached to.
type Store struct {
	mutex   *sync.RWMutex
	tables  map[string]*Table
	rows    map[results.RowID]*Row
	latest  results.Version
	lastID  results.RowID
	writer  *Attachment
	commits []Commit
}

type Commit struct {
	Uuid       string          `json:"uuid"`
	Timestamp  int64           `json:"timestamp"`
	Version    results.Version `json:"version"`
	Attachment string          `json:"attachment"`
	Inserted   int             `json:"inserted"`
	Updated    int             `json:"updated"`
	Deleted    int             `json:"deleted"`
}

func New() *Store {
	return &Store{
		mutex:  &sync.RWMutex{},
		tables: map[string]*Table{},
		rows:   map[results.RowID]*Row{},
		latest: 1,
	}
}

// Attach returns a new attachment on the latest committed version.
func (s *Store) Attach() *Attachment {
	return &Attachment{
		id:      uuid.NewString(),
		store:   s,
		open:    true,
		version: s.Latest(),
	}
}

func (s *Store) Latest() results.Version {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.latest
}

func (s *Store) Commits() []Commit {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]Commit{}, s.commits...)
}

func (s *Store) Tables() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return utils.GetKeys(s.tables)
}

// newRow allocates a row without revisions, invisible until its creation is committed.
// Must be called with the write lock held.
func (s *Store) newRow(tableName string) *Row {
	table, exists := s.tables[tableName]
	if !exists {
		table = newTable(tableName)
		s.tables[tableName] = table
	}

	s.lastID++
	row := &Row{
		ID:    s.lastID,
		Table: tableName,
	}
	table.rows.ReplaceOrInsert(row)
	s.rows[row.ID] = row

	return row
}

// dropRow must be called with the write lock held.
func (s *Store) dropRow(row *Row) {
	if table, exists := s.tables[row.Table]; exists {
		table.rows.Delete(row)
	}
	delete(s.rows, row.ID)
}
