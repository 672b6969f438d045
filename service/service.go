package service

import (
	"fmt"
	"slices"
	"sync"

	"github.com/fulldump/versiondb/database"
	"github.com/fulldump/versiondb/results"
	"github.com/fulldump/versiondb/store"
)

type Config struct {
	FindLimit   int
	AutoRefresh bool
}

// Service runs every use case on the primary attachment of the database. Calls are
// serialized because an attachment belongs to a single context.
type Service struct {
	db     *database.Database
	config *Config
	mutex  *sync.Mutex
}

func NewService(db *database.Database, config *Config) *Service {
	if config == nil {
		config = &Config{}
	}
	return &Service{
		db:     db,
		config: config,
		mutex:  &sync.Mutex{},
	}
}

var _ Servicer = (*Service)(nil)

func (s *Service) Insert(table string, docs []map[string]any) ([]*store.Object, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	att := s.db.Attachment()

	err := att.BeginWrite()
	if err != nil {
		return nil, err
	}

	objects := make([]*store.Object, 0, len(docs))
	for _, doc := range docs {
		obj, err := att.Create(table, doc)
		if err != nil {
			att.Cancel()
			return nil, fmt.Errorf("insert into '%s': %w", table, err)
		}
		objects = append(objects, obj)
	}

	err = s.commit(att)
	if err != nil {
		return nil, err
	}

	return objects, nil
}

func (s *Service) Find(table string, q FindQuery, f func(obj *store.Object) error) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	att := s.db.Attachment()

	c, err := s.query(att, table, q)
	if err != nil {
		return err
	}
	defer att.Release(c)

	return s.traverse(c, q, func(it *results.ListCursor[*store.Object], obj *store.Object) error {
		return f(obj)
	})
}

// Remove deletes every document matched by the query in one write transaction. f is
// called before each deletion, while the document is still readable.
func (s *Service) Remove(table string, q FindQuery, f func(obj *store.Object) error) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	att := s.db.Attachment()

	c, err := s.query(att, table, q)
	if err != nil {
		return err
	}
	defer att.Release(c)

	err = att.BeginWrite()
	if err != nil {
		return err
	}

	err = s.traverse(c, q, func(it *results.ListCursor[*store.Object], obj *store.Object) error {
		err := f(obj)
		if err != nil {
			return err
		}

		before := it.NextIndex()
		err = it.Remove()
		if err != nil {
			return err
		}

		// the following document shifted into the removed slot
		if !q.Reverse && it.NextIndex() == before {
			_, err = it.Previous()
		}
		return err
	})
	if err != nil {
		att.Cancel()
		return err
	}

	return s.commit(att)
}

func (s *Service) Size(table string) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.size(s.db.Attachment(), table)
}

func (s *Service) Refresh() (results.Version, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.db.Attachment().Refresh()
}

func (s *Service) Status() (*Status, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	att := s.db.Attachment()
	st := s.db.Store()

	status := &Status{
		Attachment: att.ID(),
		Version:    att.Version(),
		Latest:     st.Latest(),
		Commits:    len(st.Commits()),
		Tables:     []TableStatus{},
	}

	for _, name := range st.Tables() {
		size, err := s.size(att, name)
		if err != nil {
			return nil, err
		}
		status.Tables = append(status.Tables, TableStatus{
			Name: name,
			Size: size,
		})
	}

	return status, nil
}

func (s *Service) size(att *store.Attachment, table string) (int, error) {
	c, err := att.All(table)
	if err != nil {
		return 0, err
	}
	defer att.Release(c)

	return c.Size()
}

func (s *Service) query(att *store.Attachment, table string, q FindQuery) (*results.Collection[*store.Object], error) {
	if !slices.Contains(s.db.Store().Tables(), table) {
		return nil, ErrorTableNotFound
	}

	return att.Find(store.Query{
		Table:  table,
		Filter: q.Filter,
		Sort:   q.Sort,
	})
}

// traverse walks the collection from Skip, forward or backwards, up to Limit elements.
// Documents deleted after the collection was evaluated are skipped and not counted.
func (s *Service) traverse(c *results.Collection[*store.Object], q FindQuery, f func(it *results.ListCursor[*store.Object], obj *store.Object) error) error {
	size, err := c.Size()
	if err != nil {
		return err
	}

	if q.Skip > size {
		return nil
	}

	start := q.Skip
	if q.Reverse {
		start = size - q.Skip
	}

	it, err := c.ListIteratorAt(start)
	if err != nil {
		return err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.config.FindLimit
	}

	for n := 0; limit <= 0 || n < limit; {
		var more bool
		if q.Reverse {
			more, err = it.HasPrevious()
		} else {
			more, err = it.HasNext()
		}
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		var obj *store.Object
		if q.Reverse {
			obj, err = it.Previous()
		} else {
			obj, err = it.Next()
		}
		if err != nil {
			return err
		}

		if !obj.IsValid() {
			continue
		}

		err = f(it, obj)
		if err != nil {
			return err
		}
		n++
	}

	return nil
}

func (s *Service) commit(att *store.Attachment) error {
	_, err := att.Commit()
	if err != nil {
		return err
	}

	if !s.config.AutoRefresh {
		return nil
	}

	_, err = att.Refresh()
	return err
}
