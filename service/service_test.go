package service

import (
	"errors"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/versiondb/database"
	"github.com/fulldump/versiondb/results"
	"github.com/fulldump/versiondb/store"
)

func newTestService(config *Config) (*Service, *database.Database) {
	db := database.NewDatabase(&database.Config{})
	err := db.Load()
	if err != nil {
		panic(err)
	}
	return NewService(db, config), db
}

func collect(s *Service, table string, q FindQuery) []int64 {
	result := []int64{}
	err := s.Find(table, q, func(obj *store.Object) error {
		n, err := obj.GetInt("n")
		result = append(result, n)
		return err
	})
	if err != nil {
		panic(err)
	}
	return result
}

func TestService(t *testing.T) {
	biff.Alternative("Service", func(a *biff.A) {

		s, db := newTestService(&Config{FindLimit: 3, AutoRefresh: true})

		docs := []map[string]any{}
		for i := 0; i < 5; i++ {
			docs = append(docs, map[string]any{"n": i})
		}
		objects, err := s.Insert("numbers", docs)
		biff.AssertNil(err)
		biff.AssertEqual(len(objects), 5)

		a.Alternative("Default limit", func(a *biff.A) {
			result := collect(s, "numbers", FindQuery{Sort: []string{"n"}})
			biff.AssertEqual(result, []int64{0, 1, 2})
		})

		a.Alternative("Explicit limit", func(a *biff.A) {
			result := collect(s, "numbers", FindQuery{Sort: []string{"n"}, Limit: 10})
			biff.AssertEqual(result, []int64{0, 1, 2, 3, 4})
		})

		a.Alternative("Reverse with skip", func(a *biff.A) {
			result := collect(s, "numbers", FindQuery{Sort: []string{"n"}, Skip: 1, Reverse: true})
			biff.AssertEqual(result, []int64{3, 2, 1})
		})

		a.Alternative("Skip everything", func(a *biff.A) {
			result := collect(s, "numbers", FindQuery{Skip: 5})
			biff.AssertEqual(result, []int64{})
		})

		a.Alternative("Table not found", func(a *biff.A) {
			err := s.Find("nothing", FindQuery{}, func(obj *store.Object) error { return nil })
			biff.AssertTrue(errors.Is(err, ErrorTableNotFound))
		})

		a.Alternative("Remove", func(a *biff.A) {
			removed := []int64{}
			err := s.Remove("numbers", FindQuery{
				Filter: map[string]any{"n": map[string]any{"$gt": 1}},
				Limit:  10,
			}, func(obj *store.Object) error {
				n, _ := obj.GetInt("n")
				removed = append(removed, n)
				return nil
			})
			biff.AssertNil(err)
			biff.AssertEqual(removed, []int64{2, 3, 4})

			size, err := s.Size("numbers")
			biff.AssertNil(err)
			biff.AssertEqual(size, 2)
		})

		a.Alternative("Remove consecutive documents", func(a *biff.A) {
			removed := []int64{}
			err := s.Remove("numbers", FindQuery{Sort: []string{"n"}, Limit: 2}, func(obj *store.Object) error {
				n, _ := obj.GetInt("n")
				removed = append(removed, n)
				return nil
			})
			biff.AssertNil(err)
			biff.AssertEqual(removed, []int64{0, 1})

			result := collect(s, "numbers", FindQuery{Sort: []string{"n"}, Limit: 10})
			biff.AssertEqual(result, []int64{2, 3, 4})
		})

		a.Alternative("Remove everything", func(a *biff.A) {
			removed := []int64{}
			err := s.Remove("numbers", FindQuery{Sort: []string{"n"}, Limit: 10}, func(obj *store.Object) error {
				n, _ := obj.GetInt("n")
				removed = append(removed, n)
				return nil
			})
			biff.AssertNil(err)
			biff.AssertEqual(removed, []int64{0, 1, 2, 3, 4})

			size, err := s.Size("numbers")
			biff.AssertNil(err)
			biff.AssertEqual(size, 0)
		})

		a.Alternative("Remove backwards", func(a *biff.A) {
			removed := []int64{}
			err := s.Remove("numbers", FindQuery{Sort: []string{"n"}, Limit: 10, Reverse: true}, func(obj *store.Object) error {
				n, _ := obj.GetInt("n")
				removed = append(removed, n)
				return nil
			})
			biff.AssertNil(err)
			biff.AssertEqual(removed, []int64{4, 3, 2, 1, 0})

			size, err := s.Size("numbers")
			biff.AssertNil(err)
			biff.AssertEqual(size, 0)
		})

		a.Alternative("Remove stops on callback error", func(a *biff.A) {
			stop := errors.New("stop")
			count := 0
			err := s.Remove("numbers", FindQuery{}, func(obj *store.Object) error {
				count++
				if count == 2 {
					return stop
				}
				return nil
			})
			biff.AssertTrue(errors.Is(err, stop))

			// nothing was committed
			size, _ := s.Size("numbers")
			biff.AssertEqual(size, 5)
			biff.AssertFalse(db.Attachment().InWriteTransaction())
		})

		a.Alternative("Write locked by another attachment", func(a *biff.A) {
			other := db.Store().Attach()
			biff.AssertNil(other.BeginWrite())

			_, err := s.Insert("numbers", docs)
			biff.AssertTrue(errors.Is(err, store.ErrWriteLocked))

			err = s.Remove("numbers", FindQuery{}, func(obj *store.Object) error { return nil })
			biff.AssertTrue(errors.Is(err, store.ErrWriteLocked))

			biff.AssertNil(other.Close())

			_, err = s.Insert("numbers", docs)
			biff.AssertNil(err)
		})

		a.Alternative("Status", func(a *biff.A) {
			status, err := s.Status()
			biff.AssertNil(err)
			biff.AssertEqual(status.Version, results.Version(2))
			biff.AssertEqual(status.Latest, results.Version(2))
			biff.AssertEqual(status.Commits, 1)
			biff.AssertEqual(status.Tables, []TableStatus{{Name: "numbers", Size: 5}})
		})

	})
}

func TestService_ManualRefresh(t *testing.T) {

	s, db := newTestService(&Config{})

	_, err := s.Insert("numbers", []map[string]any{{"n": 1}})
	biff.AssertNil(err)

	size, err := s.Size("numbers")
	biff.AssertNil(err)
	biff.AssertEqual(size, 0)

	version, err := s.Refresh()
	biff.AssertNil(err)
	biff.AssertEqual(version, db.Store().Latest())

	size, err = s.Size("numbers")
	biff.AssertNil(err)
	biff.AssertEqual(size, 1)
}

func TestService_RemoveWithoutRefresh(t *testing.T) {

	s, _ := newTestService(&Config{})

	_, err := s.Insert("numbers", []map[string]any{{"n": 0}, {"n": 1}, {"n": 2}})
	biff.AssertNil(err)
	_, err = s.Refresh()
	biff.AssertNil(err)

	removed := []int64{}
	err = s.Remove("numbers", FindQuery{
		Filter: map[string]any{"n": map[string]any{"$lt": 2}},
		Sort:   []string{"n"},
	}, func(obj *store.Object) error {
		n, _ := obj.GetInt("n")
		removed = append(removed, n)
		return nil
	})
	biff.AssertNil(err)
	biff.AssertEqual(removed, []int64{0, 1})

	// deleted documents are still in the evaluated version but skipped
	result := collect(s, "numbers", FindQuery{Sort: []string{"n"}})
	biff.AssertEqual(result, []int64{2})

	removed = []int64{}
	err = s.Remove("numbers", FindQuery{Sort: []string{"n"}}, func(obj *store.Object) error {
		n, _ := obj.GetInt("n")
		removed = append(removed, n)
		return nil
	})
	biff.AssertNil(err)
	biff.AssertEqual(removed, []int64{2})

	_, err = s.Refresh()
	biff.AssertNil(err)

	size, err := s.Size("numbers")
	biff.AssertNil(err)
	biff.AssertEqual(size, 0)
}

func TestService_FindLimitSkipsDeleted(t *testing.T) {

	s, _ := newTestService(&Config{FindLimit: 2})

	_, err := s.Insert("numbers", []map[string]any{{"n": 0}, {"n": 1}, {"n": 2}, {"n": 3}})
	biff.AssertNil(err)
	_, err = s.Refresh()
	biff.AssertNil(err)

	err = s.Remove("numbers", FindQuery{Sort: []string{"n"}, Limit: 1}, func(obj *store.Object) error { return nil })
	biff.AssertNil(err)

	// the deleted document does not use up the limit
	result := collect(s, "numbers", FindQuery{Sort: []string{"n"}})
	biff.AssertEqual(result, []int64{1, 2})
}
