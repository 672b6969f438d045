package store

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/SierraSoftworks/connor"
	"github.com/google/btree"

	"github.com/fulldump/versiondb/results"
)

// Query selects rows from one table. Filter follows mongo-like conditions, Sort lists the
// fields to order by, a leading '-' means descending. Ties are ordered by row id.
type Query struct {
	Table  string         `json:"table"`
	Filter map[string]any `json:"filter"`
	Sort   []string       `json:"sort"`
}

type evaluator struct {
	attachment *Attachment
	query      Query
}

type sortedRow struct {
	id     results.RowID
	values []any
}

func (e *evaluator) Evaluate(v results.Version) ([]results.RowID, error) {
	a := e.attachment
	q := e.query

	a.store.mutex.RLock()
	defer a.store.mutex.RUnlock()

	ids := []results.RowID{}

	table, exists := a.store.tables[q.Table]
	if !exists {
		return ids, nil
	}

	hasFilter := len(q.Filter) > 0
	hasSort := len(q.Sort) > 0

	sorted := newSortTree(q.Sort)

	var err error
	table.rows.Ascend(func(row *Row) bool {
		payload, ok := a.visible(row, v)
		if !ok {
			return true
		}

		if !hasFilter && !hasSort {
			ids = append(ids, row.ID)
			return true
		}

		var doc map[string]any
		doc, err = decodeDocument(payload)
		if err != nil {
			return false
		}

		if hasFilter {
			var match bool
			match, err = connor.Match(q.Filter, doc)
			if err != nil {
				err = fmt.Errorf("match: %w", err)
				return false
			}
			if !match {
				return true
			}
		}

		if !hasSort {
			ids = append(ids, row.ID)
			return true
		}

		item := &sortedRow{id: row.ID}
		for _, field := range q.Sort {
			item.values = append(item.values, doc[strings.TrimPrefix(field, "-")])
		}
		sorted.ReplaceOrInsert(item)

		return true
	})
	if err != nil {
		return nil, err
	}

	if hasSort {
		sorted.Ascend(func(item *sortedRow) bool {
			ids = append(ids, item.id)
			return true
		})
	}

	return ids, nil
}

func newSortTree(fields []string) *btree.BTreeG[*sortedRow] {
	return btree.NewG(32, func(a, b *sortedRow) bool {
		for i, field := range fields {
			c := compareValues(a.values[i], b.values[i])
			if c == 0 {
				continue
			}
			if strings.HasPrefix(field, "-") {
				return c > 0
			}
			return c < 0
		}
		return a.id < b.id
	})
}

// compareValues orders null < bool < number < string. Objects and arrays compare equal.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch valA := a.(type) {
	case bool:
		valB := b.(bool)
		if valA == valB {
			return 0
		}
		if !valA {
			return -1
		}
		return 1
	case float64:
		return cmp.Compare(valA, b.(float64))
	case string:
		return cmp.Compare(valA, b.(string))
	}

	return 0
}

func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}
