package store

import (
	"testing"

	"github.com/fulldump/biff"
)

func names(att *Attachment, q Query) []string {
	c, err := att.Find(q)
	if err != nil {
		panic(err)
	}

	result := []string{}
	for obj, err := range c.All() {
		if err != nil {
			panic(err)
		}
		name, _ := obj.GetString("name")
		result = append(result, name)
	}
	return result
}

func TestQuery(t *testing.T) {
	biff.Alternative("Query", func(a *biff.A) {

		s := New()
		att := s.Attach()
		insertDocs(att, "people",
			map[string]any{"name": "Fulanez", "age": 30, "team": "blue"},
			map[string]any{"name": "Menganez", "age": 25, "team": "red"},
			map[string]any{"name": "Zutanez", "age": 40, "team": "blue"},
			map[string]any{"name": "Perenganez", "age": 25},
		)
		_, err := att.Refresh()
		biff.AssertNil(err)

		a.Alternative("Insertion order without sort", func(a *biff.A) {
			result := names(att, Query{Table: "people"})
			biff.AssertEqual(result, []string{"Fulanez", "Menganez", "Zutanez", "Perenganez"})
		})

		a.Alternative("Unknown table", func(a *biff.A) {
			result := names(att, Query{Table: "nobody"})
			biff.AssertEqual(result, []string{})
		})

		a.Alternative("Sort ascending with ties by id", func(a *biff.A) {
			result := names(att, Query{Table: "people", Sort: []string{"age"}})
			biff.AssertEqual(result, []string{"Menganez", "Perenganez", "Fulanez", "Zutanez"})
		})

		a.Alternative("Sort descending", func(a *biff.A) {
			result := names(att, Query{Table: "people", Sort: []string{"-age"}})
			biff.AssertEqual(result, []string{"Zutanez", "Fulanez", "Menganez", "Perenganez"})
		})

		a.Alternative("Sort by several fields", func(a *biff.A) {
			result := names(att, Query{Table: "people", Sort: []string{"age", "-name"}})
			biff.AssertEqual(result, []string{"Perenganez", "Menganez", "Fulanez", "Zutanez"})
		})

		a.Alternative("Missing field sorts first", func(a *biff.A) {
			result := names(att, Query{Table: "people", Sort: []string{"team"}})
			biff.AssertEqual(result, []string{"Perenganez", "Fulanez", "Zutanez", "Menganez"})
		})

		a.Alternative("Filter", func(a *biff.A) {
			result := names(att, Query{
				Table:  "people",
				Filter: map[string]any{"team": "blue"},
				Sort:   []string{"name"},
			})
			biff.AssertEqual(result, []string{"Fulanez", "Zutanez"})
		})

		a.Alternative("Filter with operator", func(a *biff.A) {
			result := names(att, Query{
				Table:  "people",
				Filter: map[string]any{"age": map[string]any{"$gt": 26}},
			})
			biff.AssertEqual(result, []string{"Fulanez", "Zutanez"})
		})

	})
}

func TestCompareValues(t *testing.T) {
	biff.AssertEqual(compareValues(nil, false), -1)
	biff.AssertEqual(compareValues(true, false), 1)
	biff.AssertEqual(compareValues(1.0, "1"), -1)
	biff.AssertEqual(compareValues("a", "b"), -1)
	biff.AssertEqual(compareValues(2.0, 2.0), 0)
	biff.AssertEqual(compareValues(map[string]any{}, []any{}), 0)
}
