package results_test

import (
	"fmt"

	"github.com/fulldump/versiondb/results"
	"github.com/fulldump/versiondb/store"
)

const testSize = 10

type Results = results.Collection[*store.Object]

// Environment opens a store with testSize rows whose field "long" goes from 0 to
// testSize-1 and queries them sorted by that field.
func Environment(f func(att *store.Attachment, res *Results)) {
	s := store.New()
	att := s.Attach()
	defer att.Close()

	populate(att, testSize)

	res, err := att.All("AllTypes", "long")
	if err != nil {
		panic(err)
	}

	f(att, res)
}

func populate(att *store.Attachment, n int) {
	err := att.BeginWrite()
	if err != nil {
		panic(err)
	}
	// inserted in reverse order so that sorting is exercised
	for i := n - 1; i >= 0; i-- {
		_, err := att.Create("AllTypes", map[string]any{
			"bool":   i%3 == 0,
			"float":  1.234567 + float64(i),
			"string": fmt.Sprintf("test data %d", i),
			"long":   i,
		})
		if err != nil {
			panic(err)
		}
	}
	_, err = att.Commit()
	if err != nil {
		panic(err)
	}
	_, err = att.Refresh()
	if err != nil {
		panic(err)
	}
}

func insertLong(att *store.Attachment, value int) {
	err := att.BeginWrite()
	if err != nil {
		panic(err)
	}
	_, err = att.Create("AllTypes", map[string]any{"long": value})
	if err != nil {
		panic(err)
	}
	_, err = att.Commit()
	if err != nil {
		panic(err)
	}
}

func long(o *store.Object) int64 {
	v, err := o.GetInt("long")
	if err != nil {
		panic(err)
	}
	return v
}
