package database

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestDatabase_Lifecycle(t *testing.T) {

	db := NewDatabase(&Config{})
	biff.AssertEqual(db.GetStatus(), StatusOpening)

	biff.AssertNil(db.Load())
	biff.AssertEqual(db.GetStatus(), StatusOperating)
	biff.AssertTrue(db.Attachment().IsOpen())

	biff.AssertNil(db.Stop())
	biff.AssertEqual(db.GetStatus(), StatusClosing)
	biff.AssertFalse(db.Attachment().IsOpen())
}

func TestDatabase_Populate(t *testing.T) {

	db := NewDatabase(&Config{
		Populate: map[string][]map[string]any{
			"people": {
				{"name": "Fulanez"},
				{"name": "Menganez"},
			},
		},
	})
	biff.AssertNil(db.Load())

	c, err := db.Attachment().All("people")
	biff.AssertNil(err)

	size, err := c.Size()
	biff.AssertNil(err)
	biff.AssertEqual(size, 2)
	biff.AssertEqual(len(db.Store().Commits()), 1)
}
