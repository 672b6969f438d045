package service

import (
	"errors"

	"github.com/fulldump/versiondb/results"
	"github.com/fulldump/versiondb/store"
)

var ErrorTableNotFound = errors.New("table not found")

type FindQuery struct {
	Filter  map[string]any `json:"filter"`
	Sort    []string       `json:"sort"`
	Skip    int            `json:"skip"`
	Limit   int            `json:"limit"`
	Reverse bool           `json:"reverse"`
}

type TableStatus struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type Status struct {
	Attachment string          `json:"attachment"`
	Version    results.Version `json:"version"`
	Latest     results.Version `json:"latest"`
	Commits    int             `json:"commits"`
	Tables     []TableStatus   `json:"tables"`
}

type Servicer interface {
	Insert(table string, docs []map[string]any) ([]*store.Object, error)
	Find(table string, q FindQuery, f func(obj *store.Object) error) error
	Remove(table string, q FindQuery, f func(obj *store.Object) error) error
	Size(table string) (int, error)
	Refresh() (results.Version, error)
	Status() (*Status, error)
}
