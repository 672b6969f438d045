package apitablev1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/box"
)

// insert reads one or more JSON documents from the body and commits them in a single
// write transaction.
func insert(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")

	docs := []map[string]any{}
	dec := jsontext.NewDecoder(r.Body)
	for {
		item := map[string]any{}
		err := json.UnmarshalDecode(dec, &item)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s", ErrBadInput, err.Error())
		}
		docs = append(docs, item)
	}

	if len(docs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	objects, err := s.Insert(tableName, docs)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusCreated)
	write := writeObject(w)
	for _, obj := range objects {
		err := write(obj)
		if err != nil {
			return err
		}
	}

	return nil
}
