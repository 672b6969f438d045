package apitablev1

import (
	"bytes"
	"context"
	"net/http"

	"github.com/fulldump/box"
)

// remove responds with the removed documents, one per line.
func remove(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	q, err := readFindQuery(r)
	if err != nil {
		return err
	}

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")

	// documents are buffered until the transaction commits
	buffer := &bytes.Buffer{}
	err = s.Remove(tableName, q, writeObject(buffer))
	if err != nil {
		return err
	}

	_, err = buffer.WriteTo(w)
	return err
}
