package apitablev1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
)

func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	q, err := readFindQuery(r)
	if err != nil {
		return err
	}

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")

	return s.Find(tableName, q, writeObject(w))
}
