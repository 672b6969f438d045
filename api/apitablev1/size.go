package apitablev1

import (
	"context"

	"github.com/fulldump/box"
)

func size(ctx context.Context) (interface{}, error) {

	s := GetServicer(ctx)
	tableName := box.GetUrlParameter(ctx, "tableName")

	n, err := s.Size(tableName)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"size": n,
	}, nil
}
