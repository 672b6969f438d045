package apitablev1

import (
	"context"

	"github.com/fulldump/versiondb/service"
)

func status(ctx context.Context) (*service.Status, error) {
	return GetServicer(ctx).Status()
}

// refresh moves the server attachment to the latest committed version.
func refresh(ctx context.Context) (interface{}, error) {

	version, err := GetServicer(ctx).Refresh()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"version": version,
	}, nil
}
