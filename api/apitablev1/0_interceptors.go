package apitablev1

import (
	"context"

	"github.com/fulldump/versiondb/service"
)

const ContextServicerKey = "8a3c1e52-6f0b-4f8e-9d3a-0c4b7e2f91d6"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}
