package apitablev1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/versiondb/service"
)

func BuildV1Table(v1 *box.R, s service.Servicer) *box.R {

	tables := v1.Resource("/tables/{tableName}").
		WithActions(
			box.ActionPost(insert),
			box.ActionPost(find),
			box.ActionPost(remove),
			box.ActionPost(size),
		)

	v1.Resource("/status").
		WithActions(
			box.Get(status),
			box.ActionPost(refresh),
		)

	return tables
}
