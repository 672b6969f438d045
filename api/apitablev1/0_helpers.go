package apitablev1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/go-json-experiment/json"

	"github.com/fulldump/versiondb/service"
	"github.com/fulldump/versiondb/store"
)

var ErrBadInput = errors.New("bad input")

// readFindQuery accepts an empty body as the zero query.
func readFindQuery(r *http.Request) (service.FindQuery, error) {
	q := service.FindQuery{}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return q, err
	}

	if len(body) == 0 {
		return q, nil
	}

	err = json.Unmarshal(body, &q)
	if err != nil {
		return q, fmt.Errorf("%w: %s", ErrBadInput, err.Error())
	}

	return q, nil
}

func writeObject(w io.Writer) func(obj *store.Object) error {
	return func(obj *store.Object) error {
		payload, err := obj.Payload()
		if err != nil {
			return err
		}
		_, err = w.Write(payload)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte("\n"))
		return err
	}
}
