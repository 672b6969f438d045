package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/box"

	"github.com/fulldump/versiondb/api/apitablev1"
	"github.com/fulldump/versiondb/database"
	"github.com/fulldump/versiondb/results"
	"github.com/fulldump/versiondb/service"
	"github.com/fulldump/versiondb/store"
)

var ErrUnavailable = errors.New("temporary unavailable")

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	err := json.MarshalWrite(w, p)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening {
				box.SetError(ctx, fmt.Errorf("%w: opening", ErrUnavailable))
				return
			}
			if status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: closing", ErrUnavailable))
				return
			}
			next(ctx)
		}
	}
}

type errorStatus struct {
	err         error
	status      int
	description string
}

var errorStatuses = []errorStatus{
	{ErrUnauthorized, http.StatusUnauthorized, "user is not authenticated"},
	{ErrUnavailable, http.StatusServiceUnavailable, "database is not operating"},
	{results.ErrClosed, http.StatusServiceUnavailable, "database is not operating"},
	{apitablev1.ErrBadInput, http.StatusBadRequest, "Malformed JSON"},
	{store.ErrNotDocument, http.StatusBadRequest, "documents must be JSON objects"},
	{results.ErrOutOfRange, http.StatusBadRequest, "index out of range"},
	{service.ErrorTableNotFound, http.StatusNotFound, "table not found"},
	{store.ErrWriteLocked, http.StatusConflict, "another writer holds the write transaction"},
	{store.ErrWriteInProgress, http.StatusConflict, "a write transaction is in progress"},
	{results.ErrConcurrentModification, http.StatusConflict, "results changed while iterating"},
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		if err == box.ErrResourceNotFound {
			w.WriteHeader(http.StatusNotFound)
			PrettyError{
				Message:     err.Error(),
				Description: fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String()),
			}.MarshalTo(w)
			return
		}

		if err == box.ErrMethodNotAllowed {
			w.WriteHeader(http.StatusMethodNotAllowed)
			PrettyError{
				Message:     err.Error(),
				Description: fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method),
			}.MarshalTo(w)
			return
		}

		var syntaxErr *jsontext.SyntacticError
		if errors.As(err, &syntaxErr) {
			w.WriteHeader(http.StatusBadRequest)
			PrettyError{
				Message:     err.Error(),
				Description: "Malformed JSON",
			}.MarshalTo(w)
			return
		}

		for _, e := range errorStatuses {
			if errors.Is(err, e.err) {
				w.WriteHeader(e.status)
				PrettyError{
					Message:     err.Error(),
					Description: e.description,
				}.MarshalTo(w)
				return
			}
		}

		w.WriteHeader(http.StatusInternalServerError)
		PrettyError{
			Message:     err.Error(),
			Description: "Unexpected error",
		}.MarshalTo(w)
	}
}
