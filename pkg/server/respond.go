package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
)

const maxBodySize = 1 << 20

type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) && apperrors.GetCode(err) == "" {
		err = apperrors.Wrap(apperrors.ErrCodeTimeout, err, "search timed out")
	}
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, apperrors.HTTPStatus(err), errorResponse{
		Code:    code,
		Message: apperrors.UserMessage(err),
	})
}

func errNotFound(path string) error {
	return apperrors.New(apperrors.ErrCodeNotFound, "no route for %s", path)
}

// decode reads a JSON body into v. An empty body leaves v unchanged.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
