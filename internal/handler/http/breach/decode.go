package breach

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/handler/http/pathutil"
	"databreach-registry/internal/handler/http/respond"
	"databreach-registry/internal/observability/logging"
	breachUC "databreach-registry/internal/usecase/breach"
)

var (
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
	errNotFound     = errors.New("not found")
)

// decodeRequest reads a breach document from the body. It writes the error response
// itself and reports false when the body cannot be used. An empty body decodes as an
// empty document so that field validation reports what is missing.
func decodeRequest(w http.ResponseWriter, r *http.Request) (breachUC.Request, bool) {
	var req breachUC.Request
	err := json.NewDecoder(r.Body).Decode(&req)
	if err == nil || errors.Is(err, io.EOF) {
		return req, true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		respond.SafeError(w, http.StatusRequestEntityTooLarge, errBodyTooLarge)
		return req, false
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		respond.JSON(w, http.StatusBadRequest, map[string][]string{
			typeErr.Field: {"Invalid value of type " + typeErr.Value + "."},
		})
		return req, false
	}

	respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
	return req, false
}

// pathID parses the {id} wildcard. Anything that is not a positive integer cannot name
// a breach, so it answers 404.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusNotFound, errNotFound)
		return 0, false
	}
	return id, true
}

// writeError maps use case errors onto responses.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if respond.Validation(w, err) {
		return
	}
	if errors.Is(err, breachUC.ErrBreachNotFound) {
		respond.SafeError(w, http.StatusNotFound, breachUC.ErrBreachNotFound)
		return
	}
	if errors.Is(err, entity.ErrInvalidInput) {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": entity.ErrInvalidInput.Error()})
		return
	}
	logging.FromContext(r.Context()).Error("breach request failed",
		"operation", op,
		"error", respond.SanitizeError(err))
	respond.SafeError(w, http.StatusInternalServerError, err)
}
