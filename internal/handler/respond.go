package handler

import (
	"errors"
	"fmt"
	"net/http"

	"cinematch/internal/index"
	"cinematch/internal/logging"

	"github.com/goccy/go-json"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError traduce los errores del motor a códigos HTTP.
func writeError(w http.ResponseWriter, title string, err error) {
	status, msg := errorStatus(title, err)
	if status == http.StatusInternalServerError {
		logging.Error().Err(err).Str("title", title).Msg("[http] error interno")
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func errorStatus(title string, err error) (int, string) {
	var die *index.DataIntegrityError
	switch {
	case errors.Is(err, index.ErrNotFound):
		return http.StatusNotFound, fmt.Sprintf("'%s' is not in my database. Try another one.", title)
	case errors.As(err, &die):
		return http.StatusUnprocessableEntity, fmt.Sprintf("Data is messed up for '%s'. Pick another movie.", title)
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
