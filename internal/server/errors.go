package server

import (
	"net/http"

	apperrors "github.com/parcelscope/parcelscope/internal/errors"
)

// HandleError is the central responder for all errors.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.RespondWithError(w, r, err)
}
