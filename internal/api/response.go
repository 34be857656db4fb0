package api

import (
	"errors"
	"net/http"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/logging"
)

// statusFromError maps business error kinds to HTTP statuses. Anything not
// wrapped in a known kind is an internal error and stays opaque to the client.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, constants.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, constants.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, constants.ErrPreconditionFailed):
		return http.StatusConflict
	case errors.Is(err, constants.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	status := statusFromError(err)

	if status == http.StatusInternalServerError {
		logging.Error("Unhandled service error", "error", err.Error())
		common.RespondError(w, initTime, nil, "Internal server error", status)
		return
	}

	common.RespondError(w, initTime, err, "", status)
}
