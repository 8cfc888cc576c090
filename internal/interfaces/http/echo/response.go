package echo

import (
	"errors"
	"net/http"

	app "github.com/ekaterinavoj/validity-view/internal/application/trainingimport"
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func writeError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

// writeAppError maps import errors to a status and error code.
func writeAppError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, app.ErrSessionNotFound):
		return writeError(c, http.StatusNotFound, "session_not_found", "import session not found")
	case errors.Is(err, app.ErrRowNotFound):
		return writeError(c, http.StatusNotFound, "row_not_found", err.Error())
	case errors.Is(err, app.ErrRowNotSuggestion):
		return writeError(c, http.StatusUnprocessableEntity, "row_not_suggestion", err.Error())
	case errors.Is(err, app.ErrUnknownTrainingType):
		return writeError(c, http.StatusUnprocessableEntity, "unknown_training_type", err.Error())
	case errors.Is(err, app.ErrInvalidReviewAction), errors.Is(err, app.ErrInvalidDuplicatePolicy):
		return writeError(c, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, app.ErrEmptyImport):
		return writeError(c, http.StatusBadRequest, "empty_import", "file contains no data rows")
	case errors.Is(err, domain.ErrInvalidSettings):
		return writeError(c, http.StatusBadRequest, "invalid_settings", err.Error())
	case errors.Is(err, app.ErrCommitInProgress):
		return writeError(c, http.StatusConflict, "commit_in_progress", "a commit is already running for this session")
	case errors.Is(err, app.ErrSessionCommitted):
		return writeError(c, http.StatusConflict, "session_committed", "import session was already committed")
	case errors.Is(err, app.ErrNoCommitInProgress):
		return writeError(c, http.StatusConflict, "no_commit_in_progress", "no commit is running for this session")
	case errors.Is(err, app.ErrLoadCatalogue):
		return writeError(c, http.StatusServiceUnavailable, "catalogue_unavailable", "failed to load reference data")
	default:
		return writeError(c, http.StatusInternalServerError, "internal_error", fallback)
	}
}
