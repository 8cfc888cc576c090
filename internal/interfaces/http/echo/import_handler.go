package echo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	app "github.com/ekaterinavoj/validity-view/internal/application/trainingimport"
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	mimeXLSX          = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultSearchSize = 20
	maxSearchSize     = 100
)

// SessionService covers the read and lifecycle operations on import sessions.
type SessionService interface {
	Get(sessionID string) (app.SessionOutput, error)
	CancelCommit(sessionID string) error
	Discard(sessionID string) error
	RejectedRows(sessionID string) ([]domain.RejectedRow, error)
	SearchTrainingTypes(sessionID, query string, limit int) ([]domain.TrainingTypeRef, error)
}

// SpreadsheetCodec decodes uploads and renders the downloadable workbooks.
type SpreadsheetCodec interface {
	Decode(fileName string, payload []byte) ([]domain.ImportRow, error)
	WriteErrorWorkbook(w io.Writer, rows []domain.RejectedRow) error
	WriteTemplate(w io.Writer) error
}

type ImportHandler struct {
	preview  app.PreviewImport
	review   app.ReviewImport
	commit   app.CommitImport
	sessions SessionService
	codec    SpreadsheetCodec
	logger   logrus.FieldLogger
}

type thresholdsForm struct {
	MinSimilarity string `validate:"omitempty,number"`
	AutoMatch     string `validate:"omitempty,number"`
}

type thresholds struct {
	MinSimilarity int `validate:"min=0,max=100,ltefield=AutoMatch"`
	AutoMatch     int `validate:"min=0,max=100"`
}

type reviewRequest struct {
	Action         string `json:"action" validate:"required,oneof=approve reject approve_all reject_all override"`
	RowNumber      int    `json:"row_number" validate:"gte=0"`
	TrainingTypeID string `json:"training_type_id" validate:"required_if=Action override"`
}

type commitRequest struct {
	DuplicatePolicy string `json:"duplicate_policy" validate:"omitempty,oneof=skip overwrite"`
}

type trainingTypeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Facility   string `json:"facility"`
	PeriodDays int    `json:"period_days"`
}

func NewImportHandler(
	preview app.PreviewImport,
	review app.ReviewImport,
	commit app.CommitImport,
	sessions SessionService,
	codec SpreadsheetCodec,
	logger logrus.FieldLogger,
) *ImportHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ImportHandler{
		preview:  preview,
		review:   review,
		commit:   commit,
		sessions: sessions,
		codec:    codec,
		logger:   logger,
	}
}

// PreviewImport accepts a multipart upload in field "file" and returns the
// classified preview of a new session.
func (h *ImportHandler) PreviewImport(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "multipart field \"file\" is required")
	}

	settings, err := h.parseThresholds(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "failed to read upload")
	}
	defer src.Close()

	payload, err := io.ReadAll(src)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "failed to read upload")
	}

	rows, err := h.codec.Decode(fileHeader.Filename, payload)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_file", err.Error())
	}

	out, err := h.preview.Execute(c.Request().Context(), app.PreviewImportInput{
		FileName: fileHeader.Filename,
		Rows:     rows,
		Settings: settings,
	})
	if err != nil {
		h.logger.WithError(err).WithField("file", fileHeader.Filename).Error("import preview failed")
		return writeAppError(c, err, "failed to preview import")
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *ImportHandler) parseThresholds(c echo.Context) (*domain.Settings, error) {
	form := thresholdsForm{
		MinSimilarity: strings.TrimSpace(c.FormValue("min_similarity_threshold")),
		AutoMatch:     strings.TrimSpace(c.FormValue("auto_match_threshold")),
	}
	if err := c.Validate(&form); err != nil {
		return nil, err
	}
	if form.MinSimilarity == "" && form.AutoMatch == "" {
		return nil, nil
	}
	if form.MinSimilarity == "" || form.AutoMatch == "" {
		return nil, errors.New("min_similarity_threshold and auto_match_threshold must be set together")
	}

	var parsed thresholds
	var err error
	if parsed.MinSimilarity, err = strconv.Atoi(form.MinSimilarity); err != nil {
		return nil, fmt.Errorf("min_similarity_threshold: %w", err)
	}
	if parsed.AutoMatch, err = strconv.Atoi(form.AutoMatch); err != nil {
		return nil, fmt.Errorf("auto_match_threshold: %w", err)
	}
	if err := c.Validate(&parsed); err != nil {
		return nil, err
	}

	return &domain.Settings{
		MinSimilarityThreshold: parsed.MinSimilarity,
		AutoMatchThreshold:     parsed.AutoMatch,
	}, nil
}

func (h *ImportHandler) GetSession(c echo.Context) error {
	out, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return writeAppError(c, err, "failed to get import session")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) Review(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	out, err := h.review.Execute(c.Request().Context(), app.ReviewImportInput{
		SessionID:      c.Param("id"),
		Action:         app.ReviewAction(req.Action),
		RowNumber:      req.RowNumber,
		TrainingTypeID: req.TrainingTypeID,
	})
	if err != nil {
		return writeAppError(c, err, "failed to review import")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

// Commit runs the commit to completion. It is detached from the request
// context so only an explicit cancel stops it; progress can be polled on the
// session meanwhile.
func (h *ImportHandler) Commit(c echo.Context) error {
	var req commitRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	out, err := h.commit.Execute(context.WithoutCancel(c.Request().Context()), app.CommitImportInput{
		SessionID:       c.Param("id"),
		DuplicatePolicy: req.DuplicatePolicy,
	})
	if err != nil {
		return writeAppError(c, err, "failed to commit import")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) CancelCommit(c echo.Context) error {
	if err := h.sessions.CancelCommit(c.Param("id")); err != nil {
		return writeAppError(c, err, "failed to cancel commit")
	}
	return c.JSON(http.StatusAccepted, apiResponse{Data: map[string]string{"status": "cancelling"}})
}

func (h *ImportHandler) Discard(c echo.Context) error {
	if err := h.sessions.Discard(c.Param("id")); err != nil {
		return writeAppError(c, err, "failed to discard import session")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ImportHandler) SearchTrainingTypes(c echo.Context) error {
	limit := defaultSearchSize
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return writeError(c, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
		}
		limit = min(parsed, maxSearchSize)
	}

	types, err := h.sessions.SearchTrainingTypes(c.Param("id"), c.QueryParam("q"), limit)
	if err != nil {
		return writeAppError(c, err, "failed to search training types")
	}

	out := make([]trainingTypeResponse, 0, len(types))
	for _, ref := range types {
		out = append(out, trainingTypeResponse{
			ID:         ref.ID,
			Name:       ref.Name,
			Facility:   ref.Facility,
			PeriodDays: ref.PeriodDays,
		})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) ExportErrors(c echo.Context) error {
	rows, err := h.sessions.RejectedRows(c.Param("id"))
	if err != nil {
		return writeAppError(c, err, "failed to export errors")
	}

	var buf bytes.Buffer
	if err := h.codec.WriteErrorWorkbook(&buf, rows); err != nil {
		h.logger.WithError(err).Error("write error workbook failed")
		return writeError(c, http.StatusInternalServerError, "internal_error", "failed to export errors")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="import-errors.xlsx"`)
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

func (h *ImportHandler) Template(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.codec.WriteTemplate(&buf); err != nil {
		h.logger.WithError(err).Error("write template failed")
		return writeError(c, http.StatusInternalServerError, "internal_error", "failed to build template")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="training-import-template.xlsx"`)
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}
