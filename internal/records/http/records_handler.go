// Package http provides HTTP handlers for clinical record access.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/clinicguard/clinicguard/internal/errors"
	"github.com/clinicguard/clinicguard/internal/httputil"
	identityHTTP "github.com/clinicguard/clinicguard/internal/identity/http"
	"github.com/clinicguard/clinicguard/internal/records/http/dto"
	recordsUseCase "github.com/clinicguard/clinicguard/internal/records/usecase"
)

// RecordsHandler handles HTTP requests for patient charts and file records.
// Authorization happens inside the use case; the handler only translates
// between the wire format and domain calls.
type RecordsHandler struct {
	recordsUseCase recordsUseCase.RecordsUseCase
	logger         *slog.Logger
}

// NewRecordsHandler creates a new records handler with required dependencies.
func NewRecordsHandler(
	useCase recordsUseCase.RecordsUseCase,
	logger *slog.Logger,
) *RecordsHandler {
	return &RecordsHandler{
		recordsUseCase: useCase,
		logger:         logger,
	}
}

// GetChartHandler retrieves a patient's chart.
// GET /v1/patients/:patient_id/chart - patient self-access or assigned doctor.
// Returns 200 OK with the chart, 404 when the patient is unknown or belongs
// to another clinic, 403 when the caller has no care relationship.
func (h *RecordsHandler) GetChartHandler(c *gin.Context) {
	patientID, err := parseIDParam(c, "patient_id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	principal, ok := identityHTTP.GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	chart, err := h.recordsUseCase.GetPatientChart(c.Request.Context(), principal, patientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.MakeSuccessResponseGin(c, http.StatusOK, dto.MapChartToResponse(chart))
}

// DownloadFileHandler retrieves a file record for download.
// GET /v1/files/:file_id/download - file owner or assigned doctor.
// Returns 200 OK with the file metadata and storage key, 404 when the file
// is unknown or belongs to another clinic.
func (h *RecordsHandler) DownloadFileHandler(c *gin.Context) {
	fileID, err := parseIDParam(c, "file_id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	principal, ok := identityHTTP.GetPrincipal(c.Request.Context())
	if !ok || principal == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	file, err := h.recordsUseCase.DownloadFile(c.Request.Context(), principal, fileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.MakeSuccessResponseGin(c, http.StatusOK, dto.MapFileToResponse(file))
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	value, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: must be a UUID", name)
	}
	return value, nil
}
