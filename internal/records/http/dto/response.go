// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	recordsDomain "github.com/clinicguard/clinicguard/internal/records/domain"
)

// ChartResponse represents a patient chart in API responses.
type ChartResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	ClinicID  string    `json:"clinic_id"`
	Summary   string    `json:"summary"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileResponse represents a file record in API responses. The storage key is
// an opaque pointer into the blob store; the caller exchanges it for content.
type FileResponse struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	ClinicID   string    `json:"clinic_id"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	Category   string    `json:"category"`
	StorageKey string    `json:"storage_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// MapChartToResponse converts a domain chart to an API response.
func MapChartToResponse(chart *recordsDomain.PatientChart) ChartResponse {
	return ChartResponse{
		ID:        chart.ID.String(),
		PatientID: chart.PatientID.String(),
		ClinicID:  chart.ClinicID.String(),
		Summary:   chart.Summary,
		UpdatedAt: chart.UpdatedAt,
	}
}

// MapFileToResponse converts a domain file record to an API response.
func MapFileToResponse(file *recordsDomain.FileRecord) FileResponse {
	return FileResponse{
		ID:         file.ID.String(),
		PatientID:  file.PatientID.String(),
		ClinicID:   file.ClinicID.String(),
		FileName:   file.FileName,
		FileSize:   file.FileSize,
		FileType:   file.FileType,
		Category:   file.Category,
		StorageKey: file.StorageKey,
		CreatedAt:  file.CreatedAt,
	}
}
