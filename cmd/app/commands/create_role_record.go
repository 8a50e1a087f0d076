package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	govalidation "github.com/jellydator/validation"

	"github.com/clinicguard/clinicguard/internal/app"
	"github.com/clinicguard/clinicguard/internal/config"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
	"github.com/clinicguard/clinicguard/internal/validation"
)

// roleRecordCreator is the write side of the role store, implemented by both
// database-specific stores but not part of the resolver's read interface.
type roleRecordCreator interface {
	Create(ctx context.Context, record *identityDomain.RoleRecord) error
}

// RunCreateRoleRecord registers a role record for an identity provider subject.
// Until a record exists the subject is treated as unauthenticated on every
// request regardless of token validity.
//
// Requirements: Database must be migrated and accessible.
func RunCreateRoleRecord(
	ctx context.Context,
	subjectIDStr, email, roleStr, clinicIDStr string,
	doctorIDStr, patientIDStr string,
	approved bool,
	format string,
) error {
	subjectID, err := parseUUIDFlag("subject-id", subjectIDStr)
	if err != nil {
		return err
	}

	clinicID, err := parseUUIDFlag("clinic-id", clinicIDStr)
	if err != nil {
		return err
	}

	if err := govalidation.Validate(email, govalidation.Required, validation.NotBlank, validation.Email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	role, err := identityDomain.ParseRole(roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %s (valid options: doctor, patient, admin)", roleStr)
	}

	var doctorID, patientID *uuid.UUID
	if doctorIDStr != "" {
		parsed, err := parseUUIDFlag("doctor-id", doctorIDStr)
		if err != nil {
			return err
		}
		doctorID = &parsed
	}
	if patientIDStr != "" {
		parsed, err := parseUUIDFlag("patient-id", patientIDStr)
		if err != nil {
			return err
		}
		patientID = &parsed
	}

	if role == identityDomain.RoleDoctor && doctorID == nil {
		return fmt.Errorf("doctor role requires --doctor-id")
	}
	if role == identityDomain.RolePatient && patientID == nil {
		return fmt.Errorf("patient role requires --patient-id")
	}

	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("creating role record",
		slog.String("subject_id", subjectID.String()),
		slog.String("role", role.String()),
		slog.String("clinic_id", clinicID.String()),
	)

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	roleStore, err := container.RoleStore()
	if err != nil {
		return fmt.Errorf("failed to initialize role store: %w", err)
	}

	creator, ok := roleStore.(roleRecordCreator)
	if !ok {
		return fmt.Errorf("role store does not support record creation")
	}

	record := &identityDomain.RoleRecord{
		SubjectID:      subjectID,
		Email:          email,
		Role:           role,
		ClinicID:       clinicID,
		EmailVerified:  true,
		IsActive:       true,
		DoctorID:       doctorID,
		PatientID:      patientID,
		DoctorApproved: approved,
		CreatedAt:      time.Now().UTC(),
	}

	if err := creator.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to create role record: %w", err)
	}

	if format == "json" {
		outputRoleRecordJSON(record)
	} else {
		outputRoleRecordText(record)
	}

	logger.Info("role record created", slog.String("subject_id", subjectID.String()))
	return nil
}

// outputRoleRecordText outputs the result in human-readable text format.
func outputRoleRecordText(record *identityDomain.RoleRecord) {
	fmt.Printf("Role record created:\n")
	fmt.Printf("  Subject ID: %s\n", record.SubjectID)
	fmt.Printf("  Email:      %s\n", record.Email)
	fmt.Printf("  Role:       %s\n", record.Role)
	fmt.Printf("  Clinic ID:  %s\n", record.ClinicID)
	if record.DoctorID != nil {
		fmt.Printf("  Doctor ID:  %s (approved: %t)\n", *record.DoctorID, record.DoctorApproved)
	}
	if record.PatientID != nil {
		fmt.Printf("  Patient ID: %s\n", *record.PatientID)
	}
}

// outputRoleRecordJSON outputs the result in JSON format for machine consumption.
func outputRoleRecordJSON(record *identityDomain.RoleRecord) {
	result := map[string]interface{}{
		"subject_id":      record.SubjectID.String(),
		"email":           record.Email,
		"role":            record.Role.String(),
		"clinic_id":       record.ClinicID.String(),
		"doctor_approved": record.DoctorApproved,
	}
	if record.DoctorID != nil {
		result["doctor_id"] = record.DoctorID.String()
	}
	if record.PatientID != nil {
		result["patient_id"] = record.PatientID.String()
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Println(string(jsonBytes))
}
