package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/clinicguard/clinicguard/internal/app"
	"github.com/clinicguard/clinicguard/internal/config"
)

// assignmentCreator is the write side of the relationship store, implemented
// by both database-specific stores but not part of the guards' read interface.
type assignmentCreator interface {
	CreateAssignment(ctx context.Context, doctorID, patientID, clinicID uuid.UUID) error
}

// RunAssignDoctor creates an active doctor-patient assignment. Without one, a
// doctor has no access to the patient's records even inside the same clinic.
//
// Requirements: Database must be migrated and accessible.
func RunAssignDoctor(ctx context.Context, doctorIDStr, patientIDStr, clinicIDStr string) error {
	doctorID, err := parseUUIDFlag("doctor-id", doctorIDStr)
	if err != nil {
		return err
	}

	patientID, err := parseUUIDFlag("patient-id", patientIDStr)
	if err != nil {
		return err
	}

	clinicID, err := parseUUIDFlag("clinic-id", clinicIDStr)
	if err != nil {
		return err
	}

	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("assigning doctor to patient",
		slog.String("doctor_id", doctorID.String()),
		slog.String("patient_id", patientID.String()),
		slog.String("clinic_id", clinicID.String()),
	)

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	relationshipStore, err := container.RelationshipStore()
	if err != nil {
		return fmt.Errorf("failed to initialize relationship store: %w", err)
	}

	creator, ok := relationshipStore.(assignmentCreator)
	if !ok {
		return fmt.Errorf("relationship store does not support assignment creation")
	}

	if err := creator.CreateAssignment(ctx, doctorID, patientID, clinicID); err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	fmt.Printf("Assignment created: doctor %s -> patient %s (clinic %s)\n",
		doctorID, patientID, clinicID)

	logger.Info("assignment created")
	return nil
}
