package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/clinicguard/clinicguard/internal/audit/domain"
	auditMocks "github.com/clinicguard/clinicguard/internal/audit/usecase/mocks"
	authzDomain "github.com/clinicguard/clinicguard/internal/authz/domain"
	apperrors "github.com/clinicguard/clinicguard/internal/errors"
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

type mockRelationshipStore struct {
	mock.Mock
}

func (m *mockRelationshipStore) ActiveAssignmentExists(
	ctx context.Context,
	doctorID, patientID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, doctorID, patientID)
	return args.Bool(0), args.Error(1)
}

func doctorPrincipal(clinicID uuid.UUID, approved bool) (*identityDomain.Principal, uuid.UUID) {
	doctorID := uuid.Must(uuid.NewV7())
	return &identityDomain.Principal{
		ID:             uuid.Must(uuid.NewV7()),
		Role:           identityDomain.RoleDoctor,
		ClinicID:       clinicID,
		DoctorID:       &doctorID,
		DoctorApproved: approved,
	}, doctorID
}

func patientPrincipal(clinicID uuid.UUID) (*identityDomain.Principal, uuid.UUID) {
	patientID := uuid.Must(uuid.NewV7())
	return &identityDomain.Principal{
		ID:        uuid.Must(uuid.NewV7()),
		Role:      identityDomain.RolePatient,
		ClinicID:  clinicID,
		PatientID: &patientID,
	}, patientID
}

func auditedContext() context.Context {
	return identityDomain.WithRequestContext(context.Background(), &identityDomain.RequestContext{
		RequestID: "req-7",
		IP:        "198.51.100.3",
		UserAgent: "test-agent",
	})
}

func TestGuardUseCase_RequireRole(t *testing.T) {
	clinicID := uuid.Must(uuid.NewV7())
	principal, _ := doctorPrincipal(clinicID, true)

	spy := &auditMocks.RecorderSpy{}
	guards := NewGuardUseCase(new(mockRelationshipStore), spy)

	t.Run("allowed role passes without audit", func(t *testing.T) {
		err := guards.RequireRole(auditedContext(), principal, identityDomain.RoleDoctor)
		assert.NoError(t, err)
		assert.Empty(t, spy.Entries())
	})

	t.Run("denied role emits ACCESS_DENIED", func(t *testing.T) {
		err := guards.RequireRole(auditedContext(), principal, identityDomain.RoleAdmin)
		assert.True(t, errors.Is(err, authzDomain.ErrRoleMismatch))

		entry := spy.Last()
		require.NotNil(t, entry)
		assert.Equal(t, auditDomain.ActionAccessDenied, entry.Action)
		assert.Equal(t, principal.ID, entry.ActorID)
		assert.Equal(t, clinicID, entry.ClinicID)
		assert.Equal(t, "req-7", entry.RequestID)
		assert.Equal(t, "role_mismatch", entry.Metadata["reason"])
	})
}

func TestGuardUseCase_RequireApprovedDoctor(t *testing.T) {
	clinicID := uuid.Must(uuid.NewV7())

	spy := &auditMocks.RecorderSpy{}
	guards := NewGuardUseCase(new(mockRelationshipStore), spy)

	approved, _ := doctorPrincipal(clinicID, true)
	assert.NoError(t, guards.RequireApprovedDoctor(auditedContext(), approved))

	pending, _ := doctorPrincipal(clinicID, false)
	err := guards.RequireApprovedDoctor(auditedContext(), pending)
	assert.True(t, errors.Is(err, authzDomain.ErrApprovalPending))
	assert.Equal(t, "approval_pending", spy.Last().Metadata["reason"])
}

func TestGuardUseCase_RequireClinicAccess(t *testing.T) {
	clinicID := uuid.Must(uuid.NewV7())
	foreignClinic := uuid.Must(uuid.NewV7())
	principal, _ := doctorPrincipal(clinicID, true)

	spy := &auditMocks.RecorderSpy{}
	guards := NewGuardUseCase(new(mockRelationshipStore), spy)

	assert.NoError(t, guards.RequireClinicAccess(
		auditedContext(), principal, clinicID, "patient_chart", "chart-1",
	))
	assert.Empty(t, spy.Entries())

	err := guards.RequireClinicAccess(
		auditedContext(), principal, foreignClinic, "patient_chart", "chart-1",
	)
	// Cross-tenant denial is indistinguishable from a missing resource.
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	entry := spy.Last()
	require.NotNil(t, entry)
	assert.Equal(t, "patient_chart", entry.ResourceType)
	assert.Equal(t, "chart-1", entry.ResourceID)
	assert.Equal(t, "tenant_mismatch", entry.Metadata["reason"])
}

func TestGuardUseCase_RequirePatientSelfAccess(t *testing.T) {
	clinicID := uuid.Must(uuid.NewV7())
	principal, patientID := patientPrincipal(clinicID)

	spy := &auditMocks.RecorderSpy{}
	guards := NewGuardUseCase(new(mockRelationshipStore), spy)

	assert.NoError(t, guards.RequirePatientSelfAccess(auditedContext(), principal, patientID))

	otherPatient := uuid.Must(uuid.NewV7())
	err := guards.RequirePatientSelfAccess(auditedContext(), principal, otherPatient)
	assert.True(t, errors.Is(err, authzDomain.ErrOwnershipMismatch))
	assert.Equal(t, "not_record_owner", spy.Last().Metadata["reason"])
}

func TestGuardUseCase_RequireDoctorAccessToPatient(t *testing.T) {
	clinicID := uuid.Must(uuid.NewV7())
	patientID := uuid.Must(uuid.NewV7())

	t.Run("active assignment passes", func(t *testing.T) {
		principal, doctorID := doctorPrincipal(clinicID, true)
		store := new(mockRelationshipStore)
		store.On("ActiveAssignmentExists", mock.Anything, doctorID, patientID).Return(true, nil)

		guards := NewGuardUseCase(store, &auditMocks.RecorderSpy{})
		assert.NoError(t, guards.RequireDoctorAccessToPatient(auditedContext(), principal, patientID))
		store.AssertExpectations(t)
	})

	t.Run("no assignment denies", func(t *testing.T) {
		principal, doctorID := doctorPrincipal(clinicID, true)
		store := new(mockRelationshipStore)
		store.On("ActiveAssignmentExists", mock.Anything, doctorID, patientID).Return(false, nil)

		spy := &auditMocks.RecorderSpy{}
		guards := NewGuardUseCase(store, spy)

		err := guards.RequireDoctorAccessToPatient(auditedContext(), principal, patientID)
		assert.True(t, errors.Is(err, authzDomain.ErrOwnershipMismatch))
		assert.Equal(t, "no_care_relationship", spy.Last().Metadata["reason"])
	})

	t.Run("store failure propagates without audit", func(t *testing.T) {
		principal, doctorID := doctorPrincipal(clinicID, true)
		store := new(mockRelationshipStore)
		store.On("ActiveAssignmentExists", mock.Anything, doctorID, patientID).
			Return(false, errors.New("connection refused"))

		spy := &auditMocks.RecorderSpy{}
		guards := NewGuardUseCase(store, spy)

		err := guards.RequireDoctorAccessToPatient(auditedContext(), principal, patientID)
		require.Error(t, err)
		assert.False(t, errors.Is(err, apperrors.ErrForbidden))
		assert.Empty(t, spy.Entries())
	})

	t.Run("non-doctor denied without store lookup", func(t *testing.T) {
		principal, _ := patientPrincipal(clinicID)
		store := new(mockRelationshipStore)

		guards := NewGuardUseCase(store, &auditMocks.RecorderSpy{})
		err := guards.RequireDoctorAccessToPatient(auditedContext(), principal, patientID)
		assert.True(t, errors.Is(err, authzDomain.ErrOwnershipMismatch))
		store.AssertNotCalled(t, "ActiveAssignmentExists")
	})
}

func TestGuardUseCase_EnsureOwnershipOrDoctor(t *testing.T) {
	clinicID := uuid.Must(uuid.NewV7())

	t.Run("patient owning the record passes without store lookup", func(t *testing.T) {
		principal, patientID := patientPrincipal(clinicID)
		store := new(mockRelationshipStore)

		guards := NewGuardUseCase(store, &auditMocks.RecorderSpy{})
		assert.NoError(t, guards.EnsureOwnershipOrDoctor(auditedContext(), principal, patientID))
		store.AssertNotCalled(t, "ActiveAssignmentExists")
	})

	t.Run("assigned doctor passes", func(t *testing.T) {
		principal, doctorID := doctorPrincipal(clinicID, true)
		patientID := uuid.Must(uuid.NewV7())

		store := new(mockRelationshipStore)
		store.On("ActiveAssignmentExists", mock.Anything, doctorID, patientID).Return(true, nil)

		guards := NewGuardUseCase(store, &auditMocks.RecorderSpy{})
		assert.NoError(t, guards.EnsureOwnershipOrDoctor(auditedContext(), principal, patientID))
	})

	t.Run("unassigned doctor denied with combined reason", func(t *testing.T) {
		principal, doctorID := doctorPrincipal(clinicID, true)
		patientID := uuid.Must(uuid.NewV7())

		store := new(mockRelationshipStore)
		store.On("ActiveAssignmentExists", mock.Anything, doctorID, patientID).Return(false, nil)

		spy := &auditMocks.RecorderSpy{}
		guards := NewGuardUseCase(store, spy)

		err := guards.EnsureOwnershipOrDoctor(auditedContext(), principal, patientID)
		assert.True(t, errors.Is(err, authzDomain.ErrOwnershipMismatch))
		assert.Equal(t, "no_ownership_or_relationship", spy.Last().Metadata["reason"])
	})

	t.Run("patient accessing another record denied", func(t *testing.T) {
		principal, _ := patientPrincipal(clinicID)
		otherPatient := uuid.Must(uuid.NewV7())

		spy := &auditMocks.RecorderSpy{}
		guards := NewGuardUseCase(new(mockRelationshipStore), spy)

		err := guards.EnsureOwnershipOrDoctor(auditedContext(), principal, otherPatient)
		assert.True(t, errors.Is(err, authzDomain.ErrOwnershipMismatch))
		assert.Equal(t, "no_ownership_or_relationship", spy.Last().Metadata["reason"])
	})
}

func TestGuardUseCase_RequirePermission(t *testing.T) {
	clinicID := uuid.Must(uuid.NewV7())
	principal, _ := patientPrincipal(clinicID)

	spy := &auditMocks.RecorderSpy{}
	guards := NewGuardUseCase(new(mockRelationshipStore), spy)

	assert.NoError(t, guards.RequirePermission(
		auditedContext(), principal, authzDomain.PermissionViewOwnChart,
	))

	err := guards.RequirePermission(
		auditedContext(), principal, authzDomain.PermissionViewAuditLogs,
	)
	assert.True(t, errors.Is(err, authzDomain.ErrPermissionDenied))
	assert.Equal(t, "view_audit_logs", spy.Last().Metadata["required_permission"])
}

func TestGuardUseCase_NilAuditorStillDenies(t *testing.T) {
	clinicID := uuid.Must(uuid.NewV7())
	principal, _ := patientPrincipal(clinicID)

	guards := NewGuardUseCase(new(mockRelationshipStore), nil)
	err := guards.RequireRole(context.Background(), principal, identityDomain.RoleAdmin)
	assert.True(t, errors.Is(err, authzDomain.ErrRoleMismatch))
}
