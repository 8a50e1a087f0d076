package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name       string
		role       identityDomain.Role
		permission Permission
		want       bool
	}{
		{
			name:       "doctor can view patient charts",
			role:       identityDomain.RoleDoctor,
			permission: PermissionViewPatientChart,
			want:       true,
		},
		{
			name:       "doctor can edit patient charts",
			role:       identityDomain.RoleDoctor,
			permission: PermissionEditPatientChart,
			want:       true,
		},
		{
			name:       "doctor can download files",
			role:       identityDomain.RoleDoctor,
			permission: PermissionDownloadFile,
			want:       true,
		},
		{
			name:       "doctor cannot view audit logs",
			role:       identityDomain.RoleDoctor,
			permission: PermissionViewAuditLogs,
			want:       false,
		},
		{
			name:       "doctor cannot manage users",
			role:       identityDomain.RoleDoctor,
			permission: PermissionManageUsers,
			want:       false,
		},
		{
			name:       "patient can view own chart",
			role:       identityDomain.RolePatient,
			permission: PermissionViewOwnChart,
			want:       true,
		},
		{
			name:       "patient cannot view patient charts",
			role:       identityDomain.RolePatient,
			permission: PermissionViewPatientChart,
			want:       false,
		},
		{
			name:       "patient can download files",
			role:       identityDomain.RolePatient,
			permission: PermissionDownloadFile,
			want:       true,
		},
		{
			name:       "admin can view audit logs",
			role:       identityDomain.RoleAdmin,
			permission: PermissionViewAuditLogs,
			want:       true,
		},
		{
			name:       "admin cannot view patient charts",
			role:       identityDomain.RoleAdmin,
			permission: PermissionViewPatientChart,
			want:       false,
		},
		{
			name:       "admin cannot download files",
			role:       identityDomain.RoleAdmin,
			permission: PermissionDownloadFile,
			want:       false,
		},
		{
			name:       "unknown role denies",
			role:       identityDomain.Role("nurse"),
			permission: PermissionViewOwnChart,
			want:       false,
		},
		{
			name:       "unknown permission denies",
			role:       identityDomain.RoleAdmin,
			permission: Permission("delete_everything"),
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.role, tt.permission))
		})
	}
}

func TestCanAccessAny(t *testing.T) {
	assert.True(t, CanAccessAny(
		identityDomain.RolePatient,
		PermissionViewPatientChart,
		PermissionViewOwnChart,
	))
	assert.False(t, CanAccessAny(
		identityDomain.RolePatient,
		PermissionManageClinic,
		PermissionViewAuditLogs,
	))
	assert.False(t, CanAccessAny(identityDomain.RolePatient))
}

func TestCanAccessAll(t *testing.T) {
	assert.True(t, CanAccessAll(
		identityDomain.RoleDoctor,
		PermissionViewPatientChart,
		PermissionEditPatientChart,
	))
	assert.False(t, CanAccessAll(
		identityDomain.RoleDoctor,
		PermissionViewPatientChart,
		PermissionViewAuditLogs,
	))
	assert.False(t, CanAccessAll(identityDomain.RoleDoctor))
}
