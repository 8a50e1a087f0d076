// Package domain defines the authorization domain models and pure checks.
//
// All decision logic here is free of I/O: the permission matrix is immutable
// process-wide state and the tenant/ownership checks are plain comparisons.
// Side-effecting audit emission lives in the guard orchestrator, which
// observes the outcomes of these checks.
package domain

import (
	identityDomain "github.com/clinicguard/clinicguard/internal/identity/domain"
)

// Permission is a capability token granted to a role by the permission matrix.
type Permission string

const (
	// PermissionViewPatientChart allows reading any assigned patient's chart.
	PermissionViewPatientChart Permission = "view_patient_chart"

	// PermissionEditPatientChart allows updating an assigned patient's chart.
	PermissionEditPatientChart Permission = "edit_patient_chart"

	// PermissionViewOwnChart allows a patient to read their own chart.
	PermissionViewOwnChart Permission = "view_own_chart"

	// PermissionDownloadFile allows downloading file records.
	PermissionDownloadFile Permission = "download_file"

	// PermissionUploadFile allows attaching file records.
	PermissionUploadFile Permission = "upload_file"

	// PermissionManageClinic allows clinic administration.
	PermissionManageClinic Permission = "manage_clinic"

	// PermissionManageUsers allows role record administration.
	PermissionManageUsers Permission = "manage_users"

	// PermissionViewAuditLogs allows reading the audit trail.
	PermissionViewAuditLogs Permission = "view_audit_logs"

	// PermissionViewMetrics allows reading operational metrics summaries.
	PermissionViewMetrics Permission = "view_metrics"
)

// permissionMatrix maps each role to its capability set. Built once at process
// start and read-only afterwards; concurrent reads need no synchronization.
var permissionMatrix = map[identityDomain.Role]map[Permission]struct{}{
	identityDomain.RoleDoctor: toSet(
		PermissionViewPatientChart,
		PermissionEditPatientChart,
		PermissionDownloadFile,
		PermissionUploadFile,
	),
	identityDomain.RolePatient: toSet(
		PermissionViewOwnChart,
		PermissionDownloadFile,
		PermissionUploadFile,
	),
	identityDomain.RoleAdmin: toSet(
		PermissionManageClinic,
		PermissionManageUsers,
		PermissionViewAuditLogs,
		PermissionViewMetrics,
	),
}

func toSet(permissions ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(permissions))
	for _, permission := range permissions {
		set[permission] = struct{}{}
	}
	return set
}

// CanAccess reports whether the role holds the permission.
// Unknown roles and unknown permissions always deny.
func CanAccess(role identityDomain.Role, permission Permission) bool {
	capabilities, ok := permissionMatrix[role]
	if !ok {
		return false
	}
	_, ok = capabilities[permission]
	return ok
}

// CanAccessAny reports whether the role holds at least one of the permissions.
// An empty permission list denies.
func CanAccessAny(role identityDomain.Role, permissions ...Permission) bool {
	for _, permission := range permissions {
		if CanAccess(role, permission) {
			return true
		}
	}
	return false
}

// CanAccessAll reports whether the role holds every one of the permissions.
// An empty permission list denies.
func CanAccessAll(role identityDomain.Role, permissions ...Permission) bool {
	if len(permissions) == 0 {
		return false
	}
	for _, permission := range permissions {
		if !CanAccess(role, permission) {
			return false
		}
	}
	return true
}
