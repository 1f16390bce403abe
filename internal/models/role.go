package models

import "fmt"

// Role is the closed set of back-office roles. Capabilities are resolved
// through exhaustive switches below rather than a string-keyed table, so an
// unknown role can never silently gain access.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleTeamLead Role = "team_lead"
)

// ParseRole validates a role string from a request or token claim.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleTeamLead:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// CanManageUsers reports whether the role may create, update, or deactivate
// user accounts.
func (r Role) CanManageUsers() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleManager, RoleTeamLead:
		return false
	}
	return false
}

// CanEditAttendance reports whether the role may add, edit, or delete
// attendance sessions at all. How far back it may edit is a separate
// question answered by EditsFullPayPeriod.
func (r Role) CanEditAttendance() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTeamLead:
		return true
	}
	return false
}

// EditsFullPayPeriod distinguishes editors who may touch the whole current
// Monday-to-Monday pay period from those restricted to the current day.
func (r Role) EditsFullPayPeriod() bool {
	switch r {
	case RoleAdmin, RoleManager:
		return true
	case RoleTeamLead:
		return false
	}
	return false
}

// CanManageCatalog reports whether the role may modify inventory, items,
// categories, and sauces.
func (r Role) CanManageCatalog() bool {
	switch r {
	case RoleAdmin, RoleManager:
		return true
	case RoleTeamLead:
		return false
	}
	return false
}

// CanRecordSafeCount reports whether the role may record safe counts.
func (r Role) CanRecordSafeCount() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTeamLead:
		return true
	}
	return false
}
