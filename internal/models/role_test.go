package models

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"manager", RoleManager, false},
		{"team_lead", RoleTeamLead, false},
		{"Admin", "", true},
		{"owner", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseRole(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseRole(%q) succeeded, want error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRole(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role            Role
		manageUsers     bool
		editAttendance  bool
		fullPayPeriod   bool
		manageCatalog   bool
		recordSafeCount bool
	}{
		{RoleAdmin, true, true, true, true, true},
		{RoleManager, false, true, true, true, true},
		{RoleTeamLead, false, true, false, false, true},
		{Role("bogus"), false, false, false, false, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			if got := tc.role.CanManageUsers(); got != tc.manageUsers {
				t.Errorf("CanManageUsers() = %v, want %v", got, tc.manageUsers)
			}
			if got := tc.role.CanEditAttendance(); got != tc.editAttendance {
				t.Errorf("CanEditAttendance() = %v, want %v", got, tc.editAttendance)
			}
			if got := tc.role.EditsFullPayPeriod(); got != tc.fullPayPeriod {
				t.Errorf("EditsFullPayPeriod() = %v, want %v", got, tc.fullPayPeriod)
			}
			if got := tc.role.CanManageCatalog(); got != tc.manageCatalog {
				t.Errorf("CanManageCatalog() = %v, want %v", got, tc.manageCatalog)
			}
			if got := tc.role.CanRecordSafeCount(); got != tc.recordSafeCount {
				t.Errorf("CanRecordSafeCount() = %v, want %v", got, tc.recordSafeCount)
			}
		})
	}
}
