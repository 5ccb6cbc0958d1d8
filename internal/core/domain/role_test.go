package domain

import "testing"

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"ADMIN", "TRAINER", "MEMBER"} {
		role, err := ParseRole(valid)
		if err != nil {
			t.Fatalf("ParseRole(%q) failed: %v", valid, err)
		}
		if role.String() != valid {
			t.Errorf("ParseRole(%q) = %q", valid, role)
		}
	}

	for _, invalid := range []string{"", "admin", "GUEST", "Member "} {
		if _, err := ParseRole(invalid); err == nil {
			t.Errorf("ParseRole(%q) should fail", invalid)
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleTrainer.Valid() {
		t.Error("TRAINER should be valid")
	}
	if Role("COACH").Valid() {
		t.Error("COACH should not be valid")
	}
}
