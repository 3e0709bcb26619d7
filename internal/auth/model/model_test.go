package model

import "testing"

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("User"); err != nil || r != RoleUser {
		t.Fatalf("User: %v %v", r, err)
	}
	if r, err := ParseRole("Admin"); err != nil || r != RoleAdmin {
		t.Fatalf("Admin: %v %v", r, err)
	}
	if _, err := ParseRole("Root"); err == nil {
		t.Fatal("Root must not parse")
	}
	if _, err := ParseRole("user"); err == nil {
		t.Fatal("roles are case-sensitive")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAdmin.Valid() {
		t.Fatal("known roles must be valid")
	}
	if Role("").Valid() || Role("Root").Valid() {
		t.Fatal("unknown roles must be invalid")
	}
}
