package auth

import (
	"testing"

	"github.com/sixphrase/slot-reservation/internal/model"
)

func TestPrincipalIsAdmin(t *testing.T) {
	if !(Principal{Role: model.RoleAdmin}).IsAdmin() {
		t.Error("admin principal not recognized")
	}
	if (Principal{Role: model.RoleDepartmentHead, DepartmentID: 3}).IsAdmin() {
		t.Error("department head misreported as admin")
	}
}

func TestPrincipalCanSubmitFor(t *testing.T) {
	admin := Principal{UserID: 1, Role: model.RoleAdmin}
	head := Principal{UserID: 2, Role: model.RoleDepartmentHead, DepartmentID: 7}

	if !admin.CanSubmitFor(7) || !admin.CanSubmitFor(9) {
		t.Error("admin should be able to submit for any department")
	}
	if !head.CanSubmitFor(7) {
		t.Error("head should be able to submit for own department")
	}
	if head.CanSubmitFor(9) {
		t.Error("head must not submit for another department")
	}
	if head.CanSubmitFor(0) {
		t.Error("zero department id must never be submittable")
	}
	if (Principal{Role: "GUEST", DepartmentID: 7}).CanSubmitFor(7) {
		t.Error("unknown role must not submit")
	}
}
