// Package auth defines the Principal capability resolved once per request
// from the access token's claims.  Handlers consult the Principal for
// authorization decisions instead of re-querying role tables ad hoc.
package auth

import "github.com/sixphrase/slot-reservation/internal/model"

// Principal describes the authenticated caller.  DepartmentID is zero for
// admins; for department heads it names the single department the account
// manages.
type Principal struct {
	UserID       uint64
	Role         string
	DepartmentID uint64
}

// IsAdmin reports whether the caller holds the coordinator role.
func (p Principal) IsAdmin() bool { return p.Role == model.RoleAdmin }

// CanSubmitFor reports whether the caller may submit on behalf of the
// given department.  Admins may submit for any department; a department
// head only for their own.
func (p Principal) CanSubmitFor(departmentID uint64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Role == model.RoleDepartmentHead && p.DepartmentID == departmentID && departmentID != 0
}
