package model

import "time"

// Roles stored in users.role and embedded in access-token claims.
const (
	RoleAdmin          = "ADMIN"
	RoleDepartmentHead = "DEPARTMENT_HEAD"
)

// User represents an application account as stored in the `users` table.
// Admin accounts carry no department; department-head accounts are bound to
// exactly one department and may only submit for its sections.  JSON tags
// are omitted because these structs are used internally by the repository
// layer; handlers define separate response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – ADMIN or DEPARTMENT_HEAD.
//  DepartmentID – department the head manages; nil for admins.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	DepartmentID *uint64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to a user and contains metadata for expiry and revocation.
// The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
