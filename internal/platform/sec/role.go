// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role represents the authorization level stored on an account.
type Role string

const (
	// Default role for accounts created through signup
	RoleUser Role = "user"

	// Can edit or remove any review and comment
	RoleModerator Role = "moderator"

	// Full access to the catalogue and to user management
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleNames lists every accepted role value, in the order used for validation messages.
func RoleNames() []string {
	return []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}
}

// # Capabilities

// Capabilities is the per-request permission snapshot derived from an account.
//
// Permission checks consult this value instead of re-reading the role and the
// staff flag separately.
type Capabilities struct {
	// CanAdminister grants catalogue writes and user management.
	CanAdminister bool
	// CanModerate grants edit/delete on reviews and comments authored by others.
	CanModerate bool
}

// CapabilitiesOf derives [Capabilities] from the stored role and the staff flag.
//
// An account administers when its role is admin or it holds staff access.
// Moderation is granted to moderators and, by extension, to administrators.
func CapabilitiesOf(role Role, isStaff bool) Capabilities {
	admin := role == RoleAdmin || isStaff
	return Capabilities{
		CanAdminister: admin,
		CanModerate:   admin || role == RoleModerator,
	}
}

// # Principal

// Principal is the authenticated caller attached to a request context.
//
// It is rebuilt from storage on every request, so role changes and account
// deletion take effect immediately without waiting for the token to expire.
type Principal struct {
	UserID   string
	Username string
	Role     Role
	IsStaff  bool
}

// Capabilities returns the permission snapshot for the principal.
func (p *Principal) Capabilities() Capabilities {
	return CapabilitiesOf(p.Role, p.IsStaff)
}
