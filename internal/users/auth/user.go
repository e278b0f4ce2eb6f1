// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account identity, email-confirmed signup and access
token issuance.

It defines the core [User] entity shared with the account management package,
and the registration state machine:

	Requested -> CodeSent -> (Redeemed | Expired/Invalid)

# Architecture

Entities defined here carry no storage or transport concerns. Capability
checks are derived from the stored role and staff flag through [sec.CapabilitiesOf].
*/
package auth

import (
	"time"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
//
// The JSON form is the public account representation; the identifier, the
// staff flag and timestamps are never serialized.
type User struct {
	ID        string    `json:"-"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	Role      sec.Role  `json:"role"`
	IsStaff   bool      `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Capabilities returns the permission snapshot for the account.
func (user *User) Capabilities() sec.Capabilities {
	return sec.CapabilitiesOf(user.Role, user.IsStaff)
}

// IsAdmin reports whether the role is admin or the account holds staff access.
func (user *User) IsAdmin() bool { return user.Capabilities().CanAdminister }

// IsModerator reports whether the stored role is moderator.
func (user *User) IsModerator() bool { return user.Role == sec.RoleModerator }

// State returns the snapshot that confirmation codes are bound to.
func (user *User) State() sec.AccountState {
	return sec.AccountState{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		IsStaff:   user.IsStaff,
		UpdatedAt: user.UpdatedAt,
	}
}

// Principal converts the account into the request-scoped caller.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsStaff:  user.IsStaff,
	}
}

// # Field Identifiers

// Field names used in validation details and request payloads.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
)

// # Limits

const (
	// UsernameMaxLength matches the users.account.username column.
	UsernameMaxLength = 150
	// EmailMaxLength matches the users.account.email column.
	EmailMaxLength = 254
	// NameMaxLength bounds first and last names.
	NameMaxLength = 150
)
