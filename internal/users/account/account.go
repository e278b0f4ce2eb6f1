// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides administration of user accounts and the
self-service profile endpoints.

# Security

Every route except /users/me requires administrator capabilities. The
/users/me routes accept any authenticated caller and never change the role
or the staff flag, whatever the payload says.
*/
package account

import (
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Request Payloads

// CreateInput is the payload accepted by POST /users.
type CreateInput struct {
	Username  string   `json:"username" validate:"required,max=150,username"`
	Email     string   `json:"email" validate:"required,max=254,email"`
	FirstName string   `json:"first_name" validate:"max=150"`
	LastName  string   `json:"last_name" validate:"max=150"`
	Bio       string   `json:"bio"`
	Role      sec.Role `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UpdateInput is a partial update. Absent fields keep their stored value.
type UpdateInput struct {
	Username  *string   `json:"username" validate:"omitempty,max=150,username"`
	Email     *string   `json:"email" validate:"omitempty,max=254,email"`
	FirstName *string   `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string   `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string   `json:"bio"`
	Role      *sec.Role `json:"role" validate:"omitempty,oneof=user moderator admin"`
}
