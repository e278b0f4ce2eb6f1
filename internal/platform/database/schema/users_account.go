// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table              string
	ID                 string
	Username           string
	Email              string
	FirstName          string
	LastName           string
	Bio                string
	Role               string
	IsStaff            string
	CreatedAt          string
	UpdatedAt          string
	UsernameConstraint string
	EmailConstraint    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:              "users.account",
	ID:                 "id",
	Username:           "username",
	Email:              "email",
	FirstName:          "firstname",
	LastName:           "lastname",
	Bio:                "bio",
	Role:               "role",
	IsStaff:            "isstaff",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
	UsernameConstraint: "uq_account_username",
	EmailConstraint:    "uq_account_email",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Bio,
		t.Role, t.IsStaff, t.CreatedAt, t.UpdatedAt,
	}
}
