// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

/*
TestCapabilitiesOf covers every combination of stored role and staff flag.
*/
func TestCapabilitiesOf(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.Role
		isStaff bool
		want    sec.Capabilities
	}{
		{"plain user", sec.RoleUser, false, sec.Capabilities{}},
		{"moderator", sec.RoleModerator, false, sec.Capabilities{CanModerate: true}},
		{"admin role", sec.RoleAdmin, false, sec.Capabilities{CanAdminister: true, CanModerate: true}},
		{"staff user", sec.RoleUser, true, sec.Capabilities{CanAdminister: true, CanModerate: true}},
		{"staff moderator", sec.RoleModerator, true, sec.Capabilities{CanAdminister: true, CanModerate: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.CapabilitiesOf(tt.role, tt.isStaff))
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, sec.RoleUser.Valid())
	assert.True(t, sec.RoleModerator.Valid())
	assert.True(t, sec.RoleAdmin.Valid())
	assert.False(t, sec.Role("superuser").Valid())
	assert.False(t, sec.Role("").Valid())
}

/*
TestAdminOrReadOnly verifies the catalogue policy: reads are open, writes
need the administer capability.
*/
func TestAdminOrReadOnly(t *testing.T) {
	user := &sec.Principal{UserID: "u1", Role: sec.RoleUser}
	moderator := &sec.Principal{UserID: "m1", Role: sec.RoleModerator}
	admin := &sec.Principal{UserID: "a1", Role: sec.RoleAdmin}
	staff := &sec.Principal{UserID: "s1", Role: sec.RoleUser, IsStaff: true}

	tests := []struct {
		name       string
		method     string
		principal  *sec.Principal
		wantStatus int
	}{
		{"anonymous get", http.MethodGet, nil, 0},
		{"anonymous head", http.MethodHead, nil, 0},
		{"anonymous post", http.MethodPost, nil, http.StatusForbidden},
		{"user post", http.MethodPost, user, http.StatusForbidden},
		{"moderator delete", http.MethodDelete, moderator, http.StatusForbidden},
		{"admin patch", http.MethodPatch, admin, 0},
		{"staff delete", http.MethodDelete, staff, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.AdminOrReadOnly(tt.method, tt.principal)
			if tt.wantStatus == 0 {
				assert.NoError(t, err)
				return
			}
			appErr := apperr.As(err)
			if assert.NotNil(t, appErr) {
				assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
			}
		})
	}
}

/*
TestAuthorOrStaff verifies the review/comment policy for unsafe methods.
*/
func TestAuthorOrStaff(t *testing.T) {
	const authorID = "author-1"

	tests := []struct {
		name      string
		principal *sec.Principal
		allowed   bool
	}{
		{"anonymous", nil, false},
		{"author", &sec.Principal{UserID: authorID, Role: sec.RoleUser}, true},
		{"other user", &sec.Principal{UserID: "other", Role: sec.RoleUser}, false},
		{"moderator", &sec.Principal{UserID: "mod", Role: sec.RoleModerator}, true},
		{"admin", &sec.Principal{UserID: "adm", Role: sec.RoleAdmin}, true},
		{"staff", &sec.Principal{UserID: "stf", Role: sec.RoleUser, IsStaff: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.AuthorOrStaff(tt.principal, authorID)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			appErr := apperr.As(err)
			if assert.NotNil(t, appErr) {
				assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)
			}
		})
	}
}
