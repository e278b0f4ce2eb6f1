// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/internal/users/auth/authtest"
)

func seedUsers() (*auth.User, *auth.User, *authtest.Users) {
	plain := &auth.User{ID: "u-plain", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}
	admin := &auth.User{ID: "u-admin", Username: "boss", Email: "boss@example.com", Role: sec.RoleAdmin}
	return plain, admin, authtest.NewUsers(plain, admin)
}

func newRouter(users *authtest.Users) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := account.NewService(users, []string{"me"}, logger)
	return account.NewHandler(service).Routes()
}

// do sends a request as the given account (nil for anonymous).
func do(t *testing.T, router http.Handler, caller *auth.User, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, reader)
	if caller != nil {
		request = request.WithContext(ctxutil.WithPrincipal(context.Background(), caller.Principal()))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestUpdateMe_RoleIsIgnored verifies that a plain user cannot promote
themselves through the self-service endpoint while other fields still apply.
*/
func TestUpdateMe_RoleIsIgnored(t *testing.T) {
	plain, _, users := seedUsers()
	router := newRouter(users)

	// 1. Attempt self-promotion together with a legitimate edit
	recorder := do(t, router, plain, http.MethodPatch, "/me", map[string]string{"role": "admin", "bio": "hello"})
	require.Equal(t, http.StatusOK, recorder.Code)

	// 2. Response and storage keep the original role
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, "hello", body["bio"])

	stored, err := users.FindByID(context.Background(), plain.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, stored.Role)
	assert.Equal(t, "hello", stored.Bio)
}

/*
TestRoutes_Permissions checks the admin-only surface against each kind of caller.
*/
func TestRoutes_Permissions(t *testing.T) {
	plain, admin, users := seedUsers()
	staff := &auth.User{ID: "u-staff", Username: "ops", Email: "ops@example.com", Role: sec.RoleUser, IsStaff: true}
	require.NoError(t, users.Create(context.Background(), staff))
	router := newRouter(users)

	tests := []struct {
		name   string
		caller *auth.User
		method string
		path   string
		want   int
	}{
		{"anonymous me", nil, http.MethodGet, "/me", http.StatusForbidden},
		{"user me", plain, http.MethodGet, "/me", http.StatusOK},
		{"anonymous list", nil, http.MethodGet, "/", http.StatusForbidden},
		{"user list", plain, http.MethodGet, "/", http.StatusForbidden},
		{"admin list", admin, http.MethodGet, "/", http.StatusOK},
		{"staff list", staff, http.MethodGet, "/", http.StatusOK},
		{"user get other", plain, http.MethodGet, "/boss", http.StatusForbidden},
		{"admin get", admin, http.MethodGet, "/reader", http.StatusOK},
		{"admin get missing", admin, http.MethodGet, "/ghost", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(t, router, tt.caller, tt.method, tt.path, nil)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

/*
TestAdmin_Lifecycle drives create, update, list and delete as an administrator.
*/
func TestAdmin_Lifecycle(t *testing.T) {
	_, admin, users := seedUsers()
	router := newRouter(users)

	// 1. Create a moderator
	recorder := do(t, router, admin, http.MethodPost, "/", map[string]string{
		"username": "mod", "email": "mod@example.com", "role": "moderator",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	created, err := users.FindByUsername(context.Background(), "mod")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, created.Role)
	assert.False(t, created.IsStaff)

	// 2. Duplicate email is an identity conflict
	recorder = do(t, router, admin, http.MethodPost, "/", map[string]string{
		"username": "other", "email": "mod@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "IDENTITY_CONFLICT")

	// 3. Admins may change roles
	recorder = do(t, router, admin, http.MethodPatch, "/mod", map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, recorder.Code)
	updated, err := users.FindByUsername(context.Background(), "mod")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, updated.Role)

	// 4. Search narrows the list
	recorder = do(t, router, admin, http.MethodGet, "/?search=MO", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var page struct {
		Data []map[string]any `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Meta.Count)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "mod", page.Data[0]["username"])

	// 5. Delete
	recorder = do(t, router, admin, http.MethodDelete, "/mod", nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	_, err = users.FindByUsername(context.Background(), "mod")
	assert.Error(t, err)
}

/*
TestAdmin_CreateValidation rejects reserved names, bad roles and bad characters.
*/
func TestAdmin_CreateValidation(t *testing.T) {
	_, admin, users := seedUsers()
	router := newRouter(users)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"reserved", map[string]string{"username": "me", "email": "me@example.com"}},
		{"bad role", map[string]string{"username": "x", "email": "x@example.com", "role": "root"}},
		{"bad characters", map[string]string{"username": "a b", "email": "ab@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(t, router, admin, http.MethodPost, "/", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
		})
	}
}
