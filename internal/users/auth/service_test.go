// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/internal/users/auth/authtest"
)

// # Fakes

type outbox struct {
	mu       sync.Mutex
	messages []message
	err      error
}

type message struct {
	to, subject, body string
}

func (box *outbox) Send(_ context.Context, to, subject, body string) error {
	box.mu.Lock()
	defer box.mu.Unlock()
	if box.err != nil {
		return box.err
	}
	box.messages = append(box.messages, message{to: to, subject: subject, body: body})
	return nil
}

var codePattern = regexp.MustCompile(`confirmation code: (\S+)`)

// lastCode extracts the code from the most recent message.
func (box *outbox) lastCode(t *testing.T) string {
	t.Helper()
	box.mu.Lock()
	defer box.mu.Unlock()
	require.NotEmpty(t, box.messages)
	match := codePattern.FindStringSubmatch(box.messages[len(box.messages)-1].body)
	require.Len(t, match, 2)
	return match[1]
}

type fixture struct {
	service *auth.Service
	users   *authtest.Users
	outbox  *outbox
	tokens  *sec.TokenService
	now     time.Time
}

var (
	keyOnce sync.Once
	rsaKey  *rsa.PrivateKey
)

func signingKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		rsaKey = key
	})
	return rsaKey
}

func newFixture(t *testing.T, seed ...*auth.User) *fixture {
	t.Helper()

	fx := &fixture{
		users:  authtest.NewUsers(seed...),
		outbox: &outbox{},
		now:    time.Now(),
	}

	generator, err := sec.NewCodeGenerator("test-confirmation-secret", time.Hour)
	require.NoError(t, err)
	codes := generator.WithClock(func() time.Time { return fx.now })

	key := signingKey(t)
	fx.tokens = sec.NewTokenServiceFromKey(key, &key.PublicKey, "yamdb-test", time.Hour)

	_, client := newRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fx.service = auth.NewService(
		fx.users,
		auth.NewRedeemedCodeRepository(client),
		codes,
		fx.tokens,
		fx.outbox,
		[]string{"me"},
		logger,
	)
	return fx
}

func requireAppError(t *testing.T, err error, code string, status int) *apperr.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected *apperr.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, status, appErr.HTTPStatus)
	return appErr
}

// # Signup

/*
TestSignup_NewAccount verifies that a fresh pair creates a plain user and
mails the code without returning it.
*/
func TestSignup_NewAccount(t *testing.T) {
	fx := newFixture(t)

	result, err := fx.service.Signup(context.Background(), auth.SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "reader", result.Username)
	assert.Equal(t, "reader@example.com", result.Email)

	user, err := fx.users.FindByUsername(context.Background(), "reader")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.IsStaff)

	require.Len(t, fx.outbox.messages, 1)
	assert.Equal(t, "reader@example.com", fx.outbox.messages[0].to)
	assert.NotEmpty(t, fx.outbox.lastCode(t))
}

/*
TestSignup_SamePairIsIdempotent verifies that repeating a signup keeps one
account and sends another code.
*/
func TestSignup_SamePairIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	input := auth.SignupInput{Username: "reader", Email: "reader@example.com"}

	_, err := fx.service.Signup(context.Background(), input)
	require.NoError(t, err)
	_, err = fx.service.Signup(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, fx.users.Len())
	assert.Len(t, fx.outbox.messages, 2)
}

/*
TestSignup_IdentityConflict verifies that either half of the pair being bound
to another account is rejected with 400.
*/
func TestSignup_IdentityConflict(t *testing.T) {
	existing := &auth.User{ID: "u-1", Username: "reader", Email: "reader@example.com", Role: sec.RoleUser}

	tests := []struct {
		name  string
		input auth.SignupInput
		field string
	}{
		{"username with other email", auth.SignupInput{Username: "reader", Email: "other@example.com"}, auth.FieldUsername},
		{"email with other username", auth.SignupInput{Username: "writer", Email: "reader@example.com"}, auth.FieldEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, existing)

			_, err := fx.service.Signup(context.Background(), tt.input)

			appErr := requireAppError(t, err, apperr.CodeIdentityConflict, http.StatusBadRequest)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
			assert.Empty(t, fx.outbox.messages)
			assert.Equal(t, 1, fx.users.Len())
		})
	}
}

/*
TestSignup_Validation verifies that malformed input never reaches storage.
*/
func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input auth.SignupInput
	}{
		{"reserved username", auth.SignupInput{Username: "me", Email: "me@example.com"}},
		{"invalid characters", auth.SignupInput{Username: "bad name!", Email: "a@example.com"}},
		{"missing email", auth.SignupInput{Username: "reader"}},
		{"malformed email", auth.SignupInput{Username: "reader", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)

			_, err := fx.service.Signup(context.Background(), tt.input)

			requireAppError(t, err, apperr.CodeValidation, http.StatusBadRequest)
			assert.Equal(t, 0, fx.users.Len())
			assert.Empty(t, fx.outbox.messages)
		})
	}
}

/*
TestSignup_DeliveryFailureRollsBack verifies that no account survives a
failed email dispatch.
*/
func TestSignup_DeliveryFailureRollsBack(t *testing.T) {
	fx := newFixture(t)
	fx.outbox.err = errors.New("smtp: connection refused")

	_, err := fx.service.Signup(context.Background(), auth.SignupInput{Username: "reader", Email: "reader@example.com"})

	requireAppError(t, err, apperr.CodeEmailDelivery, http.StatusBadGateway)
	assert.Equal(t, 0, fx.users.Len())
}

// # Token Issuance

func signup(t *testing.T, fx *fixture) string {
	t.Helper()
	_, err := fx.service.Signup(context.Background(), auth.SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)
	return fx.outbox.lastCode(t)
}

/*
TestIssueToken_Success verifies that a valid code yields a token whose
subject is the account.
*/
func TestIssueToken_Success(t *testing.T) {
	fx := newFixture(t)
	code := signup(t, fx)

	result, err := fx.service.IssueToken(context.Background(), auth.TokenInput{Username: "reader", ConfirmationCode: code})
	require.NoError(t, err)

	claims, err := fx.tokens.VerifyToken(result.Token)
	require.NoError(t, err)

	user, err := fx.users.FindByUsername(context.Background(), "reader")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "reader", claims.Username)
}

/*
TestIssueToken_Rejections covers every way an exchange can fail.
*/
func TestIssueToken_Rejections(t *testing.T) {
	t.Run("unknown username", func(t *testing.T) {
		fx := newFixture(t)
		code := signup(t, fx)

		_, err := fx.service.IssueToken(context.Background(), auth.TokenInput{Username: "ghost", ConfirmationCode: code})
		requireAppError(t, err, apperr.CodeNotFound, http.StatusNotFound)
	})

	t.Run("wrong code", func(t *testing.T) {
		fx := newFixture(t)
		signup(t, fx)

		_, err := fx.service.IssueToken(context.Background(), auth.TokenInput{Username: "reader", ConfirmationCode: "abc-0123456789abcdef0123"})
		requireAppError(t, err, apperr.CodeInvalidCode, http.StatusBadRequest)
	})

	t.Run("replayed code", func(t *testing.T) {
		fx := newFixture(t)
		code := signup(t, fx)

		_, err := fx.service.IssueToken(context.Background(), auth.TokenInput{Username: "reader", ConfirmationCode: code})
		require.NoError(t, err)

		_, err = fx.service.IssueToken(context.Background(), auth.TokenInput{Username: "reader", ConfirmationCode: code})
		requireAppError(t, err, apperr.CodeInvalidCode, http.StatusBadRequest)
	})

	t.Run("account changed after issue", func(t *testing.T) {
		fx := newFixture(t)
		code := signup(t, fx)

		user, err := fx.users.FindByUsername(context.Background(), "reader")
		require.NoError(t, err)
		user.Bio = "updated"
		require.NoError(t, fx.users.Update(context.Background(), user))

		_, err = fx.service.IssueToken(context.Background(), auth.TokenInput{Username: "reader", ConfirmationCode: code})
		requireAppError(t, err, apperr.CodeInvalidCode, http.StatusBadRequest)
	})

	t.Run("expired code", func(t *testing.T) {
		fx := newFixture(t)
		code := signup(t, fx)
		fx.now = fx.now.Add(2 * time.Hour)

		_, err := fx.service.IssueToken(context.Background(), auth.TokenInput{Username: "reader", ConfirmationCode: code})
		requireAppError(t, err, apperr.CodeInvalidCode, http.StatusBadRequest)
	})

	t.Run("missing code", func(t *testing.T) {
		fx := newFixture(t)

		_, err := fx.service.IssueToken(context.Background(), auth.TokenInput{Username: "reader"})
		requireAppError(t, err, apperr.CodeValidation, http.StatusBadRequest)
	})
}

// # Principal Resolution

func TestResolvePrincipal(t *testing.T) {
	staff := &auth.User{ID: "0190a000-0000-7000-8000-000000000001", Username: "root", Email: "root@example.com", Role: sec.RoleUser, IsStaff: true}
	fx := newFixture(t, staff)

	principal, err := fx.service.ResolvePrincipal(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "root", principal.Username)
	assert.True(t, principal.Capabilities().CanAdminister)

	_, err = fx.service.ResolvePrincipal(context.Background(), "not-a-uuid")
	requireAppError(t, err, apperr.CodeNotFound, http.StatusNotFound)
}
