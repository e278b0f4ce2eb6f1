// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, username string) (string, error)
}

// CodeIssuer mints and checks state-bound confirmation codes.
type CodeIssuer interface {
	Make(state sec.AccountState) string
	Check(state sec.AccountState, code string) bool
	TTL() time.Duration
}

// Mailer delivers the confirmation email.
type Mailer interface {
	Send(context context.Context, to, subject, body string) error
}

// Service implements signup and token issuance.
type Service struct {
	users             UserRepository
	redeemed          RedeemedCodeRepository
	codes             CodeIssuer
	tokens            TokenProvider
	mailer            Mailer
	reservedUsernames []string
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	users UserRepository,
	redeemed RedeemedCodeRepository,
	codes CodeIssuer,
	tokens TokenProvider,
	mailer Mailer,
	reservedUsernames []string,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:             users,
		redeemed:          redeemed,
		codes:             codes,
		tokens:            tokens,
		mailer:            mailer,
		reservedUsernames: reservedUsernames,
		logger:            logger,
	}
}

// # Registration Flow

// SignupInput is the payload of POST /auth/signup.
type SignupInput struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,max=254,email"`
}

/*
Signup registers (or re-confirms) the exact (email, username) pair and mails
a fresh confirmation code.

Description: The lookup, the optional insert and the email dispatch share one
transaction. A new account is committed only when the mail transport accepted
the message; an existing pair simply receives a new code. The code is never
returned in-band.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupInput: The validated username and email
  - error: ValidationError, IdentityConflict or EmailDeliveryFailed
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupInput, error) {
	validator := &validate.Validator{}
	if err := validator.
		Struct(input).
		NotReserved(FieldUsername, input.Username, service.reservedUsernames).
		Err(); err != nil {
		return nil, err
	}

	var created bool
	err := service.users.Transact(context, func(repository UserRepository) error {
		user, isNew, err := service.getOrCreate(context, repository, input)
		if err != nil {
			return err
		}
		created = isNew

		code := service.codes.Make(user.State())
		body := fmt.Sprintf("Hello, %s!\n\nYour confirmation code: %s\n\nExchange it at POST /api/v1/auth/token within %s.\n",
			user.Username, code, service.codes.TTL())

		if err := service.mailer.Send(context, user.Email, constants.ConfirmationSubject, body); err != nil {
			return apperr.EmailDeliveryFailed(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "signup_code_sent",
		slog.String("username", input.Username),
		slog.Bool("new_account", created),
	)

	return &SignupInput{Username: input.Username, Email: input.Email}, nil
}

// getOrCreate resolves the exact pair. Either half being bound to another
// account is an identity conflict.
func (service *Service) getOrCreate(context context.Context, repository UserRepository, input SignupInput) (*User, bool, error) {

	// 1. Username already registered
	byUsername, err := repository.FindByUsername(context, input.Username)
	switch {
	case err == nil && byUsername.Email == input.Email:
		return byUsername, false, nil
	case err == nil:
		return nil, false, apperr.IdentityConflict("Username is registered with a different email",
			apperr.FieldError{Field: FieldUsername, Message: "This username is already taken"})
	case !apperr.IsNotFound(err):
		return nil, false, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// 2. Email already registered under another username
	_, err = repository.FindByEmail(context, input.Email)
	switch {
	case err == nil:
		return nil, false, apperr.IdentityConflict("Email is registered with a different username",
			apperr.FieldError{Field: FieldEmail, Message: "This email is already registered"})
	case !apperr.IsNotFound(err):
		return nil, false, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// 3. Fresh account; the unique constraints catch a concurrent signup
	user := &User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}
	if err := repository.Create(context, user); err != nil {
		return nil, false, err
	}

	return user, true, nil
}

// # Token Flow

// TokenInput is the payload of POST /auth/token.
type TokenInput struct {
	Username         string `json:"username" validate:"required,max=150,username"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// TokenResult is the body of a successful token exchange.
type TokenResult struct {
	Token string `json:"token"`
}

/*
IssueToken exchanges a confirmation code for a signed access token.

Description: The code must match the account's current state, be within its
lifetime and not have been exchanged before.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - *TokenResult: The signed token
  - error: ValidationError, NotFound (unknown username) or InvalidCode
*/
func (service *Service) IssueToken(context context.Context, input TokenInput) (*TokenResult, error) {
	validator := &validate.Validator{}
	if err := validator.
		Struct(input).
		NotReserved(FieldUsername, input.Username, service.reservedUsernames).
		Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByUsername(context, input.Username)
	if err != nil {
		return nil, err
	}

	if !service.codes.Check(user.State(), input.ConfirmationCode) {
		service.logger.WarnContext(context, "token_code_rejected", slog.String("user_id", user.ID))
		return nil, apperr.InvalidCode()
	}

	fresh, err := service.redeemed.MarkRedeemed(context, input.ConfirmationCode, service.codes.TTL())
	if err != nil {
		return nil, fmt.Errorf("auth_service_redeem_failed: %w", err)
	}
	if !fresh {
		service.logger.WarnContext(context, "token_code_replayed", slog.String("user_id", user.ID))
		return nil, apperr.InvalidCode()
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_sign_failed: %w", err)
	}

	service.logger.InfoContext(context, "token_issued", slog.String("user_id", user.ID))
	return &TokenResult{Token: token}, nil
}

// # Principal Resolution

// ResolvePrincipal loads the current role and staff flag of a token's subject.
// It satisfies [middleware.PrincipalResolver].
func (service *Service) ResolvePrincipal(context context.Context, userID string) (*sec.Principal, error) {
	if !uuid.Valid(userID) {
		return nil, apperr.NotFound("User")
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}
