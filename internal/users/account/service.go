// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates account administration and self-service profile edits.
type Service struct {
	userRepository    auth.UserRepository
	reservedUsernames []string
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository, reservedUsernames []string, logger *slog.Logger) *Service {
	return &Service{
		userRepository:    userRepo,
		reservedUsernames: reservedUsernames,
		logger:            logger,
	}
}

// # Administration

/*
List returns a page of accounts ordered by username.

Parameters:
  - context: context.Context
  - search: string (Case-insensitive username fragment; empty lists all)
  - page: pagination.Params

Returns:
  - []*auth.User: The page
  - int: Total matches
  - error: Storage failures
*/
func (service *Service) List(context context.Context, search string, page pagination.Params) ([]*auth.User, int, error) {
	users, total, err := service.userRepository.List(context, auth.UserFilter{Search: search}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

/*
Create registers an account directly, with any role. Staff access is never
granted through this path.

Returns:
  - *auth.User: The persisted account
  - error: ValidationError or IdentityConflict
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	validator := &validate.Validator{}
	if err := validator.
		Struct(input).
		NotReserved(auth.FieldUsername, input.Username, service.reservedUsernames).
		Err(); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	user := &auth.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account_created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// Get returns the account with the given username.
func (service *Service) Get(context context.Context, username string) (*auth.User, error) {
	return service.userRepository.FindByUsername(context, username)
}

/*
Update applies a partial update to the account addressed by username.

Returns:
  - *auth.User: The updated account
  - error: NotFound, ValidationError or IdentityConflict
*/
func (service *Service) Update(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return service.apply(context, user, input)
}

// Delete removes the account addressed by username.
func (service *Service) Delete(context context.Context, username string) error {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.userRepository.Delete(context, user.ID); err != nil {
		return err
	}

	service.logger.WarnContext(context, "account_deleted", slog.String("user_id", user.ID))
	return nil
}

// # Self Service

// GetMe returns the caller's own account.
func (service *Service) GetMe(context context.Context, principal *sec.Principal) (*auth.User, error) {
	return service.userRepository.FindByID(context, principal.UserID)
}

/*
UpdateMe applies a partial update to the caller's own account.

Description: The role in the payload is discarded before anything else
happens, so a caller cannot promote or demote themselves.

Returns:
  - *auth.User: The updated account
  - error: ValidationError or IdentityConflict
*/
func (service *Service) UpdateMe(context context.Context, principal *sec.Principal, input UpdateInput) (*auth.User, error) {
	input.Role = nil

	user, err := service.userRepository.FindByID(context, principal.UserID)
	if err != nil {
		return nil, err
	}
	return service.apply(context, user, input)
}

// apply validates the delta, merges it and persists the result.
func (service *Service) apply(context context.Context, user *auth.User, input UpdateInput) (*auth.User, error) {
	validator := &validate.Validator{}
	validator.Struct(input)
	if input.Username != nil {
		validator.NotReserved(auth.FieldUsername, *input.Username, service.reservedUsernames)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	pointer.Apply(&user.Username, input.Username)
	pointer.Apply(&user.Email, input.Email)
	pointer.Apply(&user.FirstName, input.FirstName)
	pointer.Apply(&user.LastName, input.LastName)
	pointer.Apply(&user.Bio, input.Bio)
	pointer.Apply(&user.Role, input.Role)

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account_updated", slog.String("user_id", user.ID))
	return user, nil
}
