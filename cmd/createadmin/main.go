// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command createadmin grants elevated staff access to an account.
//
// The staff flag is never writable through the HTTP API, so bootstrapping
// the first administrator happens here. An existing account is promoted in
// place; otherwise a new one is created with role admin.
//
// Usage:
//
//	createadmin -username alice -email alice@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/migration"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

func main() {
	username := flag.String("username", "", "account username (required)")
	email := flag.String("email", "", "account email, required when the account does not exist yet")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With(slog.String("app", constants.AppName))

	if err := run(log, *username, *email); err != nil {
		log.Error("createadmin_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// checkIdentity applies the signup rules to the flags. email is only
// required when a new account is created.
func checkIdentity(username, email string, reserved []string, creating bool) error {
	var check validate.Validator
	check.Required("username", username).
		Username("username", username).
		NotReserved("username", username, reserved)

	if creating {
		check.Required("email", email).Email("email", email)
	}
	return check.Err()
}

func run(log *slog.Logger, username, email string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := checkIdentity(username, email, cfg.ReservedUsernames, false); err != nil {
		return err
	}

	context, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log, false); err != nil {
		return err
	}

	users := auth.NewUserRepository(pool)

	// 1. Promote in place
	user, err := users.FindByUsername(context, username)
	switch {
	case err == nil:
		user.IsStaff = true
		if err := users.Update(context, user); err != nil {
			return fmt.Errorf("createadmin_promote_failed: %w", err)
		}
		log.Info("account_promoted", slog.String("username", username))
		return nil
	case !apperr.IsNotFound(err):
		return fmt.Errorf("createadmin_lookup_failed: %w", err)
	}

	// 2. Create a fresh staff account
	if err := checkIdentity(username, email, cfg.ReservedUsernames, true); err != nil {
		return err
	}

	user = &auth.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Role:     sec.RoleAdmin,
		IsStaff:  true,
	}
	if err := users.Create(context, user); err != nil {
		return fmt.Errorf("createadmin_create_failed: %w", err)
	}

	log.Info("account_created", slog.String("username", username), slog.Bool("is_staff", true))
	return nil
}
