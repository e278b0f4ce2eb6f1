// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"net/http"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// Denial messages are shared so handlers and tests agree on wording.
const (
	MsgLoginRequired = "Authentication credentials were not provided"
	MsgAdminRequired = "Administrator privileges are required"
	MsgNotAuthor     = "Only the author, a moderator or an administrator may change this resource"
)

// IsSafeMethod reports whether method never mutates server state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// RequireAuthenticated vetoes anonymous callers.
func RequireAuthenticated(principal *Principal) error {
	if principal == nil {
		return apperr.Forbidden(MsgLoginRequired)
	}
	return nil
}

// RequireAdmin vetoes callers without the administer capability.
func RequireAdmin(principal *Principal) error {
	if err := RequireAuthenticated(principal); err != nil {
		return err
	}
	if !principal.Capabilities().CanAdminister {
		return apperr.Forbidden(MsgAdminRequired)
	}
	return nil
}

// AdminOrReadOnly lets anyone use safe methods and restricts the rest to administrators.
// It backs the category, genre and title resources.
func AdminOrReadOnly(method string, principal *Principal) error {
	if IsSafeMethod(method) {
		return nil
	}
	return RequireAdmin(principal)
}

// AuthorOrStaff decides an unsafe request against an authored object
// (review or comment). The author may always proceed, and so may moderators
// and administrators.
func AuthorOrStaff(principal *Principal, authorID string) error {
	if err := RequireAuthenticated(principal); err != nil {
		return err
	}
	if principal.UserID == authorID || principal.Capabilities().CanModerate {
		return nil
	}
	return apperr.Forbidden(MsgNotAuthor)
}
