// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys the HTTP chain writes once per
// request: correlation id, client address, resolved caller and the tagged
// logger. Reads go through ctxutil.
package ctxkey

// key keeps these entries apart from string keys set by other packages.
type key string

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyClientIP carries the address the rate limiter and access log key on.
	KeyClientIP key = "client_ip"

	// KeyPrincipal carries the caller resolved from the bearer token.
	KeyPrincipal key = "principal"

	// KeyLogger carries the request-scoped [*log/slog.Logger].
	KeyLogger key = "logger"
)
