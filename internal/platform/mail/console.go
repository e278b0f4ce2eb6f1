// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"context"
	"log/slog"
)

// ConsoleSender logs messages instead of delivering them.
type ConsoleSender struct {
	from   string
	logger *slog.Logger
}

// NewConsoleSender creates a sender that writes to logger.
func NewConsoleSender(from string, logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{from: from, logger: logger}
}

// Send implements [Sender]. It only fails when the context is already done.
func (sender *ConsoleSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sender.logger.InfoContext(ctx, "email_written_to_console",
		slog.String("from", sender.from),
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
