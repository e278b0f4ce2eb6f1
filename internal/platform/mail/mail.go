// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers outbound email.

Two transports implement [Sender]:

  - [SMTPSender]: authenticated SMTP with STARTTLS, used in deployed environments.
  - [ConsoleSender]: writes the message to the structured log, used locally.

A returned error always means the message was not accepted by the transport.
Callers must surface it instead of treating delivery as best effort.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/config"
)

// Sender delivers a single plain-text message.
type Sender interface {
	Send(context context.Context, to, subject, body string) error
}

// NewSender selects the transport configured by EMAIL_BACKEND.
func NewSender(cfg *config.Config, logger *slog.Logger) (Sender, error) {
	switch cfg.EmailBackend {
	case config.EmailBackendSMTP:
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		}), nil
	case config.EmailBackendConsole:
		return NewConsoleSender(cfg.EmailFrom, logger), nil
	default:
		return nil, fmt.Errorf("mail: unknown backend %q", cfg.EmailBackend)
	}
}

// buildMessage renders an RFC 5322 message with CRLF line endings.
// Header values are stripped of line breaks to prevent header injection.
func buildMessage(from, to, subject, body string) []byte {
	clean := strings.NewReplacer("\r", "", "\n", "")

	var b strings.Builder
	b.WriteString("From: " + clean.Replace(from) + "\r\n")
	b.WriteString("To: " + clean.Replace(to) + "\r\n")
	b.WriteString("Subject: " + clean.Replace(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(b.String())
}
