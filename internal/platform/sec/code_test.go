// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

func newGenerator(t *testing.T, now time.Time) *sec.CodeGenerator {
	t.Helper()
	generator, err := sec.NewCodeGenerator("test-secret", time.Hour)
	require.NoError(t, err)
	return generator.WithClock(func() time.Time { return now })
}

func sampleState() sec.AccountState {
	return sec.AccountState{
		UserID:    "0190a3c4-0000-7000-8000-000000000001",
		Username:  "reader",
		Email:     "reader@example.com",
		Role:      sec.RoleUser,
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 123456000, time.UTC),
	}
}

func TestCodeGenerator_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	generator := newGenerator(t, now)
	state := sampleState()

	code := generator.Make(state)

	assert.True(t, generator.Check(state, code))
	assert.NotContains(t, code, state.Email)
}

/*
TestCodeGenerator_StateMutation verifies that a code stops validating once
any bound field of the account changes.
*/
func TestCodeGenerator_StateMutation(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	generator := newGenerator(t, now)
	original := sampleState()
	code := generator.Make(original)

	mutations := map[string]func(s *sec.AccountState){
		"profile edit bumps updated_at": func(s *sec.AccountState) { s.UpdatedAt = s.UpdatedAt.Add(time.Microsecond) },
		"username":                      func(s *sec.AccountState) { s.Username = "reader2" },
		"email":                         func(s *sec.AccountState) { s.Email = "other@example.com" },
		"role":                          func(s *sec.AccountState) { s.Role = sec.RoleModerator },
		"staff flag":                    func(s *sec.AccountState) { s.IsStaff = true },
		"different account":             func(s *sec.AccountState) { s.UserID = "another-id" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			state := original
			mutate(&state)
			assert.False(t, generator.Check(state, code))
		})
	}
}

func TestCodeGenerator_Expiry(t *testing.T) {
	issued := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	state := sampleState()
	code := newGenerator(t, issued).Make(state)

	// 1. Still valid right before the TTL elapses
	assert.True(t, newGenerator(t, issued.Add(59*time.Minute)).Check(state, code))

	// 2. Rejected once the TTL has passed
	assert.False(t, newGenerator(t, issued.Add(61*time.Minute)).Check(state, code))
}

func TestCodeGenerator_Malformed(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	generator := newGenerator(t, now)
	state := sampleState()
	valid := generator.Make(state)
	stamp, mac, _ := strings.Cut(valid, "-")

	for _, code := range []string{
		"",
		"no-dash-here",
		stamp,
		stamp + "-" + mac[:len(mac)-1],
		"!!!-" + mac,
		stamp + "-" + strings.Repeat("0", len(mac)),
	} {
		assert.False(t, generator.Check(state, code), code)
	}
}

func TestCodeGenerator_SecretMatters(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	state := sampleState()

	other, err := sec.NewCodeGenerator("another-secret", time.Hour)
	require.NoError(t, err)
	other = other.WithClock(func() time.Time { return now })

	code := newGenerator(t, now).Make(state)
	assert.False(t, other.Check(state, code))
}

func TestNewCodeGenerator_Rejects(t *testing.T) {
	_, err := sec.NewCodeGenerator("", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewCodeGenerator("secret", 0)
	assert.Error(t, err)
}
