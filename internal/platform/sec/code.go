// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

// codeInfo separates the confirmation-code key from any other key derived
// from the same secret.
const codeInfo = "yamdb/confirmation-code/v1"

// codeMACLength is the number of hex characters kept from the MAC.
const codeMACLength = 20

// AccountState is the account snapshot a confirmation code is bound to.
//
// Every field that a user or an administrator can change is represented,
// either directly or through UpdatedAt, so any mutation invalidates the codes
// issued before it.
type AccountState struct {
	UserID    string
	Username  string
	Email     string
	Role      Role
	IsStaff   bool
	UpdatedAt time.Time
}

// CodeGenerator mints and verifies stateless confirmation codes.
//
// A code has the form "<issued-at base36>-<truncated HMAC>". Nothing is
// stored when a code is minted; single use is enforced by the caller.
type CodeGenerator struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewCodeGenerator derives the MAC key from secret with HKDF-SHA256.
func NewCodeGenerator(secret string, ttl time.Duration) (*CodeGenerator, error) {
	if secret == "" {
		return nil, errors.New("sec: confirmation secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("sec: confirmation code ttl must be positive")
	}

	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(codeInfo)), key); err != nil {
		return nil, fmt.Errorf("sec: derive confirmation key: %w", err)
	}

	return &CodeGenerator{key: key, ttl: ttl, now: time.Now}, nil
}

// WithClock returns a copy of the generator that reads time from now.
func (g *CodeGenerator) WithClock(now func() time.Time) *CodeGenerator {
	clone := *g
	clone.now = now
	return &clone
}

// TTL is the lifetime of a freshly minted code.
func (g *CodeGenerator) TTL() time.Duration { return g.ttl }

// Make mints a code for the given account state.
func (g *CodeGenerator) Make(state AccountState) string {
	issuedAt := g.now().Unix()
	return strconv.FormatInt(issuedAt, 36) + "-" + g.mac(state, issuedAt)
}

// Check reports whether code was minted for exactly this state and is still fresh.
func (g *CodeGenerator) Check(state AccountState, code string) bool {
	stamp, mac, ok := strings.Cut(code, "-")
	if !ok || len(mac) != codeMACLength {
		return false
	}

	issuedAt, err := strconv.ParseInt(stamp, 36, 64)
	if err != nil {
		return false
	}

	age := g.now().Sub(time.Unix(issuedAt, 0))
	if age < -time.Minute || age > g.ttl {
		return false
	}

	return hmac.Equal([]byte(mac), []byte(g.mac(state, issuedAt)))
}

func (g *CodeGenerator) mac(state AccountState, issuedAt int64) string {
	h := hmac.New(sha256.New, g.key)

	// Length-prefix each string so field boundaries cannot shift.
	for _, field := range []string{state.UserID, state.Username, state.Email, string(state.Role)} {
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(field)))
		h.Write(size[:])
		h.Write([]byte(field))
	}

	var tail [17]byte
	if state.IsStaff {
		tail[0] = 1
	}
	binary.BigEndian.PutUint64(tail[1:9], uint64(state.UpdatedAt.UnixMicro()))
	binary.BigEndian.PutUint64(tail[9:], uint64(issuedAt))
	h.Write(tail[:])

	return hex.EncodeToString(h.Sum(nil))[:codeMACLength]
}
