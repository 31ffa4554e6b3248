// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sharing implements the access-control resolver for share links
// and email invitations: opaque token handling, slug-path resolution over
// the category forest, the grant/deny decision core, and the content
// scoping that narrows queries to a granted subtree.
//
// The package talks to storage through small interfaces so every decision
// path is testable without a database.
package sharing

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// TokenLength is the character length of a public share token:
// 16 random bytes, hex encoded.
const TokenLength = 32

// tokenFormat matches exactly one well-formed token. Lowercase hex only,
// so the empty string and look-alike junk fail without a storage lookup.
var tokenFormat = regexp.MustCompile(`^[0-9a-f]{32}$`)

// ValidTokenFormat reports whether a candidate string has the shape of a
// share token. It is a pure syntactic check — a valid format says nothing
// about whether the token exists. Malformed input is rejected here in O(1)
// before any lookup is attempted.
func ValidTokenFormat(token string) bool {
	return len(token) == TokenLength && tokenFormat.MatchString(token)
}

// GenerateToken produces a fresh high-entropy token. Uniqueness against
// stored tokens is enforced by the database's unique index; callers retry
// generation if they lose that race.
func GenerateToken() (string, error) {
	b := make([]byte, TokenLength/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
