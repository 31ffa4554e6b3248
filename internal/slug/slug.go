// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation and slug-path
// parsing for category hierarchies.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// validSlug is the shape every stored slug must have. Generate always
	// produces this shape; Valid guards slugs arriving from request paths.
	validSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Valid reports whether s is a well-formed slug: lowercase alphanumerics
// separated by single hyphens, no leading or trailing hyphen.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}

// SplitPath parses a category slug path like "security/web" into its
// segments, validating each. Rejects empty paths, empty segments
// (double slashes), and malformed slugs, so "../" tricks and encoded
// separators never survive to a lookup.
func SplitPath(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, fmt.Errorf("empty slug path")
	}

	segments := strings.Split(path, "/")
	for _, seg := range segments {
		if !Valid(seg) {
			return nil, fmt.Errorf("invalid slug segment %q", seg)
		}
	}
	return segments, nil
}

// JoinPath is the inverse of SplitPath.
func JoinPath(segments []string) string {
	return strings.Join(segments, "/")
}
