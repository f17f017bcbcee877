// Package email holds helpers for working with email addresses.
package email

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"unicode"
)

// Hash returns a URL-safe base64 SHA-256 of the address so logs can
// correlate users without storing the address itself.
func Hash(address string) string {
	sum := sha256.Sum256([]byte(address))
	return base64.URLEncoding.EncodeToString(sum[:])
}

// Normalize lowercases and trims an address for comparisons.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// DisplayName derives "First Last" from the local part of an address. It is
// used to prefill the name on the account creation page.
func DisplayName(address string) string {
	localPart := address
	if at := strings.IndexByte(address, '@'); at >= 0 {
		localPart = address[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return ""
	}

	names := make([]string, 0, 2)
	names = append(names, capitalize(parts[0]))
	if len(parts) > 1 {
		names = append(names, capitalize(parts[len(parts)-1]))
	}
	return strings.Join(names, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
