package auth

import "strings"

const (
	usernameMinLen = 3
	usernameMaxLen = 20
	// Clients send a fixed-length hex digest, not a plaintext password.
	passwordDigestLen = 32
)

// denylist holds characters stripped from credential input. Stripping, not
// escaping: removed characters count against neither length bound.
const denylist = "&<>\"'`/"

// Sanitize removes every denylisted character from s. Idempotent.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(denylist, r) {
			return -1
		}
		return r
	}, s)
}

// ValidateCredential sanitizes and bounds-checks raw credential input before
// any authentication logic runs. The username is additionally trimmed of
// surrounding whitespace. Length checks see post-sanitization length.
func ValidateCredential(username, password string) (string, string, error) {
	cleanUsername := strings.TrimSpace(Sanitize(username))
	cleanPassword := Sanitize(password)

	if len(cleanUsername) < usernameMinLen || len(cleanUsername) > usernameMaxLen {
		return "", "", &ValidationError{Field: "username", Reason: "length must be between 3 and 20"}
	}
	if len(cleanPassword) != passwordDigestLen {
		return "", "", &ValidationError{Field: "password", Reason: "digest must be exactly 32 characters"}
	}
	return cleanUsername, cleanPassword, nil
}
