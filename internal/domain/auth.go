package domain

import "time"

// TokenPair holds the currently issued tokens for a user session, together
// with the absolute expiry of each token. The pair is what the session store
// caches and what the cookie transport serializes.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
