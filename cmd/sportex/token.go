package main

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenInfo is what can be read from a session token without verifying it.
// Opaque tokens yield the zero value.
type tokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// inspectToken decodes JWT claims without checking the signature. It is only
// used for display; the backend remains the authority on validity.
func inspectToken(token string) tokenInfo {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return tokenInfo{}
	}
	var info tokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}

// Expired reports whether the token carries an expiry before now.
func (t tokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}

func (t tokenInfo) expiresPtr() *time.Time {
	if t.ExpiresAt.IsZero() {
		return nil
	}
	return &t.ExpiresAt
}
