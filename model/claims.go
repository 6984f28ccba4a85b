package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims identify the card a console session is logged into.
// The card number travels in the registered Subject claim.
type SessionClaims struct {
	jwt.RegisteredClaims
}
