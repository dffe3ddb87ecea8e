package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for an authenticated user. The "id" claim name is
// shared with the accounts service that issues the tokens.
type UserClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenResponse is returned when a token is minted
type TokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
