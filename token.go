package main

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by an auth token: who the caller is and
// whether they hold the admin flag. Tokens are verifiable without a store
// lookup.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

func signToken(username string, isAdmin bool, secret string) (string, error) {
	claims := &Claims{Username: username, IsAdmin: isAdmin}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

func parseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c, ok := token.Claims.(*Claims); ok && token.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
