package main

import (
	"testing"

	"github.com/matryer/is"
)

func TestSignAndParseToken(t *testing.T) {
	is := is.New(t)

	token, err := signToken("susan", true, "test-secret")
	is.NoErr(err)
	is.True(token != "")

	claims, err := parseToken(token, "test-secret")
	is.NoErr(err)
	is.Equal(claims.Username, "susan")
	is.Equal(claims.IsAdmin, true)
}

func TestParseTokenWrongSecret(t *testing.T) {
	is := is.New(t)

	token, err := signToken("bob", false, "test-secret")
	is.NoErr(err)

	_, err = parseToken(token, "other-secret")
	is.True(err != nil)
}

func TestParseTokenTampered(t *testing.T) {
	is := is.New(t)

	token, err := signToken("bob", false, "test-secret")
	is.NoErr(err)

	_, err = parseToken(token+"x", "test-secret")
	is.True(err != nil)
}

func TestParseTokenGarbage(t *testing.T) {
	is := is.New(t)

	_, err := parseToken("not.a.token", "test-secret")
	is.True(err != nil)

	_, err = parseToken("", "test-secret")
	is.True(err != nil)
}
