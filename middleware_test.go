package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

const testSecret = "test-secret"

func testServer() *server {
	return newServer(nil, Config{
		SecretKey:  testSecret,
		BcryptCost: 4,
		CORSOrigin: "http://localhost:3000",
	})
}

func mustToken(t *testing.T, username string, isAdmin bool) string {
	t.Helper()
	token, err := signToken(username, isAdmin, testSecret)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	return token
}

func TestLoginRequiredAttachesClaimsAndStripsToken(t *testing.T) {
	is := is.New(t)
	s := testServer()

	var gotClaims *Claims
	var gotBody []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = authUser(r)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	token := mustToken(t, "susan", true)
	req := httptest.NewRequest("POST", "/companies", strings.NewReader(`{"token":"`+token+`","name":"XYZ"}`))
	w := httptest.NewRecorder()
	s.loginRequired(next).ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK)
	is.True(gotClaims != nil)
	is.Equal(gotClaims.Username, "susan")
	is.Equal(gotClaims.IsAdmin, true)

	// The token field must be gone before the handler sees the body;
	// everything else survives.
	var body map[string]any
	is.NoErr(json.Unmarshal(gotBody, &body))
	_, hasToken := body["token"]
	is.True(!hasToken)
	is.Equal(body["name"], "XYZ")
}

func TestLoginRequiredRejections(t *testing.T) {
	s := testServer()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})
	h := s.loginRequired(next)

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"no token field", `{"name":"XYZ"}`},
		{"not an object", `[1,2,3]`},
		{"malformed JSON", `{"token":`},
		{"garbage token", `{"token":"not.a.token"}`},
		{"tampered token", `{"token":"` + mustToken(t, "susan", true) + `x"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)
			req := httptest.NewRequest("GET", "/companies", strings.NewReader(c.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			is.Equal(w.Code, http.StatusUnauthorized)
			is.True(!nextCalled)
			body := decodeErrorBody(t, w)
			is.Equal(body.Message, "Valid token required")
		})
	}
}

func TestOwnerRequired(t *testing.T) {
	is := is.New(t)
	s := testServer()

	r := chi.NewRouter()
	r.With(s.loginRequired, ownerRequired).Patch("/users/{username}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Owner matches the path parameter.
	token := mustToken(t, "susan", false)
	req := httptest.NewRequest("PATCH", "/users/susan", strings.NewReader(`{"token":"`+token+`"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	is.Equal(w.Code, http.StatusOK)

	// Authenticated, but for a different profile.
	req = httptest.NewRequest("PATCH", "/users/bob", strings.NewReader(`{"token":"`+token+`"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	is.Equal(w.Code, http.StatusUnauthorized)
	is.Equal(decodeErrorBody(t, w).Message, "Unauthorized")
}

func TestAdminRequired(t *testing.T) {
	is := is.New(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := adminRequired(next)

	withClaims := func(c *Claims) *http.Request {
		req := httptest.NewRequest("POST", "/companies", nil)
		if c != nil {
			req = req.WithContext(context.WithValue(req.Context(), userKey, c))
		}
		return req
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, withClaims(&Claims{Username: "susan", IsAdmin: true}))
	is.Equal(w.Code, http.StatusOK)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, withClaims(&Claims{Username: "bob", IsAdmin: false}))
	is.Equal(w.Code, http.StatusUnauthorized)

	// No authenticated context at all.
	w = httptest.NewRecorder()
	h.ServeHTTP(w, withClaims(nil))
	is.Equal(w.Code, http.StatusUnauthorized)
}
