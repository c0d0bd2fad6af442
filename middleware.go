package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type contextKey string

// userKey carries the verified *Claims for the request.
const userKey contextKey = "user"

// authUser returns the claims attached by loginRequired, or nil.
func authUser(r *http.Request) *Claims {
	c, _ := r.Context().Value(userKey).(*Claims)
	return c
}

// loginRequired verifies the signed token carried in the JSON body field
// "token" (the token travels in the body, not a header). On success the
// decoded claims are attached to the request context and the token field is
// stripped from the body before the next handler sees it; schema validation
// downstream would otherwise reject it as an undeclared property. Any
// failure short-circuits with a 401.
func (s *server) loginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			writeError(w, apiError(http.StatusUnauthorized, "Valid token required"))
			return
		}

		var payload map[string]any
		if len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				writeError(w, apiError(http.StatusUnauthorized, "Valid token required"))
				return
			}
		}

		tokenStr, _ := payload["token"].(string)
		if tokenStr == "" {
			writeError(w, apiError(http.StatusUnauthorized, "Valid token required"))
			return
		}
		claims, err := parseToken(tokenStr, s.cfg.SecretKey)
		if err != nil {
			writeError(w, apiError(http.StatusUnauthorized, "Valid token required"))
			return
		}

		delete(payload, "token")
		rest, err := json.Marshal(payload)
		if err != nil {
			writeError(w, apiError(http.StatusUnauthorized, "Valid token required"))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(rest))
		r.ContentLength = int64(len(rest))

		ctx := context.WithValue(r.Context(), userKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ownerRequired allows the request through only when the authenticated
// username matches the {username} path parameter. Must run after
// loginRequired.
func ownerRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := authUser(r)
		if user == nil || user.Username != chi.URLParam(r, "username") {
			writeError(w, apiError(http.StatusUnauthorized, "Unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// adminRequired allows the request through only for authenticated admins.
// Must run after loginRequired.
func adminRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := authUser(r)
		if user == nil || !user.IsAdmin {
			writeError(w, apiError(http.StatusUnauthorized, "Unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
