package main

import (
	"encoding/json"
	"net/http"
)

// handleLogin exchanges valid credentials for a signed token.
//
//	POST /login {username, password} → 200 {token}
//
// Bad credentials and schema failures are both 400s; the response never says
// which of the two fields was wrong.
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(loginSchema, body); err != nil {
		writeError(w, err)
		return
	}

	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(body, &creds); err != nil {
		writeError(w, apiError(http.StatusBadRequest, "request body must be valid JSON"))
		return
	}

	isAdmin, ok, err := s.users.Authenticate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, apiError(http.StatusBadRequest, "Invalid username/password"))
		return
	}

	token, err := signToken(creds.Username, isAdmin, s.cfg.SecretKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
