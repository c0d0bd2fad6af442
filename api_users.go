package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// listUsers handles GET /users. Open endpoint; returns listing columns only.
func (s *server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// createUser handles POST /users. Open endpoint; on success the response is
// a signed token for the new user, not the user record.
func (s *server) createUser(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(userNewSchema, body); err != nil {
		writeError(w, err)
		return
	}

	var in NewUser
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, apiError(http.StatusBadRequest, "request body must be valid JSON"))
		return
	}

	user, err := s.users.Create(r.Context(), in)
	if err != nil {
		writeError(w, dataError(err))
		return
	}

	token, err := signToken(user.Username, user.IsAdmin, s.cfg.SecretKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// getUser handles GET /users/{username}. Open endpoint; never exposes the
// password column.
func (s *server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, apiError(http.StatusNotFound, "User not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// updateUser handles PATCH /users/{username} (owner only). The patch schema
// forbids username and is_admin; a new password is re-hashed by the model.
func (s *server) updateUser(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(userPatchSchema, body); err != nil {
		writeError(w, err)
		return
	}
	fields, err := decodeFields(body)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := s.users.Update(r.Context(), chi.URLParam(r, "username"), fields)
	if err != nil {
		writeError(w, dataError(err))
		return
	}
	if user == nil {
		writeError(w, apiError(http.StatusNotFound, "User not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// deleteUser handles DELETE /users/{username} (owner only).
func (s *server) deleteUser(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.users.Delete(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apiError(http.StatusNotFound, "User not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
