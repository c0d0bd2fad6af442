package main

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// User is the public view of a users row. The password column never leaves
// this file: create and update hash it on the way in, and no query method
// returns it.
type User struct {
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	PhotoURL  *string `json:"photo_url"`
	IsAdmin   bool    `json:"is_admin"`
}

// UserSummary is the narrow projection returned by the list query.
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// NewUser is the create payload, plaintext password included.
type NewUser struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	PhotoURL  *string `json:"photo_url"`
	IsAdmin   bool    `json:"is_admin"`
}

// UserModel wraps CRUD SQL against the users table and owns password
// hashing.
type UserModel struct {
	db         *sql.DB
	bcryptCost int
}

// All returns the public listing columns for every user.
func (m *UserModel) All(ctx context.Context) ([]UserSummary, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT username, first_name, last_name, email FROM users`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]UserSummary, 0)
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create hashes the plaintext password and inserts the user, returning the
// stored public row.
func (m *UserModel) Create(ctx context.Context, nu NewUser) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), m.bcryptCost)
	if err != nil {
		return nil, err
	}

	var u User
	err = m.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, first_name, last_name, email, photo_url, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING username, first_name, last_name, email, photo_url, is_admin`,
		nu.Username, string(hash), nu.FirstName, nu.LastName, nu.Email, nu.PhotoURL, nu.IsAdmin,
	).Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PhotoURL, &u.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Get returns the public row for a username, or nil if there is none.
func (m *UserModel) Get(ctx context.Context, username string) (*User, error) {
	var u User
	err := m.db.QueryRowContext(ctx,
		`SELECT username, first_name, last_name, email, photo_url, is_admin
		 FROM users
		 WHERE username=$1`,
		username,
	).Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PhotoURL, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update applies a partial update built from fields and returns the updated
// public row, or nil if the username does not exist. A new password in
// fields is re-hashed before it reaches the statement; the stored hash is
// scanned and discarded, never returned.
func (m *UserModel) Update(ctx context.Context, username string, fields map[string]any) (*User, error) {
	if plain, ok := fields["password"].(string); ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), m.bcryptCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hash)
	}

	query, values := buildPartialUpdate("users", fields, "username", username)

	var u User
	var storedHash string
	err := m.db.QueryRowContext(ctx, query, values...).
		Scan(&u.Username, &storedHash, &u.FirstName, &u.LastName, &u.Email, &u.PhotoURL, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes the user with the given username. Returns false if no row
// was deleted.
func (m *UserModel) Delete(ctx context.Context, username string) (bool, error) {
	var deleted string
	err := m.db.QueryRowContext(ctx,
		`DELETE FROM users WHERE username=$1 RETURNING username`,
		username,
	).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Authenticate checks a username/password pair. ok is false for an unknown
// username or a wrong password; the two are indistinguishable to the caller.
func (m *UserModel) Authenticate(ctx context.Context, username, password string) (isAdmin bool, ok bool, err error) {
	var hash string
	err = m.db.QueryRowContext(ctx,
		`SELECT password, is_admin FROM users WHERE username=$1`,
		username,
	).Scan(&hash, &isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return false, false, nil
	}
	return isAdmin, true, nil
}
