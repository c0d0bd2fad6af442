package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// server holds the process-wide dependencies: the immutable configuration
// and one model per table. Handlers and middleware hang off it.
type server struct {
	cfg       Config
	companies *CompanyModel
	jobs      *JobModel
	users     *UserModel
}

func newServer(db *sql.DB, cfg Config) *server {
	return &server{
		cfg:       cfg,
		companies: &CompanyModel{db: db},
		jobs:      &JobModel{db: db},
		users:     &UserModel{db: db, bcryptCost: cfg.BcryptCost},
	}
}

// routes builds the full router: CORS, auth chains per route, and the JSON
// 404 fallback.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()

	var origins []string
	for _, p := range strings.Split(s.cfg.CORSOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/login", s.handleLogin)

	r.Route("/companies", func(r chi.Router) {
		r.With(s.loginRequired).Get("/", s.listCompanies)
		r.With(s.loginRequired, adminRequired).Post("/", s.createCompany)
		r.With(s.loginRequired).Get("/{handle}", s.getCompany)
		r.With(s.loginRequired, adminRequired).Patch("/{handle}", s.updateCompany)
		r.With(s.loginRequired, adminRequired).Delete("/{handle}", s.deleteCompany)
	})

	r.Route("/jobs", func(r chi.Router) {
		r.With(s.loginRequired).Get("/", s.listJobs)
		r.With(s.loginRequired, adminRequired).Post("/", s.createJob)
		r.With(s.loginRequired).Get("/{id}", s.getJob)
		r.With(s.loginRequired, adminRequired).Patch("/{id}", s.updateJob)
		r.With(s.loginRequired, adminRequired).Delete("/{id}", s.deleteJob)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
		r.Get("/{username}", s.getUser)
		r.With(s.loginRequired, ownerRequired).Patch("/{username}", s.updateUser)
		r.With(s.loginRequired, ownerRequired).Delete("/{username}", s.deleteUser)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, apiError(http.StatusNotFound, "Not Found"))
	})

	return r
}

// --------- Request helpers ---------

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		return nil, apiError(http.StatusBadRequest, "unable to read request body")
	}
	return body, nil
}

// decodeFields parses a validated PATCH body into the column→value map fed
// to buildPartialUpdate. Numbers decode as json.Number and integral values
// are narrowed to int64 so integer columns receive integer parameters.
func decodeFields(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	fields := map[string]any{}
	if err := dec.Decode(&fields); err != nil {
		return nil, apiError(http.StatusBadRequest, "request body must be a JSON object")
	}
	for k, v := range fields {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				fields[k] = i
			} else if f, err := n.Float64(); err == nil {
				fields[k] = f
			}
		}
	}
	return fields, nil
}
