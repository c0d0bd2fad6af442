package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// listCompanies handles GET /companies with optional search,
// min_employees, and max_employees query filters. An inverted min/max pair
// is rejected before any query is issued.
func (s *server) listCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")

	minEmployees := 0
	maxEmployees := maxEmployeesBound

	if v := q.Get("min_employees"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, apiError(http.StatusBadRequest, "min_employees must be an integer"))
			return
		}
		minEmployees = n
	}
	if v := q.Get("max_employees"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, apiError(http.StatusBadRequest, "max_employees must be an integer"))
			return
		}
		maxEmployees = n
	}
	if q.Get("min_employees") != "" && q.Get("max_employees") != "" && minEmployees > maxEmployees {
		writeError(w, apiError(http.StatusBadRequest, "min_employees cannot be larger than max_employees"))
		return
	}

	companies, err := s.companies.All(r.Context(), search, minEmployees, maxEmployees)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

// createCompany handles POST /companies (admin only).
func (s *server) createCompany(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(companyNewSchema, body); err != nil {
		writeError(w, err)
		return
	}

	var in Company
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, apiError(http.StatusBadRequest, "request body must be valid JSON"))
		return
	}

	company, err := s.companies.Create(r.Context(), in)
	if err != nil {
		writeError(w, dataError(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"company": company})
}

// getCompany handles GET /companies/{handle}, returning the company along
// with its job postings.
func (s *server) getCompany(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	company, err := s.companies.Get(r.Context(), handle)
	if err != nil {
		writeError(w, err)
		return
	}
	if company == nil {
		writeError(w, apiError(http.StatusNotFound, "Company not found"))
		return
	}

	jobs, err := s.jobs.ForCompany(r.Context(), handle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"company": company, "jobs": jobs})
}

// updateCompany handles PATCH /companies/{handle} (admin only). The patch
// schema forbids the handle itself and unknown columns.
func (s *server) updateCompany(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(companyPatchSchema, body); err != nil {
		writeError(w, err)
		return
	}
	fields, err := decodeFields(body)
	if err != nil {
		writeError(w, err)
		return
	}

	company, err := s.companies.Update(r.Context(), chi.URLParam(r, "handle"), fields)
	if err != nil {
		writeError(w, dataError(err))
		return
	}
	if company == nil {
		writeError(w, apiError(http.StatusNotFound, "Company not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"company": company})
}

// deleteCompany handles DELETE /companies/{handle} (admin only).
func (s *server) deleteCompany(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.companies.Delete(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apiError(http.StatusNotFound, "Company not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Company deleted"})
}
