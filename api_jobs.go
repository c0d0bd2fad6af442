package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// jobIDParam parses the {id} path parameter. A non-numeric id can never
// match a row, so it reports not-found rather than a server error.
func jobIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apiError(http.StatusNotFound, "Job not found")
	}
	return id, nil
}

// listJobs handles GET /jobs with optional search, min_salary, and
// min_equity query filters. Results come back newest-first.
func (s *server) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")

	var minSalary, minEquity float64
	if v := q.Get("min_salary"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, apiError(http.StatusBadRequest, "min_salary must be a number"))
			return
		}
		minSalary = f
	}
	if v := q.Get("min_equity"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, apiError(http.StatusBadRequest, "min_equity must be a number"))
			return
		}
		minEquity = f
	}

	jobs, err := s.jobs.All(r.Context(), search, minSalary, minEquity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// createJob handles POST /jobs (admin only). A company_handle that does not
// reference an existing company surfaces as a foreign-key 400.
func (s *server) createJob(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(jobNewSchema, body); err != nil {
		writeError(w, err)
		return
	}

	var in Job
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, apiError(http.StatusBadRequest, "request body must be valid JSON"))
		return
	}

	job, err := s.jobs.Create(r.Context(), in)
	if err != nil {
		writeError(w, dataError(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"job": job})
}

// getJob handles GET /jobs/{id}.
func (s *server) getJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	job, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if job == nil {
		writeError(w, apiError(http.StatusNotFound, "Job not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

// updateJob handles PATCH /jobs/{id} (admin only).
func (s *server) updateJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(jobPatchSchema, body); err != nil {
		writeError(w, err)
		return
	}
	fields, err := decodeFields(body)
	if err != nil {
		writeError(w, err)
		return
	}

	job, err := s.jobs.Update(r.Context(), id, fields)
	if err != nil {
		writeError(w, dataError(err))
		return
	}
	if job == nil {
		writeError(w, apiError(http.StatusNotFound, "Job not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

// deleteJob handles DELETE /jobs/{id} (admin only).
func (s *server) deleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := jobIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	deleted, err := s.jobs.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, apiError(http.StatusNotFound, "Job not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Job deleted"})
}
