package main

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Job mirrors one row of the jobs table. date_posted is set by the store at
// insert time and is never user-settable.
type Job struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Salary        *float64  `json:"salary"`
	Equity        *float64  `json:"equity"`
	CompanyHandle string    `json:"company_handle"`
	DatePosted    time.Time `json:"date_posted"`
}

// JobSummary is the narrow projection returned by the list query.
type JobSummary struct {
	Title         string `json:"title"`
	CompanyHandle string `json:"company_handle"`
}

// JobModel wraps CRUD SQL against the jobs table.
type JobModel struct {
	db *sql.DB
}

// All returns title and company_handle of jobs matching the filters, most
// recently posted first. search is a case-insensitive substring match on
// title; minSalary and minEquity are exclusive lower bounds.
func (m *JobModel) All(ctx context.Context, search string, minSalary, minEquity float64) ([]JobSummary, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT title, company_handle
		 FROM jobs
		 WHERE title ILIKE $1
		   AND salary > $2
		   AND equity > $3
		 ORDER BY date_posted DESC`,
		"%"+search+"%", minSalary, minEquity,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]JobSummary, 0)
	for rows.Next() {
		var j JobSummary
		if err := rows.Scan(&j.Title, &j.CompanyHandle); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Create inserts a job and returns the stored row including the generated id
// and date_posted.
func (m *JobModel) Create(ctx context.Context, j Job) (*Job, error) {
	var out Job
	err := m.db.QueryRowContext(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, salary, equity, company_handle, date_posted`,
		j.Title, j.Salary, j.Equity, j.CompanyHandle,
	).Scan(&out.ID, &out.Title, &out.Salary, &out.Equity, &out.CompanyHandle, &out.DatePosted)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns the job with the given id, or nil if there is none.
func (m *JobModel) Get(ctx context.Context, id int) (*Job, error) {
	var j Job
	err := m.db.QueryRowContext(ctx,
		`SELECT id, title, salary, equity, company_handle, date_posted
		 FROM jobs
		 WHERE id=$1`,
		id,
	).Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle, &j.DatePosted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Update applies a partial update built from fields and returns the updated
// row, or nil if the id does not exist.
func (m *JobModel) Update(ctx context.Context, id int, fields map[string]any) (*Job, error) {
	query, values := buildPartialUpdate("jobs", fields, "id", id)

	var j Job
	err := m.db.QueryRowContext(ctx, query, values...).
		Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle, &j.DatePosted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Delete removes the job with the given id. Returns false if no row was
// deleted.
func (m *JobModel) Delete(ctx context.Context, id int) (bool, error) {
	var deleted int
	err := m.db.QueryRowContext(ctx,
		`DELETE FROM jobs WHERE id=$1 RETURNING id`,
		id,
	).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ForCompany returns every job posted by the given company, newest first.
// Used by the company detail endpoint.
func (m *JobModel) ForCompany(ctx context.Context, handle string) ([]Job, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT id, title, salary, equity, company_handle, date_posted
		 FROM jobs
		 WHERE company_handle=$1
		 ORDER BY date_posted DESC`,
		handle,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle, &j.DatePosted); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
