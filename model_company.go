package main

import (
	"context"
	"database/sql"
	"errors"
)

// Company mirrors one row of the companies table. Optional columns are
// pointers so SQL NULL survives the round trip.
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	NumEmployees *int    `json:"num_employees"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logo_url"`
}

// CompanySummary is the narrow projection returned by the list query.
type CompanySummary struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// maxEmployeesBound is the open upper bound for the employee-count filter
// (largest Postgres INTEGER).
const maxEmployeesBound = 2147483647

// CompanyModel wraps CRUD SQL against the companies table. Each operation
// issues exactly one statement.
type CompanyModel struct {
	db *sql.DB
}

// All returns handle and name of companies matching the filters. search is a
// case-insensitive substring match on name; min and max bound num_employees
// exclusively.
func (m *CompanyModel) All(ctx context.Context, search string, minEmployees, maxEmployees int) ([]CompanySummary, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT handle, name
		 FROM companies
		 WHERE name ILIKE $1
		   AND num_employees > $2
		   AND num_employees < $3`,
		"%"+search+"%", minEmployees, maxEmployees,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]CompanySummary, 0)
	for rows.Next() {
		var c CompanySummary
		if err := rows.Scan(&c.Handle, &c.Name); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// Create inserts a company and returns the stored row.
func (m *CompanyModel) Create(ctx context.Context, c Company) (*Company, error) {
	var out Company
	err := m.db.QueryRowContext(ctx,
		`INSERT INTO companies (handle, name, num_employees, description, logo_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING handle, name, num_employees, description, logo_url`,
		c.Handle, c.Name, c.NumEmployees, c.Description, c.LogoURL,
	).Scan(&out.Handle, &out.Name, &out.NumEmployees, &out.Description, &out.LogoURL)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns the company with the given handle, or nil if there is none.
// Absence is a signal, not an error; the handler decides whether it is a 404.
func (m *CompanyModel) Get(ctx context.Context, handle string) (*Company, error) {
	var c Company
	err := m.db.QueryRowContext(ctx,
		`SELECT handle, name, num_employees, description, logo_url
		 FROM companies
		 WHERE handle=$1`,
		handle,
	).Scan(&c.Handle, &c.Name, &c.NumEmployees, &c.Description, &c.LogoURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update applies a partial update built from fields and returns the updated
// row, or nil if the handle does not exist.
func (m *CompanyModel) Update(ctx context.Context, handle string, fields map[string]any) (*Company, error) {
	query, values := buildPartialUpdate("companies", fields, "handle", handle)

	var c Company
	err := m.db.QueryRowContext(ctx, query, values...).
		Scan(&c.Handle, &c.Name, &c.NumEmployees, &c.Description, &c.LogoURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the company with the given handle. Returns false if no row
// was deleted.
func (m *CompanyModel) Delete(ctx context.Context, handle string) (bool, error) {
	var deleted string
	err := m.db.QueryRowContext(ctx,
		`DELETE FROM companies WHERE handle=$1 RETURNING handle`,
		handle,
	).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
