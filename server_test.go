package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"
)

// These tests exercise routing, auth chains, and the pre-query guards
// through the full router. None of the requests may reach the database, so
// the server is built with a nil pool.

func TestRouterUnknownRoute(t *testing.T) {
	is := is.New(t)
	h := testServer().routes()

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusNotFound)
	body := decodeErrorBody(t, w)
	is.Equal(body.Status, http.StatusNotFound)
	is.Equal(body.Message, "Not Found")
}

func TestRouterHealthz(t *testing.T) {
	is := is.New(t)
	h := testServer().routes()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	is.Equal(w.Code, http.StatusOK)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := testServer().routes()

	cases := []struct {
		method string
		path   string
	}{
		{"GET", "/companies"},
		{"POST", "/companies"},
		{"GET", "/companies/ibm"},
		{"PATCH", "/companies/ibm"},
		{"DELETE", "/companies/ibm"},
		{"GET", "/jobs"},
		{"POST", "/jobs"},
		{"GET", "/jobs/1"},
		{"PATCH", "/jobs/1"},
		{"DELETE", "/jobs/1"},
		{"PATCH", "/users/susan"},
		{"DELETE", "/users/susan"},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			is := is.New(t)
			req := httptest.NewRequest(c.method, c.path, strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			is.Equal(w.Code, http.StatusUnauthorized)
			is.Equal(decodeErrorBody(t, w).Message, "Valid token required")
		})
	}
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	h := testServer().routes()
	token := mustToken(t, "bob", false)

	cases := []struct {
		method string
		path   string
	}{
		{"POST", "/companies"},
		{"PATCH", "/companies/ibm"},
		{"DELETE", "/companies/ibm"},
		{"POST", "/jobs"},
		{"PATCH", "/jobs/1"},
		{"DELETE", "/jobs/1"},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			is := is.New(t)
			req := httptest.NewRequest(c.method, c.path, strings.NewReader(`{"token":"`+token+`"}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			is.Equal(w.Code, http.StatusUnauthorized)
			is.Equal(decodeErrorBody(t, w).Message, "Unauthorized")
		})
	}
}

func TestListCompaniesMinMaxGuard(t *testing.T) {
	is := is.New(t)
	h := testServer().routes()
	token := mustToken(t, "bob", false)

	req := httptest.NewRequest("GET", "/companies?min_employees=5&max_employees=2",
		strings.NewReader(`{"token":"`+token+`"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusBadRequest)
	is.Equal(decodeErrorBody(t, w).Message, "min_employees cannot be larger than max_employees")
}

func TestListCompaniesNonNumericFilter(t *testing.T) {
	is := is.New(t)
	h := testServer().routes()
	token := mustToken(t, "bob", false)

	req := httptest.NewRequest("GET", "/companies?min_employees=lots",
		strings.NewReader(`{"token":"`+token+`"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusBadRequest)
	is.Equal(decodeErrorBody(t, w).Message, "min_employees must be an integer")
}

func TestPatchCompanyRejectsHandleInBody(t *testing.T) {
	is := is.New(t)
	h := testServer().routes()
	token := mustToken(t, "susan", true)

	// Schema validation fires after the token is stripped and before any
	// statement is built.
	req := httptest.NewRequest("PATCH", "/companies/ibm",
		strings.NewReader(`{"token":"`+token+`","handle":"ibm2"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusBadRequest)
}

func TestPatchCompanyRejectsEmptyPatch(t *testing.T) {
	is := is.New(t)
	h := testServer().routes()
	token := mustToken(t, "susan", true)

	req := httptest.NewRequest("PATCH", "/companies/ibm",
		strings.NewReader(`{"token":"`+token+`"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusBadRequest)
}

func TestPatchUserRejectsAdminEscalation(t *testing.T) {
	is := is.New(t)
	h := testServer().routes()
	token := mustToken(t, "bob", false)

	req := httptest.NewRequest("PATCH", "/users/bob",
		strings.NewReader(`{"token":"`+token+`","is_admin":true}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusBadRequest)
}

func TestCreateCompanySchemaFailure(t *testing.T) {
	is := is.New(t)
	h := testServer().routes()
	token := mustToken(t, "susan", true)

	// Missing required name.
	req := httptest.NewRequest("POST", "/companies",
		strings.NewReader(`{"token":"`+token+`","handle":"xyz"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusBadRequest)
	is.True(strings.Contains(decodeErrorBody(t, w).Message, "name"))
}

func TestDecodeFieldsNarrowsNumbers(t *testing.T) {
	is := is.New(t)

	fields, err := decodeFields([]byte(`{"num_employees":10,"equity":0.25,"name":"XYZ","logo_url":null}`))
	is.NoErr(err)
	is.Equal(fields["num_employees"], int64(10))
	is.Equal(fields["equity"], 0.25)
	is.Equal(fields["name"], "XYZ")
	is.Equal(fields["logo_url"], nil)
}

func TestLoginSchemaFailure(t *testing.T) {
	is := is.New(t)
	h := testServer().routes()

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusBadRequest)
}
