package main

import (
	"embed"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// One schema per entity per operation. Patch schemas disallow the key field
// and anything outside the entity's mutable set (additionalProperties:false),
// so a client can neither rename a key nor inject unknown columns.
var (
	loginSchema        = mustSchema("login.json")
	companyNewSchema   = mustSchema("companyNew.json")
	companyPatchSchema = mustSchema("companyPatch.json")
	jobNewSchema       = mustSchema("jobNew.json")
	jobPatchSchema     = mustSchema("jobPatch.json")
	userNewSchema      = mustSchema("userNew.json")
	userPatchSchema    = mustSchema("userPatch.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	b, err := schemaFiles.ReadFile("schemas/" + name)
	if err != nil {
		panic("schema " + name + ": " + err.Error())
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic("schema " + name + ": " + err.Error())
	}
	return schema
}

// validateBody checks a request body against a schema. Every violation is
// collected; the result is a single 400 whose message concatenates them all.
func validateBody(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apiError(http.StatusBadRequest, "request body must be valid JSON")
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return apiError(http.StatusBadRequest, strings.Join(msgs, "; "))
}
