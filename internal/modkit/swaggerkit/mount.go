// Package swaggerkit serves the OpenAPI document and Swagger UI for the API
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	phttp "claimboard/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapi []byte

// Mount serves the UI under /api/docs when enabled
// A malformed embedded document panics at boot
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	doc, err := decorate(openapi, "/api/v1")
	if err != nil {
		panic("swaggerkit: " + err.Error())
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("claimboard"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

var errorSchema = map[string]any{
	"type":        "object",
	"description": "Envelope of every failed request",
	"required":    []any{"status_code", "status"},
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer"},
		"error":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
}

// shared failures every operation can answer with
var defaults = map[string]string{
	"400": "Malformed or invalid body",
	"401": "Missing or wrong bearer token",
	"429": "Throttled",
	"500": "Internal Server Error",
}

// decorate sets the server base and attaches the error envelope to every operation
func decorate(raw []byte, base string) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, err
	}
	spec["servers"] = []any{map[string]any{"url": base}}

	comps, _ := spec["components"].(map[string]any)
	if comps == nil {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, _ := comps["schemas"].(map[string]any)
	if schemas == nil {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	schemas["ErrorResponse"] = errorSchema

	paths, _ := spec["paths"].(map[string]any)
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for _, op := range ops {
			o, ok := op.(map[string]any)
			if !ok {
				continue
			}
			resps, _ := o["responses"].(map[string]any)
			if resps == nil {
				resps = map[string]any{}
				o["responses"] = resps
			}
			for status, desc := range defaults {
				if _, set := resps[status]; set {
					continue
				}
				resps[status] = map[string]any{
					"description": desc,
					"content": map[string]any{
						"application/json": map[string]any{
							"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
						},
					},
				}
			}
		}
	}
	return json.Marshal(spec)
}
