package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perrs "claimboard/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

func TestParamUint64(t *testing.T) {
	cases := map[string]struct {
		path    string
		want    uint64
		wantErr bool
	}{
		"ok":        {"/p/123", 123, false},
		"snowflake": {"/p/1280000000000000001", 1280000000000000001, false},
		"zero":      {"/p/0", 0, true},
		"alpha":     {"/p/abc", 0, true},
		"negative":  {"/p/-1", 0, true},
		"overflow":  {"/p/99999999999999999999", 0, true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got uint64
			var err error
			m := chi.NewRouter()
			m.Get("/p/{id}", func(_ http.ResponseWriter, r *http.Request) {
				got, err = ParamUint64(r, "id")
			})
			m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))

			if tc.wantErr {
				if !perrs.IsCode(err, perrs.ErrorCodeInvalidArgument) {
					t.Fatalf("err = %v, want invalid argument", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("ParamUint64 = %d,%v", got, err)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	cases := []struct {
		url     string
		want    int
		wantErr bool
	}{
		{"/x", 10, false},
		{"/x?limit=5", 5, false},
		{"/x?limit=0", 1, false},
		{"/x?limit=5000", 100, false},
		{"/x?limit=nope", 0, true},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, tc.url, nil)
		got, err := QueryInt(r, "limit", 10, 1, 100)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("QueryInt(%s) = %d,%v", tc.url, got, err)
		}
	}
}
