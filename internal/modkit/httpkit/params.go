package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perrs "claimboard/internal/platform/errors"
	phttp "claimboard/internal/platform/net/http"
)

// Param returns a named path parameter
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(phttp.URLParam(r, name))
}

// ParamUint64 parses a path parameter as an unsigned id
func ParamUint64(r *http.Request, name string) (uint64, error) {
	raw := Param(r, name)
	if raw == "" {
		return 0, perrs.WithField(perrs.InvalidArgf("%s is required", name), name)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, perrs.WithField(perrs.InvalidArgf("%s must be a positive integer id", name), name)
	}
	return v, nil
}

// QueryInt reads an integer query value clamped to [lo, hi]; absent means def
func QueryInt(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perrs.WithField(perrs.InvalidArgf("%s must be an integer", name), name)
	}
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v, nil
}
