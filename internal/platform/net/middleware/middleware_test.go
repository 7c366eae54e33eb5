package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "claimboard/internal/platform/errors"
	pnet "claimboard/internal/platform/net"
	phttp "claimboard/internal/platform/net/http"
	"claimboard/internal/platform/net/middleware"
)

type tokenPort map[string]string

func (p tokenPort) Parse(r *http.Request) (string, error) {
	if sub, ok := p[r.Header.Get("Authorization")]; ok {
		return sub, nil
	}
	return "", perr.Unauthorizedf("invalid bearer token")
}

func serve(h http.Handler, req *http.Request) (*httptest.ResponseRecorder, pnet.Envelope) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env pnet.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestAuth(t *testing.T) {
	var seen string
	h := middleware.Auth(tokenPort{"Bearer adm": "admin"}, phttp.JSON)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.Subject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer adm")
	if rec, _ := serve(h, req); rec.Code != http.StatusNoContent || seen != "admin" {
		t.Fatalf("accepted request: %d subject %q", rec.Code, seen)
	}

	seen = ""
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequestID(req.Context(), "rid-9"))
	req.Header.Set("Authorization", "Bearer nope")
	rec, env := serve(h, req)
	if rec.Code != http.StatusUnauthorized || env.Code != perr.ErrorCodeUnauthorized || env.RequestID != "rid-9" || seen != "" {
		t.Fatalf("rejected request: %d %+v", rec.Code, env)
	}
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })

	h := middleware.RateLimit(0.5, 2, phttp.JSON)(ok)
	codes := []int{}
	var last *httptest.ResponseRecorder
	var env pnet.Envelope
	for range 3 {
		last, env = serve(h, httptest.NewRequest(http.MethodPost, "/", nil))
		codes = append(codes, last.Code)
	}
	if codes[0] != http.StatusAccepted || codes[1] != http.StatusAccepted || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
	if last.Header().Get("Retry-After") != "2" || env.Code != perr.ErrorCodeTooManyRequests {
		t.Fatalf("rejection: retry %q env %+v", last.Header().Get("Retry-After"), env)
	}

	off := middleware.RateLimit(0, 0, phttp.JSON)(ok)
	for range 10 {
		if rec, _ := serve(off, httptest.NewRequest(http.MethodPost, "/", nil)); rec.Code != http.StatusAccepted {
			t.Fatal("disabled limiter rejected a request")
		}
	}
}

func TestRecoverJSON(t *testing.T) {
	h := middleware.RecoverJSON(phttp.JSON)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("ledger exploded")
	}))
	rec, env := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError || env.Code != perr.ErrorCodePanic || env.Error != "panic recovered" {
		t.Fatalf("recovered: %d %+v", rec.Code, env)
	}

	abort := middleware.RecoverJSON(phttp.JSON)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatal("ErrAbortHandler should propagate")
		}
	}()
	abort.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAccessLog_PassesThrough(t *testing.T) {
	h := middleware.RequestID()(middleware.AccessLog(time.Nanosecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pnet.RequestID(r.Context()) == "" {
			t.Error("request id missing downstream")
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})))
	rec, _ := serve(h, httptest.NewRequest(http.MethodPut, "/members/5", nil))
	if rec.Code != http.StatusCreated || rec.Body.String() != "ok" {
		t.Fatalf("access log altered response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(nil)(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/leaderboard", nil)
	req.Header.Set("Origin", "https://board.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec, _ := serve(h, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight headers: %v", rec.Header())
	}
	if rec.Header().Get("Access-Control-Allow-Methods") != http.MethodDelete {
		t.Fatalf("allow methods: %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}
