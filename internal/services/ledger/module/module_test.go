package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	modkit "claimboard/internal/modkit"
	phttp "claimboard/internal/platform/net/http"

	dom "claimboard/internal/services/ledger/domain"
)

func TestLogBackend_WritesButCannotRead(t *testing.T) {
	m := New(modkit.Deps{})
	ports := m.Ports().(Ports)
	if _, err := ports.Ledger.Append(context.Background(), dom.Entry{EventID: "e", Outcome: "scored"}); err != nil {
		t.Fatal(err)
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger?limit=5", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rec.Code)
	}
}
