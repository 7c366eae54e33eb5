package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	modkit "claimboard/internal/modkit"
	"claimboard/internal/platform/config"
	phttp "claimboard/internal/platform/net/http"
	kit "claimboard/internal/platform/testkit"

	dom "claimboard/internal/services/claims/domain"
)

type recordingEvents struct {
	creates, edits []dom.ClaimEvent
}

func (r *recordingEvents) HandleCreate(_ context.Context, ev dom.ClaimEvent) (dom.Outcome, error) {
	r.creates = append(r.creates, ev)
	return dom.Outcome{Reason: dom.ReasonClaimOnCreate, EventID: ev.EventID}, nil
}

func (r *recordingEvents) HandleEdit(_ context.Context, ev dom.ClaimEvent) (dom.Outcome, error) {
	r.edits = append(r.edits, ev)
	return dom.Outcome{Reason: dom.ReasonScored, EventID: ev.EventID, Participant: 123, Tier: "SSR", Delta: 13, Total: 13}, nil
}

const body = `{"origin_id":"555","channel_scope":"900","event_id":"m-1","category_text":"Auto Summon Claimed","body_text":"Claimed By <@123>"}`

func mount(t *testing.T, env map[string]string) (*chi.Mux, *recordingEvents) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	ev := &recordingEvents{}
	m := New(modkit.Deps{Cfg: config.New().Prefix("CORE_API_")}, modkit.WithPorts(Ports{Events: ev}))
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	return mux, ev
}

func post(mux http.Handler, path, token, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestIngest_EditRoutesToHandleEdit(t *testing.T) {
	mux, ev := mount(t, map[string]string{"CORE_API_INGEST_TOKEN": "tok"})

	rec := post(mux, "/events/edits", "tok", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data dom.Outcome `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Reason != dom.ReasonScored || env.Data.Participant != 123 {
		t.Fatalf("outcome %+v", env.Data)
	}
	if len(ev.edits) != 1 || !ev.edits[0].Edit || ev.edits[0].OriginID != 555 {
		t.Fatalf("edits %+v", ev.edits)
	}
}

func TestIngest_MessageRoutesToHandleCreate(t *testing.T) {
	mux, ev := mount(t, map[string]string{"CORE_API_INGEST_TOKEN": "tok"})
	payload := strings.Replace(body, `"event_id"`, `"edit":true,"event_id"`, 1)

	if rec := post(mux, "/events/messages", "tok", payload); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if len(ev.creates) != 1 || ev.creates[0].Edit {
		t.Fatalf("creates %+v", ev.creates)
	}
}

func TestIngest_RejectsBadTokenAndPayload(t *testing.T) {
	mux, ev := mount(t, map[string]string{"CORE_API_INGEST_TOKEN": "tok"})

	if rec := post(mux, "/events/edits", "", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token status %d", rec.Code)
	}
	if rec := post(mux, "/events/edits", "other", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token status %d", rec.Code)
	}
	if rec := post(mux, "/events/edits", "tok", `{"event_id":"m-1"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing origin status %d", rec.Code)
	}
	if rec := post(mux, "/events/edits", "tok", `{"origin_id":555,"event_id":"m-1"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("numeric origin status %d", rec.Code)
	}
	if len(ev.edits) != 0 {
		t.Fatalf("handler reached: %+v", ev.edits)
	}
}

func TestIngest_Throttled(t *testing.T) {
	mux, _ := mount(t, map[string]string{
		"CORE_API_INGEST_TOKEN": "tok",
		"CORE_API_INGEST_RPS":   "0.01",
		"CORE_API_INGEST_BURST": "2",
	})
	codes := []int{}
	for range 3 {
		codes = append(codes, post(mux, "/events/edits", "tok", body).Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes %v", codes)
	}
}

func TestIngest_RejectedTokensDoNotDrainBucket(t *testing.T) {
	mux, ev := mount(t, map[string]string{
		"CORE_API_INGEST_TOKEN": "tok",
		"CORE_API_INGEST_RPS":   "0.01",
		"CORE_API_INGEST_BURST": "1",
	})
	for range 5 {
		if code := post(mux, "/events/edits", "wrong", body).Code; code != http.StatusUnauthorized {
			t.Fatalf("bad token code %d", code)
		}
	}
	if code := post(mux, "/events/edits", "tok", body).Code; code != http.StatusOK {
		t.Fatalf("real event code %d after rejected requests", code)
	}
	if len(ev.edits) != 1 {
		t.Fatalf("edits = %d", len(ev.edits))
	}
}

func TestNew_RequiresEvents(t *testing.T) {
	kit.MustPanic(t, func() { _ = New(modkit.Deps{}) })
}
