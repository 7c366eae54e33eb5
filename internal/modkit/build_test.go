package modkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"claimboard/internal/modkit/httpkit"
	phttp "claimboard/internal/platform/net/http"
	"claimboard/internal/platform/testkit"
)

type boardPorts struct{ Limit int }

func tag(name string, trail *[]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trail = append(*trail, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestBuild_LaterOptionsWin(t *testing.T) {
	var trail []string
	b := Build(
		WithName("leaderboard"),
		WithPrefix("/leaderboard"),
		WithMiddlewares(tag("auth", &trail)),
		WithPrefix("/board"),
		WithMiddlewares(tag("throttle", &trail)),
		WithPorts(boardPorts{Limit: 10}),
	)
	if b.Name != "leaderboard" || b.Prefix != "/board" {
		t.Fatalf("built %+v", b)
	}
	if len(b.Mw) != 2 {
		t.Fatalf("middlewares=%d, want 2", len(b.Mw))
	}
	if p, ok := b.Ports.(boardPorts); !ok || p.Limit != 10 {
		t.Fatalf("ports %#v", b.Ports)
	}
}

func TestBuild_ZeroValue(t *testing.T) {
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Mw != nil || b.Ports != nil {
		t.Fatalf("zero build %+v", b)
	}
	testkit.MustPanic(t, func() { b.MustName() })
}

func TestBuilt_MountRunsMiddlewareInOrder(t *testing.T) {
	var trail []string
	b := Build(
		WithName("members"),
		WithPrefix("members/"),
		WithMiddlewares(tag("first", &trail), tag("second", &trail)),
	)

	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux), func(r httpkit.Router) {
		r.Get("/{participant}", func(w http.ResponseWriter, r *http.Request) {
			trail = append(trail, "handler:"+chi.URLParam(r, "participant"))
			w.WriteHeader(http.StatusNoContent)
		})
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members/123", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	if got := strings.Join(trail, ","); got != "first,second,handler:123" {
		t.Fatalf("trail %q", got)
	}
	if b.MustName() != "members" {
		t.Fatalf("name %q", b.MustName())
	}
}

func TestBuilt_MountRejectsEmptyPrefix(t *testing.T) {
	b := Build(WithName("claims"))
	testkit.MustPanic(t, func() {
		b.Mount(phttp.AdaptChi(chi.NewRouter()), func(httpkit.Router) {})
	})
}
