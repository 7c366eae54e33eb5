package module

import (
	"context"
	"testing"
	"time"

	"claimboard/internal/core/engine"
	"claimboard/internal/modkit"
	"claimboard/internal/platform/config"
	"claimboard/internal/platform/store/kv"
	kit "claimboard/internal/platform/testkit"

	dom "claimboard/internal/services/claims/domain"
	lbmod "claimboard/internal/services/leaderboard/module"
	ledgerdom "claimboard/internal/services/ledger/domain"
	memdom "claimboard/internal/services/members/domain"
	memmod "claimboard/internal/services/members/module"
)

type memLedger struct{ entries []ledgerdom.Entry }

func (m *memLedger) Append(_ context.Context, e ledgerdom.Entry) (ledgerdom.Entry, error) {
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *memLedger) Recent(context.Context, ledgerdom.RecentQuery) ([]ledgerdom.Entry, error) {
	return m.entries, nil
}

type wired struct {
	claims *Module
	board  lbmod.Ports
	dir    memdom.ServicePort
	ledger *memLedger
}

func wire(t *testing.T, over Options) wired {
	t.Helper()
	deps := modkit.Deps{Cfg: config.New(), KV: kv.NewMemory(time.Minute)}
	board := lbmod.New(deps).Ports().(lbmod.Ports)
	dir := memmod.New(deps).Ports().(memmod.Ports).Directory
	led := &memLedger{}
	m := New(deps, over, Inputs{Scores: board.Scores, Directory: dir, Ledger: led})
	return wired{claims: m, board: board, dir: dir, ledger: led}
}

func ssrClaim(id string) dom.ClaimEvent {
	return dom.ClaimEvent{
		OriginID:     555,
		ChannelScope: 900,
		EventID:      id,
		Edit:         true,
		Category:     "Auto Summon Claimed",
		Body:         "Claimed By <@42>",
		Fields:       []dom.Field{{Name: "Prize", Value: "<:ssr:1342202597389373530>"}},
	}
}

func TestClaimFlowsIntoLeaderboardAndLedger(t *testing.T) {
	w := wire(t, Options{TrustedOrigin: 555, Scope: 900, BonusRoles: []string{"77"}})
	ctx := context.Background()
	if _, err := w.dir.Put(ctx, memdom.Member{ID: 42, Roles: []string{"77"}}); err != nil {
		t.Fatal(err)
	}
	events := w.claims.Ports().(Ports).Events

	out, err := events.HandleEdit(ctx, ssrClaim("m-1"))
	if err != nil {
		t.Fatal(err)
	}
	if out.Reason != dom.ReasonScored || out.Delta != 14 || out.Total != 14 {
		t.Fatalf("outcome %+v", out)
	}
	out, err = events.HandleEdit(ctx, ssrClaim("m-1"))
	if err != nil || out.Reason != dom.ReasonDuplicate {
		t.Fatalf("replay: %+v err=%v", out, err)
	}

	e, err := w.board.Board.Score(ctx, 42)
	if err != nil || e.Score != 14 {
		t.Fatalf("board: %+v err=%v", e, err)
	}
	if len(w.ledger.entries) != 2 || w.ledger.entries[0].Outcome != "scored" || w.ledger.entries[1].Outcome != "duplicate" {
		t.Fatalf("ledger %+v", w.ledger.entries)
	}
	if w.ledger.entries[0].Participant != 42 || w.ledger.entries[0].Tier != "SSR" {
		t.Fatalf("ledger entry %+v", w.ledger.entries[0])
	}
}

func TestUnknownMemberIsNotScored(t *testing.T) {
	w := wire(t, Options{TrustedOrigin: 555, Scope: 900})
	out, err := w.claims.Ports().(Ports).Events.HandleEdit(context.Background(), ssrClaim("m-2"))
	if err != nil {
		t.Fatal(err)
	}
	if out.Reason != dom.ReasonUnknownParticipant {
		t.Fatalf("reason %s", out.Reason)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CLAIMS_TRUSTED_ORIGIN", "1342202221558763000")
	t.Setenv("CLAIMS_SCOPE", "900")
	t.Setenv("CLAIMS_BONUS_ROLES", "1, 2 ,,3")
	t.Setenv("CLAIMS_MARKER_TTL", "2h")
	t.Setenv("CLAIMS_ENGINE_STATE", "paused")

	o := FromConfig(config.New())
	if o.TrustedOrigin != 1342202221558763000 || o.Scope != 900 {
		t.Fatalf("ids %+v", o)
	}
	if len(o.BonusRoles) != 3 || o.MarkerTTL != 2*time.Hour || o.EngineState != "paused" {
		t.Fatalf("options %+v", o)
	}

	merged := o.merge(Options{Scope: 1, ScoreOnCreate: true})
	if merged.Scope != 1 || !merged.ScoreOnCreate || merged.TrustedOrigin != o.TrustedOrigin {
		t.Fatalf("merged %+v", merged)
	}
}

func TestEngineFromOptionsAndInjected(t *testing.T) {
	w := wire(t, Options{EngineState: "stopped"})
	if got := w.claims.Ports().(Ports).Engine.State(); got != engine.Stopped {
		t.Fatalf("state %s", got)
	}

	sw := engine.NewSwitch(engine.Paused)
	deps := modkit.Deps{KV: kv.NewMemory(time.Minute)}
	board := lbmod.New(deps).Ports().(lbmod.Ports)
	dir := memmod.New(deps).Ports().(memmod.Ports).Directory
	m := New(deps, Options{}, Inputs{Scores: board.Scores, Directory: dir, Engine: sw})
	if m.Ports().(Ports).Engine != sw {
		t.Fatal("injected switch not used")
	}
}

func TestNew_RequiresStores(t *testing.T) {
	kit.MustPanic(t, func() { _ = New(modkit.Deps{}, Options{}, Inputs{}) })
}
