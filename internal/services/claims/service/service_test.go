package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"claimboard/internal/core/engine"
	"claimboard/internal/core/rarity"
	perr "claimboard/internal/platform/errors"

	dom "claimboard/internal/services/claims/domain"
)

const (
	trusted = uint64(555)
	scope   = uint64(900)
	self    = uint64(777)
)

const tiersYAML = `
tiers:
  - name: Common
    value: 1
    markers: ["100"]
  - name: Rare
    value: 3
    markers: ["300"]
  - name: SSR
    value: 13
    markers: ["1300"]
`

type rig struct {
	svc     *Svc
	sw      *engine.Switch
	markers *memMarkers
	scores  *memScores
	dir     *dirParticipants
	ledger  *memLedger
}

func newRig(t *testing.T, mut ...func(*Config)) *rig {
	t.Helper()
	tiers, err := rarity.Parse([]byte(tiersYAML))
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{
		TrustedOrigin: trusted,
		Scope:         scope,
		SelfID:        self,
		BonusRoles:    []string{"booster", "patron"},
		MarkerTTL:     time.Hour,
	}
	for _, m := range mut {
		m(&cfg)
	}
	r := &rig{
		sw:      engine.NewSwitch(engine.Running),
		markers: newMarkers(),
		scores:  newScores(),
		dir: &dirParticipants{members: map[dom.ParticipantID][]string{
			123: nil,
			456: {"booster", "patron", "other"},
		}},
		ledger: &memLedger{},
	}
	r.svc = New(cfg, Collaborators{
		Engine:       r.sw,
		Tiers:        tiers,
		Markers:      r.markers,
		Scores:       r.scores,
		Participants: r.dir,
		Ledger:       r.ledger,
	})
	return r
}

// claimEvent is the canonical claimed edit for participant 123 worth 13
func claimEvent() dom.ClaimEvent {
	return dom.ClaimEvent{
		OriginID:     trusted,
		ChannelScope: scope,
		EventID:      "m-1",
		Edit:         true,
		Category:     "Auto Summon Claimed!",
		Body:         "Claimed By <@123>",
		Fields:       []dom.Field{{Name: "Card", Value: "Lucky Cat <:ssr:1300>"}},
	}
}

func mustHandle(t *testing.T, fn func(context.Context, dom.ClaimEvent) (dom.Outcome, error), ev dom.ClaimEvent) dom.Outcome {
	t.Helper()
	out, err := fn(context.Background(), ev)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	return out
}

func TestHandleEdit_ScoresTierValue(t *testing.T) {
	r := newRig(t)
	out := mustHandle(t, r.svc.HandleEdit, claimEvent())

	if out.Reason != dom.ReasonScored || !out.Scored() {
		t.Fatalf("reason = %s", out.Reason)
	}
	if out.Participant != 123 || out.Tier != "SSR" || out.Delta != 13 || out.Total != 13 || out.Bonus != 0 {
		t.Fatalf("outcome = %+v", out)
	}
	if len(r.scores.incrs) != 1 || r.scores.incrs[0] != (incr{123, 13}) {
		t.Fatalf("increments = %+v", r.scores.incrs)
	}
	if ttl, ok := r.markers.keys["claim:m-1:123"]; !ok || ttl != time.Hour {
		t.Fatalf("marker missing or wrong ttl: %v", r.markers.keys)
	}
	if len(r.ledger.out) != 1 || r.ledger.out[0].Reason != dom.ReasonScored {
		t.Fatalf("ledger = %+v", r.ledger.out)
	}
}

func TestHandleEdit_ReplayIsNoop(t *testing.T) {
	r := newRig(t)
	mustHandle(t, r.svc.HandleEdit, claimEvent())
	out := mustHandle(t, r.svc.HandleEdit, claimEvent())

	if out.Reason != dom.ReasonDuplicate {
		t.Fatalf("second reason = %s", out.Reason)
	}
	if r.scores.count() != 1 || r.scores.totals[123] != 13 {
		t.Fatalf("total = %d after %d increments", r.scores.totals[123], r.scores.count())
	}
}

func TestHandleEdit_DistinctEventsBothScore(t *testing.T) {
	r := newRig(t)
	mustHandle(t, r.svc.HandleEdit, claimEvent())
	ev := claimEvent()
	ev.EventID = "m-2"
	mustHandle(t, r.svc.HandleEdit, ev)

	if r.scores.totals[123] != 26 {
		t.Fatalf("total = %d, want 26", r.scores.totals[123])
	}
}

func TestHandleEdit_ConcurrentEditsScoreOnce(t *testing.T) {
	r := newRig(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.svc.HandleEdit(context.Background(), claimEvent()); err != nil {
				t.Errorf("handle: %v", err)
			}
		}()
	}
	wg.Wait()
	if r.scores.count() != 1 {
		t.Fatalf("increments = %d, want 1", r.scores.count())
	}
}

func TestHandleEdit_BonusRoleAddsOneNeverMore(t *testing.T) {
	r := newRig(t)
	ev := claimEvent()
	ev.Body = "Claimed By <@456>"
	out := mustHandle(t, r.svc.HandleEdit, ev)

	if out.Delta != 14 || out.Bonus != 1 {
		t.Fatalf("delta=%d bonus=%d, want 14/1", out.Delta, out.Bonus)
	}
}

func TestHandleEdit_Gates(t *testing.T) {
	cases := map[string]struct {
		mut  func(*dom.ClaimEvent, *engine.Switch)
		want dom.Reason
	}{
		"paused":      {func(_ *dom.ClaimEvent, s *engine.Switch) { s.Set(engine.Paused) }, dom.ReasonEngineOff},
		"stopped":     {func(_ *dom.ClaimEvent, s *engine.Switch) { s.Set(engine.Stopped) }, dom.ReasonEngineOff},
		"self":        {func(e *dom.ClaimEvent, _ *engine.Switch) { e.OriginID = self }, dom.ReasonSelfOrigin},
		"other scope": {func(e *dom.ClaimEvent, _ *engine.Switch) { e.ChannelScope = 1 }, dom.ReasonScopeMismatch},
		"no scope":    {func(e *dom.ClaimEvent, _ *engine.Switch) { e.ChannelScope = 0 }, dom.ReasonScopeMismatch},
		"untrusted":   {func(e *dom.ClaimEvent, _ *engine.Switch) { e.OriginID = 1 }, dom.ReasonUntrustedOrigin},
		"empty event": {func(e *dom.ClaimEvent, _ *engine.Switch) {
			*e = dom.ClaimEvent{OriginID: trusted, ChannelScope: scope, EventID: "x"}
		}, dom.ReasonNoise},
		"noise title":     {func(e *dom.ClaimEvent, _ *engine.Switch) { e.Category = "Daily reward" }, dom.ReasonNoise},
		"announcement":    {func(e *dom.ClaimEvent, _ *engine.Switch) { e.Category = "Auto Summon!" }, dom.ReasonAnnouncement},
		"unattributed":    {func(e *dom.ClaimEvent, _ *engine.Switch) { e.Body = "Claimed By nobody" }, dom.ReasonUnattributed},
		"unknown member":  {func(e *dom.ClaimEvent, _ *engine.Switch) { e.Body = "Claimed By <@999>" }, dom.ReasonUnknownParticipant},
		"no tier":         {func(e *dom.ClaimEvent, _ *engine.Switch) { e.Fields = nil }, dom.ReasonUntiered},
		"unknown markers": {func(e *dom.ClaimEvent, _ *engine.Switch) { e.Fields[0].Value = "<:star:42>" }, dom.ReasonUntiered},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := newRig(t)
			ev := claimEvent()
			tc.mut(&ev, r.sw)
			out := mustHandle(t, r.svc.HandleEdit, ev)
			if out.Reason != tc.want {
				t.Fatalf("reason = %s, want %s", out.Reason, tc.want)
			}
			if r.scores.count() != 0 {
				t.Fatalf("dropped event touched scores")
			}
			if len(r.markers.keys) != 0 {
				t.Fatalf("dropped event created a marker")
			}
		})
	}
}

func TestHandleEdit_PausedTouchesNoStore(t *testing.T) {
	r := newRig(t)
	r.sw.Set(engine.Paused)
	mustHandle(t, r.svc.HandleEdit, claimEvent())

	if r.markers.calls != 0 || r.dir.calls != 0 || r.scores.count() != 0 || len(r.ledger.out) != 0 {
		t.Fatalf("paused engine reached a store: markers=%d dir=%d scores=%d ledger=%d",
			r.markers.calls, r.dir.calls, r.scores.count(), len(r.ledger.out))
	}
}

func TestHandleEdit_AnnouncementWithMarkerNeverScores(t *testing.T) {
	r := newRig(t)
	ev := claimEvent()
	ev.Category = "AUTO SUMMON"
	mustHandle(t, r.svc.HandleEdit, ev)
	if r.scores.count() != 0 || r.dir.calls != 0 {
		t.Fatalf("announcement reached scoring")
	}
}

func TestHandleEdit_RarityFirstFragmentWins(t *testing.T) {
	r := newRig(t)
	ev := claimEvent()
	ev.Category = "Auto Summon Claimed <:rare:300>"
	out := mustHandle(t, r.svc.HandleEdit, ev)
	if out.Tier != "Rare" || out.Delta != 3 {
		t.Fatalf("title marker should win, got %+v", out)
	}
}

func TestHandleEdit_ClaimedByBeatsFieldMention(t *testing.T) {
	r := newRig(t)
	ev := claimEvent()
	ev.Fields = append(ev.Fields, dom.Field{Name: "Owner", Value: "<@456>"})
	out := mustHandle(t, r.svc.HandleEdit, ev)
	if out.Participant != 123 {
		t.Fatalf("participant = %d, want 123", out.Participant)
	}
}

func TestHandleEdit_LedgerRecordsDrops(t *testing.T) {
	r := newRig(t)
	ev := claimEvent()
	ev.Fields = nil
	mustHandle(t, r.svc.HandleEdit, ev)
	ev = claimEvent()
	ev.Category = "noise"
	mustHandle(t, r.svc.HandleEdit, ev)

	if len(r.ledger.out) != 1 || r.ledger.out[0].Reason != dom.ReasonUntiered || r.ledger.out[0].Participant != 123 {
		t.Fatalf("ledger = %+v", r.ledger.out)
	}
}

func TestHandleEdit_LedgerFailureDoesNotFailEvent(t *testing.T) {
	r := newRig(t)
	r.ledger.err = errors.New("ch down")
	out := mustHandle(t, r.svc.HandleEdit, claimEvent())
	if !out.Scored() {
		t.Fatalf("reason = %s", out.Reason)
	}
}

func TestHandleEdit_StoreErrorsReturned(t *testing.T) {
	t.Run("marker", func(t *testing.T) {
		r := newRig(t)
		r.markers.err = perr.Unavailablef("redis down")
		_, err := r.svc.HandleEdit(context.Background(), claimEvent())
		if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
			t.Fatalf("err = %v", err)
		}
		if r.scores.count() != 0 {
			t.Fatalf("scored despite marker failure")
		}
	})
	t.Run("increment", func(t *testing.T) {
		r := newRig(t)
		r.scores.err = errStore
		_, err := r.svc.HandleEdit(context.Background(), claimEvent())
		if !errors.Is(err, errStore) {
			t.Fatalf("err = %v", err)
		}
		// marker stays; the replay is a duplicate, no retry path
		out := mustHandle(t, func(ctx context.Context, ev dom.ClaimEvent) (dom.Outcome, error) {
			r.scores.err = nil
			return r.svc.HandleEdit(ctx, ev)
		}, claimEvent())
		if out.Reason != dom.ReasonDuplicate {
			t.Fatalf("replay reason = %s", out.Reason)
		}
	})
	t.Run("lookup", func(t *testing.T) {
		r := newRig(t)
		r.dir.err = errStore
		if _, err := r.svc.HandleEdit(context.Background(), claimEvent()); !errors.Is(err, errStore) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestHandleCreate(t *testing.T) {
	t.Run("claim on create is ignored by default", func(t *testing.T) {
		r := newRig(t)
		out := mustHandle(t, r.svc.HandleCreate, claimEvent())
		if out.Reason != dom.ReasonClaimOnCreate || r.scores.count() != 0 || r.markers.calls != 0 {
			t.Fatalf("outcome = %+v", out)
		}
	})
	t.Run("announcement", func(t *testing.T) {
		r := newRig(t)
		ev := claimEvent()
		ev.Category = "Auto Summon"
		if out := mustHandle(t, r.svc.HandleCreate, ev); out.Reason != dom.ReasonAnnouncement {
			t.Fatalf("reason = %s", out.Reason)
		}
	})
	t.Run("score on create", func(t *testing.T) {
		r := newRig(t, func(c *Config) { c.ScoreOnCreate = true })
		out := mustHandle(t, r.svc.HandleCreate, claimEvent())
		if !out.Scored() || out.Delta != 13 {
			t.Fatalf("outcome = %+v", out)
		}
		// the later edit of the same message is then a duplicate
		if out := mustHandle(t, r.svc.HandleEdit, claimEvent()); out.Reason != dom.ReasonDuplicate {
			t.Fatalf("edit after create = %s", out.Reason)
		}
	})
	t.Run("gated", func(t *testing.T) {
		r := newRig(t)
		r.sw.Set(engine.Stopped)
		if out := mustHandle(t, r.svc.HandleCreate, claimEvent()); out.Reason != dom.ReasonEngineOff {
			t.Fatalf("reason = %s", out.Reason)
		}
	})
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{}, Collaborators{})
	if s.cfg.MarkerTTL != DefaultMarkerTTL {
		t.Fatalf("ttl = %v", s.cfg.MarkerTTL)
	}
	if len(s.tiers.Tiers()) == 0 {
		t.Fatalf("embedded tiers not loaded")
	}
	// nil engine switch reads as running; missing stores surface as errors
	ev := claimEvent()
	ev.OriginID, ev.ChannelScope = 0, 0
	if out, _ := s.HandleEdit(context.Background(), ev); out.Reason != dom.ReasonScopeMismatch {
		t.Fatalf("reason = %s", out.Reason)
	}
}

func TestHandleEdit_UntieredReportsMarkersSeen(t *testing.T) {
	r := newRig(t)
	ev := claimEvent()
	ev.Fields[0].Value = "Lucky Cat <:star:42>"
	ev.Footer = "<a:spin:7>"

	if out := mustHandle(t, r.svc.HandleEdit, ev); out.Reason != dom.ReasonUntiered {
		t.Fatalf("reason = %s", out.Reason)
	}
	got := unknownMarkers(ev)
	if len(got) != 2 || got[0] != "42" || got[1] != "7" {
		t.Fatalf("markers = %v", got)
	}
}
