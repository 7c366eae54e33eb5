package service

import (
	"context"

	"claimboard/internal/core/attribution"
	"claimboard/internal/core/claim"
	"claimboard/internal/core/rarity"
	"claimboard/internal/platform/logger"

	dom "claimboard/internal/services/claims/domain"
)

// HandleCreate inspects a fresh notification
// fresh posts are announcements; the claimed state arrives as an edit
func (s *Svc) HandleCreate(ctx context.Context, ev dom.ClaimEvent) (dom.Outcome, error) {
	log := eventLog(ctx, ev, "create")
	out := dom.Outcome{EventID: ev.EventID}

	if r, ok := s.admit(ev); !ok {
		return s.drop(log, out, r), nil
	}
	switch claim.Classify(ev.Category) {
	case claim.Noise:
		return s.drop(log, out, dom.ReasonNoise), nil
	case claim.NotAClaim:
		return s.drop(log, out, dom.ReasonAnnouncement), nil
	}
	if !s.cfg.ScoreOnCreate {
		return s.drop(log, out, dom.ReasonClaimOnCreate), nil
	}
	return s.process(ctx, log, ev)
}

// HandleEdit inspects an edited notification, the canonical claim trigger
func (s *Svc) HandleEdit(ctx context.Context, ev dom.ClaimEvent) (dom.Outcome, error) {
	log := eventLog(ctx, ev, "edit")
	out := dom.Outcome{EventID: ev.EventID}

	if r, ok := s.admit(ev); !ok {
		return s.drop(log, out, r), nil
	}
	switch claim.Classify(ev.Category) {
	case claim.Noise:
		return s.drop(log, out, dom.ReasonNoise), nil
	case claim.NotAClaim:
		return s.drop(log, out, dom.ReasonAnnouncement), nil
	}
	return s.process(ctx, log, ev)
}

// admit runs the gates in order: engine, self, scope, origin
func (s *Svc) admit(ev dom.ClaimEvent) (dom.Reason, bool) {
	switch {
	case !s.engine.Running():
		return dom.ReasonEngineOff, false
	case s.cfg.SelfID != 0 && ev.OriginID == s.cfg.SelfID:
		return dom.ReasonSelfOrigin, false
	case ev.ChannelScope == 0 || ev.ChannelScope != s.cfg.Scope:
		return dom.ReasonScopeMismatch, false
	case ev.OriginID != s.cfg.TrustedOrigin:
		return dom.ReasonUntrustedOrigin, false
	case ev.Empty():
		return dom.ReasonNoise, false
	}
	return "", true
}

// process takes a qualifying claim through attribution, tiering, dedup and scoring
func (s *Svc) process(ctx context.Context, log *logger.Logger, ev dom.ClaimEvent) (dom.Outcome, error) {
	out := dom.Outcome{EventID: ev.EventID}

	id, ok := attribution.Resolve(ev.AttributionSource())
	if !ok {
		log.Warn().Msg("claim could not be attributed")
		out.Reason = dom.ReasonUnattributed
		s.record(ctx, log, out)
		return out, nil
	}
	out.Participant = dom.ParticipantID(id)
	plog := log.With().Stringer("participant", out.Participant).Logger()

	if s.participants == nil {
		return out, errNoParticipants
	}
	p, found, err := s.participants.Lookup(ctx, out.Participant)
	if err != nil {
		plog.Error().Err(err).Msg("participant lookup failed")
		return out, err
	}
	if !found {
		plog.Warn().Msg("claimed by a participant not in the community")
		out.Reason = dom.ReasonUnknownParticipant
		s.record(ctx, &plog, out)
		return out, nil
	}

	tier, ok := s.tiers.Classify(ev.Fragments())
	if !ok {
		plog.Warn().Strs("markers", unknownMarkers(ev)).Msg("claim carries no recognised rarity marker")
		out.Reason = dom.ReasonUntiered
		s.record(ctx, &plog, out)
		return out, nil
	}
	out.Tier = tier.Name

	admitted, err := s.gate.Admit(ctx, ev.EventID, out.Participant)
	if err != nil {
		plog.Error().Err(err).Msg("dedup marker write failed")
		return out, err
	}
	if !admitted {
		plog.Debug().Str("tier", tier.Name).Msg("claim already scored")
		out.Reason = dom.ReasonDuplicate
		s.record(ctx, &plog, out)
		return out, nil
	}

	// the marker is set from here on; a failed increment loses this claim
	applied, err := s.apply.Apply(ctx, p, tier)
	if err != nil {
		plog.Error().Err(err).Str("tier", tier.Name).Msg("score increment failed")
		return out, err
	}
	out.Reason = dom.ReasonScored
	out.Bonus = applied.Bonus
	out.Delta = applied.Delta
	out.Total = applied.Total

	plog.Info().
		Str("tier", tier.Name).
		Int64("delta", applied.Delta).
		Int64("bonus", applied.Bonus).
		Int64("total", applied.Total).
		Msg("claim scored")
	s.record(ctx, &plog, out)
	return out, nil
}

func (s *Svc) drop(log *logger.Logger, out dom.Outcome, r dom.Reason) dom.Outcome {
	out.Reason = r
	log.Debug().Str("reason", string(r)).Msg("event dropped")
	return out
}

// unknownMarkers lists the marker ids an untiered claim carried, for tier table upkeep
func unknownMarkers(ev dom.ClaimEvent) []string {
	return rarity.MarkerIDs(ev.Fragments()...)
}

func eventLog(ctx context.Context, ev dom.ClaimEvent, trigger string) *logger.Logger {
	l := logger.C(ctx).With().
		Str("component", "claims").
		Str("trigger", trigger).
		Str("event_id", ev.EventID).
		Logger()
	return &l
}
