package service

import (
	"context"
	"time"

	perr "claimboard/internal/platform/errors"

	dom "claimboard/internal/services/claims/domain"
)

// Gate admits a (event, participant) pair at most once per ttl
type Gate struct {
	markers dom.MarkerPort
	ttl     time.Duration
}

// NewGate builds a dedup gate over a marker store
func NewGate(m dom.MarkerPort, ttl time.Duration) *Gate {
	return &Gate{markers: m, ttl: ttl}
}

// MarkerKey is the composite dedup key
func MarkerKey(eventID string, p dom.ParticipantID) string {
	return "claim:" + eventID + ":" + p.String()
}

// Admit reports true when this caller created the marker and may score
// it is one set-if-absent call; there is no separate existence check
func (g *Gate) Admit(ctx context.Context, eventID string, p dom.ParticipantID) (bool, error) {
	if eventID == "" {
		return false, perr.InvalidArgf("claims: empty event id")
	}
	if g.markers == nil {
		return false, perr.Unavailablef("claims: no marker store configured")
	}
	ok, err := g.markers.SetIfAbsent(ctx, MarkerKey(eventID, p), g.ttl)
	if err != nil {
		return false, perr.Wrap(err, perr.CodeOf(err), "claims: dedup marker")
	}
	return ok, nil
}

var errNoParticipants = perr.Unavailablef("claims: no participant directory configured")
