package module

import (
	"context"

	dom "claimboard/internal/services/claims/domain"
	lbdom "claimboard/internal/services/leaderboard/domain"
	ledgerdom "claimboard/internal/services/ledger/domain"
	memdom "claimboard/internal/services/members/domain"
)

// scoresPort narrows the leaderboard to the claim ScorePort
type scoresPort struct{ lb lbdom.ScorePort }

func (a scoresPort) Increment(ctx context.Context, id dom.ParticipantID, delta int64) (int64, error) {
	return a.lb.Increment(ctx, uint64(id), delta)
}

// participantsPort resolves participants through the member directory
type participantsPort struct{ dir memdom.ServicePort }

func (a participantsPort) Lookup(ctx context.Context, id dom.ParticipantID) (dom.Participant, bool, error) {
	m, ok, err := a.dir.Find(ctx, uint64(id))
	if err != nil || !ok {
		return dom.Participant{}, false, err
	}
	return dom.Participant{ID: id, Roles: m.Roles}, true, nil
}

// ledgerPort turns outcomes into ledger entries
type ledgerPort struct{ l ledgerdom.ServicePort }

func (a ledgerPort) Record(ctx context.Context, o dom.Outcome) error {
	_, err := a.l.Append(ctx, ledgerdom.Entry{
		EventID:     o.EventID,
		Participant: uint64(o.Participant),
		Tier:        o.Tier,
		Delta:       o.Delta,
		Total:       o.Total,
		Outcome:     string(o.Reason),
	})
	return err
}
