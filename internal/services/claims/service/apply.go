package service

import (
	"context"

	"claimboard/internal/core/rarity"
	perr "claimboard/internal/platform/errors"

	dom "claimboard/internal/services/claims/domain"
)

// Applied is what a score application did
type Applied struct {
	Bonus int64
	Delta int64
	Total int64
}

// Applicator turns a tier and a participant into one atomic increment
type Applicator struct {
	scores dom.ScorePort
	bonus  map[string]struct{}
}

// NewApplicator builds an applicator; bonusRoles is the set that earns +1
func NewApplicator(scores dom.ScorePort, bonusRoles []string) *Applicator {
	set := make(map[string]struct{}, len(bonusRoles))
	for _, r := range bonusRoles {
		if r != "" {
			set[r] = struct{}{}
		}
	}
	return &Applicator{scores: scores, bonus: set}
}

// Bonus is 1 when any role is a bonus role; several bonus roles still give 1
func (a *Applicator) Bonus(roles []string) int64 {
	for _, r := range roles {
		if _, ok := a.bonus[r]; ok {
			return 1
		}
	}
	return 0
}

// Apply increments the participant total by tier value plus bonus
// a tier without value touches nothing
func (a *Applicator) Apply(ctx context.Context, p dom.Participant, tier rarity.Tier) (Applied, error) {
	if tier.Value <= 0 {
		return Applied{}, nil
	}
	if a.scores == nil {
		return Applied{}, perr.Unavailablef("claims: no score store configured")
	}
	bonus := a.Bonus(p.Roles)
	delta := int64(tier.Value) + bonus
	total, err := a.scores.Increment(ctx, p.ID, delta)
	if err != nil {
		return Applied{}, err
	}
	return Applied{Bonus: bonus, Delta: delta, Total: total}, nil
}
