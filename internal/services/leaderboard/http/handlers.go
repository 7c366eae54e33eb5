// Package http provides leaderboard endpoints
package http

import (
	stdhttp "net/http"

	"claimboard/internal/modkit/httpkit"

	dom "claimboard/internal/services/leaderboard/domain"
	svc "claimboard/internal/services/leaderboard/service"
)

// Register mounts leaderboard endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.top)
	httpkit.Get(r, "/{participant}", h.score)
	httpkit.Delete(r, "/", h.reset)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /leaderboard Leaderboard leaderboardTop
// @Summary Ranked participant totals
// @Tags Leaderboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Rows to return (1-100, default 10)"
// @Success 200 {array} domain.Entry "ok"
// @Router /leaderboard [get]
func (h *handlers) top(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", svc.DefaultLimit, 1, svc.MaxLimit)
	if err != nil {
		return nil, err
	}
	return h.svc.Top(r.Context(), dom.TopQuery{Limit: limit})
}

// @Summary One participant total
// @Tags Leaderboard
// @Produce json
// @Security BearerAuth
// @Param participant path string true "Participant id"
// @Success 200 {object} domain.Entry "ok"
// @Router /leaderboard/{participant} [get]
func (h *handlers) score(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamUint64(r, "participant")
	if err != nil {
		return nil, err
	}
	return h.svc.Score(r.Context(), id)
}

// @Summary Clear every total
// @Tags Leaderboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.ResetResult "ok"
// @Router /leaderboard [delete]
func (h *handlers) reset(r *stdhttp.Request) (any, error) {
	return h.svc.Reset(r.Context())
}
