// Package http provides claim ledger endpoints
package http

import (
	stdhttp "net/http"

	"claimboard/internal/modkit/httpkit"

	dom "claimboard/internal/services/ledger/domain"
	svc "claimboard/internal/services/ledger/service"
)

// Register mounts ledger endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.recent)
}

type handlers struct{ svc svc.Service }

// @Summary Recent claim outcomes
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Rows to return (1-500, default 50)"
// @Param outcome query string false "Only this outcome, e.g. untiered"
// @Success 200 {array} domain.Entry "ok"
// @Failure 503 {object} map[string]any "no warehouse configured"
// @Router /ledger [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", svc.DefaultLimit, 1, svc.MaxLimit)
	if err != nil {
		return nil, err
	}
	return h.svc.Recent(r.Context(), dom.RecentQuery{Limit: limit, Outcome: r.URL.Query().Get("outcome")})
}
