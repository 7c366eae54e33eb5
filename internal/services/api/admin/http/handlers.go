// Package http provides operator endpoints for the claim engine
package http

import (
	stdhttp "net/http"

	"claimboard/internal/core/engine"
	"claimboard/internal/modkit/httpkit"
	"claimboard/internal/platform/logger"

	claimsrepo "claimboard/internal/services/claims/repo"
)

// Deps are the handler dependencies
type Deps struct {
	Engine  *engine.Switch
	Markers claimsrepo.Repo
}

// EngineInput changes the engine state
type EngineInput struct {
	State string `json:"state" validate:"required,oneof=running paused stopped" example:"paused"`
}

// EngineResponse reports the engine state
type EngineResponse struct {
	State    string `json:"state" example:"paused"`
	Previous string `json:"previous,omitempty" example:"running"`
}

// SweepResponse reports how many expired markers were removed
type SweepResponse struct {
	Removed int64 `json:"removed" example:"120"`
}

type handlers struct{ deps Deps }

// Register mounts admin endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/engine", h.engine)
	httpkit.PutJSON[EngineInput](r, "/engine", h.setEngine)
	httpkit.Post(r, "/markers/sweep", h.sweep)
}

// swagger:route GET /admin/engine Admin adminEngine
// @Summary Current engine state
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} EngineResponse "ok"
// @Router /admin/engine [get]
func (h *handlers) engine(_ *stdhttp.Request) (any, error) {
	return EngineResponse{State: h.deps.Engine.State().String()}, nil
}

// swagger:route PUT /admin/engine Admin adminSetEngine
// @Summary Run, pause or stop claim processing
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body EngineInput true "Target state"
// @Success 200 {object} EngineResponse "ok"
// @Router /admin/engine [put]
func (h *handlers) setEngine(r *stdhttp.Request, in EngineInput) (any, error) {
	next, err := engine.ParseState(in.State)
	if err != nil {
		return nil, err
	}
	prev := h.deps.Engine.Set(next)
	log := logger.C(r.Context())
	log.Info().
		Str("component", "admin").
		Str("from", prev.String()).
		Str("to", next.String()).
		Msg("engine state changed")
	return EngineResponse{State: next.String(), Previous: prev.String()}, nil
}

// swagger:route POST /admin/markers/sweep Admin adminSweep
// @Summary Delete expired claim markers (postgres backend only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max markers to delete (1-10000, default 1000)"
// @Success 200 {object} SweepResponse "ok"
// @Router /admin/markers/sweep [post]
func (h *handlers) sweep(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", 1000, 1, 10000)
	if err != nil {
		return nil, err
	}
	n, err := h.deps.Markers.SweepExpired(r.Context(), limit)
	if err != nil {
		return nil, err
	}
	return SweepResponse{Removed: n}, nil
}
