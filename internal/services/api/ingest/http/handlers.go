// Package http provides the claim event ingest endpoints
package http

import (
	stdhttp "net/http"

	"claimboard/internal/modkit/httpkit"

	dom "claimboard/internal/services/claims/domain"
)

// Register mounts ingest endpoints on the given router
func Register(r httpkit.Router, events dom.EventPort) {
	h := &handlers{events: events}
	httpkit.PostJSON[dom.ClaimEvent](r, "/messages", h.message)
	httpkit.PostJSON[dom.ClaimEvent](r, "/edits", h.edit)
}

type handlers struct{ events dom.EventPort }

// swagger:route POST /events/messages Events eventsMessage
// @Summary Deliver a newly created message
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ClaimEvent true "Event"
// @Success 200 {object} domain.Outcome "terminal outcome"
// @Failure 429 {object} map[string]any "throttled"
// @Router /events/messages [post]
func (h *handlers) message(r *stdhttp.Request, ev dom.ClaimEvent) (any, error) {
	ev.Edit = false
	return h.events.HandleCreate(r.Context(), ev)
}

// swagger:route POST /events/edits Events eventsEdit
// @Summary Deliver the revised content of an edited message
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ClaimEvent true "Event"
// @Success 200 {object} domain.Outcome "terminal outcome"
// @Failure 429 {object} map[string]any "throttled"
// @Router /events/edits [post]
func (h *handlers) edit(r *stdhttp.Request, ev dom.ClaimEvent) (any, error) {
	ev.Edit = true
	return h.events.HandleEdit(r.Context(), ev)
}
