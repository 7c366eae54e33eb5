// Package http provides member directory endpoints
package http

import (
	stdhttp "net/http"

	"claimboard/internal/modkit/httpkit"

	dom "claimboard/internal/services/members/domain"
	svc "claimboard/internal/services/members/service"
)

// Register mounts member endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PutJSON[dom.PutInput](r, "/{participant}", h.put)
	httpkit.Get(r, "/{participant}", h.get)
	httpkit.Delete(r, "/{participant}", h.del)
}

type handlers struct{ svc svc.Service }

// @Summary Create or replace a member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participant path string true "Participant id"
// @Param payload body domain.PutInput true "Member"
// @Success 200 {object} domain.Member "ok"
// @Router /members/{participant} [put]
func (h *handlers) put(r *stdhttp.Request, in dom.PutInput) (any, error) {
	id, err := httpkit.ParamUint64(r, "participant")
	if err != nil {
		return nil, err
	}
	return h.svc.Put(r.Context(), dom.Member{ID: id, Name: in.Name, Roles: in.Roles})
}

// @Summary Read a member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param participant path string true "Participant id"
// @Success 200 {object} domain.Member "ok"
// @Router /members/{participant} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamUint64(r, "participant")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// @Summary Remove a member
// @Tags Members
// @Security BearerAuth
// @Param participant path string true "Participant id"
// @Success 204 "deleted"
// @Router /members/{participant} [delete]
func (h *handlers) del(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamUint64(r, "participant")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
