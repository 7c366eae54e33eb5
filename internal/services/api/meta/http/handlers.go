// Package http provides liveness, readiness and build endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"claimboard/internal/core/rarity"
	"claimboard/internal/core/version"
	"claimboard/internal/modkit/httpkit"
)

// Pinger is satisfied by store seams that can report connectivity
type Pinger interface {
	Ping(stdctx.Context) error
}

// Backend is one store the readiness probe pings
type Backend struct {
	Name string
	Seam any
}

// check statuses
const (
	StatusOK       = "ok"
	StatusFail     = "fail"
	StatusSkipped  = "skipped"
	StatusUnknown  = "unknown"
	StatusDegraded = "degraded"
)

// readyTimeout bounds all backend pings of one probe
const readyTimeout = 2 * time.Second

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Backends    []Backend
	Tiers       *rarity.Table
	// Modules lists mounted modules; nil reports none
	Modules func() []string
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"claimboard-api"`
	Now     string `json:"now" example:"2026-09-03T13:05:00Z"`
}

// ReadyCheck is the result of pinging one backend
type ReadyCheck struct {
	Name   string `json:"name" example:"kv"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:6379: connect: connection refused"`
}

// ReadyResponse is fail when any backend failed and degraded when none answered
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string   `json:"name" example:"claimboard-api"`
	Started string   `json:"started" example:"2026-09-03T13:00:00Z"`
	Uptime  int64    `json:"uptime" example:"300"`
	Modules []string `json:"modules" example:"leaderboard,members"`
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/tiers", h.tiers)
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Now: time.Now().UTC().Format(time.RFC3339)}, nil
}

// @Summary Readiness with a ping per configured store
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	res := ReadyResponse{Status: StatusDegraded, Checks: make([]ReadyCheck, 0, len(h.deps.Backends))}
	for _, b := range h.deps.Backends {
		c := ping(ctx, b)
		res.Checks = append(res.Checks, c)
		switch {
		case c.Status == StatusFail:
			res.Status = StatusFail
		case c.Status == StatusOK && res.Status == StatusDegraded:
			res.Status = StatusOK
		}
	}
	return res, nil
}

func ping(ctx stdctx.Context, b Backend) ReadyCheck {
	c := ReadyCheck{Name: b.Name, Status: StatusSkipped}
	if b.Seam == nil {
		return c
	}
	p, ok := b.Seam.(Pinger)
	if !ok {
		c.Status = StatusUnknown
		return c
	}
	if err := p.Ping(ctx); err != nil {
		c.Status, c.Error = StatusFail, err.Error()
		return c
	}
	c.Status = StatusOK
	return c
}

// @Summary Build metadata
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	info := version.Info()
	if h.deps.ServiceName != "" {
		info.Service = h.deps.ServiceName
	}
	return info, nil
}

// @Summary Process uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	res := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
		Modules: []string{},
	}
	if h.deps.Modules != nil {
		res.Modules = h.deps.Modules()
	}
	return res, nil
}

// @Summary Rarity tiers and their point values
// @Tags Meta
// @Produce json
// @Success 200 {array} rarity.Tier "ok"
// @Router /meta/tiers [get]
func (h *handlers) tiers(_ *http.Request) (any, error) {
	if h.deps.Tiers == nil {
		return []rarity.Tier{}, nil
	}
	return h.deps.Tiers.Tiers(), nil
}
