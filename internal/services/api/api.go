// Package api provides the HTTP API for the application
package api

import (
	"claimboard/internal/platform/config"
	"claimboard/internal/platform/logger"
	phttp "claimboard/internal/platform/net/http"
	"claimboard/internal/platform/store"

	"claimboard/internal/modkit"
	"claimboard/internal/modkit/httpkit"
	"claimboard/internal/modkit/module"
	"claimboard/internal/modkit/swaggerkit"

	adminmod "claimboard/internal/services/api/admin/module"
	ingestmod "claimboard/internal/services/api/ingest/module"
	metamod "claimboard/internal/services/api/meta/module"

	claimsmod "claimboard/internal/services/claims/module"
	lbmod "claimboard/internal/services/leaderboard/module"
	ledgermod "claimboard/internal/services/ledger/module"
	memmod "claimboard/internal/services/members/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Claims overrides CLAIMS_* values read from Config
	Claims claimsmod.Options
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
		KV:  opt.Store.KV,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// every operator surface shares one bearer secret (CORE_API_ADMIN_TOKEN)
	adminAuth := modkit.WithMiddlewares(httpkit.Auth(httpkit.StaticToken("admin", opt.Config.MayString("ADMIN_TOKEN", ""))))

	// stores first, the claim processor borrows their ports
	board := lbmod.New(deps, adminAuth)
	members := memmod.New(deps, adminAuth)
	ledger := ledgermod.New(deps, adminAuth)

	claims := claimsmod.New(deps, opt.Claims, claimsmod.Inputs{
		Scores:    module.MustPortsOf[lbmod.Ports](board).Scores,
		Directory: module.MustPortsOf[memmod.Ports](members).Directory,
		Ledger:    module.MustPortsOf[ledgermod.Ports](ledger).Ledger,
	})
	cp := module.MustPortsOf[claimsmod.Ports](claims)

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Tiers: cp.Tiers})),
		ingestmod.New(deps, modkit.WithPorts(ingestmod.Ports{Events: cp.Events})),
		adminmod.New(deps, adminAuth, modkit.WithPorts(adminmod.Ports{Engine: cp.Engine, Markers: cp.Markers})),
		board,
		members,
		ledger,
		claims, // route less, registered for its ports
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
