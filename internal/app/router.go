package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/farmgate-erp/farmgate-erp/internal/finance"
	"github.com/farmgate-erp/farmgate-erp/internal/inventory"
	"github.com/farmgate-erp/farmgate-erp/internal/masterdata"
	"github.com/farmgate-erp/farmgate-erp/internal/observability"
	"github.com/farmgate-erp/farmgate-erp/internal/partner"
	"github.com/farmgate-erp/farmgate-erp/internal/payroll"
	"github.com/farmgate-erp/farmgate-erp/internal/schedule"
	"github.com/farmgate-erp/farmgate-erp/internal/season"
)

// RouterParams collects everything the router mounts.
type RouterParams struct {
	Config     *Config
	Metrics    *observability.Metrics
	Partners   *partner.Handler
	Inventory  *inventory.Handler
	Finance    *finance.Handler
	Seasons    *season.Handler
	Payrolls   *payroll.Handler
	Schedules  *schedule.Handler
	Masterdata *masterdata.Handler
}

// NewRouter assembles the HTTP surface.
func NewRouter(p RouterParams) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	for _, mw := range MiddlewareStack(MiddlewareConfig{Config: p.Config, Metrics: p.Metrics}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics.Handler())
	}

	r.Route("/partners", p.Partners.MountRoutes)
	r.Route("/inventory", p.Inventory.MountRoutes)
	r.Route("/transactions", p.Finance.MountRoutes)
	r.Route("/seasons", p.Seasons.MountRoutes)
	r.Route("/payrolls", p.Payrolls.MountRoutes)
	r.Route("/schedules", p.Schedules.MountRoutes)
	p.Masterdata.MountRoutes(r)

	return r
}
