package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/enginequip/quotation-backend/api/controllers"
	"github.com/enginequip/quotation-backend/api/middleware"
	"github.com/enginequip/quotation-backend/internal/auth"
	"github.com/enginequip/quotation-backend/internal/catalog"
	"github.com/enginequip/quotation-backend/internal/parts"
	"github.com/enginequip/quotation-backend/internal/quotations"
	"github.com/enginequip/quotation-backend/pkg/auth/session"
	"github.com/enginequip/quotation-backend/pkg/config"
	"github.com/enginequip/quotation-backend/pkg/db"
	"github.com/enginequip/quotation-backend/pkg/logger"
	"github.com/enginequip/quotation-backend/pkg/metrics"
	"github.com/enginequip/quotation-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager session.AccessSessionChecker,
	authService auth.Service,
	catalogService catalog.Service,
	partsService parts.Service,
	quotationsService quotations.Service,
	draftService quotations.DraftService,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
			r.Post("/logout", controllers.AuthLogout(authService, logg))
			r.Get("/me", controllers.AuthMe(authService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
			r.Get("/tree/{category}", controllers.CatalogTree(catalogService, logg))
			r.Get("/parts/{nodeID}", controllers.CatalogParts(catalogService, logg))
		})

		r.Get("/parts/search", controllers.PartsSearch(partsService, logg))

		r.Route("/quotations", func(r chi.Router) {
			r.Post("/", controllers.QuotationsCreate(quotationsService, logg))
			r.Get("/", controllers.QuotationsList(quotationsService, logg))
			r.Get("/{id}", controllers.QuotationsGet(quotationsService, logg))
		})

		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", controllers.DraftResume(draftService, logg))
			r.Put("/", controllers.DraftSave(draftService, logg))
			r.Delete("/", controllers.DraftDiscard(draftService, logg))
			r.Post("/submit", controllers.DraftSubmit(draftService, logg))
		})
	})

	return r
}
