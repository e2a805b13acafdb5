package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vendasul/sugestao-vendedor/api/controllers"
	"github.com/vendasul/sugestao-vendedor/api/middleware"
	"github.com/vendasul/sugestao-vendedor/internal/intake"
	"github.com/vendasul/sugestao-vendedor/pkg/config"
	"github.com/vendasul/sugestao-vendedor/pkg/db"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
	"github.com/vendasul/sugestao-vendedor/pkg/metrics"
)

// NewRouter wires the intake API. /health stays outside the API-key guard
// so clients can probe availability before they authenticate.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	svc *intake.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Get("/health", controllers.Health(dbP, logg))
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(cfg.API.Token, logg))

		r.Post("/login", controllers.Login(svc, logg))
		r.Get("/sugestoes", controllers.ListSuggestions(svc, logg))
		r.Get("/itens/{referencia}", controllers.ListItems(svc, logg))
		r.Post("/sugestao", controllers.CreateSuggestion(svc, logg))
	})

	return r
}
