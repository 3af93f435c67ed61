package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/auth"
	"github.com/onerilhan/go-point-api/internal/middleware"
	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/middleware/validation"
)

// userIDPattern negatif id'ler de servise ulaşır ve 400 ile reddedilir
const userIDPattern = "{id:-?[0-9]+}"

// RouterOptions router'ın opsiyonel bileşenleri; nil olanlar devre dışıdır
type RouterOptions struct {
	ErrorConfig   *errors.ErrorConfig
	LoggingConfig *middleware.LoggingConfig
	Validation    *validation.Config
	Tokens        *auth.TokenManager // nil: auth kapalı
	RateLimiter   *middleware.RateLimiter
	Metrics       *middleware.HTTPMetrics
	Gatherer      prometheus.Gatherer // nil: /metrics route'u yok
}

// NewRouter gorilla/mux router'ını middleware zinciriyle kurar.
// Sıra: logging -> metrics -> error handling -> rate limit -> (auth -> owner) -> handler
func NewRouter(pointHandler *PointHandler, opts RouterOptions) *mux.Router {
	if opts.ErrorConfig == nil {
		opts.ErrorConfig = errors.DefaultErrorConfig()
	}

	router := mux.NewRouter()

	logging := middleware.RequestLoggingMiddleware(opts.LoggingConfig)
	errorHandling := middleware.ErrorHandlingMiddleware(opts.ErrorConfig)

	router.Use(logging)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}
	router.Use(errorHandling)
	if opts.RateLimiter != nil {
		router.Use(opts.RateLimiter.Handler)
	}

	router.HandleFunc("/health", Health).Methods(http.MethodGet)
	if opts.Gatherer != nil {
		router.Handle("/metrics", middleware.MetricsHandler(opts.Gatherer)).Methods(http.MethodGet)
	}

	bodyValidation := validation.Middleware(opts.Validation)
	authenticate := middleware.AuthMiddleware(opts.Tokens)

	// /point route'ları kök router'a tam path ile eklenir; subrouter'daki
	// method uyuşmazlığı kök router'a 405 olarak ulaşmıyor
	protected := func(h http.Handler) http.Handler {
		return authenticate(middleware.RequireOwnerOrAdmin(h))
	}

	const pointPath = "/point/" + userIDPattern
	router.Handle(pointPath, protected(http.HandlerFunc(pointHandler.GetUserPoint))).Methods(http.MethodGet)
	router.Handle(pointPath, protected(http.HandlerFunc(pointHandler.Register))).Methods(http.MethodPost)
	router.Handle(pointPath+"/histories", protected(http.HandlerFunc(pointHandler.GetPointHistories))).Methods(http.MethodGet)
	router.Handle(pointPath+"/charge", protected(bodyValidation(http.HandlerFunc(pointHandler.Charge)))).Methods(http.MethodPatch)
	router.Handle(pointPath+"/use", protected(bodyValidation(http.HandlerFunc(pointHandler.Use)))).Methods(http.MethodPatch)

	// Eşleşmeyen istekler router.Use zincirinden geçmez
	router.NotFoundHandler = logging(middleware.NotFoundJSONHandler(opts.ErrorConfig))
	router.MethodNotAllowedHandler = logging(middleware.MethodNotAllowedJSONHandler(opts.ErrorConfig))

	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			methods, _ := route.GetMethods()
			log.Debug().
				Str("path", pathTemplate).
				Strs("methods", methods).
				Msg("📍 Route registered")
		}
		return nil
	})

	return router
}
