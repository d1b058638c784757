package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spacekitchen/burgerhub/internal/auth"
	"github.com/spacekitchen/burgerhub/internal/cache"
	"github.com/spacekitchen/burgerhub/internal/config"
	"github.com/spacekitchen/burgerhub/internal/http/handlers"
	"github.com/spacekitchen/burgerhub/internal/http/middlewares"
	"github.com/spacekitchen/burgerhub/internal/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Deps carries everything the router wires together. Stores are consumed
// through the handler interfaces so tests can plug in the memory variants.
type Deps struct {
	Cfg config.Config
	JWT *auth.Manager

	Users       handlers.UsersStore
	Refresh     handlers.RefreshTokensStore
	Orders      handlers.OrdersStore
	Ingredients handlers.IngredientsStore

	Queue CookEnqueuerOrNil

	Cache    *cache.Cache          // optional
	Prom     *observability.Prom   // optional
	Registry *prometheus.Registry  // optional, serves /metrics when set
	Pings    map[string]func() error
}

// CookEnqueuerOrNil exists so callers without redis can just leave the
// field zero; a typed-nil interface would otherwise slip past nil checks.
type CookEnqueuerOrNil = handlers.CookEnqueuer

func NewRouter(log *slog.Logger, deps Deps) *gin.Engine {
	if deps.Cfg.Env != "dev" && deps.Cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware([]string{"https://burgerhub.dev"}))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(otelgin.Middleware("burgerhub"))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	// health

	health := handlers.NewHealthHandler(deps.Pings)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// wire up handlers

	authHandler := handlers.NewAuthHandler(deps.Users, deps.Refresh, deps.JWT, log)
	resetHandler := handlers.NewPasswordResetHandler(deps.Users, log)
	ingredientsHandler := handlers.NewIngredientsHandler(deps.Ingredients, deps.Cache)
	ordersHandler := handlers.NewOrdersHandler(deps.Orders, deps.Ingredients, deps.Users, deps.Queue, deps.Prom, log)

	authMW := middlewares.NewAuthMiddleware(deps.JWT)
	limiter := middlewares.NewRateLimiter(deps.Cfg.RateLimit, deps.Cfg.RateLimitWindow)
	limited := limiter.RateLimiterMiddleware(middlewares.KeyByIP)

	api := r.Group("/api")

	api.GET("/ingredients", ingredientsHandler.List)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", limited, authHandler.Register)
	authGroup.POST("/login", limited, authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/token", authHandler.RefreshToken)
	authGroup.GET("/user", authMW.RequireAuth(), authHandler.GetUser)
	authGroup.PATCH("/user", authMW.RequireAuth(), authHandler.UpdateUser)
	authGroup.DELETE("/user", authMW.RequireAuth(), authHandler.DeleteUser)

	api.POST("/password-reset", limited, resetHandler.Request)
	api.POST("/password-reset/reset", limited, resetHandler.Confirm)

	api.POST("/orders", authMW.RequireAuth(), ordersHandler.CreateOrder)
	api.GET("/orders", authMW.RequireAuth(), ordersHandler.ListOrders)
	api.GET("/orders/all", ordersHandler.ListAllOrders)

	return r
}
