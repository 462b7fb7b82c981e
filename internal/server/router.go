package server

import (
	"net/http"

	"csirt-registry/internal/config"
	"csirt-registry/internal/database"
	"csirt-registry/internal/handlers"
	"csirt-registry/internal/identity"
	"csirt-registry/internal/middleware"
	"csirt-registry/internal/policy"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Store    database.Store
	Identity identity.Provider
	Registry *prometheus.Registry
}

type route struct {
	method  string
	path    string
	op      policy.Operation
	handler func(*handlers.API) gin.HandlerFunc
}

// защищённые маршруты; правила доступа — в policy.Rules
var recordRoutes = []route{
	{http.MethodGet, "/companies", policy.OpListCompanies, func(a *handlers.API) gin.HandlerFunc { return a.ListCompanies }},
	{http.MethodPost, "/designations", policy.OpUpsertDesignation, func(a *handlers.API) gin.HandlerFunc { return a.UpsertDesignation }},
	{http.MethodPost, "/configurations", policy.OpUpsertConfiguration, func(a *handlers.API) gin.HandlerFunc { return a.UpsertConfiguration }},
	{http.MethodPost, "/incidents", policy.OpCreateIncident, func(a *handlers.API) gin.HandlerFunc { return a.CreateIncident }},
	{http.MethodGet, "/incidents", policy.OpListIncidents, func(a *handlers.API) gin.HandlerFunc { return a.ListIncidents }},
	{http.MethodPost, "/notifications", policy.OpCreateNotification, func(a *handlers.API) gin.HandlerFunc { return a.CreateNotification }},
	{http.MethodGet, "/notifications", policy.OpListNotifications, func(a *handlers.API) gin.HandlerFunc { return a.ListNotifications }},
	{http.MethodGet, "/users", policy.OpListUsers, func(a *handlers.API) gin.HandlerFunc { return a.ListUsers }},
	{http.MethodPost, "/users", policy.OpCreateUser, func(a *handlers.API) gin.HandlerFunc { return a.CreateUser }},
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()

	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(deps.Registry)

	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		metrics.Handler(),
		middleware.CORS(cfg.CORSOrigins),
	)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("csirt_session", store))

	api := handlers.New(deps.Store, deps.Identity)

	apiGroup := r.Group("/api")

	// HEALTHCHECK / METRICS
	apiGroup.GET("/health", handlers.Health)
	apiGroup.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	// AUTH
	apiGroup.POST("/auth/login", api.Login)
	apiGroup.POST("/auth/logout", api.Logout)

	authed := apiGroup.Group("", middleware.RequireAuth(deps.Identity, deps.Store))
	authed.GET("/auth/session", api.Session)

	// ЗАПИСИ
	for _, rt := range recordRoutes {
		authed.Handle(rt.method, rt.path, middleware.Authorize(rt.op), rt.handler(api))
	}

	// всё остальное — фронтенд
	r.NoRoute(handlers.Frontend(cfg.StaticDirs))

	return r
}
