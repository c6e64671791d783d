package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/go-event-management-api/internal/api/middleware"
	"github.com/sanosuguru/go-event-management-api/internal/config"
	"github.com/sanosuguru/go-event-management-api/internal/domain/user"
)

// Router はハンドラーとルート単位のミドルウェアをまとめる
type Router struct {
	Auth    *AuthHandler
	Users   *UserHandler
	Events  *EventHandler
	Booking *BookingHandler
	Health  *HealthHandler

	Verifier    middleware.TokenVerifier
	Revocations middleware.RevocationChecker
	UserLoader  middleware.UserLoader

	RateLimitRPS   float64
	RateLimitBurst int
	Metrics        config.MetricsConfig
}

// Register はすべてのルートを登録する
func (r *Router) Register(e *echo.Echo) {
	authn := middleware.Authenticate(r.Verifier, r.Revocations, r.UserLoader)
	limiter := middleware.AuthRateLimiter(r.RateLimitRPS, r.RateLimitBurst)

	admin := middleware.RequireRoles(user.RoleAdmin)
	creators := middleware.RequireRoles(user.RoleAdmin, user.RoleEventCreator)

	e.GET("/health", r.Health.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth(r.Metrics))

	e.POST("/register", r.Auth.Register, limiter)
	e.POST("/login", r.Auth.Login, limiter)
	e.POST("/logout", r.Auth.Logout, authn)
	e.GET("/me", r.Auth.Me, authn)

	e.GET("/users", r.Users.List, authn, admin)
	e.PUT("/users/:id/role", r.Users.UpdateRole, authn, admin)

	e.GET("/events", r.Events.List, authn)
	e.POST("/events", r.Events.Create, authn, creators)
	e.GET("/my-events", r.Events.MyEvents, authn, creators)
	e.PUT("/events/:id", r.Events.Update, authn, creators)
	e.DELETE("/events/:id", r.Events.Delete, authn, admin)

	e.POST("/bookings", r.Booking.Create, authn)
	e.GET("/bookings/:id", r.Booking.Get, authn)
	e.DELETE("/bookings/:id", r.Booking.Delete, authn)
}
