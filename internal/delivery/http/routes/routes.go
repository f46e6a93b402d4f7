package routes

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every handler and mounts the route tree.
type Registry struct {
	Health    *handler.HealthHandler
	Match     *handler.MatchHandler
	Ranking   *handler.RankingHandler
	Fit       *handler.FitHandler
	Training  *handler.TrainingHandler
	Skills    *handler.SkillHandler
	UserSkill *handler.UserSkillHandler
	Stats     *handler.StatsHandler
	WS        *ws.Handler

	Auth      *middleware.AuthMiddleware
	AccessLog *middleware.AccessLogMiddleware
	Errors    *middleware.ErrorMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(r.Errors.Middleware())
	app.Use(r.AccessLog.Middleware())

	r.Health.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/ws", r.WS.HandleTrainingWS)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	protected := v1.Group("", r.Auth.Middleware())

	jobs := protected.Group("/jobs")
	r.Match.RegisterRoutes(jobs)
	r.Fit.RegisterRoutes(jobs)
	r.Ranking.RegisterJobRoutes(jobs)

	r.Ranking.RegisterUserRoutes(protected)

	r.Skills.RegisterRoutes(protected.Group("/skills"))
	r.UserSkill.RegisterRoutes(protected.Group("/users/me"))

	admin := protected.Group("/admin", r.Auth.RequireRole("admin"))
	r.Training.RegisterRoutes(admin)
	r.Stats.RegisterRoutes(admin)
}
