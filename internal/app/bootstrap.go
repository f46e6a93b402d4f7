package app

import (
	"fmt"

	"talent-match/internal/config"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, mounts the route tree and starts the
// websocket hub. The returned cleanup closes everything the container
// opened.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	go c.Hub.Run()

	f := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	reg := routes.Registry{
		Health:    handler.NewHealthHandler(),
		Match:     handler.NewMatchHandler(c.MatchUC),
		Ranking:   handler.NewRankingHandler(c.RankingUC),
		Fit:       handler.NewFitHandler(c.FitUC),
		Training:  handler.NewTrainingHandler(c.TrainingUC),
		Skills:    handler.NewSkillHandler(c.SkillUC),
		UserSkill: handler.NewUserSkillHandler(c.UserSkillUC),
		Stats:     handler.NewStatsHandler(c.StatsUC),
		WS:        ws.NewHandler(c.Hub, c.Logger),

		Auth:      middleware.NewAuthMiddleware(jwt.NewHMACVerifier(cfg.Auth.JWTSecret)),
		AccessLog: middleware.NewAccessLogMiddleware(c.Logger),
		Errors:    middleware.NewErrorMiddleware(c.Logger),
	}
	reg.Register(f)

	return &App{Fiber: f, Container: c}, c.Close, nil
}

func ListenAddr(port int) (string, error) {
	if port <= 0 || port > 65535 {
		return "", fmt.Errorf("invalid HTTP port %d", port)
	}
	return fmt.Sprintf(":%d", port), nil
}
