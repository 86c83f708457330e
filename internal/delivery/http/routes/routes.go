package routes

import (
	"log"

	"talent-board/internal/config"
	"talent-board/internal/database"
	"talent-board/internal/delivery/http/handler"
	"talent-board/internal/infrastructure/cache"
	"talent-board/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	WS     *ws.Handler
	Logger *log.Logger
}

type Registry struct {
	deps   Deps
	health *handler.HealthHandler
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:   deps,
		health: handler.NewHealthHandler(deps.DB),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
