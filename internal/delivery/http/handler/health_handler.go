package handler

import (
	"talent-board/internal/database"
	"talent-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	dbStatus := "up"
	if h.db == nil || h.db.Ping(c.Context()) != nil {
		dbStatus = "down"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"database": dbStatus,
	})
}
