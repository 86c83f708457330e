package handler

import (
	"talent-board/internal/infrastructure/reputation"
	"talent-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type ReputationHandler struct {
	client reputation.Client
}

func NewReputationHandler(client reputation.Client) *ReputationHandler {
	return &ReputationHandler{client: client}
}

func (h *ReputationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:address", h.Get)
}

// Get never fails; the client degrades to an empty reputation on any
// upstream trouble.
func (h *ReputationHandler) Get(c fiber.Ctx) error {
	rep := h.client.GetReputation(c.Context(), c.Params("address"))
	return response.Success(c, fiber.StatusOK, response.MessageOK, rep)
}
