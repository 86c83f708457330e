package handler

import (
	"errors"
	"strings"

	"talent-board/internal/delivery/http/dto"
	"talent-board/internal/delivery/http/middleware"
	"talent-board/internal/pkg/response"
	"talent-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SeekerHandler struct {
	seekers *usecase.SeekerQueryUsecase
	contact *usecase.ContactUsecase
}

func NewSeekerHandler(seekers *usecase.SeekerQueryUsecase, contact *usecase.ContactUsecase) *SeekerHandler {
	return &SeekerHandler{seekers: seekers, contact: contact}
}

func (h *SeekerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
}

// List serves both the plain board and filtered search: ?query=,
// ?skills=go,rust and ?sort_by=recent|endorsements.
func (h *SeekerHandler) List(c fiber.Ctx) error {
	params := usecase.SeekerSearchParams{
		Query:  c.Query("query"),
		SortBy: c.Query("sort_by"),
	}
	if raw := strings.TrimSpace(c.Query("skills")); raw != "" {
		params.Skills = strings.Split(raw, ",")
	}

	rows := h.seekers.SearchSeekers(c.Context(), params)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSeekerRows(rows))
}

// RevealContact is registered on the protected group; only employers
// get the handle back.
func (h *SeekerHandler) RevealContact(c fiber.Ctx) error {
	wallet, ok := walletFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	targetUserID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	handle, err := h.contact.RevealContact(c.Context(), targetUserID, wallet)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.NewAppError(fiber.StatusForbidden, "Only employers can reveal contact information.", nil, err)
		case errors.Is(err, usecase.ErrNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found.", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"telegram_handle": handle,
	})
}
