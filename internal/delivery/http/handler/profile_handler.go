package handler

import (
	"errors"

	"talent-board/internal/delivery/http/dto"
	"talent-board/internal/delivery/http/middleware"
	"talent-board/internal/domain/profile"
	"talent-board/internal/pkg/response"
	ucprofile "talent-board/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc ucprofile.ProfileUsecase
}

type saveProfileRequest struct {
	Name           string                `json:"name"`
	Bio            string                `json:"bio"`
	TelegramHandle string                `json:"telegram_handle"`
	SkillTags      []string              `json:"skill_tags"`
	ProjectLinks   []profile.ProjectLink `json:"project_links"`
}

func NewProfileHandler(uc ucprofile.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Put("/me", h.Save)
	r.Get("/me", h.GetMe)
}

func (h *ProfileHandler) Save(c fiber.Ctx) error {
	wallet, ok := walletFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req saveProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.Save(c.Context(), wallet, ucprofile.SaveInput{
		Name:           req.Name,
		Bio:            req.Bio,
		TelegramHandle: req.TelegramHandle,
		SkillTags:      req.SkillTags,
		ProjectLinks:   req.ProjectLinks,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfile(saved))
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	wallet, ok := walletFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	up, err := h.uc.GetByWallet(c.Context(), wallet)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	data := map[string]any{
		"user":    dto.FromUser(up.User),
		"profile": nil,
	}
	if up.Profile != nil {
		data["profile"] = dto.FromProfile(*up.Profile)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func walletFromLocals(c fiber.Ctx) (string, bool) {
	wallet, _ := c.Locals(middleware.CtxWalletKey).(string)
	if wallet == "" {
		return "", false
	}
	return wallet, true
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucprofile.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Name and telegram handle are required.", nil, err)
	case errors.Is(err, ucprofile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found.", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
