package handler

import (
	"errors"

	"talent-board/internal/delivery/http/dto"
	"talent-board/internal/delivery/http/middleware"
	"talent-board/internal/pkg/response"
	ucendorsement "talent-board/internal/usecase/endorsement"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EndorsementHandler struct {
	uc ucendorsement.EndorsementUsecase
}

type endorseRequest struct {
	ProfileID       string `json:"profile_id"`
	Message         string `json:"message"`
	RelationshipTag string `json:"relationship_tag"`
}

func NewEndorsementHandler(uc ucendorsement.EndorsementUsecase) *EndorsementHandler {
	return &EndorsementHandler{uc: uc}
}

func (h *EndorsementHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Endorse)
	r.Delete("/:profileId", h.Remove)
	r.Get("/:profileId/status", h.Status)
}

func (h *EndorsementHandler) Endorse(c fiber.Ctx) error {
	wallet, ok := walletFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req endorseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile id", nil, err)
	}

	err = h.uc.Endorse(c.Context(), ucendorsement.EndorseInput{
		EndorserAddress: wallet,
		ProfileID:       profileID,
		Message:         req.Message,
		RelationshipTag: req.RelationshipTag,
	})
	if err != nil {
		return mapEndorsementUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *EndorsementHandler) Remove(c fiber.Ctx) error {
	wallet, ok := walletFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	profileID, err := uuid.Parse(c.Params("profileId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile id", nil, err)
	}

	if err := h.uc.Remove(c.Context(), wallet, profileID); err != nil {
		return mapEndorsementUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *EndorsementHandler) Status(c fiber.Ctx) error {
	wallet, ok := walletFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	profileID, err := uuid.Parse(c.Params("profileId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile id", nil, err)
	}

	endorsed := h.uc.HasEndorsed(c.Context(), wallet, profileID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"endorsed": endorsed,
	})
}

// ListForProfile is public and registered under the profiles group.
func (h *EndorsementHandler) ListForProfile(c fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("profileId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile id", nil, err)
	}

	items := h.uc.ListForProfile(c.Context(), profileID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProfileEndorsements(items))
}

func mapEndorsementUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucendorsement.ErrNoProfile):
		return middleware.NewAppError(fiber.StatusForbidden, "You must create a profile before endorsing others.", nil, err)
	case errors.Is(err, ucendorsement.ErrMessageTooShort):
		return middleware.NewAppError(fiber.StatusBadRequest, "Endorsement must be at least 100 characters.", nil, err)
	case errors.Is(err, ucendorsement.ErrMissingRelationship):
		return middleware.NewAppError(fiber.StatusBadRequest, "Please select how you know this person.", nil, err)
	case errors.Is(err, ucendorsement.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found.", nil, err)
	case errors.Is(err, ucendorsement.ErrSelfEndorsement):
		return middleware.NewAppError(fiber.StatusBadRequest, "You cannot endorse yourself.", nil, err)
	case errors.Is(err, ucendorsement.ErrDuplicateEndorsement):
		return middleware.NewAppError(fiber.StatusConflict, "You have already endorsed this person.", nil, err)
	case errors.Is(err, ucendorsement.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Endorsement not found.", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
