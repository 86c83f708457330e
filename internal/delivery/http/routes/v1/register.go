package v1

import (
	"log"

	"talent-board/internal/config"
	"talent-board/internal/database"
	"talent-board/internal/delivery/http/handler"
	"talent-board/internal/delivery/http/middleware"
	"talent-board/internal/infrastructure/cache"
	"talent-board/internal/infrastructure/reputation"
	"talent-board/internal/pkg/jwt"
	"talent-board/internal/repository"
	"talent-board/internal/usecase"
	authuc "talent-board/internal/usecase/auth"
	endorsementuc "talent-board/internal/usecase/endorsement"
	profileuc "talent-board/internal/usecase/profile"
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

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	profileRepo := repository.NewPostgresProfileRepository(deps.DB)
	endorsementRepo := repository.NewPostgresEndorsementRepository(deps.DB)

	challenges := authuc.NewRedisChallengeStore(deps.Cache)
	authUC := authuc.NewService(userRepo, challenges, jwtSvc)
	profileUC := profileuc.NewService(userRepo, profileRepo)
	endorsementUC := endorsementuc.NewService(userRepo, profileRepo, endorsementRepo, deps.Logger)
	seekerUC := usecase.NewSeekerQueryUsecase(profileRepo, deps.Logger)
	contactUC := usecase.NewContactUsecase(userRepo, profileRepo)
	repClient := reputation.NewClient(deps.Config.Reputation.BaseURL, deps.Config.Reputation.Timeout, deps.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	endorsementHandler := handler.NewEndorsementHandler(endorsementUC)
	seekerHandler := handler.NewSeekerHandler(seekerUC, contactUC)
	reputationHandler := handler.NewReputationHandler(repClient)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	// Public reads: the board, a profile's endorsements, reputation.
	seekersGroup := r.Group("/seekers")
	seekerHandler.RegisterRoutes(seekersGroup)
	r.Get("/profiles/:profileId/endorsements", endorsementHandler.ListForProfile)
	reputationGroup := r.Group("/reputation")
	reputationHandler.RegisterRoutes(reputationGroup)

	if deps.WS != nil {
		r.Get("/ws/endorsements", deps.WS.HandleEndorsementsWS)
	}

	protected := r.Group("", authMw.Middleware())

	profilesGroup := protected.Group("/profiles")
	profileHandler.RegisterRoutes(profilesGroup)

	endorsementsGroup := protected.Group("/endorsements")
	endorsementHandler.RegisterRoutes(endorsementsGroup)

	protected.Post("/seekers/:userId/reveal-contact", seekerHandler.RevealContact)
}
