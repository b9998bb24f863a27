package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ansh808s/cause-drop/internal/middleware"
)

type RouterDeps struct {
	Auth         *AuthHandler
	Campaigns    *CampaignHandler
	Actions      *ActionHandler
	Uploads      *UploadHandler
	Health       *HealthHandler
	Users        middleware.UserResolver
	JWTSecret    []byte
	SignInWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/healthz", deps.Health.Check)

	api.GET("/auth/challenge", deps.Auth.Challenge)
	api.POST("/auth/signin", middleware.RateLimit(deps.SignInWindow), deps.Auth.SignIn)
	api.POST("/auth/verify", deps.Auth.Verify)

	api.GET("/app/campaign/:slug", deps.Campaigns.Get)
	api.GET("/app/campaign/:slug/donations", deps.Campaigns.ListDonations)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret, deps.Users))
	authGroup.POST("/app/campaign", deps.Campaigns.Create)
	authGroup.GET("/app/campaign", deps.Campaigns.ListMine)
	authGroup.PUT("/app/campaign/:slug/active", deps.Campaigns.SetActive)
	authGroup.GET("/app/signedurl", deps.Uploads.SignedURL)

	api.GET("/actions/donation/:slug", deps.Actions.GetAction)
	api.OPTIONS("/actions/donation", deps.Actions.Options)
	api.POST("/actions/donation", deps.Actions.PostDonation)
}
