package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"nanolink/auth"
	"nanolink/services"
)

// NewRouter assembles the full route table. Validation of request bodies
// happens in gin's binding layer; everything behind it assumes well-formed
// input.
func NewRouter(logger zerolog.Logger, tokens *auth.TokenService, authService *services.AuthService, linkService *services.LinkService) *gin.Engine {
	authHandler := NewAuthHandler(authService)
	linkHandler := NewLinkHandler(linkService)

	requireToken := auth.RequireToken(tokens)

	router := gin.New()
	router.Use(RequestLogger(logger), gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/auth/protected", requireToken, authHandler.Profile)
		v1.GET("/auth/refresh", auth.RequireRefreshToken(tokens), authHandler.Refresh)
		v1.GET("/auth/logout", authHandler.Logout)

		v1.GET("/links", requireToken, linkHandler.List)
		v1.GET("/links/:nanoLink", linkHandler.Resolve)
		v1.POST("/links", requireToken, linkHandler.Create)
		v1.PATCH("/links/:id", requireToken, linkHandler.Update)
		v1.DELETE("/links/:id", requireToken, linkHandler.Delete)
	}

	router.GET("/:nanoLink", linkHandler.Redirect)

	return router
}
