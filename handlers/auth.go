package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"nanolink/auth"
	"nanolink/services"
)

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Repassword string `json:"repassword" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creds, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		log.Error().Err(err).Msg("register failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	setRefreshCookie(c, creds)
	c.JSON(http.StatusCreated, creds)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creds, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid credentials"})
			return
		}
		log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	setRefreshCookie(c, creds)
	c.JSON(http.StatusOK, creds)
}

// Refresh issues a fresh access token; the refresh cookie was already
// verified by the middleware.
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token is required"})
		return
	}

	creds, err := h.service.Refresh(userID)
	if err != nil {
		log.Error().Err(err).Msg("refresh failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, creds)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error().Err(err).Msg("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout clears the refresh cookie. There is no server-side session state,
// so this always succeeds, cookie or not.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.RefreshCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func setRefreshCookie(c *gin.Context, creds services.Credentials) {
	c.SetCookie(auth.RefreshCookie, creds.RefreshToken, creds.RefreshExpiresIn, "/", "", false, true)
}
