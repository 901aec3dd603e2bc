package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"nanolink/auth"
	"nanolink/services"
)

type LinkRequest struct {
	LongLink string `json:"longLink" binding:"required,url"`
}

type LinkHandler struct {
	service *services.LinkService
}

func NewLinkHandler(service *services.LinkService) *LinkHandler {
	return &LinkHandler{service: service}
}

func (h *LinkHandler) List(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	links, err := h.service.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("listing links failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": links})
}

func (h *LinkHandler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.service.Create(c.Request.Context(), userID, req.LongLink)
	if err != nil {
		log.Error().Err(err).Msg("creating link failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"newLink": link})
}

// Resolve serves the client-side redirect flow: it returns the target URL
// and leaves the redirecting to the caller.
func (h *LinkHandler) Resolve(c *gin.Context) {
	longLink, err := h.service.Resolve(c.Request.Context(), c.Param("nanoLink"))
	if err != nil {
		h.respondLinkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"longLink": longLink})
}

func (h *LinkHandler) Update(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
		return
	}

	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.service.Update(c.Request.Context(), userID, uint(linkID), req.LongLink)
	if err != nil {
		h.respondLinkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

func (h *LinkHandler) Delete(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
		return
	}

	link, err := h.service.Delete(c.Request.Context(), userID, uint(linkID))
	if err != nil {
		h.respondLinkError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

// Redirect serves the server-side flow: visiting /:nanoLink sends the
// browser straight to the target.
func (h *LinkHandler) Redirect(c *gin.Context) {
	longLink, err := h.service.Resolve(c.Request.Context(), c.Param("nanoLink"))
	if err != nil {
		h.respondLinkError(c, err)
		return
	}

	c.Redirect(http.StatusFound, longLink)
}

// A link that exists but belongs to someone else answers 401, a link that
// does not exist answers 404. Link ids are not secret, so the distinction
// leaks nothing and tells API clients what actually went wrong.
func (h *LinkHandler) respondLinkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "link belongs to another user"})
	default:
		log.Error().Err(err).Msg("link operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
