// File: internal/session/handler.go
package session

import (
	"mottars_backend/internal/common"
	"mottars_backend/internal/domain"
	"mottars_backend/internal/listing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginRequest is the mock sign-in form. Any well-formed credentials are accepted.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	SellerID string `json:"seller_id" binding:"omitempty,max=32"`
}

// LoginResponse tells the client where to go next.
type LoginResponse struct {
	Session  *Session `json:"session"`
	Redirect string   `json:"redirect"`
}

// Handler struct holds dependencies for session handlers.
type Handler struct {
	service        Service
	listingService listing.Service
	logger         *zap.Logger
}

// NewHandler creates a new session handler.
func NewHandler(service Service, listingService listing.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service:        service,
		listingService: listingService,
		logger:         logger.Named("SessionHandler"),
	}
}

// RegisterRoutes sets up the routes for sign-in and sign-out.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/session", h.getSession)
	}
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	if req.SellerID != "" {
		if _, err := h.listingService.GetSeller(c.Request.Context(), req.SellerID); err != nil {
			common.RespondWithError(c, err)
			return
		}
	}

	sess, err := h.service.Login(c.Request.Context(), common.GetSessionIDFromContext(c), req.SellerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Signed in.", LoginResponse{Session: sess, Redirect: domain.RouteSellerDashboard})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), common.GetSessionIDFromContext(c)); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Signed out.", gin.H{"redirect": domain.RouteHome})
}

func (h *Handler) getSession(c *gin.Context) {
	sess, err := h.service.GetSession(c.Request.Context(), common.GetSessionIDFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", sess)
}
