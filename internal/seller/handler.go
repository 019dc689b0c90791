// File: internal/seller/handler.go
package seller

import (
	"mottars_backend/internal/common"
	"mottars_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for seller handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new seller handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("SellerHandler"),
	}
}

// RegisterRoutes sets up the seller dashboard routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/seller")
	group.Use(authMW)
	{
		group.GET("/dashboard", h.dashboard)
		group.POST("/listings/new", h.createListing)
	}
}

func (h *Handler) dashboard(c *gin.Context) {
	dash, err := h.service.Dashboard(c.Request.Context(), middleware.GetSessionFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", dash)
}

// createListing always answers 200: the decision itself says whether to go
// ahead, go to verification, or stay put with a message.
func (h *Handler) createListing(c *gin.Context) {
	decision, err := h.service.CreateListingIntent(c.Request.Context(), middleware.GetSessionFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, decision.Message, decision)
}
