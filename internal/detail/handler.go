// File: internal/detail/handler.go
package detail

import (
	"mottars_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for detail-page handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new detail handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("DetailHandler"),
	}
}

// RegisterRoutes sets up the visit routes. Visits belong to the browser
// session, signed in or not; the offer form checks sign-in itself.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/cars/:id/visits", h.openVisit)

	visitGroup := router.Group("/visits/:visitId")
	{
		visitGroup.GET("", h.getVisit)
		visitGroup.DELETE("", h.closeVisit)
		visitGroup.POST("/offer/open", h.openOffer)
		visitGroup.POST("/offer", h.submitOffer)
		visitGroup.POST("/offer/close", h.closeOffer)
		visitGroup.POST("/chat/open", h.openChat)
		visitGroup.POST("/chat/messages", h.sendMessage)
		visitGroup.POST("/chat/close", h.closeChat)
	}
}

func (h *Handler) openVisit(c *gin.Context) {
	state, err := h.service.Open(c.Request.Context(), common.GetSessionIDFromContext(c), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "", state)
}

func (h *Handler) getVisit(c *gin.Context) {
	state, err := h.service.Get(common.GetSessionIDFromContext(c), c.Param("visitId"))
	respond(c, state, err)
}

func (h *Handler) closeVisit(c *gin.Context) {
	if err := h.service.Close(common.GetSessionIDFromContext(c), c.Param("visitId")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) openOffer(c *gin.Context) {
	state, err := h.service.OpenOffer(c.Request.Context(), common.GetSessionIDFromContext(c), c.Param("visitId"))
	respond(c, state, err)
}

func (h *Handler) submitOffer(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid offer", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	state, err := h.service.SubmitOffer(c.Request.Context(), common.GetSessionIDFromContext(c), c.Param("visitId"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondAccepted(c, "Sending offer.", state)
}

func (h *Handler) closeOffer(c *gin.Context) {
	state, err := h.service.CloseOffer(common.GetSessionIDFromContext(c), c.Param("visitId"))
	respond(c, state, err)
}

func (h *Handler) openChat(c *gin.Context) {
	state, err := h.service.OpenChat(common.GetSessionIDFromContext(c), c.Param("visitId"))
	respond(c, state, err)
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	state, err := h.service.SendMessage(common.GetSessionIDFromContext(c), c.Param("visitId"), req.Text)
	respond(c, state, err)
}

func (h *Handler) closeChat(c *gin.Context) {
	state, err := h.service.CloseChat(common.GetSessionIDFromContext(c), c.Param("visitId"))
	respond(c, state, err)
}

func respond(c *gin.Context, state *VisitState, err error) {
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", state)
}
