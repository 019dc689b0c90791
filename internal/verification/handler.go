// File: internal/verification/handler.go
package verification

import (
	"mottars_backend/internal/common"
	"mottars_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for verification handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new verification handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("VerificationHandler"),
	}
}

// RegisterRoutes sets up the verification routes. All of them require a signed-in session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/seller/verification")
	group.Use(authMW)
	{
		group.GET("/status", h.getStatus)
		group.POST("", h.startFlow)
		group.GET("/:flowId", h.getFlow)
		group.DELETE("/:flowId", h.closeFlow)
		group.PUT("/:flowId/personal", h.savePersonal)
		group.POST("/:flowId/back", h.back)
		group.POST("/:flowId/submit", h.submit)
	}
}

func (h *Handler) getStatus(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	resp, err := h.service.Status(c.Request.Context(), sess)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", resp)
}

func (h *Handler) startFlow(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	state, err := h.service.StartFlow(c.Request.Context(), sess)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Verification started.", state)
}

func (h *Handler) getFlow(c *gin.Context) {
	state, err := h.service.GetFlow(common.GetSessionIDFromContext(c), c.Param("flowId"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", state)
}

func (h *Handler) closeFlow(c *gin.Context) {
	if err := h.service.CloseFlow(common.GetSessionIDFromContext(c), c.Param("flowId")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) savePersonal(c *gin.Context) {
	var req PersonalInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid personal information", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	state, err := h.service.SavePersonal(common.GetSessionIDFromContext(c), c.Param("flowId"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", state)
}

func (h *Handler) back(c *gin.Context) {
	state, err := h.service.Back(common.GetSessionIDFromContext(c), c.Param("flowId"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", state)
}

func (h *Handler) submit(c *gin.Context) {
	var req DocumentInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid document information", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	state, err := h.service.Submit(common.GetSessionIDFromContext(c), c.Param("flowId"), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondAccepted(c, "Verification submitted for processing.", state)
}
