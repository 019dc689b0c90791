// File: internal/draft/handler.go
package draft

import (
	"strconv"
	"strings"

	"mottars_backend/internal/common"
	"mottars_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for draft handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new draft handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("DraftHandler"),
	}
}

// RegisterRoutes sets up the listing creation routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/seller/drafts")
	group.Use(authMW)
	{
		group.POST("", h.open)
		group.GET("/:draftId", h.get)
		group.DELETE("/:draftId", h.close)
		group.PUT("/:draftId/details", h.saveDetails)
		group.POST("/:draftId/next", h.next)
		group.POST("/:draftId/back", h.back)
		group.POST("/:draftId/photos", h.addPhoto)
		group.DELETE("/:draftId/photos/:index", h.removePhoto)
		group.POST("/:draftId/publish", h.publish)
	}
}

func (h *Handler) open(c *gin.Context) {
	state, err := h.service.Open(c.Request.Context(), middleware.GetSessionFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Draft created.", state)
}

func (h *Handler) get(c *gin.Context) {
	state, err := h.service.Get(common.GetSessionIDFromContext(c), c.Param("draftId"))
	respondState(c, state, err)
}

func (h *Handler) close(c *gin.Context) {
	if err := h.service.Close(common.GetSessionIDFromContext(c), c.Param("draftId")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) saveDetails(c *gin.Context) {
	var req Details
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid draft details", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	state, err := h.service.SaveDetails(common.GetSessionIDFromContext(c), c.Param("draftId"), req)
	respondState(c, state, err)
}

func (h *Handler) next(c *gin.Context) {
	state, err := h.service.Next(common.GetSessionIDFromContext(c), c.Param("draftId"))
	respondState(c, state, err)
}

func (h *Handler) back(c *gin.Context) {
	state, err := h.service.Back(common.GetSessionIDFromContext(c), c.Param("draftId"))
	respondState(c, state, err)
}

// addPhoto accepts either a multipart "photo" file or a JSON {"url": ...} body.
func (h *Handler) addPhoto(c *gin.Context) {
	sid, draftID := common.GetSessionIDFromContext(c), c.Param("draftId")

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("photo")
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("A 'photo' file is required."))
			return
		}
		state, err := h.service.UploadPhoto(sid, draftID, fh)
		respondState(c, state, err)
		return
	}

	var req PhotoURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	state, err := h.service.AddPhotoURL(sid, draftID, req.URL)
	respondState(c, state, err)
}

func (h *Handler) removePhoto(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Photo index must be a number."))
		return
	}
	state, err := h.service.RemovePhoto(common.GetSessionIDFromContext(c), c.Param("draftId"), index)
	respondState(c, state, err)
}

func (h *Handler) publish(c *gin.Context) {
	state, err := h.service.Publish(c.Request.Context(), middleware.GetSessionFromContext(c), c.Param("draftId"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondAccepted(c, "Publishing listing.", state)
}

func respondState(c *gin.Context, state *DraftState, err error) {
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", state)
}
