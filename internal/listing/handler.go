// File: internal/listing/handler.go
package listing

import (
	"mottars_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for catalog handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new listing handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("ListingHandler"),
	}
}

// RegisterRoutes sets up the public catalog routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	carGroup := router.Group("/cars")
	{
		carGroup.GET("", h.listCars)
		carGroup.GET("/featured", h.featuredCars)
		carGroup.GET("/suggestions", h.suggestions)
		carGroup.GET("/:id", h.getCar)
	}
	router.GET("/sellers/:id", h.getSeller)
	router.GET("/brands", h.listBrands)
}

// listCars backs the catalog page.
func (h *Handler) listCars(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	cars, err := h.service.Catalog(c.Request.Context(), q.Search)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", gin.H{
		"query": q.Search,
		"count": len(cars),
		"cars":  ToCarResponses(cars),
	})
}

// featuredCars backs the home page.
func (h *Handler) featuredCars(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	cars, err := h.service.Featured(c.Request.Context(), q.Search)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", gin.H{
		"query": q.Search,
		"count": len(cars),
		"cars":  ToCarResponses(cars),
	})
}

func (h *Handler) suggestions(c *gin.Context) {
	var q SuggestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	labels, err := h.service.Suggestions(c.Request.Context(), q.Q)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", gin.H{"suggestions": labels})
}

func (h *Handler) getCar(c *gin.Context) {
	detail, err := h.service.GetCarDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToCarDetailResponse(detail))
}

func (h *Handler) getSeller(c *gin.Context) {
	seller, err := h.service.GetSeller(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", seller)
}

func (h *Handler) listBrands(c *gin.Context) {
	common.RespondOK(c, "", gin.H{"brands": h.service.Brands()})
}
