package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ugc-studio/internal/model"
	"ugc-studio/internal/service"
)

func (h *Handler) createBrand(c *gin.Context) {
	var brand model.Brand
	if err := c.ShouldBindJSON(&brand); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	brand.ID = ""
	created, err := h.brands.Create(c.Request.Context(), &brand)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) listBrands(c *gin.Context) {
	brands, err := h.brands.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *Handler) getBrand(c *gin.Context) {
	brand, err := h.brands.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (h *Handler) updateBrand(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	brand, err := h.brands.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (h *Handler) deleteBrand(c *gin.Context) {
	var opts service.DeleteOptions
	if raw := c.Query("cascade"); raw != "" {
		cascade, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "cascade must be a boolean")
			return
		}
		opts.Cascade = cascade
	}
	if err := h.brands.Delete(c.Request.Context(), c.Param("id"), opts); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) generateAnalysis(c *gin.Context) {
	analysis, err := h.analysis.Enhance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysis, err := h.analysis.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
