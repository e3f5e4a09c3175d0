package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ugc-studio/internal/service"
)

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		badRequest(c, "index must be a non-negative integer")
		return 0, false
	}
	return index, true
}

// bindOptional decodes the body into v when one was sent.
func bindOptional(c *gin.Context, v any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) generateShotImage(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var opts service.ImageOptions
	if !bindOptional(c, &opts) {
		return
	}
	record, err := h.media.GenerateShotImage(c.Request.Context(), c.Param("id"), index, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) generateCharacterImage(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var opts service.ImageOptions
	if !bindOptional(c, &opts) {
		return
	}
	record, err := h.media.GenerateCharacterImage(c.Request.Context(), c.Param("id"), index, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) generateShotVideo(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var opts service.VideoOptions
	if !bindOptional(c, &opts) {
		return
	}
	record, err := h.media.GenerateShotVideo(c.Request.Context(), c.Param("id"), index, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) listScriptMedia(c *gin.Context) {
	media, err := h.media.ListForScript(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}
