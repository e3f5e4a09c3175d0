package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ugc-studio/internal/model"
	"ugc-studio/internal/prompts"
	"ugc-studio/internal/service"
)

// --- ideas ---

func (h *Handler) generateIdeas(c *gin.Context) {
	var req generateIdeasRequest
	if !bindOptional(c, &req) {
		return
	}
	ideas, err := h.ideas.Generate(c.Request.Context(), c.Param("id"), prompts.IdeaOptions{
		Count:         req.Count,
		ViralResearch: req.ViralResearch,
		Type:          req.Type,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (h *Handler) saveIdeas(c *gin.Context) {
	var req saveIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	brandID := c.Param("id")
	if _, err := h.brands.Get(c.Request.Context(), brandID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	ideas := make([]model.Idea, 0, len(req.Ideas))
	for _, in := range req.Ideas {
		ideas = append(ideas, in.toModel())
	}
	saved, err := h.ideas.SaveMany(c.Request.Context(), brandID, ideas)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) listIdeas(c *gin.Context) {
	ideas, err := h.ideas.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ideas)
}

func (h *Handler) getIdea(c *gin.Context) {
	idea, err := h.ideas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

func (h *Handler) updateIdea(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	idea, err := h.ideas.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

func (h *Handler) setIdeaRanking(c *gin.Context) {
	var req rankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ranking must be an integer between 0 and 5")
		return
	}
	idea, err := h.ideas.SetRanking(c.Request.Context(), c.Param("id"), *req.Ranking)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

func (h *Handler) deleteIdea(c *gin.Context) {
	if err := h.ideas.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- scripts ---

func (h *Handler) generateScript(c *gin.Context) {
	var req service.GenerateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	script, err := h.scripts.Generate(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *Handler) draftScript(c *gin.Context) {
	var req service.DraftScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	script, err := h.scripts.Draft(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *Handler) saveScript(c *gin.Context) {
	var in scriptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	script, err := h.scripts.Save(c.Request.Context(), in.toModel())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, script)
}

func (h *Handler) listScripts(c *gin.Context) {
	scripts, err := h.scripts.List(c.Request.Context(), c.Query("brandId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scripts)
}

func (h *Handler) getScript(c *gin.Context) {
	script, err := h.scripts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *Handler) updateScript(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	script, err := h.scripts.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *Handler) setScriptRanking(c *gin.Context) {
	var req rankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ranking must be an integer between 0 and 5")
		return
	}
	script, err := h.scripts.SetRanking(c.Request.Context(), c.Param("id"), *req.Ranking)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *Handler) deleteScript(c *gin.Context) {
	if err := h.scripts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) scriptBreakdown(c *gin.Context) {
	result, err := h.scripts.Breakdown(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// --- stateless helpers ---

func (h *Handler) breakdownText(c *gin.Context) {
	var req breakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.extractor.Extract(req.Text))
}

func (h *Handler) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, prompts.Templates)
}
