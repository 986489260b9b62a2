package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/httpresp"
	ucComposer "github.com/spectrumpath/aba-scheduler/internal/usecase/composer"
)

// ======================================================
// HANDLER
// ======================================================

type ComposerHandler struct {
	composer *ucComposer.Composer
}

func NewComposerHandler(composer *ucComposer.Composer) *ComposerHandler {
	return &ComposerHandler{composer: composer}
}

func (h *ComposerHandler) CreateDraft(c *gin.Context) {
	view, err := h.composer.CreateDraft(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, view)
}

func (h *ComposerHandler) GetDraft(c *gin.Context) {
	view, err := h.composer.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *ComposerHandler) PatchDraft(c *gin.Context) {
	var patch ucComposer.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	view, err := h.composer.Apply(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *ComposerHandler) Advance(c *gin.Context) {
	view, err := h.composer.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *ComposerHandler) Back(c *gin.Context) {
	view, err := h.composer.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *ComposerHandler) Eligibility(c *gin.Context) {
	candidates, err := h.composer.Candidates(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, candidates)
}

func (h *ComposerHandler) Projection(c *gin.Context) {
	projection, err := h.composer.Projection(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, projection)
}

func (h *ComposerHandler) Commit(c *gin.Context) {
	result, err := h.composer.Commit(c.Request.Context(), c.Param("id"), nil)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, result)
}

func (h *ComposerHandler) Discard(c *gin.Context) {
	if err := h.composer.Discard(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
