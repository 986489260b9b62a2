package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/spectrumpath/aba-scheduler/internal/catalog"
	"github.com/spectrumpath/aba-scheduler/internal/httpresp"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// CatalogHandler serves the static reference data behind the composer's
// pick lists.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) ListIntents(c *gin.Context) {
	httpresp.List(c, catalog.Intents())
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	intent := models.Intent(c.Query("intent"))
	httpresp.List(c, catalog.ServicesByIntent(intent))
}

func (h *CatalogHandler) ListLocations(c *gin.Context) {
	httpresp.List(c, catalog.Locations())
}

func (h *CatalogHandler) ListDurations(c *gin.Context) {
	httpresp.List(c, catalog.DurationOptions)
}
