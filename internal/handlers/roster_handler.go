package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

// RosterHandler serves the practice roster: clients, staff with capacity
// bands, rooms, and per-client authorization balances.
type RosterHandler struct {
	repo domain.Repository
}

func NewRosterHandler(repo domain.Repository) *RosterHandler {
	return &RosterHandler{repo: repo}
}

func (h *RosterHandler) ListClients(c *gin.Context) {
	clients, err := h.repo.ListClients(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, clients)
}

func (h *RosterHandler) GetClient(c *gin.Context) {
	client, err := h.repo.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, client)
}

func (h *RosterHandler) ListStaff(c *gin.Context) {
	staff, err := h.repo.ListStaff(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, staff)
}

func (h *RosterHandler) ListRooms(c *gin.Context) {
	rooms, err := h.repo.ListRooms(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, rooms)
}

// GetAuthorization returns the client's balance; clients without one get a
// 404 so the dashboard renders the non-billable badge.
func (h *RosterHandler) GetAuthorization(c *gin.Context) {
	clientID := c.Param("id")

	if _, err := h.repo.GetClient(c.Request.Context(), clientID); err != nil {
		writeError(c, err)
		return
	}

	auth, err := h.repo.GetAuthorization(c.Request.Context(), clientID)
	if err != nil {
		writeError(c, err)
		return
	}
	if auth == nil {
		httperr.NotFound(c, "authorization_not_found", "Client has no active authorization.")
		return
	}
	httpresp.OK(c, auth)
}
