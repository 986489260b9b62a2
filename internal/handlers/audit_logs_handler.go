package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httpresp"
)

type AuditLogsHandler struct {
	repo domain.Repository
}

func NewAuditLogsHandler(repo domain.Repository) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	logs, err := h.repo.ListAuditLogs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, logs)
}
