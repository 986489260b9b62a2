package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/httpresp"
	ucTimeline "github.com/spectrumpath/aba-scheduler/internal/usecase/timeline"
)

// ======================================================
// HANDLER
// ======================================================

type TimelineHandler struct {
	timeline *ucTimeline.Usecase
}

func NewTimelineHandler(timeline *ucTimeline.Usecase) *TimelineHandler {
	return &TimelineHandler{timeline: timeline}
}

// View serves the lane grid. Query: start=YYYY-MM-DD (defaults to the
// current week's Monday), days=N (default 7), staff=ID,ID (default all).
func (h *TimelineHandler) View(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 31 {
			httperr.BadRequest(c, "invalid_days", "days must be between 1 and 31.")
			return
		}
		days = parsed
	}

	var staffIDs []string
	if raw := c.Query("staff"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				staffIDs = append(staffIDs, id)
			}
		}
	}

	view, err := h.timeline.Build(c.Request.Context(), c.Query("start"), days, staffIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, view)
}
