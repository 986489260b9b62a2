package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spectrumpath/aba-scheduler/internal/config"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/httpresp"
	ucBatch "github.com/spectrumpath/aba-scheduler/internal/usecase/batch"
	ucSession "github.com/spectrumpath/aba-scheduler/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	sessions *ucSession.Usecase
	batch    *ucBatch.Usecase
	cfg      *config.Config
}

func NewSessionHandler(sessions *ucSession.Usecase, batch *ucBatch.Usecase, cfg *config.Config) *SessionHandler {
	return &SessionHandler{sessions: sessions, batch: batch, cfg: cfg}
}

// ======================================================
// READS
// ======================================================

func (h *SessionHandler) List(c *gin.Context) {
	loc := h.cfg.Location()

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
			return
		}
		to = parsed
	}

	sessions, err := h.sessions.ListForRange(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, sessions)
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, sess)
}

// ======================================================
// QUICK CREATE
// ======================================================

func (h *SessionHandler) QuickCreate(c *gin.Context) {
	var req ucSession.QuickCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	sess, err := h.sessions.QuickCreate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, sess)
}

// ======================================================
// DRAG / DROP
// ======================================================

type MoveSessionRequest struct {
	Fraction    *float64 `json:"fraction,omitempty"`
	WindowStart string   `json:"window_start,omitempty"` // "2006-01-02"
	HorizonDays int      `json:"horizon_days,omitempty"`

	Start *time.Time `json:"start,omitempty"`

	StaffID string `json:"staff_id,omitempty"`
}

func (h *SessionHandler) Move(c *gin.Context) {
	var req MoveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	in := ucSession.MoveInput{
		SessionID:   c.Param("id"),
		Fraction:    req.Fraction,
		HorizonDays: req.HorizonDays,
		Start:       req.Start,
		StaffID:     req.StaffID,
	}
	if req.WindowStart != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.WindowStart, h.cfg.Location())
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "window_start must be YYYY-MM-DD.")
			return
		}
		in.WindowStart = parsed
	}

	sess, err := h.sessions.Move(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, sess)
}

// ======================================================
// LIFECYCLE
// ======================================================

type TransitionRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *SessionHandler) Transition(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	sess, err := h.sessions.Transition(c.Request.Context(), c.Param("id"), ucSession.StatusAction(req.Action))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, sess)
}

// ======================================================
// BATCH
// ======================================================

func (h *SessionHandler) Batch(c *gin.Context) {
	var req ucBatch.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	apply := h.batch.Apply
	if req.Preview {
		apply = h.batch.Preview
	}

	result, err := apply(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, result)
}
