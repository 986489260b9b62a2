package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
)

// writeError maps the error taxonomy onto HTTP: scheduling conflicts are
// 409, missing references 404, incomplete drafts 422, every other business
// code 400, and anything unexpected 500.
func writeError(c *gin.Context, err error) {
	var conflictErr domain.ConflictError
	if errors.As(err, &conflictErr) {
		httperr.Conflict(c, "time_conflict", conflictErr.Error())
		return
	}

	if be, ok := httperr.AsBusiness(err); ok {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}

		switch {
		case strings.HasSuffix(be.Code, "_not_found"):
			httperr.NotFound(c, be.Code, msg)
		case be.Code == "step_incomplete" || be.Code == "draft_incomplete":
			httperr.UnprocessableEntity(c, be.Code, msg)
		default:
			httperr.BadRequest(c, be.Code, msg)
		}
		return
	}

	httperr.Internal(c, "internal_error", "Unexpected error.")
}
