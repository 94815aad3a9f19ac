package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bookshelf/internal/models"
	"bookshelf/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "Invalid 'from' time; use RFC3339 or YYYY-MM-DD."
	errToInvalid    = "Invalid 'to' time; use RFC3339 or YYYY-MM-DD."
	errRangeInvalid = "'from' must be <= 'to'."

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

type activityResponse struct {
	Count  int                `json:"count"`
	Events []models.BookEvent `json:"events"`
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      Reading activity
// @Description  The caller's book events. Dates accept RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.
// @Tags         activity
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2025-08-01)
// @Param        to    query   string  false  "End of range, date-only treated as end of day"  example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(BOOK_ADDED,BOOK_UPDATED,BOOK_DELETED)
// @Success      200   {object}  activityResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/activity [get]
// @Security     BearerAuth
func (h *Handler) getActivity(c *gin.Context) {
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			abortWithMessage(c, http.StatusBadRequest, errFromInvalid)
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			abortWithMessage(c, http.StatusBadRequest, errToInvalid)
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	userID := currentUserID(c)
	filter := service.ActivityFilter{From: from, To: to, Type: c.Query("type")}
	events, err := h.services.ActivityLog.List(c.Request.Context(), userID, filter)
	if errors.Is(err, service.ErrInvalidTimeRange) {
		abortWithMessage(c, http.StatusBadRequest, errRangeInvalid)
		return
	}
	if err != nil {
		h.internalError(c, "activity_list_failed", err, "user_id", userID, "from", from, "to", to, "type", filter.Type)
		return
	}
	if events == nil {
		events = []models.BookEvent{}
	}
	c.JSON(http.StatusOK, activityResponse{Count: len(events), Events: events})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
