package handlers

import (
	"net/http"

	"bookshelf/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      Leaderboard
// @Description  Top 10 users by number of books with status "Read".
// @Tags         leaderboard
// @Produce      json
// @Success      200  {array}   models.LeaderboardEntry
// @Failure      500  {object}  errorResponse
// @Router       /api/leaderboard [get]
func (h *Handler) getLeaderboard(c *gin.Context) {
	entries, err := h.services.Leaderboard.Top(c.Request.Context())
	if err != nil {
		h.internalError(c, "leaderboard_failed", err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
