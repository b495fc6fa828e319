package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sproutly/sproutly-backend/internal/service"
)

type LeaderboardHandler struct {
	svc service.LeaderboardService
}

func NewLeaderboardHandler(svc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

func (h *LeaderboardHandler) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	limit := atoiDefault(c.QueryParam("limit"), 50)
	ctx := c.Request().Context()
	entries, err := h.svc.Top(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch leaderboard"))
	}
	rank, err := h.svc.RankFor(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to compute rank"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"myRank":  rank,
	})
}
