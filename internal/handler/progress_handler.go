package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sproutly/sproutly-backend/internal/repository"
	"github.com/sproutly/sproutly-backend/internal/service"
)

type ProgressHandler struct {
	svc          service.ProgressService
	badges       service.BadgeService
	achievements repository.AchievementRepository
}

func NewProgressHandler(svc service.ProgressService, badges service.BadgeService, achievements repository.AchievementRepository) *ProgressHandler {
	return &ProgressHandler{svc: svc, badges: badges, achievements: achievements}
}

func (h *ProgressHandler) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	p, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch progress"))
	}
	return c.JSON(http.StatusOK, p)
}

// Stats returns the derived snapshot plus earned badges and the achievement
// log, the payload behind the profile screen.
func (h *ProgressHandler) Stats(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	ctx := c.Request().Context()
	stats, err := h.badges.StatsFor(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to compute stats"))
	}
	badges, err := h.badges.List(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch badges"))
	}
	achievements, err := h.achievements.ListByUser(ctx, uid, 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch achievements"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"stats":        stats,
		"badges":       badges,
		"achievements": achievements,
	})
}
