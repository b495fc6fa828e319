package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sproutly/sproutly-backend/internal/service"
)

type ChallengeHandler struct {
	svc service.ChallengeService
}

func NewChallengeHandler(svc service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{svc: svc}
}

func (h *ChallengeHandler) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	views, err := h.svc.ListWithProgress(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch challenges"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"challenges": views})
}

func (h *ChallengeHandler) Claim(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid challenge id"))
	}
	res, err := h.svc.Claim(c.Request().Context(), uid, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "challenge not found"))
		case errors.Is(err, service.ErrAlreadyCompleted):
			return c.JSON(http.StatusConflict, NewErrorResponse("already_completed", "challenge already claimed"))
		case errors.Is(err, service.ErrNotClaimable):
			return c.JSON(http.StatusConflict, NewErrorResponse("not_claimable", "challenge target not reached"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to claim challenge"))
	}
	return c.JSON(http.StatusOK, res)
}
