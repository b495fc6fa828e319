package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sproutly/sproutly-backend/internal/service"
)

type CommunityHandler struct {
	svc service.CommunityService
}

func NewCommunityHandler(svc service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

func (h *CommunityHandler) Feed(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	limit := atoiDefault(c.QueryParam("limit"), 30)
	feed, err := h.svc.Feed(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch feed"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"posts": feed})
}

type postRequest struct {
	Body   string  `json:"body"`
	TreeID *uint64 `json:"treeId,omitempty"`
}

func (h *CommunityHandler) CreatePost(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	post, err := h.svc.CreatePost(c.Request().Context(), uid, req.Body, req.TreeID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *CommunityHandler) Like(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid post id"))
	}
	if err := h.svc.Like(c.Request().Context(), uid, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "post not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to like post"))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
