package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sproutly/sproutly-backend/internal/service"
)

type ShopHandler struct {
	svc service.ShopService
}

func NewShopHandler(svc service.ShopService) *ShopHandler {
	return &ShopHandler{svc: svc}
}

func (h *ShopHandler) Catalog(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	items, err := h.svc.Catalog(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch catalog"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

func (h *ShopHandler) Purchase(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid item id"))
	}
	item, err := h.svc.Purchase(c.Request().Context(), uid, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		case errors.Is(err, service.ErrInsufficientSeeds):
			return c.JSON(http.StatusConflict, NewErrorResponse("insufficient_seeds", "not enough seeds"))
		case errors.Is(err, service.ErrAlreadyOwned):
			return c.JSON(http.StatusConflict, NewErrorResponse("already_owned", "item already owned"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to purchase item"))
	}
	return c.JSON(http.StatusOK, item)
}

type equipRequest struct {
	Equipped bool `json:"equipped"`
}

func (h *ShopHandler) Equip(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid item id"))
	}
	req := equipRequest{Equipped: true}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.Equip(c.Request().Context(), uid, id, req.Equipped); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not owned"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update item"))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
