package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sproutly/sproutly-backend/internal/model"
	"github.com/sproutly/sproutly-backend/internal/service"
)

type HealthHandler struct {
	svc service.HealthService
}

func NewHealthHandler(svc service.HealthService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

type diagnosisRequest struct {
	PlantName   string `json:"plantName"`
	DiseaseName string `json:"diseaseName"`
	Severity    string `json:"severity"`
}

func (h *HealthHandler) AddDiagnosis(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req diagnosisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	d := &model.DiseaseDiagnosis{
		PlantName:   req.PlantName,
		DiseaseName: req.DiseaseName,
		Severity:    model.DiagnosisSeverity(req.Severity),
	}
	if err := h.svc.AddDiagnosis(c.Request().Context(), uid, d); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *HealthHandler) Resolve(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid diagnosis id"))
	}
	if err := h.svc.Resolve(c.Request().Context(), uid, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "diagnosis not found or already resolved"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to resolve diagnosis"))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Reports(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	reports, err := h.svc.Reports(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build reports"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"reports": reports})
}

func (h *HealthHandler) Alerts(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	alerts, err := h.svc.Alerts(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to evaluate alerts"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"alerts": alerts})
}

func (h *HealthHandler) Diagnoses(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.Diagnoses(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch diagnoses"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"diagnoses": list})
}
