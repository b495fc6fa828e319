package handler

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sproutly/sproutly-backend/internal/plantctx"
	"github.com/sproutly/sproutly-backend/internal/service"
	"github.com/sproutly/sproutly-backend/internal/storage"
)

const maxPhotoBytes = 8 << 20

type PlantHandler struct {
	svc      service.PlantService
	uploader *storage.Uploader
}

func NewPlantHandler(svc service.PlantService, uploader *storage.Uploader) *PlantHandler {
	return &PlantHandler{svc: svc, uploader: uploader}
}

func (h *PlantHandler) Plant(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var in service.PlantInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if in.Name == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "name is required"))
	}
	ctx := plantctx.WithRID(c.Request().Context(), uuid.NewString())
	summary, err := h.svc.Plant(ctx, uid, in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to plant tree"))
	}
	return c.JSON(http.StatusCreated, summary)
}

func (h *PlantHandler) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		limit = atoiDefault(v, 0)
	}
	trees, err := h.svc.ListTrees(c.Request().Context(), uid, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch trees"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"trees": trees})
}

// UploadPhoto accepts a multipart image and returns the public URL to attach
// to a subsequent plant request.
func (h *PlantHandler) UploadPhoto(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if h.uploader == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "photo storage is not configured"))
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "photo file is required"))
	}
	if fh.Size > maxPhotoBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse("too_large", "photo exceeds 8MB"))
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cannot read photo"))
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes+1))
	if err != nil || len(data) > maxPhotoBytes {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cannot read photo"))
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	url, err := h.uploader.UploadTreePhoto(c.Request().Context(), uid, fh.Filename, contentType, data)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to upload photo"))
	}
	return c.JSON(http.StatusCreated, map[string]string{"photoUrl": url})
}
