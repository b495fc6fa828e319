package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sproutly/sproutly-backend/internal/middleware"
	"github.com/sproutly/sproutly-backend/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are filtered at the CORS layer; the token is the gate.
	CheckOrigin: func(*http.Request) bool { return true },
}

type RealtimeHandler struct {
	hub        *realtime.Hub
	reconciler *realtime.Reconciler
	authMw     *middleware.AuthMiddleware
}

func NewRealtimeHandler(hub *realtime.Hub, reconciler *realtime.Reconciler, authMw *middleware.AuthMiddleware) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, reconciler: reconciler, authMw: authMw}
}

// Stream upgrades to a websocket and pushes the caller's change events. The
// browser websocket API cannot set headers, so the ID token rides in a query
// param.
func (h *RealtimeHandler) Stream(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" && h.authMw != nil {
		token := c.QueryParam("token")
		if token == "" {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing token"))
		}
		verified, err := h.authMw.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "invalid token"))
		}
		uid = verified
	}
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	// Establish the diff baseline before any event can race the session.
	h.reconciler.Baseline(c.Request().Context(), uid)

	session := realtime.NewSession(h.hub, uid, conn)
	session.Run()
	return nil
}
