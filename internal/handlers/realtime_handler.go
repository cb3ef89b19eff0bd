package handlers

import (
	"log"
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/realtime"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RealtimeHandler upgrades authenticated requests to WebSocket sessions
type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

func (h *RealtimeHandler) RegisterRealtimeRoutes(g *echo.Group) {
	g.GET("/ws", h.Connect)
}

// Connect subscribes the session to the caller's events until it closes
func (h *RealtimeHandler) Connect(c echo.Context) error {
	userID := getUserIDFromContext(c)
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response
		log.Printf("realtime: upgrade for user %s failed: %v", userID, err)
		return nil
	}
	realtime.NewClient(userID, conn).Serve(h.hub)
	return nil
}
