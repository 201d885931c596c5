package handlers

import (
	"net/http"

	"github.com/dom/hero-forge/internal/logger"
	"github.com/dom/hero-forge/internal/service"
	"github.com/dom/hero-forge/internal/websocket"
)

type WebSocketHandler struct {
	hub         *websocket.Hub
	authService *service.AuthService
}

func NewWebSocketHandler(hub *websocket.Hub, authService *service.AuthService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
	}
}

// Handle authenticates the token query parameter and attaches the
// connection to the notification hub
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	caller, err := h.authService.CallerFromToken(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	if err := h.hub.Serve(w, r, caller); err != nil {
		logger.Sugar().Errorf("ERROR [websocket.Handle] upgrade failed: %v", err)
	}
}
