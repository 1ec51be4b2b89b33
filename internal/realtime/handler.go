package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// TokenVerifier verifies a handshake credential and yields the subject.
type TokenVerifier interface {
	ValidateToken(token string) (uuid.UUID, error)
}

type Handler struct {
	hub      *Hub
	tokens   TokenVerifier
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, tokens TokenVerifier, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP verifies the token carried in the handshake before upgrading;
// a bad credential rejects the connection outright.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := strings.Trim(r.URL.Query().Get("token"), `"`)
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}

	userID, err := h.tokens.ValidateToken(token)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(h.hub, conn, userID)
	h.hub.register(client)

	go client.writePump()
	go client.readPump()
}
