package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pigdice/internal/hub"
	"pigdice/internal/ws"
)

func SetupRoutes(h *hub.Hub, originPatterns []string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/rooms", CreateRoom(h, log))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, originPatterns, log))
	return r
}
