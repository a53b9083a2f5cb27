package main

import (
	"net/http"

	"github.com/jisupark123/Pair-Go-Backend/internal/config"
	"github.com/jisupark123/Pair-Go-Backend/internal/identity"
	"github.com/jisupark123/Pair-Go-Backend/internal/room"
	"github.com/jisupark123/Pair-Go-Backend/internal/ws"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func newRouter(cfg config.ServerConfig, registry *room.Registry, idp *identity.JWTProvider, srv *ws.Server) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler())

	r.Get("/ws", srv.HandleWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Get("/public/rooms", publicRoomsHandler(registry))
		r.Get("/public/rooms/{room_id}", publicRoomHandler(registry))

		if cfg.DevEndpoints {
			r.Post("/dev/token", devTokenHandler(idp))
			r.Post("/dev/rooms/{room_id}/bots", devAddBotsHandler(registry))
			r.Post("/dev/rooms/{room_id}/host", devTransferHostHandler(registry))
		}
	})

	return r
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	}
}
