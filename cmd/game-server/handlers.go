package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jisupark123/Pair-Go-Backend/internal/identity"
	"github.com/jisupark123/Pair-Go-Backend/internal/room"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}

func publicRoomsHandler(registry *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms := registry.Rooms()
		out := make([]map[string]any, 0, len(rooms))
		for _, rm := range rooms {
			out = append(out, map[string]any{
				"id":          rm.ID,
				"title":       rm.Title,
				"status":      rm.Status,
				"playerCount": len(rm.Players),
				"settings":    rm.Settings,
			})
		}
		writeJSON(w, map[string]any{"items": out})
	}
}

func publicRoomHandler(registry *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm, err := registry.Get(chi.URLParam(r, "room_id"))
		if err != nil {
			writeHTTPError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, rm)
	}
}

// devTokenHandler mints a short-lived access token so local clients can
// talk to the socket without the real auth service.
func devTokenHandler(idp *identity.JWTProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID       int64  `json:"id"`
			Nickname string `json:"nickname"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.ID == 0 || body.Nickname == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		token, err := idp.Issue(body.ID, body.Nickname, 24*time.Hour)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{"accessToken": token})
	}
}

func devAddBotsHandler(registry *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "room_id")
		var body struct {
			Count int `json:"count"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		rm, err := registry.Get(roomID)
		if err != nil {
			writeHTTPError(w, http.StatusNotFound, err.Error())
			return
		}
		// Dev endpoints act on the host's behalf.
		rm, err = registry.AddBots(roomID, rm.HostID, body.Count)
		if err != nil {
			writeHTTPError(w, devErrorStatus(err), err.Error())
			return
		}
		writeJSON(w, rm)
	}
}

func devTransferHostHandler(registry *room.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "room_id")
		var body struct {
			TargetUserID int64 `json:"targetUserId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		rm, err := registry.Get(roomID)
		if err != nil {
			writeHTTPError(w, http.StatusNotFound, err.Error())
			return
		}
		rm, err = registry.TransferHost(roomID, rm.HostID, body.TargetUserID)
		if err != nil {
			writeHTTPError(w, devErrorStatus(err), err.Error())
			return
		}
		writeJSON(w, rm)
	}
}

func devErrorStatus(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound), errors.Is(err, room.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrNotHost):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
