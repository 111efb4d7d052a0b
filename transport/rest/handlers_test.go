package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/room"
)

func newTestHandlers() (Handlers, *room.Registry) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := room.NewRegistry()

	return NewHandlers(logger, registry), registry
}

func TestCreateRoomHandler(t *testing.T) {
	t.Run("mints a joinable room", func(t *testing.T) {
		// Given: the create-room endpoint
		h, registry := newTestHandlers()

		// When: a client requests a room
		rec := httptest.NewRecorder()
		h.CreateRoomHandler(rec, httptest.NewRequest(http.MethodPost, "/create-room", nil))

		// Then: the response carries a live room code
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp CreateRoomResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Regexp(t, `^[A-Z0-9]{6}$`, resp.RoomCode)

		_, err := registry.Get(resp.RoomCode)
		require.NoError(t, err)
	})

	t.Run("rejects non-POST requests", func(t *testing.T) {
		h, _ := newTestHandlers()

		rec := httptest.NewRecorder()
		h.CreateRoomHandler(rec, httptest.NewRequest(http.MethodGet, "/create-room", nil))

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestStatusHandler(t *testing.T) {
	// Given: the liveness endpoint
	h, _ := newTestHandlers()

	// When: infrastructure probes it
	rec := httptest.NewRecorder()
	h.StatusHandler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	// Then: success with no body
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}
