package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/room"
)

type Handlers interface {
	CreateRoomHandler(w http.ResponseWriter, r *http.Request)
	StatusHandler(w http.ResponseWriter, r *http.Request)
}

type roomCreator interface {
	CreateRoom() *room.Room
}

type restHandlers struct {
	logger *slog.Logger
	rooms  roomCreator
}

func NewHandlers(logger *slog.Logger, rooms roomCreator) Handlers {
	return &restHandlers{
		logger: logger,
		rooms:  rooms,
	}
}

type CreateRoomResponse struct {
	RoomCode string `json:"roomCode"`
}

// CreateRoomHandler mints a new waiting room and returns its join code.
func (that *restHandlers) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateRoomHandler")

	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	created := that.rooms.CreateRoom()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(CreateRoomResponse{RoomCode: created.Code()}); err != nil {
		log.Error("failed to encode response", "error", err)
		return
	}

	log.Info("room created", "roomCode", created.Code())
}

// StatusHandler answers infrastructure health checks with an empty 200.
func (that *restHandlers) StatusHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
