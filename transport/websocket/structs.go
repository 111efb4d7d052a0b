package websocket

import (
	"encoding/json"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/game"
)

const (
	actionJoinRoom = "joinRoom"
	actionMakeMove = "makeMove"

	actionGameStarted  = "gameStarted"
	actionBoardUpdated = "boardUpdated"
	actionGameOver     = "gameOver"
	actionError        = "error"
)

const (
	winnerDraw         = "draw"
	winnerOpponentLeft = "opponent left"
)

// Message is the wire envelope: an action name plus an action-specific payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
}

type MakeMovePayload struct {
	RoomCode      string `json:"roomCode"`
	SubBoardIndex int    `json:"subBoardIndex"`
	CellIndex     int    `json:"cellIndex"`
}

// BoardPayload carries a full board snapshot, the seat holding the turn, and
// the forced sub-board (null = free choice). Sent for both gameStarted and
// boardUpdated.
type BoardPayload struct {
	Board          [9]game.SubBoard `json:"board"`
	Turn           int              `json:"turn"`
	ActiveSubBoard *int             `json:"activeSubBoard"`
}

// GameOverPayload names the winning seat number, "draw", or "opponent left".
type GameOverPayload struct {
	Winner any `json:"winner"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
