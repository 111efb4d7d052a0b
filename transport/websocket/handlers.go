package websocket

import (
	"encoding/json"
	"errors"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/apperror"
	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/game"
	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/room"
)

func (that *Server) handleJoinRoom(connected *client, payload json.RawMessage) {
	log := that.logger.With("method", "handleJoinRoom", "connID", connected.id)

	var req JoinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		that.sendError(connected, "invalid joinRoom payload")
		return
	}

	joined, err := that.rooms.Get(req.RoomCode)
	if err != nil {
		that.sendError(connected, apperror.ErrRoomNotFound.Error())
		return
	}

	started, err := joined.AddPlayer(connected.id)
	if errors.Is(err, apperror.ErrRoomFull) {
		that.sendError(connected, apperror.ErrRoomFull.Error())
		return
	}

	log.Info("user joined room", "roomCode", req.RoomCode)

	if !started {
		return
	}

	snap := joined.Snapshot()
	that.broadcast(snap.Players, actionGameStarted, BoardPayload{
		Board:          snap.Boards,
		Turn:           snap.Turn,
		ActiveSubBoard: snap.Active,
	})

	log.Info("game started", "roomCode", req.RoomCode, "turn", snap.Turn)
}

func (that *Server) handleMakeMove(connected *client, payload json.RawMessage) {
	log := that.logger.With("method", "handleMakeMove", "connID", connected.id)

	var req MakeMovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Error("failed to unmarshal payload", "error", err)
		that.sendError(connected, "invalid makeMove payload")
		return
	}

	playing, err := that.rooms.Get(req.RoomCode)
	if err != nil {
		// Stale or adversarial traffic; not a protocol error.
		return
	}

	if _, seated := playing.Seat(connected.id); !seated {
		return
	}

	snap, err := playing.ApplyMove(connected.id, req.SubBoardIndex, req.CellIndex)
	if errors.Is(err, apperror.ErrNotYourTurn) {
		return
	}

	if err != nil {
		that.sendError(connected, err.Error())
		return
	}

	that.broadcast(snap.Players, actionBoardUpdated, BoardPayload{
		Board:          snap.Boards,
		Turn:           snap.Turn,
		ActiveSubBoard: snap.Active,
	})

	if snap.Status != room.StatusFinished {
		return
	}

	that.broadcast(snap.Players, actionGameOver, GameOverPayload{Winner: winnerValue(snap)})
	that.rooms.Remove(req.RoomCode)

	log.Info("game over", "roomCode", req.RoomCode, "winner", winnerValue(snap))
}

// winnerValue maps a finished room to the protocol's winner field: the
// winning seat number, "draw", or "opponent left".
func winnerValue(snap room.Snapshot) any {
	if snap.Abandoned {
		return winnerOpponentLeft
	}

	switch snap.Outcome {
	case game.Player0Win:
		return 0
	case game.Player1Win:
		return 1
	default:
		return winnerDraw
	}
}
