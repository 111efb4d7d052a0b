package room

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/apperror"
	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/game"
)

const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"
)

const maxSeats = 2

// Room is a two-player session: seats in join order (seat 0 = first joiner),
// the meta game, and the current turn holder. All mutation happens under the
// room's own lock, so moves in different rooms proceed independently.
type Room struct {
	mu sync.Mutex

	code    string
	players []string
	turn    int
	status  string
	game    *game.MetaGame
	// abandoned marks termination by disconnect rather than a game outcome.
	abandoned bool
}

// Snapshot is a consistent read of the room state, captured under the room
// lock so a broadcast never mixes two moves.
type Snapshot struct {
	Boards    [9]game.SubBoard
	Outcome   game.Outcome
	Active    *int
	Turn      int
	Status    string
	Abandoned bool
	Players   []string
}

func New(code string) *Room {
	return &Room{
		code:   code,
		turn:   -1,
		status: StatusWaiting,
		game:   game.NewMetaGame(),
	}
}

func (that *Room) Code() string {
	return that.code
}

// AddPlayer seats a connection. On the second seating the room transitions to
// active and the first turn holder is chosen uniformly at random, exactly
// once. Returns whether this seating started the game.
func (that *Room) AddPlayer(connID string) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status != StatusWaiting || len(that.players) >= maxSeats {
		return false, apperror.ErrRoomFull
	}

	that.players = append(that.players, connID)

	if len(that.players) < maxSeats {
		return false, nil
	}

	that.status = StatusActive
	that.turn = rand.Intn(maxSeats) //nolint:gosec // not a secret, just a coin flip

	return true, nil
}

// ApplyMove validates and applies a move for the given connection, advancing
// the turn and the forced sub-board. The snapshot is taken in the same
// critical section as the mutation.
func (that *Room) ApplyMove(connID string, board, cell int) (Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch that.status {
	case StatusWaiting:
		return Snapshot{}, apperror.ErrGameNotStarted
	case StatusFinished:
		return Snapshot{}, apperror.ErrGameFinished
	}

	seat := that.seatOf(connID)
	if seat != that.turn {
		return Snapshot{}, apperror.ErrNotYourTurn
	}

	if that.game.Outcome != game.Open {
		return Snapshot{}, apperror.ErrGameFinished
	}

	if active := that.game.Active; active != nil && *active != board {
		return Snapshot{}, fmt.Errorf("%w: must play sub-board %d", apperror.ErrWrongBoard, *active)
	}

	if err := that.game.Play(board, cell, game.Mark(seat)); err != nil {
		return Snapshot{}, err
	}

	that.turn = 1 - seat

	if that.game.Outcome != game.Open {
		that.status = StatusFinished
		that.turn = -1
	}

	return that.snapshot(), nil
}

// Abandon terminates the room because a seated player left. Returns the
// connection IDs of the remaining seats to notify. Idempotent: an already
// finished room yields no recipients.
func (that *Room) Abandon(connID string) []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status == StatusFinished {
		return nil
	}

	that.status = StatusFinished
	that.abandoned = true
	that.turn = -1

	var remaining []string
	for _, player := range that.players {
		if player != connID {
			remaining = append(remaining, player)
		}
	}

	return remaining
}

// Seat reports the seat number of a connection, if it is seated here.
func (that *Room) Seat(connID string) (int, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	seat := that.seatOf(connID)

	return seat, seat >= 0
}

func (that *Room) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Room) snapshot() Snapshot {
	var active *int
	if that.game.Active != nil {
		forced := *that.game.Active
		active = &forced
	}

	return Snapshot{
		Boards:    that.game.Boards,
		Outcome:   that.game.Outcome,
		Active:    active,
		Turn:      that.turn,
		Status:    that.status,
		Abandoned: that.abandoned,
		Players:   append([]string(nil), that.players...),
	}
}

func (that *Room) seatOf(connID string) int {
	for seat, player := range that.players {
		if player == connID {
			return seat
		}
	}

	return -1
}
