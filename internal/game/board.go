package game

import (
	"fmt"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/apperror"
)

// Mark identifies the owner of a cell. The values of Player0 and Player1
// match the seat numbers used by the transport protocol.
type Mark int8

const (
	NoMark  Mark = -1
	Player0 Mark = 0
	Player1 Mark = 1
)

// Outcome is the derived state of a board: still open, won, or drawn.
type Outcome int8

const (
	Open Outcome = iota
	Player0Win
	Player1Win
	Draw
)

var winningTriples = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// SubBoard is one of the nine inner 3x3 grids, flat-indexed 0-8 row-major.
// Once Outcome is non-Open the board is terminal and never mutates again.
type SubBoard struct {
	Cells   [9]Mark `json:"cells"`
	Outcome Outcome `json:"outcome"`
}

func NewSubBoard() SubBoard {
	return SubBoard{
		Cells: [9]Mark{NoMark, NoMark, NoMark, NoMark, NoMark, NoMark, NoMark, NoMark, NoMark},
	}
}

// Place marks a cell for a player and recomputes the board outcome.
func (that *SubBoard) Place(cell int, player Mark) error {
	if cell < 0 || cell >= len(that.Cells) {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfRange, cell)
	}

	if that.Outcome != Open {
		return apperror.ErrBoardTerminal
	}

	if that.Cells[cell] != NoMark {
		return apperror.ErrCellOccupied
	}

	that.Cells[cell] = player
	that.Outcome = computeOutcome(that.Cells)

	return nil
}

// computeOutcome derives the board state from its cells. The win test runs
// before the draw test, so a winning final move is reported as a win.
func computeOutcome(cells [9]Mark) Outcome {
	if winner := lineOwner(cells); winner != NoMark {
		return winOutcome(winner)
	}

	for _, cell := range cells {
		if cell == NoMark {
			return Open
		}
	}

	return Draw
}

// lineOwner returns the player holding a complete winning triple, or NoMark.
func lineOwner(marks [9]Mark) Mark {
	for _, triple := range winningTriples {
		a, b, c := marks[triple[0]], marks[triple[1]], marks[triple[2]]
		if a != NoMark && a == b && b == c {
			return a
		}
	}

	return NoMark
}

func winOutcome(player Mark) Outcome {
	if player == Player0 {
		return Player0Win
	}
	return Player1Win
}
