package game

import (
	"fmt"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/apperror"
)

// MetaGame is the 3x3 arrangement of sub-boards. Sub-board indices use the
// same row-major scheme as cell indices, so the cell a player marks
// designates the sub-board the opponent must play next.
type MetaGame struct {
	Boards  [9]SubBoard `json:"boards"`
	Outcome Outcome     `json:"outcome"`
	// Active is the sub-board the next move is constrained to;
	// nil means any open sub-board.
	Active *int `json:"activeSubBoard"`
}

func NewMetaGame() *MetaGame {
	meta := &MetaGame{}
	for i := range meta.Boards {
		meta.Boards[i] = NewSubBoard()
	}

	return meta
}

// Play marks a cell in a sub-board, then recomputes the meta outcome and the
// forced sub-board for the following move. Turn ownership and the forced-move
// rule are the caller's responsibility.
func (that *MetaGame) Play(board, cell int, player Mark) error {
	if board < 0 || board >= len(that.Boards) {
		return fmt.Errorf("%w: sub-board %d", apperror.ErrOutOfRange, board)
	}

	if cell < 0 || cell >= len(that.Boards[board].Cells) {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfRange, cell)
	}

	if that.Boards[board].Outcome != Open {
		return fmt.Errorf("%w: sub-board %d", apperror.ErrBoardTerminal, board)
	}

	if err := that.Boards[board].Place(cell, player); err != nil {
		return err
	}

	that.Outcome = computeMetaOutcome(&that.Boards)

	// The played cell index designates the opponent's sub-board, unless that
	// sub-board is already terminal, in which case the choice is free.
	if that.Boards[cell].Outcome == Open {
		forced := cell
		that.Active = &forced
	} else {
		that.Active = nil
	}

	return nil
}

// computeMetaOutcome applies the three-in-a-row/draw test over the nine
// sub-board outcomes. A drawn sub-board is owned by nobody but still counts
// as filled for the meta draw test.
func computeMetaOutcome(boards *[9]SubBoard) Outcome {
	var owners [9]Mark
	anyOpen := false

	for i := range boards {
		owners[i] = boardOwner(boards[i].Outcome)
		if boards[i].Outcome == Open {
			anyOpen = true
		}
	}

	if winner := lineOwner(owners); winner != NoMark {
		return winOutcome(winner)
	}

	if anyOpen {
		return Open
	}

	return Draw
}

func boardOwner(outcome Outcome) Mark {
	switch outcome {
	case Player0Win:
		return Player0
	case Player1Win:
		return Player1
	default:
		return NoMark
	}
}
