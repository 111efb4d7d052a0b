package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/apperror"
)

func TestNewSubBoard(t *testing.T) {
	// When: create a new sub-board
	board := NewSubBoard()

	// Then: every cell is unclaimed and the board is open
	for _, cell := range board.Cells {
		require.Equal(t, NoMark, cell)
	}
	require.Equal(t, Open, board.Outcome)
}

func TestSubBoard_Place(t *testing.T) {
	t.Run("marks a cell and keeps the board open", func(t *testing.T) {
		// Given: a fresh sub-board
		board := NewSubBoard()

		// When: a player marks a cell
		err := board.Place(4, Player0)

		// Then: the cell is owned and the board stays open
		require.NoError(t, err)
		require.Equal(t, Player0, board.Cells[4])
		require.Equal(t, Open, board.Outcome)
	})

	t.Run("rejects an out of range cell", func(t *testing.T) {
		board := NewSubBoard()

		require.ErrorIs(t, board.Place(-1, Player0), apperror.ErrOutOfRange)
		require.ErrorIs(t, board.Place(9, Player0), apperror.ErrOutOfRange)

		// Then: the board is untouched
		require.Equal(t, NewSubBoard(), board)
	})

	t.Run("rejects an occupied cell", func(t *testing.T) {
		// Given: a board with one mark
		board := NewSubBoard()
		require.NoError(t, board.Place(0, Player0))
		before := board

		// When: the opponent targets the same cell
		err := board.Place(0, Player1)

		// Then: the move is rejected and nothing changed
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, before, board)
	})

	t.Run("rejects any move on a decided board", func(t *testing.T) {
		// Given: a board won by player 0
		board := NewSubBoard()
		for _, cell := range []int{0, 1, 2} {
			require.NoError(t, board.Place(cell, Player0))
		}
		require.Equal(t, Player0Win, board.Outcome)
		before := board

		// When: anyone tries to keep playing
		err := board.Place(5, Player1)

		// Then: the move is rejected and the board is frozen
		require.ErrorIs(t, err, apperror.ErrBoardTerminal)
		require.Equal(t, before, board)
	})
}

func TestSubBoard_WinningTriples(t *testing.T) {
	// Then: each of the 8 triples wins for either player, and the win is
	// reported exactly at the completing move
	for _, triple := range winningTriples {
		for _, player := range []Mark{Player0, Player1} {
			t.Run(fmt.Sprintf("triple %v player %d", triple, player), func(t *testing.T) {
				board := NewSubBoard()

				require.NoError(t, board.Place(triple[0], player))
				require.Equal(t, Open, board.Outcome)

				require.NoError(t, board.Place(triple[1], player))
				require.Equal(t, Open, board.Outcome)

				require.NoError(t, board.Place(triple[2], player))
				require.Equal(t, winOutcome(player), board.Outcome)
			})
		}
	}
}

func TestSubBoard_Draw(t *testing.T) {
	// Given: a fill order that never completes a triple
	//   X O X
	//   X O O
	//   O X X
	marks := [9]Mark{Player0, Player1, Player0, Player0, Player1, Player1, Player1, Player0, Player0}

	board := NewSubBoard()

	// When: the board fills up
	for cell, player := range marks {
		require.Equal(t, Open, board.Outcome)
		require.NoError(t, board.Place(cell, player))
	}

	// Then: the outcome is a draw
	require.Equal(t, Draw, board.Outcome)
}

func TestSubBoard_WinningFinalMoveIsAWinNotADraw(t *testing.T) {
	// Given: a full board except cell 2, where player 0 will complete the top row
	//   X X .        X X X
	//   O O X   ->   O O X
	//   X O O        X O O
	board := NewSubBoard()
	setup := map[int]Mark{0: Player0, 1: Player0, 3: Player1, 4: Player1, 5: Player0, 6: Player0, 7: Player1, 8: Player1}
	for cell, player := range setup {
		require.NoError(t, board.Place(cell, player))
	}
	require.Equal(t, Open, board.Outcome)

	// When: the ninth move completes the triple
	require.NoError(t, board.Place(2, Player0))

	// Then: the win test runs before the draw test
	require.Equal(t, Player0Win, board.Outcome)
}

func TestSubBoard_DoubleTripleReportedOnce(t *testing.T) {
	// Given: player 0 marks so that cell 0 completes both {0,1,2} and {0,3,6}
	board := NewSubBoard()
	for _, cell := range []int{1, 2, 3, 6} {
		require.NoError(t, board.Place(cell, Player0))
	}
	require.Equal(t, Open, board.Outcome)

	// When: the shared cell lands
	require.NoError(t, board.Place(0, Player0))

	// Then: a single win outcome is reported
	require.Equal(t, Player0Win, board.Outcome)
}
