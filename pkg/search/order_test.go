package search_test

import (
	"testing"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/board/fen"
	"github.com/ardentlabs/corechess/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, position string) *board.Board {
	t.Helper()

	zt := board.NewZobristTable(0)
	pos, turn, _, fullmoves, err := fen.Decode(position)
	require.NoError(t, err)
	return board.NewBoard(zt, pos, turn, fullmoves)
}

func TestOrderMovesIsAPermutation(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	moves := b.GenerateMoves()

	ordered := search.OrderMoves(b, moves)
	assert.ElementsMatch(t, moves, ordered)
}

func TestOrderMovesPutsCapturesFirst(t *testing.T) {
	b := newTestBoard(t, "4k3/8/8/4p3/3P4/8/8/4K3 w - - 0 1")
	moves := b.GenerateMoves()

	ordered := search.OrderMoves(b, moves)
	require.NotEmpty(t, ordered)
	assert.True(t, ordered[0].IsCapture(), "expected a capture first, got %v", ordered[0])
}

func TestOrderMovesShortCircuitsSmallSlices(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	assert.Nil(t, search.OrderMoves(b, nil))

	one := []board.Move{{From: board.E2, To: board.E4}}
	assert.Equal(t, one, search.OrderMoves(b, one))
}
