package board_test

import (
	"testing"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/board/fen"
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

func TestPushPopMoveSymmetry(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	before := b.Position()

	moves := b.GenerateMoves()
	require.NotEmpty(t, moves)

	for _, m := range moves {
		if !b.PushMove(m) {
			continue
		}
		undone, ok := b.PopMove()
		assert.True(t, ok)
		assert.Equal(t, m, undone)
		assert.Equal(t, before, b.Position())
	}
}

func TestShallowCloneIsIndependent(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	clone := b.ShallowClone()

	moves := b.GenerateMoves()
	require.NotEmpty(t, moves)
	require.True(t, b.PushMove(moves[0]))

	assert.NotEqual(t, b.Position(), clone.Position())
	assert.Equal(t, 0, clone.HalfMovesPlayed())
	assert.Equal(t, 1, b.HalfMovesPlayed())
}

func TestCheckmateFoolsMate(t *testing.T) {
	// 1. f3 e5 2. g4 Qh4#
	b := newTestBoard(t, fen.Initial)
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		require.True(t, b.ApplyUCIMove(mv), mv)
	}

	assert.True(t, b.Checkmate())
	assert.False(t, b.Stalemate())
}

func TestStalemate(t *testing.T) {
	// Classic king + queen vs. lone king stalemate.
	b := newTestBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	assert.True(t, b.Stalemate())
	assert.False(t, b.Checkmate())
}

func TestApplyUCIMoveRejectsIllegalMove(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	assert.False(t, b.ApplyUCIMove("e2e5")) // pawn cannot jump three ranks
}

func TestZobristHashChangesAcrossMoves(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	start := b.ZobristHash()

	require.True(t, b.ApplyUCIMove("e2e4"))
	afterMove := b.ZobristHash()
	assert.NotEqual(t, start, afterMove)

	_, ok := b.PopMove()
	require.True(t, ok)
	assert.Equal(t, start, b.ZobristHash())
}
