package eval_test

import (
	"context"
	"testing"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/board/fen"
	"github.com/ardentlabs/corechess/pkg/eval"
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

func TestEvaluateStartPositionIsBalanced(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	assert.Equal(t, eval.Score(0), eval.Evaluate(context.Background(), b))
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is up a queen.
	b := newTestBoard(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	assert.Greater(t, eval.Evaluate(context.Background(), b), eval.Score(0))
}

func TestEvaluateCheckmateIsTerminal(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		require.True(t, b.ApplyUCIMove(mv), mv)
	}

	// Black delivered mate; White (to move) is checkmated, so the score favors Black.
	assert.Less(t, eval.Evaluate(context.Background(), b), eval.Score(0))
}

func TestEvaluateStalemateIsZero(t *testing.T) {
	b := newTestBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.Equal(t, eval.Score(0), eval.Evaluate(context.Background(), b))
}

func TestMaterialEvaluatorDelegatesToEvaluate(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	var e eval.Material
	assert.Equal(t, eval.Evaluate(context.Background(), b), e.Evaluate(context.Background(), b))
}
