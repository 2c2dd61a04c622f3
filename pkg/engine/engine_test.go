package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/ardentlabs/corechess/pkg/board/fen"
	"github.com/ardentlabs/corechess/pkg/engine"
	"github.com/ardentlabs/corechess/pkg/eval"
	"github.com/ardentlabs/corechess/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineStartsAtInitialPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test-engine", "test-author")

	assert.Equal(t, fen.Initial, e.Position())
}

func TestMoveThenTakeBackViaReset(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test-engine", "test-author")

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())

	require.NoError(t, e.Reset(ctx, fen.Initial))
	assert.Equal(t, fen.Initial, e.Position())
}

func TestMoveRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test-engine", "test-author")

	err := e.Move(ctx, "e2e5")
	assert.Error(t, err)
}

func TestGoFindsFreeQueenCapture(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test-engine", "test-author", engine.WithOptions(engine.Options{Depth: 2, Hash: 1}))
	require.NoError(t, e.Reset(ctx, "4k3/8/8/8/8/8/8/R2qK3 w - - 0 1"))

	req := engine.GoRequest{Movetime: lang.Some(2 * time.Second)}

	var iterations int
	m, score := e.Go(ctx, req, func(search.IterationResult) { iterations++ })

	assert.Equal(t, "a1d1", m.String())
	assert.Greater(t, score, eval.Score(0))
	assert.Greater(t, iterations, 0)
}
