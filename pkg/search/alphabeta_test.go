package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/board/fen"
	"github.com/ardentlabs/corechess/pkg/eval"
	"github.com/ardentlabs/corechess/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearcher(t *testing.T) *search.Searcher {
	t.Helper()
	return &search.Searcher{
		TT:    search.NewTable(context.Background(), 1),
		Clock: search.NewClock(5 * time.Second),
	}
}

func TestSearchLeafReturnsStaticEvaluation(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	s := newSearcher(t)

	m, score := s.Search(context.Background(), b, 0, eval.MinEval, eval.MaxEval, 0)
	assert.True(t, m.IsNull())
	assert.Equal(t, eval.Evaluate(context.Background(), b), score)
}

func TestSearchFindsFreeQueenCapture(t *testing.T) {
	// White rook can capture an undefended black queen.
	b := newTestBoard(t, "4k3/8/8/8/8/8/8/R2qK3 w - - 0 1")
	s := newSearcher(t)

	m, score := s.Search(context.Background(), b, 2, eval.MinEval, eval.MaxEval, search.MaxExtensions)
	assert.Equal(t, board.D1, m.To)
	assert.True(t, m.IsCapture())
	assert.Greater(t, score, eval.Score(0))
}

func TestSearchWithExpiredClockReturnsSentinel(t *testing.T) {
	b := newTestBoard(t, fen.Initial)
	s := &search.Searcher{
		TT:    search.NewTable(context.Background(), 1),
		Clock: search.NewClock(0), // already expired
	}

	m, score := s.Search(context.Background(), b, 4, eval.MinEval, eval.MaxEval, search.MaxExtensions)
	assert.True(t, m.IsNull())
	assert.Equal(t, eval.Score(-1), score)
}

func TestSearchStoresTranspositionEntry(t *testing.T) {
	b := newTestBoard(t, "4k3/8/8/8/8/8/8/R2qK3 w - - 0 1")
	s := newSearcher(t)

	_, _ = s.Search(context.Background(), b, 2, eval.MinEval, eval.MaxEval, search.MaxExtensions)

	_, ok := s.TT.Probe(b.ZobristHash())
	require.True(t, ok)
}

func TestSearchDetectsCheckmateAtInteriorNode(t *testing.T) {
	// After 1. f3 e5 2. g4, it is Black to move with Qh4# available. Searching this
	// position to depth 2 reaches the mated position one ply down with depth still 1,
	// so it is resolved through the normal search dispatch (not the depth==0 leaf
	// shortcut, which would find the mate regardless of this fix): every pseudo-legal
	// White move there leaves White's own king in check.
	b := newTestBoard(t, fen.Initial)
	for _, mv := range []string{"f2f3", "e7e5", "g2g4"} {
		require.True(t, b.ApplyUCIMove(mv), mv)
	}
	s := newSearcher(t)

	_, score := s.Search(context.Background(), b, 2, eval.MinEval, eval.MaxEval, search.MaxExtensions)
	// Black to move finds mate; from White's perspective the score must be a deep loss
	// in the mate-score range, not eval.MinEval leaking out of a loop that found no
	// legal White reply and returned its incoming bound unchanged.
	assert.Less(t, score, eval.Score(-9_000_000))
	assert.Greater(t, score, eval.Score(-10_000_000))
}
