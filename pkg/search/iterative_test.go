package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/ardentlabs/corechess/pkg/eval"
	"github.com/ardentlabs/corechess/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverRunReachesMaxDepth(t *testing.T) {
	b := newTestBoard(t, "4k3/8/8/8/8/8/8/R2qK3 w - - 0 1")
	s := &search.Searcher{
		TT:    search.NewTable(context.Background(), 1),
		Clock: search.NewClock(5 * time.Second),
	}
	d := &search.Driver{Searcher: s}

	var depths []int
	m, score := d.Run(context.Background(), b, 3, func(r search.IterationResult) {
		depths = append(depths, r.Depth)
	})

	require.False(t, m.IsNull())
	assert.Greater(t, score, eval.Score(0))
	assert.Equal(t, []int{1, 2, 3}, depths)
}

func TestDriverRunStopsAtExpiredClock(t *testing.T) {
	b := newTestBoard(t, "4k3/8/8/8/8/8/8/R2qK3 w - - 0 1")
	s := &search.Searcher{
		TT:    search.NewTable(context.Background(), 1),
		Clock: search.NewClock(0), // expired before the first iteration completes
	}
	d := &search.Driver{Searcher: s}

	var calls int
	m, _ := d.Run(context.Background(), b, 10, func(search.IterationResult) {
		calls++
	})

	assert.True(t, m.IsNull())
	assert.Equal(t, 0, calls)
}
