package search_test

import (
	"math"
	"testing"
	"time"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestClockExpiry(t *testing.T) {
	c := search.NewClock(10 * time.Millisecond)
	assert.False(t, c.Expired())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, c.Expired())
}

func TestClockReset(t *testing.T) {
	c := search.NewClock(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	assert.True(t, c.Expired())

	c.Reset(time.Minute)
	assert.False(t, c.Expired())
}

func TestResolveBudgetPrefersExplicitMovetime(t *testing.T) {
	budget := search.ResolveBudget(board.White, 1500, true, 999999, 999999, true)
	assert.Equal(t, 1500*time.Millisecond, budget)
}

func TestResolveBudgetUsesClockFormula(t *testing.T) {
	budget := search.ResolveBudget(board.White, 0, false, 4000, 9999, true)
	expected := time.Duration(10*math.Sqrt(4000)) * time.Millisecond
	assert.Equal(t, expected, budget)

	budget = search.ResolveBudget(board.Black, 0, false, 4000, 9999, true)
	expected = time.Duration(10*math.Sqrt(9999)) * time.Millisecond
	assert.Equal(t, expected, budget)
}

func TestResolveBudgetDefaultsWhenNeitherGiven(t *testing.T) {
	budget := search.ResolveBudget(board.White, 0, false, 0, 0, false)
	assert.Equal(t, 8000*time.Millisecond, budget)
}
