// Package search implements the alpha-beta searcher, its supporting move orderer and
// transposition table, the iterative-deepening driver, and the time manager.
package search

import (
	"sort"

	"github.com/ardentlabs/corechess/pkg/board"
)

const (
	captureOrderKey = 6
	checkOrderKey   = 5
	defaultOrderKey = 0
)

type orderedMove struct {
	move board.Move
	key  int
}

// OrderMoves returns moves reordered (stably) so that captures sort before checks sort
// before everything else. Does not mutate b or the input slice.
func OrderMoves(b *board.Board, moves []board.Move) []board.Move {
	if len(moves) < 2 {
		return moves
	}

	tagged := make([]orderedMove, len(moves))
	for i, m := range moves {
		key := defaultOrderKey
		switch {
		case m.IsCapture():
			key = captureOrderKey
		case b.GivesCheck(m):
			key = checkOrderKey
		}
		tagged[i] = orderedMove{move: m, key: key}
	}

	sort.SliceStable(tagged, func(i, j int) bool {
		return tagged[i].key > tagged[j].key
	})

	ordered := make([]board.Move, len(tagged))
	for i, t := range tagged {
		ordered[i] = t.move
	}
	return ordered
}
