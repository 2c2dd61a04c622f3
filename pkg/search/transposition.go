package search

import (
	"context"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/eval"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// entriesPerMiB is the number of 16-byte transposition entries that fit in one
// mebibyte: 1024*1024/16.
const entriesPerMiB = 65536

// packedMove is the 3-byte move encoding stored in a transposition entry: enough to
// name the move, not enough to carry full Move metadata (type, moved and captured
// piece). Probe returns a Move with only From/To/Promotion set; callers use it as-is
// and do not resolve it against the position's move list.
type packedMove struct {
	From, To  board.Square
	Promotion board.Piece
}

// entry is exactly 16 bytes: hash(8) + score(4) + depth(1) + move(3).
type entry struct {
	hash  uint64
	score int32
	depth uint8
	move  packedMove
}

// Entry is a transposition probe result.
type Entry struct {
	Move  board.Move
	Score eval.Score
	Depth uint8
}

// Table is a fixed-capacity, direct-mapped, always-replace transposition table. filled
// is an atomic counter of occupied slots, reported by Filled().
type Table struct {
	entries []entry
	sizeMiB uint
	filled  atomic.Uint64
}

// NewTable allocates a table of the given size in mebibytes.
func NewTable(ctx context.Context, sizeMiB uint) *Table {
	t := &Table{}
	t.Resize(ctx, sizeMiB)
	return t
}

// Resize reallocates the table to the given size, discarding all entries.
func (t *Table) Resize(ctx context.Context, sizeMiB uint) {
	count := uint64(sizeMiB) * entriesPerMiB
	logw.Infof(ctx, "Allocating %vMB transposition table with %v entries", sizeMiB, count)

	t.entries = make([]entry, count)
	t.sizeMiB = sizeMiB
	t.filled.Store(0)
}

// SizeMiB returns the configured table size in mebibytes.
func (t *Table) SizeMiB() uint {
	return t.sizeMiB
}

// Filled returns the number of occupied entries.
func (t *Table) Filled() uint64 {
	return t.filled.Load()
}

// Capacity returns the total number of entries.
func (t *Table) Capacity() uint64 {
	return uint64(len(t.entries))
}

// Probe returns the entry stored for hash, if any. An entry with hash == 0 is treated
// as vacant, matching the reference implementation this table is ported from.
func (t *Table) Probe(hash board.ZobristHash) (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	idx := uint64(hash) % t.Capacity()
	e := t.entries[idx]
	if e.hash == 0 || e.hash != uint64(hash) {
		return Entry{}, false
	}
	return Entry{
		Move:  board.Move{From: e.move.From, To: e.move.To, Promotion: e.move.Promotion},
		Score: eval.Score(e.score),
		Depth: e.depth,
	}, true
}

// Store unconditionally replaces whatever entry occupies hash's slot.
func (t *Table) Store(hash board.ZobristHash, score eval.Score, m board.Move, depth int) {
	if len(t.entries) == 0 {
		return
	}
	idx := uint64(hash) % t.Capacity()
	if t.entries[idx].hash == 0 {
		t.filled.Inc()
	}
	t.entries[idx] = entry{
		hash:  uint64(hash),
		score: int32(score),
		depth: uint8(depth),
		move:  packedMove{From: m.From, To: m.To, Promotion: m.Promotion},
	}
}
