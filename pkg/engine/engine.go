// Package engine wires together board state, the transposition table, and the
// iterative-deepening searcher behind a single synchronous API used by both protocol
// drivers (UCI and console).
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ardentlabs/corechess/pkg/board"
	"github.com/ardentlabs/corechess/pkg/board/fen"
	"github.com/ardentlabs/corechess/pkg/eval"
	"github.com/ardentlabs/corechess/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

var version = build.NewVersion(0, 1, 0)

// DefaultHashMiB is the transposition table size used until "setoption name Hash" (or
// SetHash) overrides it.
const DefaultHashMiB = 16

// defaultMaxDepth bounds a search when neither a UCI depth nor a move-time budget caps
// it first.
const defaultMaxDepth = 20

// Options are engine-wide defaults, overridable per search by GoRequest.
type Options struct {
	// Depth is the search depth limit used when a GoRequest does not specify one. Zero
	// means defaultMaxDepth.
	Depth uint
	// Hash is the transposition table size in MB.
	Hash uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v}", o.Depth, o.Hash)
}

// GoRequest is the parsed form of a UCI "go" command: every field is optional and, left
// unset, falls back to the engine's persistent Options or time-manager default.
type GoRequest struct {
	Depth      lang.Optional[int]
	Movetime   lang.Optional[time.Duration]
	WhiteClock lang.Optional[time.Duration]
	BlackClock lang.Optional[time.Duration]
}

// Option is an engine creation option.
type Option func(*State)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *State) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of the default
// seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *State) {
		e.seed = seed
	}
}

// State encapsulates game-playing logic, search and evaluation. Not safe for concurrent
// use; callers serialize access. The protocol drivers are single-threaded by design, so
// a "go" command blocks the caller for the duration of the search; stopRequested lets
// "stop" record the request even though nothing in the synchronous search loop polls it
// mid-search.
type State struct {
	name, author string

	zt   *board.ZobristTable
	seed int64
	opts Options

	b             *board.Board
	tt            *search.Table
	mu            sync.Mutex
	stopRequested atomic.Bool
}

// New constructs an engine at the standard starting position.
func New(ctx context.Context, name, author string, opts ...Option) *State {
	e := &State{name: name, author: author, opts: Options{Hash: DefaultHashMiB}}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)
	e.tt = search.NewTable(ctx, e.opts.Hash)

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *State) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *State) Author() string {
	return e.author
}

func (e *State) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *State) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

// SetHash resizes the transposition table. A zero size still allocates (an empty table
// simply never hits), matching how Probe/Store degrade gracefully on a zero-capacity
// table.
func (e *State) SetHash(ctx context.Context, sizeMiB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = sizeMiB
	e.tt.Resize(ctx, sizeMiB)
}

// Board returns a shallow clone of the current board, safe for the caller to push/pop
// moves on without affecting engine state.
func (e *State) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.ShallowClone()
}

// Position returns the current position in FEN format.
func (e *State) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b.Position(), e.b.Turn(), 0, e.b.FullMoves())
}

// Reset resets the engine to the position described by the given FEN string.
func (e *State) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, turn, _, fullmoves, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(e.zt, pos, turn, fullmoves)

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB", position, e.opts.Depth, e.opts.Hash)
	return nil
}

// Stop records a stop request. Nothing reads the flag: a synchronous search does not
// poll it, and the next Go call clears it.
func (e *State) Stop() {
	e.stopRequested.Store(true)
}

// Move plays the given move, usually an opponent move received over the protocol.
func (e *State) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	for _, m := range e.b.GenerateMoves() {
		if !candidate.Equals(m) {
			continue
		}
		if !e.b.PushMove(m) {
			return fmt.Errorf("illegal move: %v", m)
		}
		logw.Infof(ctx, "Move %v: %v", m, e.b)
		return nil
	}
	return fmt.Errorf("invalid move: %v", candidate)
}

// Go runs an iterative-deepening search to completion (bounded by req and the engine's
// own time manager), blocking the caller for the full duration. There is no mechanism
// to preempt a call to Go once it has started; onIteration is invoked synchronously
// after every completed depth.
func (e *State) Go(ctx context.Context, req GoRequest, onIteration func(search.IterationResult)) (board.Move, eval.Score) {
	e.stopRequested.Store(false)

	e.mu.Lock()
	b := e.b.ShallowClone()
	maxDepth := int(e.opts.Depth)
	e.mu.Unlock()

	if v, ok := req.Depth.V(); ok {
		maxDepth = v
	}
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	movetimeMs, hasMovetime := 0, false
	if v, ok := req.Movetime.V(); ok {
		movetimeMs, hasMovetime = int(v.Milliseconds()), true
	}
	wtimeMs, hasClock := 0, false
	if v, ok := req.WhiteClock.V(); ok {
		wtimeMs, hasClock = int(v.Milliseconds()), true
	}
	btimeMs := 0
	if v, ok := req.BlackClock.V(); ok {
		btimeMs, hasClock = int(v.Milliseconds()), true
	}
	budget := search.ResolveBudget(b.Turn(), movetimeMs, hasMovetime, wtimeMs, btimeMs, hasClock)

	e.mu.Lock()
	searcher := &search.Searcher{TT: e.tt, Clock: search.NewClock(budget)}
	e.mu.Unlock()

	driver := &search.Driver{Searcher: searcher}
	m, score := driver.Run(ctx, b, maxDepth, onIteration)

	logw.Infof(ctx, "Go %v depth<=%v budget=%v: move=%v score=%v nodes=%v", b, maxDepth, budget, m, score, searcher.Nodes)
	return m, score
}
