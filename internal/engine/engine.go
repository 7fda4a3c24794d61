// Package engine implements the negamax alpha-beta searcher: negamax with
// alpha-beta pruning and null-window iterative narrowing (MTD-style),
// orchestrating a board.Board, a sorter.Sorter, a transposition.Table, and
// an optional book.Book.
package engine

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/connect4go/connect4-go/internal/board"
	"github.com/connect4go/connect4-go/internal/book"
	"github.com/connect4go/connect4-go/internal/sorter"
	"github.com/connect4go/connect4-go/internal/transposition"
)

// Engine searches Connect Four positions for their game-theoretic score
// under optimal play. It is created once per game and reset between
// games; the opening book, if any, is immutable for the Engine's
// lifetime.
type Engine struct {
	table *transposition.Table
	book  *book.Book

	exploredNodes uint64
	logger        zerolog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithBook attaches an opening book the engine will consult at every
// search node.
func WithBook(b *book.Book) Option {
	return func(e *Engine) { e.book = b }
}

// WithTableSize overrides the transposition table size. Search results
// must not depend on this value, only search speed; the default matches
// spec.md's fixed 8,388,593 entries.
func WithTableSize(size int) Option {
	return func(e *Engine) { e.table = transposition.New(size) }
}

// WithLogger attaches a zerolog.Logger for search progress; the default
// is a disabled logger so embedding the Engine costs nothing by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New constructs an Engine with a fresh transposition table.
func New(opts ...Option) *Engine {
	e := &Engine{
		table:  transposition.New(transposition.DefaultSize),
		logger: log.Logger.Level(zerolog.Disabled),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset zeroes the explored-nodes counter and reinitialises the
// transposition table. The opening book, if any, is preserved.
func (e *Engine) Reset() {
	e.exploredNodes = 0
	e.table.Reset()
}

// ExploredNodes returns the number of nodes visited since construction or
// the last Reset.
func (e *Engine) ExploredNodes() uint64 {
	return e.exploredNodes
}

// Score returns the position's game-theoretic score from the side to
// move's perspective: positive means the side to move wins, negative
// means they lose, zero is a draw, and the magnitude encodes how soon.
//
// It performs a null-window bisection over the possible score range,
// converging in O(log range) null-window negamax searches, each far
// cheaper than one wide-window search.
func (e *Engine) Score(b board.Board) int {
	start := time.Now()
	n := b.PlayedMoves()
	left, right := -(board.Size-n)/2, (board.Size-n+1)/2

	for left < right {
		median := left + (right-left)/2
		if median <= 0 && left/2 < median {
			median = left / 2
		} else if median >= 0 && median < right/2 {
			median = right / 2
		}

		s := e.negamax(b, median, median+1)
		if s <= median {
			right = s
		} else {
			left = s
		}
	}

	e.logger.Debug().
		Int("score", left).
		Uint64("nodes", e.exploredNodes).
		Dur("elapsed", time.Since(start)).
		Msg("score")
	return left
}

// Solve returns, for each column, the score that results from playing
// there and negating it (from the opponent's reply perspective), or nil
// for columns that cannot be played. Unlike Score, which narrows toward
// the answer through a sequence of null-window probes, Solve resolves
// each child with a single full-window negamax call, exactly as spec.md
// §4.5 states it.
func (e *Engine) Solve(b board.Board) [board.Width]*int {
	var result [board.Width]*int
	for c := 0; c < board.Width; c++ {
		if !b.CanPlay(c) {
			continue
		}
		child := b
		child.Play(c)
		score := -e.negamax(child, board.MinScore, board.MaxScore)
		result[c] = &score
	}
	return result
}

// negamax returns the exact score of b in the window [alpha, beta],
// clamped to the window at either edge.
func (e *Engine) negamax(b board.Board, alpha, beta int) int {
	e.exploredNodes++

	if b.PlayedMoves() == board.Size {
		return 0
	}

	if e.book != nil {
		if score, ok := e.book.Score(b); ok {
			return score
		}
	}

	for c := 0; c < board.Width; c++ {
		if b.CanPlay(c) && b.IsWinning(c) {
			return (board.Size - b.PlayedMoves() + 1) / 2
		}
	}

	nonLosing := b.PossibleNonLosingMoves()
	if nonLosing == 0 {
		return -(board.Size - b.PlayedMoves()) / 2
	}

	upperBound := (board.Size - b.PlayedMoves() - 1) / 2
	if stored, ok := e.table.Get(b.Key()); ok {
		upperBound = int(stored) + board.MinScore - 1
	}
	if beta > upperBound {
		beta = upperBound
		if alpha >= beta {
			return beta
		}
	}

	var moves sorter.Sorter
	for _, c := range board.ColumnOrder {
		m := nonLosing & board.ColumnMask(c)
		if m != 0 {
			moves.Add(m, b.Score(m))
		}
	}

	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		child := b
		child.PlayMove(m)
		result := -e.negamax(child, -beta, -alpha)
		if result >= beta {
			return result
		}
		if result > alpha {
			alpha = result
		}
	}

	e.table.Put(b.Key(), uint8(alpha-board.MinScore+1))
	return alpha
}
