// Package bookgen implements the opening book generator: a parallel
// depth-first enumerator that drives an engine.Engine to compute exact
// scores for every distinct position reachable within a given depth from
// the empty board, and returns the result as a book.Book (writing it to
// a file is left to book.Save).
package bookgen

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/connect4go/connect4-go/internal/board"
	"github.com/connect4go/connect4-go/internal/book"
	"github.com/connect4go/connect4-go/internal/engine"
)

// Config controls a book generation run.
type Config struct {
	// Depth is the maximum number of plies from the empty board to
	// enumerate.
	Depth int
	// TableSize overrides each worker's transposition table size; zero
	// keeps the engine default.
	TableSize int
	// Logger receives per-worker and merge progress events. The zero
	// value disables logging.
	Logger zerolog.Logger
}

// result is one worker's contribution: every position it reached, keyed
// by position key, with its exact score.
type result struct {
	worker  int
	entries map[uint64]int8
}

// Generate enumerates every distinct position reachable by up to
// cfg.Depth legal moves from the empty board (stopping at winning
// positions, which are terminal and need no book entry), scores each one
// with a private Engine, and returns the merged book.
//
// One worker goroutine is spawned per opening column (board.Width of
// them); each owns an independent Engine — and so an independent
// transposition table — and explores to depth cfg.Depth-1 from its
// assigned opening column. Workers never share state, so there are no
// locks on the hot path. After all workers finish, their maps are folded
// into a single result in column order, first-writer-wins on key
// collision: the score for a given key does not depend on which worker
// computed it, so this is safe and deterministic.
func Generate(ctx context.Context, cfg Config) (*book.Book, error) {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	results := make([]result, board.Width)

	for col := 0; col < board.Width; col++ {
		col := col
		g.Go(func() error {
			opts := []engine.Option{}
			if cfg.TableSize > 0 {
				opts = append(opts, engine.WithTableSize(cfg.TableSize))
			}
			eng := engine.New(opts...)

			root := board.New()
			root.Play(col)

			entries := make(map[uint64]int8)
			enumerate(ctx, eng, root, cfg.Depth-1, entries)
			results[col] = result{worker: col, entries: entries}

			cfg.Logger.Debug().
				Int("worker", col).
				Int("positions", len(entries)).
				Msg("worker finished")
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := book.New()
	for _, r := range results {
		for key, score := range r.entries {
			merged.Insert(key, score)
		}
	}

	cfg.Logger.Info().
		Int("depth", cfg.Depth).
		Int("positions", merged.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("book generated")
	return merged, nil
}

// enumerate scores b, records it, and recurses into every legal, non-
// winning reply up to depth plies deep. Positions already present in
// entries are not re-explored. A column whose move would win outright is
// skipped, so a winning position is never inserted and nothing is
// enumerated beyond it.
func enumerate(ctx context.Context, eng *engine.Engine, b board.Board, depth int, entries map[uint64]int8) {
	if ctx.Err() != nil {
		return
	}
	key := b.Key()
	if _, ok := entries[key]; ok {
		return
	}

	entries[key] = int8(eng.Score(b))
	if depth == 0 {
		return
	}

	for c := 0; c < board.Width; c++ {
		if !b.CanPlay(c) || b.IsWinning(c) {
			continue
		}
		child := b
		child.Play(c)
		enumerate(ctx, eng, child, depth-1, entries)
	}
}
