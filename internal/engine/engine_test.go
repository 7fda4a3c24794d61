package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connect4go/connect4-go/internal/board"
	"github.com/connect4go/connect4-go/internal/book"
	"github.com/connect4go/connect4-go/internal/engine"
)

func TestScoreDrawnPositionIsZero(t *testing.T) {
	// A full board scores a draw: negamax returns 0 as soon as no cell is
	// left, before any win check. The checkerboard filling is built
	// directly rather than via a 42-move history; it is not reachable by
	// legal play (its diagonals hold lines of four), which the full-board
	// check never looks at.
	b, err := board.ParseBoardString(
		"xoxoxox" +
			"oxoxoxo" +
			"xoxoxox" +
			"oxoxoxo" +
			"xoxoxox" +
			"oxoxoxo",
	)
	require.NoError(t, err)
	require.Equal(t, board.Size, b.PlayedMoves())

	e := engine.New()
	assert.Equal(t, 0, e.Score(b))
}

func TestScoreShallowPosition(t *testing.T) {
	b, err := board.ParseMoves("4")
	require.NoError(t, err)

	e := engine.New()
	assert.Equal(t, -1, e.Score(b))
}

func TestSolveMatchesNegatedScoreOfChild(t *testing.T) {
	b, err := board.ParseMoves("2")
	require.NoError(t, err)

	e := engine.New()
	results := e.Solve(b)
	for c := 0; c < board.Width; c++ {
		if !b.CanPlay(c) {
			assert.Nil(t, results[c])
			continue
		}
		child := b
		child.Play(c)
		want := -engine.New().Score(child)
		require.NotNil(t, results[c])
		assert.Equal(t, want, *results[c])
	}
}

func TestSearchIndependentOfTableSize(t *testing.T) {
	b, err := board.ParseMoves("2334455")
	require.NoError(t, err)

	small := engine.New(engine.WithTableSize(1031))
	large := engine.New(engine.WithTableSize(65537))

	assert.Equal(t, small.Score(b), large.Score(b))
}

func TestSearchIndependentOfEmptyBook(t *testing.T) {
	b, err := board.ParseMoves("445566")
	require.NoError(t, err)

	withoutBook := engine.New()
	withBook := engine.New(engine.WithBook(book.New()))

	assert.Equal(t, withoutBook.Score(b), withBook.Score(b))
}

func TestBookEntryShortCircuitsSearch(t *testing.T) {
	b, err := board.ParseMoves("4")
	require.NoError(t, err)

	bk := book.New()
	bk.Insert(b.Key(), -3)

	e := engine.New(engine.WithBook(bk))
	assert.Equal(t, -3, e.Score(b))
	assert.Less(t, e.ExploredNodes(), uint64(5))
}

func TestResetClearsExploredNodes(t *testing.T) {
	b, err := board.ParseMoves("4")
	require.NoError(t, err)

	e := engine.New()
	e.Score(b)
	assert.NotZero(t, e.ExploredNodes())

	e.Reset()
	assert.Zero(t, e.ExploredNodes())
}

func TestNegamaxSymmetryAcrossOptimalMove(t *testing.T) {
	b, err := board.ParseMoves("44")
	require.NoError(t, err)

	e := engine.New()
	parentScore := e.Score(b)

	results := e.Solve(b)
	best := -999
	for _, r := range results {
		if r != nil && *r > best {
			best = *r
		}
	}
	assert.Equal(t, parentScore, best)
}

func TestEmptyBoardIsAFirstPlayerWin(t *testing.T) {
	if testing.Short() {
		t.Skip("full strong solve of the empty board is expensive; skipped with -short")
	}
	e := engine.New()
	assert.Equal(t, 1, e.Score(board.New()))
}
