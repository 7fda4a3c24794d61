package book_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connect4go/connect4-go/internal/board"
	"github.com/connect4go/connect4-go/internal/book"
)

func TestWriteReadRoundTrip(t *testing.T) {
	entries := map[uint64]int8{
		0:        0,
		1234567:  18,
		9999999:  -18,
		42:       5,
		70000000: -1,
	}

	var buf bytes.Buffer
	require.NoError(t, book.Write(&buf, entries))

	got, err := book.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, len(entries), got.Len())
	for k, v := range entries {
		score, ok := got.Entries()[k]
		require.True(t, ok, "missing key %d", k)
		assert.Equal(t, v, score)
	}
}

func TestSaveOpenRoundTrip(t *testing.T) {
	entries := map[uint64]int8{7: 3, 8: -3, 9: 17}
	path := filepath.Join(t.TempDir(), "book.bin")
	require.NoError(t, book.Save(path, entries))

	got, err := book.Open(path)
	require.NoError(t, err)
	assert.Equal(t, len(entries), got.Len())
}

func TestOpenMissingFileFails(t *testing.T) {
	_, err := book.Open(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	assert.Error(t, err)
}

func TestReadStopsAtTruncatedTrailingRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, book.Write(&buf, map[uint64]int8{1: 1}))
	buf.Write([]byte{1, 2, 3}) // partial trailing record

	got, err := book.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

func TestInsertFirstWriterWins(t *testing.T) {
	b := book.New()
	b.Insert(5, 10)
	b.Insert(5, -10)
	score, ok := b.Entries()[5]
	require.True(t, ok)
	assert.Equal(t, int8(10), score)
}

func TestScoreLooksUpByBoardKey(t *testing.T) {
	pos, err := board.ParseMoves("44")
	require.NoError(t, err)

	b := book.New()
	b.Insert(pos.Key(), 7)

	score, ok := b.Score(pos)
	require.True(t, ok)
	assert.Equal(t, 7, score)
}
