// Package book implements the opening book: a read-only mapping from
// position key to exact score, loaded from (and written to) a compact
// binary file.
//
// A book file is a flat sequence of 8-byte records with no header and no
// footer: 7 little-endian key bytes (the 49-bit position key fits in the
// low 56 bits, so the 8th key byte is always 0 and is dropped) followed
// by one score byte, the signed score shifted into 0..254 by adding 127.
package book

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/connect4go/connect4-go/internal/board"
)

const scoreShift = 127

// Book is an in-memory opening book. Insert (and Read, while decoding) add
// entries; nothing else modifies it.
type Book struct {
	entries map[uint64]int8
}

// New returns an empty book, useful for tests and for building one up
// with Insert before Save.
func New() *Book {
	return &Book{entries: make(map[uint64]int8)}
}

// Open streams 8-byte records from path and returns the book they encode.
// A trailing partial record (fewer than 8 bytes) is silently ignored, not
// treated as an error.
func Open(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book %s: %w", path, err)
	}
	defer f.Close()

	b, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read book %s: %w", path, err)
	}
	return b, nil
}

// Read decodes a book from the 8-byte-record stream format, stopping
// cleanly at the first short read.
func Read(r io.Reader) (*Book, error) {
	b := New()
	var buf [8]byte
	for {
		n, err := io.ReadFull(r, buf[:])
		if n == 8 {
			var key uint64
			for i := 6; i >= 0; i-- {
				key = key<<8 | uint64(buf[i])
			}
			score := int8(int(buf[7]) - scoreShift)
			b.insertFirstWriterWins(key, score)
			continue
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return b, nil
		}
		return nil, err
	}
}

// insertFirstWriterWins inserts key/score only if key is not already
// present. The book generator's merge step relies on this: among workers
// that both produce an entry for the same key, the first one read wins.
func (b *Book) insertFirstWriterWins(key uint64, score int8) {
	if _, ok := b.entries[key]; ok {
		return
	}
	b.entries[key] = score
}

// Insert adds key/score to the book, first-writer-wins on collision. It
// is exported for the book generator's merge step, which inserts from
// each worker's map in a deterministic order.
func (b *Book) Insert(key uint64, score int8) {
	b.insertFirstWriterWins(key, score)
}

// Score looks up the exact score for board's position, if present.
func (b *Book) Score(pos board.Board) (int, bool) {
	s, ok := b.entries[pos.Key()]
	return int(s), ok
}

// Len returns the number of entries in the book.
func (b *Book) Len() int {
	return len(b.entries)
}

// Entries returns the book's raw key/score map. Callers must not mutate
// it.
func (b *Book) Entries() map[uint64]int8 {
	return b.entries
}

// Save writes entries as a flat sequence of 8-byte records in the book
// file format. Iteration order over entries (a Go map) is unspecified;
// readers must not rely on record order.
func Save(path string, entries map[uint64]int8) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create book %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Write(w, entries); err != nil {
		return fmt.Errorf("write book %s: %w", path, err)
	}
	return w.Flush()
}

// Write encodes entries to w in the 8-byte-record stream format.
func Write(w io.Writer, entries map[uint64]int8) error {
	var buf [8]byte
	for key, score := range entries {
		for i := 0; i < 7; i++ {
			buf[i] = byte(key >> (8 * uint(i)))
		}
		buf[7] = byte(int(score) + scoreShift)
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}
