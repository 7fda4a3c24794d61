// Package sorter provides a bounded priority queue of candidate moves for
// a single search node. It is sized for Connect Four's 7 columns and is
// meant to be built and drained exactly once per node, never reused.
package sorter

import "github.com/connect4go/connect4-go/internal/board"

type entry struct {
	move  uint64
	score int
}

// Sorter is a fixed-capacity, insertion-sorted priority queue. Add
// appends in ascending score order; Next pops from the high end, so
// moves are yielded in descending score (best first).
type Sorter struct {
	entries [board.Width]entry
	size    int
}

// Add inserts move with the given heuristic score, shifting larger
// entries right to keep the slice sorted ascending by score.
func (s *Sorter) Add(move uint64, score int) {
	pos := s.size
	for pos != 0 && s.entries[pos-1].score > score {
		s.entries[pos] = s.entries[pos-1]
		pos--
	}
	s.entries[pos] = entry{move: move, score: score}
	s.size++
}

// Next returns the remaining move with the highest score, removing it
// from the queue. The second return value is false once the queue is
// empty.
func (s *Sorter) Next() (uint64, bool) {
	if s.size == 0 {
		return 0, false
	}
	s.size--
	return s.entries[s.size].move, true
}
