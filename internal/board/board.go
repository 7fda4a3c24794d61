// Package board implements the Connect Four position representation: a
// pair of 64-bit bitboards plus a move counter, move application, win
// detection, and threat analysis.
//
// The standard 7-wide by 6-tall board is represented unambiguously using
// 49 bits, column-major, with an extra "overflow" row on top of every
// column used only for carry arithmetic:
//
//	 6 13 20 27 34 41 48   <- sentinel row, never holds a stone
//	---------------------
//	| 5 12 19 26 33 40 47 |
//	| 4 11 18 25 32 39 46 |
//	| 3 10 17 24 31 38 45 |
//	| 2  9 16 23 30 37 44 |
//	| 1  8 15 22 29 36 43 |
//	| 0  7 14 21 28 35 42 |
//	---------------------
//
// Column c (0-indexed) occupies bits c*(Height+1) .. c*(Height+1)+Height-1,
// plus its sentinel bit at c*(Height+1)+Height.
package board

import "strings"

const (
	// Width is the number of columns.
	Width = 7
	// Height is the number of playable rows per column.
	Height = 6
	// Size is the number of playable cells.
	Size = Width * Height
	// Centre is the index of the middle column.
	Centre = Width / 2

	// MinScore is the worst possible score: losing as late as possible.
	MinScore = -(Size)/2 + 3
	// MaxScore is the best possible score: winning as early as possible.
	MaxScore = (Size+1)/2 - 3
)

// ColumnOrder lists columns by distance from the centre. The engine adds
// each node's candidate moves to its move sorter in this order; the
// sorter yields moves with equal heuristic scores last-added first.
var ColumnOrder = [Width]int{3, 2, 4, 1, 5, 0, 6}

var (
	bottomMask = computeBottomMask()
	boardMask  = bottomMask * (1<<Height - 1)
)

func computeBottomMask() uint64 {
	var m uint64
	for c := 0; c < Width; c++ {
		m |= bottomMaskCol(c)
	}
	return m
}

func bottomMaskCol(col int) uint64 {
	return uint64(1) << uint(col*(Height+1))
}

func topMaskCol(col int) uint64 {
	return uint64(1) << uint(col*(Height+1)+Height-1)
}

func columnMask(col int) uint64 {
	return (uint64(1)<<uint(Height) - 1) << uint(col*(Height+1))
}

// ColumnMask returns a bitmask of every cell (playable or not) in col.
// Exposed for the engine's move-sorting step, which must intersect a set
// of candidate moves with one column at a time.
func ColumnMask(col int) uint64 {
	return columnMask(col)
}

// Board is a Connect Four position. The zero value is the empty board.
//
// Invariants: Current&^Mask == 0; no bit is set in any sentinel row;
// popcount(Mask) == PlayedMoves; the side to move is determined by the
// parity of PlayedMoves (even => first player).
type Board struct {
	// Current is a bitboard of the side-to-move's stones.
	Current uint64
	// Mask is a bitboard of every occupied cell.
	Mask uint64

	playedMoves int
}

// New returns the initial, empty board.
func New() Board {
	return Board{}
}

// PlayedMoves returns the number of stones placed so far.
func (b Board) PlayedMoves() int {
	return b.playedMoves
}

// CanPlay reports whether col has room for another stone.
func (b Board) CanPlay(col int) bool {
	return b.Mask&topMaskCol(col) == 0
}

// Play drops a stone for the side-to-move into col. Undefined if
// !b.CanPlay(col).
func (b *Board) Play(col int) {
	b.Current ^= b.Mask
	b.Mask |= b.Mask + bottomMaskCol(col)
	b.playedMoves++
}

// PlayMove plays a move given directly as the bit of the cell the new
// stone lands on, as produced by Possible or PossibleNonLosingMoves.
func (b *Board) PlayMove(moveBit uint64) {
	b.Current ^= b.Mask
	b.Mask |= moveBit
	b.playedMoves++
}

// IsWinning reports whether playing col completes four-in-a-row for the
// side to move.
func (b Board) IsWinning(col int) bool {
	return b.winningPositions()&b.Possible()&columnMask(col) != 0
}

// CanWinNext reports whether the side to move has any immediate winning
// move.
func (b Board) CanWinNext() bool {
	return b.winningPositions()&b.Possible() != 0
}

// Possible returns a bitmask of every cell that is immediately playable.
func (b Board) Possible() uint64 {
	return (b.Mask + bottomMask) & boardMask
}

// PossibleNonLosingMoves returns a bitmask of moves that do not hand the
// opponent a win on their next ply. A return of 0 means the position is
// already lost (the opponent has two simultaneous threats).
func (b Board) PossibleNonLosingMoves() uint64 {
	possible := b.Possible()
	opponentWins := b.opponentWinningPositions()
	forced := possible & opponentWins
	if forced != 0 {
		if forced&(forced-1) != 0 {
			// More than one forced cell: two threats, nothing stops both.
			return 0
		}
		possible = forced
	}
	return possible &^ (opponentWins >> 1)
}

// Score returns the heuristic value of dropping a stone at moveBit: the
// number of new winning threats that move would create. Used by the move
// sorter to order candidate moves.
func (b Board) Score(moveBit uint64) int {
	return popcount(computeWinningPosition(b.Current|moveBit, b.Mask) &^ b.winningPositions())
}

// Key returns the 49-bit value that uniquely identifies this position:
// current + mask.
func (b Board) Key() uint64 {
	return b.Current + b.Mask
}

func (b Board) winningPositions() uint64 {
	return computeWinningPosition(b.Current, b.Mask)
}

func (b Board) opponentWinningPositions() uint64 {
	return computeWinningPosition(b.Current^b.Mask, b.Mask)
}

// computeWinningPosition returns the bitmask of empty cells that would
// complete a line of four in any direction if position gained that cell.
func computeWinningPosition(position, mask uint64) uint64 {
	// Vertical: only a downward run of three matters.
	r := (position << 1) & (position << 2) & (position << 3)

	// Horizontal.
	p := (position << (Height + 1)) & (position << (2 * (Height + 1)))
	r |= p & (position << (3 * (Height + 1)))
	r |= p & (position >> (Height + 1))
	p >>= 3 * (Height + 1)
	r |= p & (position << (Height + 1))
	r |= p & (position >> (3 * (Height + 1)))

	// Diagonal, top-left to bottom-right.
	p = (position << Height) & (position << (2 * Height))
	r |= p & (position << (3 * Height))
	r |= p & (position >> Height)
	p >>= 3 * Height
	r |= p & (position << Height)
	r |= p & (position >> (3 * Height))

	// Diagonal, bottom-left to top-right.
	p = (position << (Height + 2)) & (position << (2 * (Height + 2)))
	r |= p & (position << (3 * (Height + 2)))
	r |= p & (position >> (Height + 2))
	p >>= 3 * (Height + 2)
	r |= p & (position << (Height + 2))
	r |= p & (position >> (3 * (Height + 2)))

	return r & (boardMask &^ mask)
}

func popcount(x uint64) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}

// String renders the board as a 7x6 grid for log lines, 'x' for the side
// to move, 'o' for the opponent, '.' for empty.
func (b Board) String() string {
	opponent := b.Current ^ b.Mask
	var sb strings.Builder
	for row := Height - 1; row >= 0; row-- {
		for col := 0; col < Width; col++ {
			bit := uint64(1) << uint(col*(Height+1)+row)
			switch {
			case b.Current&bit != 0:
				sb.WriteByte('x')
			case opponent&bit != 0:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		if row != 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
