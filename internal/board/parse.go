package board

import "strings"

// ParseMoves parses a move-history string, an ASCII sequence of digits
// '1'..'7' (1-indexed columns) in chronological order, into a Board.
// Parsing rejects the string if any digit is out of range, plays into a
// full column, or lands on a winning move: winning positions are
// terminal and are not representable. An empty string yields the
// initial, empty board.
func ParseMoves(moves string) (Board, error) {
	b := New()
	for i := 0; i < len(moves); i++ {
		c := moves[i]
		if c < '0' || c > '9' {
			return Board{}, ErrInvalidCharacter{Character: c, Index: i}
		}
		col := int(c-'1') // 1-indexed in the wire format, 0-indexed internally
		if col < 0 || col >= Width {
			return Board{}, ErrInvalidColumn{Column: int(c - '0'), Index: i}
		}
		if !b.CanPlay(col) {
			return Board{}, ErrColumnFull{Column: col + 1, Index: i}
		}
		if b.IsWinning(col) {
			return Board{}, ErrWinningMove{Column: col + 1, Index: i}
		}
		b.Play(col)
	}
	return b, nil
}

// ParseBoardString builds a Board directly from a Size-character board
// string ('.', 'x', 'o'; row-major, top row first), bypassing move
// history. It exists for constructing test fixtures that would otherwise
// require a long, incidental sequence of moves to reach; the resulting
// Board is not required to be reachable by legal play.
func ParseBoardString(s string) (Board, error) {
	s = strings.ToLower(s)
	var cells []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' || c == 'x' || c == 'o' {
			cells = append(cells, c)
		}
	}
	if len(cells) != Size {
		return Board{}, ErrInvalidBoardStringLength{Actual: len(cells), Expected: Size}
	}

	var b Board
	for i, c := range cells {
		if c == '.' {
			continue
		}
		row := Height - (i/Width) - 1
		col := i % Width
		bit := uint64(1) << uint(col*(Height+1)+row)
		b.Mask |= bit
		if c == 'x' {
			b.Current |= bit
		}
		b.playedMoves++
	}
	return b, nil
}
