package board

import "fmt"

// ErrInvalidCharacter is returned when a move-history string contains a
// byte that is not an ASCII digit.
type ErrInvalidCharacter struct {
	Character byte
	Index     int
}

func (e ErrInvalidCharacter) Error() string {
	return fmt.Sprintf("invalid character %q at index %d", e.Character, e.Index)
}

// ErrInvalidColumn is returned when a move-history digit names a column
// outside 1..Width.
type ErrInvalidColumn struct {
	Column int
	Index  int
}

func (e ErrInvalidColumn) Error() string {
	return fmt.Sprintf("invalid column %d at index %d", e.Column, e.Index)
}

// ErrColumnFull is returned when a move-history digit plays into a column
// that already has Height stones.
type ErrColumnFull struct {
	Column int
	Index  int
}

func (e ErrColumnFull) Error() string {
	return fmt.Sprintf("column %d is full at index %d", e.Column, e.Index)
}

// ErrWinningMove is returned when a move-history digit would complete
// four-in-a-row: the position it reaches is terminal and is not
// representable, so parsing refuses to construct it.
type ErrWinningMove struct {
	Column int
	Index  int
}

func (e ErrWinningMove) Error() string {
	return fmt.Sprintf("move at index %d into column %d wins the game", e.Index, e.Column)
}

// ErrInvalidBoardStringLength is returned when ParseBoardString receives a
// string whose character count is not exactly Size.
type ErrInvalidBoardStringLength struct {
	Actual   int
	Expected int
}

func (e ErrInvalidBoardStringLength) Error() string {
	return fmt.Sprintf("invalid board string length: got %d cells, want %d", e.Actual, e.Expected)
}
