package tictactoe

import "github.com/fairline/tictactoe-league/internal/entity"

// WinCombos - the 8 winning lines: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Winner - scans the whole board and returns the winning mark, or EmptyCell
// when no line is complete.
func Winner(board [entity.BoardSize]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

// ValidCell - reports whether cell addresses one of the 9 board cells.
func ValidCell(cell int) bool {
	return cell >= 0 && cell < entity.BoardSize
}
