package game

import "github.com/rocketscienceinc/gameroom-backend/internal/entity"

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

type TicTacToeState struct {
	Board [9]Cell `json:"board"`
	Moves int     `json:"moves"`
}

func NewTicTacToe() TicTacToeState {
	return TicTacToeState{}
}

func (TicTacToeState) Kind() entity.GameKind {
	return entity.KindTicTacToe
}

func (that TicTacToeState) apply(action CellAction, player int) Result {
	if action.Position < 0 || action.Position >= len(that.Board) {
		return rejected(ErrInvalidCell)
	}

	if that.Board[action.Position] != Empty {
		return rejected(ErrCellOccupied)
	}

	next := that
	next.Board[action.Position] = CellOf(player)
	next.Moves++

	if winner, ok := lineWinner(next.Board); ok {
		return finished(next, winner, ReasonWin)
	}

	if isFull(next.Board[:]) {
		return finished(next, Draw, ReasonDraw)
	}

	return proceed(next)
}

func lineWinner(board [9]Cell) (int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return a.Owner(), true
		}
	}

	return 0, false
}
