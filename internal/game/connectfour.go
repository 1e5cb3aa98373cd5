package game

import "github.com/rocketscienceinc/gameroom-backend/internal/entity"

const (
	ConnectFourRows    = 6
	ConnectFourColumns = 7

	connectLength = 4
)

// ConnectFourState keeps a row-major board; row 0 is the top.
type ConnectFourState struct {
	Board [ConnectFourRows * ConnectFourColumns]Cell `json:"board"`
}

func NewConnectFour() ConnectFourState {
	return ConnectFourState{}
}

func (ConnectFourState) Kind() entity.GameKind {
	return entity.KindConnectFour
}

func (that ConnectFourState) apply(action ColumnAction, player int) Result {
	column := action.Column
	if column < 0 || column >= ConnectFourColumns {
		return rejected(ErrInvalidColumn)
	}

	row := that.lowestEmptyRow(column)
	if row < 0 {
		return rejected(ErrColumnFull)
	}

	next := that
	next.Board[row*ConnectFourColumns+column] = CellOf(player)

	if next.connects(row, column) {
		return finished(next, player, ReasonWin)
	}

	if isFull(next.Board[:]) {
		return finished(next, Draw, ReasonDraw)
	}

	return proceed(next)
}

func (that ConnectFourState) lowestEmptyRow(column int) int {
	for row := ConnectFourRows - 1; row >= 0; row-- {
		if that.Board[row*ConnectFourColumns+column] == Empty {
			return row
		}
	}

	return -1
}

func (that ConnectFourState) at(row, column int) Cell {
	if row < 0 || row >= ConnectFourRows || column < 0 || column >= ConnectFourColumns {
		return Empty
	}

	return that.Board[row*ConnectFourColumns+column]
}

// connects scans outward from the placed disc along every axis.
func (that ConnectFourState) connects(row, column int) bool {
	owner := that.at(row, column)
	axes := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

	for _, axis := range axes {
		count := 1
		for _, sign := range [2]int{1, -1} {
			dr, dc := axis[0]*sign, axis[1]*sign
			for step := 1; step < connectLength; step++ {
				if that.at(row+dr*step, column+dc*step) != owner {
					break
				}
				count++
			}
		}

		if count >= connectLength {
			return true
		}
	}

	return false
}
