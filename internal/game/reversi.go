package game

import "github.com/rocketscienceinc/gameroom-backend/internal/entity"

const reversiSize = 8

var reversiDirections = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

type ReversiState struct {
	Board [reversiSize * reversiSize]Cell `json:"board"`
}

// NewReversi places the four center discs in the standard crossed pattern.
func NewReversi() ReversiState {
	var state ReversiState
	state.Board[27] = CellOf(0)
	state.Board[28] = CellOf(1)
	state.Board[35] = CellOf(1)
	state.Board[36] = CellOf(0)

	return state
}

func (ReversiState) Kind() entity.GameKind {
	return entity.KindReversi
}

func (that ReversiState) apply(action ReversiAction, player int) Result {
	if action.Pass {
		if that.HasMove(player) {
			return rejected(ErrPassNotAllowed)
		}

		return proceed(that)
	}

	position := action.Position
	if position < 0 || position >= len(that.Board) {
		return rejected(ErrInvalidCell)
	}

	if that.Board[position] != Empty {
		return rejected(ErrCellOccupied)
	}

	flips := that.Flips(position, player)
	if len(flips) == 0 {
		return rejected(ErrNoFlips)
	}

	next := that
	mark := CellOf(player)
	next.Board[position] = mark
	for _, flipped := range flips {
		next.Board[flipped] = mark
	}

	if isFull(next.Board[:]) || (!next.HasMove(0) && !next.HasMove(1)) {
		return next.finish()
	}

	return proceed(next)
}

// Flips returns the opposing discs captured by player placing at position.
func (that ReversiState) Flips(position, player int) []int {
	if that.Board[position] != Empty {
		return nil
	}

	own := CellOf(player)
	row, column := position/reversiSize, position%reversiSize

	var flips []int
	for _, direction := range reversiDirections {
		var run []int

		r, c := row+direction[0], column+direction[1]
		for r >= 0 && r < reversiSize && c >= 0 && c < reversiSize {
			cell := that.Board[r*reversiSize+c]
			if cell == Empty {
				run = nil
				break
			}

			if cell == own {
				flips = append(flips, run...)
				run = nil
				break
			}

			run = append(run, r*reversiSize+c)
			r, c = r+direction[0], c+direction[1]
		}
	}

	return flips
}

func (that ReversiState) HasMove(player int) bool {
	for position := range that.Board {
		if that.Board[position] == Empty && len(that.Flips(position, player)) > 0 {
			return true
		}
	}

	return false
}

// Count returns the discs held by each player.
func (that ReversiState) Count() [2]int {
	var counts [2]int
	for _, cell := range that.Board {
		if cell != Empty {
			counts[cell.Owner()]++
		}
	}

	return counts
}

func (that ReversiState) finish() Result {
	counts := that.Count()

	switch {
	case counts[0] > counts[1]:
		return finished(that, 0, ReasonWin)
	case counts[1] > counts[0]:
		return finished(that, 1, ReasonWin)
	default:
		return finished(that, Draw, ReasonDraw)
	}
}
