package game

import "strconv"

// Cell is one board square: empty or owned by player 0 or 1.
type Cell uint8

const Empty Cell = 0

func CellOf(player int) Cell {
	return Cell(player + 1)
}

// Owner returns the owning player index, -1 for an empty cell.
func (that Cell) Owner() int {
	return int(that) - 1
}

func (that Cell) MarshalJSON() ([]byte, error) {
	if that == Empty {
		return []byte("null"), nil
	}

	return []byte(strconv.Itoa(that.Owner())), nil
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = Empty
		return nil
	}

	owner, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}

	if owner != 0 && owner != 1 {
		return ErrInvalidPlayer
	}

	*that = CellOf(owner)

	return nil
}

func isFull(board []Cell) bool {
	for _, cell := range board {
		if cell == Empty {
			return false
		}
	}

	return true
}
