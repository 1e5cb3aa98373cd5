package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gameroom-backend/internal/deck"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

func TestInitialize(t *testing.T) {
	t.Run("Every kind gets a matching state", func(t *testing.T) {
		for _, kind := range entity.Kinds {
			state, err := Initialize(kind, deck.NewRand(1))

			require.NoError(t, err)
			assert.Equal(t, kind, state.Kind())
		}
	})

	t.Run("Unknown kind", func(t *testing.T) {
		_, err := Initialize("chess", deck.NewRand(1))

		require.ErrorIs(t, err, entity.ErrUnknownGameKind)
	})
}

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name string
		kind entity.GameKind
		raw  string
		want Action
	}{
		{"tic-tac-toe position", entity.KindTicTacToe, `{"position":4}`, CellAction{Position: 4}},
		{"connect4 column", entity.KindConnectFour, `{"column":0}`, ColumnAction{Column: 0}},
		{"reversi position", entity.KindReversi, `{"position":20}`, ReversiAction{Position: 20}},
		{"reversi pass", entity.KindReversi, `{"pass":true}`, ReversiAction{Pass: true}},
		{"poker bet", entity.KindPoker, `{"type":"bet","amount":10}`, PokerAction{Type: PokerBet, Amount: 10}},
		{"blackjack stand", entity.KindBlackjack, `{"type":"stand"}`, BlackjackAction{Type: BlackjackStand}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := DecodeAction(tt.kind, json.RawMessage(tt.raw))

			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
		})
	}

	t.Run("Missing position is malformed", func(t *testing.T) {
		_, err := DecodeAction(entity.KindTicTacToe, json.RawMessage(`{"column":1}`))

		require.ErrorIs(t, err, ErrMalformedAction)
	})

	t.Run("Invalid JSON is malformed", func(t *testing.T) {
		_, err := DecodeAction(entity.KindConnectFour, json.RawMessage(`{"column":`))

		require.ErrorIs(t, err, ErrMalformedAction)
	})

	t.Run("Empty payload is malformed", func(t *testing.T) {
		_, err := DecodeAction(entity.KindBlackjack, nil)

		require.ErrorIs(t, err, ErrMalformedAction)
	})
}

func TestCell_MarshalJSON(t *testing.T) {
	// Given: a board with one empty and two owned cells
	cells := []Cell{Empty, CellOf(0), CellOf(1)}

	// When: encoding it
	data, err := json.Marshal(cells)

	// Then: empty is null and owners are player indexes
	require.NoError(t, err)
	assert.JSONEq(t, `[null,0,1]`, string(data))

	var decoded []Cell
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cells, decoded)
}

func TestTurnAlternation(t *testing.T) {
	// Given: a tic-tac-toe game played cell by cell
	var state State = NewTicTacToe()
	turn := 0

	// When: both players alternate through moves that never make a line
	for _, position := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
		result := Apply(state, CellAction{Position: position}, turn)
		require.True(t, result.Valid, "move %d: %v", position, result.Err)

		state = result.State
		if result.GameOver {
			// Then: the board fills up and ends in a draw
			assert.Equal(t, Draw, result.Winner)
			assert.Equal(t, 8, position)
			return
		}

		turn = (turn + 1) % 2
	}

	t.Fatal("game never finished")
}
