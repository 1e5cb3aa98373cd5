package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  int
	}{
		{"ace and nine keep the ace high", []Card{NewCard(Spades, Ace), NewCard(Hearts, Nine)}, 20},
		{"two aces and nine demote one ace", []Card{NewCard(Spades, Ace), NewCard(Hearts, Ace), NewCard(Clubs, Nine)}, 21},
		{"face cards count as ten", []Card{NewCard(Spades, King), NewCard(Hearts, Queen)}, 20},
		{"blackjack", []Card{NewCard(Spades, Ace), NewCard(Hearts, Jack)}, 21},
		{"bust with no aces", []Card{NewCard(Spades, King), NewCard(Hearts, Queen), NewCard(Clubs, Two)}, 22},
		{"four aces", []Card{NewCard(Spades, Ace), NewCard(Hearts, Ace), NewCard(Clubs, Ace), NewCard(Diamonds, Ace)}, 14},
		{"empty hand", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandValue(tt.cards))
		})
	}
}

func TestNewShuffled(t *testing.T) {
	t.Run("Contains every card exactly once", func(t *testing.T) {
		// Given: a seeded source
		rng := NewRand(42)

		// When: shuffling a new deck
		cards := NewShuffled(rng)

		// Then: all 52 distinct cards are present
		require.Len(t, cards, Size)
		seen := make(map[Card]bool, Size)
		for _, card := range cards {
			seen[card] = true
		}
		assert.Len(t, seen, Size)
	})

	t.Run("Same seed gives same order", func(t *testing.T) {
		assert.Equal(t, NewShuffled(NewRand(7)), NewShuffled(NewRand(7)))
	})
}

func TestDeck_Draw(t *testing.T) {
	t.Run("Pops the top card without touching the source deck", func(t *testing.T) {
		// Given: a two card deck
		cards := Deck{NewCard(Spades, Two), NewCard(Hearts, Three)}

		// When: drawing
		card, rest, err := cards.Draw()

		// Then: the last card is returned and the source deck is intact
		require.NoError(t, err)
		assert.Equal(t, NewCard(Hearts, Three), card)
		assert.Equal(t, Deck{NewCard(Spades, Two)}, rest)
		assert.Len(t, cards, 2)
	})

	t.Run("Empty deck", func(t *testing.T) {
		_, _, err := Deck{}.Draw()

		require.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("DrawN beyond size", func(t *testing.T) {
		_, _, err := Deck{NewCard(Spades, Two)}.DrawN(2)

		require.ErrorIs(t, err, ErrEmpty)
	})
}
