package deck

import (
	"errors"
	rand "math/rand/v2"
	"slices"
)

const Size = 52

var ErrEmpty = errors.New("deck is empty")

// Deck is an ordered card sequence; the top card is the last element.
type Deck []Card

// New returns the 52 cards in suit-major order.
func New() Deck {
	cards := make(Deck, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}

	return cards
}

// NewShuffled returns a full deck permuted with Fisher-Yates.
func NewShuffled(rng *rand.Rand) Deck {
	cards := New()
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return cards
}

// Draw pops the top card and returns it with the remaining deck.
// The receiver's backing array is never written to.
func (that Deck) Draw() (Card, Deck, error) {
	if len(that) == 0 {
		return Card{}, that, ErrEmpty
	}

	last := len(that) - 1

	return that[last], slices.Clip(that[:last]), nil
}

// DrawN pops n cards in draw order.
func (that Deck) DrawN(n int) ([]Card, Deck, error) {
	if n > len(that) {
		return nil, that, ErrEmpty
	}

	cards := make([]Card, 0, n)
	rest := that
	for range n {
		var card Card
		card, rest, _ = rest.Draw()
		cards = append(cards, card)
	}

	return cards, rest, nil
}
