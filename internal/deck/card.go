package deck

type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

var Suits = [4]Suit{Spades, Hearts, Diamonds, Clubs}

type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

var Ranks = [13]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"value"`
}

func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

func (that Card) String() string {
	return string(that.Rank) + string(that.Suit)
}

// Value returns the nominal blackjack value with aces counted as 11.
func (that Card) Value() int {
	switch that.Rank {
	case Ace:
		return 11
	case Jack, Queen, King:
		return 10
	case Two:
		return 2
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven:
		return 7
	case Eight:
		return 8
	case Nine:
		return 9
	case Ten:
		return 10
	default:
		return 0
	}
}

// HandValue sums a hand, demoting aces from 11 to 1 one at a time while the total exceeds 21.
func HandValue(cards []Card) int {
	total := 0
	aces := 0

	for _, card := range cards {
		total += card.Value()
		if card.Rank == Ace {
			aces++
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	return total
}
