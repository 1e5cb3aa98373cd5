package game

import (
	"math"
	rand "math/rand/v2"

	"github.com/rocketscienceinc/gameroom-backend/internal/deck"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const (
	PhasePreflop  = "preflop"
	PhaseShowdown = "showdown"

	holeCards = 2
)

// PokerState is a single coarse betting round. The deck stays on the server.
type PokerState struct {
	Deck      deck.Deck      `json:"-"`
	Hands     [2][]deck.Card `json:"playerHands"`
	Community []deck.Card    `json:"communityCards"`
	Pot       int            `json:"pot"`
	Bets      [2]int         `json:"bets"`
	Phase     string         `json:"phase"`
}

func NewPoker(rng *rand.Rand) PokerState {
	cards := deck.NewShuffled(rng)

	var hands [2][]deck.Card
	for player := range hands {
		// a fresh deck always holds enough cards for the hole cards
		hands[player], cards, _ = cards.DrawN(holeCards)
	}

	return PokerState{
		Deck:      cards,
		Hands:     hands,
		Community: []deck.Card{},
		Phase:     PhasePreflop,
	}
}

func (PokerState) Kind() entity.GameKind {
	return entity.KindPoker
}

func (that PokerState) apply(action PokerAction, player int) Result {
	next := that

	switch action.Type {
	case PokerBet:
		if action.Amount <= 0 {
			return rejected(ErrInvalidAmount)
		}

		if !next.canAdd(player, action.Amount) {
			return rejected(ErrBetTooLarge)
		}

		next.Pot += action.Amount
		next.Bets[player] += action.Amount

		return proceed(next)
	case PokerCall:
		toCall := max(next.Bets[0], next.Bets[1]) - next.Bets[player]
		if !next.canAdd(player, toCall) {
			return rejected(ErrBetTooLarge)
		}

		next.Pot += toCall
		next.Bets[player] += toCall

		return proceed(next)
	case PokerFold:
		next.Phase = PhaseShowdown

		return finished(next, 1-player, ReasonFold)
	default:
		return rejected(ErrUnknownActionType)
	}
}

// canAdd reports whether amount fits into both the pot and the player's bet.
func (that PokerState) canAdd(player, amount int) bool {
	return amount <= math.MaxInt-that.Pot && amount <= math.MaxInt-that.Bets[player]
}
