package game

import (
	rand "math/rand/v2"
	"slices"

	"github.com/rocketscienceinc/gameroom-backend/internal/deck"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const (
	PhasePlaying  = "playing"
	PhaseFinished = "finished"

	blackjackLimit = 21
	dealerStandsOn = 17
)

type BlackjackState struct {
	Deck   deck.Deck      `json:"-"`
	Hands  [2][]deck.Card `json:"playerHands"`
	Dealer []deck.Card    `json:"dealerHand"`
	Phase  string         `json:"phase"`
}

// NewBlackjack deals two cards to each player and shows one dealer card.
func NewBlackjack(rng *rand.Rand) BlackjackState {
	cards := deck.NewShuffled(rng)

	var hands [2][]deck.Card
	for player := range hands {
		hands[player], cards, _ = cards.DrawN(2)
	}

	dealer, cards, _ := cards.DrawN(1)

	return BlackjackState{
		Deck:   cards,
		Hands:  hands,
		Dealer: dealer,
		Phase:  PhasePlaying,
	}
}

func (BlackjackState) Kind() entity.GameKind {
	return entity.KindBlackjack
}

func (that BlackjackState) apply(action BlackjackAction, player int) Result {
	switch action.Type {
	case BlackjackHit:
		return that.hit(player)
	case BlackjackStand:
		return that.stand(player)
	default:
		return rejected(ErrUnknownActionType)
	}
}

func (that BlackjackState) hit(player int) Result {
	card, rest, err := that.Deck.Draw()
	if err != nil {
		return rejected(ErrDeckEmpty)
	}

	next := that
	next.Deck = rest
	next.Hands[player] = append(slices.Clip(that.Hands[player]), card)

	if deck.HandValue(next.Hands[player]) > blackjackLimit {
		next.Phase = PhaseFinished

		return finished(next, 1-player, ReasonBust)
	}

	return proceed(next)
}

// stand plays out the dealer and settles the hand of player against it.
func (that BlackjackState) stand(player int) Result {
	next := that
	next.Dealer = slices.Clip(that.Dealer)

	for deck.HandValue(next.Dealer) < dealerStandsOn {
		card, rest, err := next.Deck.Draw()
		if err != nil {
			break
		}

		next.Deck = rest
		next.Dealer = append(next.Dealer, card)
	}

	next.Phase = PhaseFinished

	own := deck.HandValue(next.Hands[player])
	dealer := deck.HandValue(next.Dealer)

	switch {
	case dealer > blackjackLimit || own > dealer:
		return finished(next, player, ReasonStand)
	case dealer > own:
		return finished(next, 1-player, ReasonStand)
	default:
		return finished(next, Draw, ReasonStand)
	}
}
