package deck

import "strings"

// Hand represents a collection of cards
type Hand []*Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	if cmp := strings.Compare(string(h[i].Suit), string(h[j].Suit)); cmp != 0 {
		return cmp < 0
	}

	return h[i].Rank < h[j].Rank
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h *Hand) HasCard(card *Card) bool {
	for _, c := range *h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// HasSuit returns true if the hand contains a non-special card of the suit
func (h *Hand) HasSuit(suit Suit) bool {
	for _, c := range *h {
		if !c.IsSpecial() && c.Suit == suit {
			return true
		}
	}

	return false
}

// Discard will discard a single copy of the specified card.
// Wizards and jesters are indistinguishable, so only the first match is removed.
func (h *Hand) Discard(card *Card) bool {
	for i, c := range *h {
		if c.Equal(card) {
			newHand := make([]*Card, 0, len(*h)-1)
			newHand = append(newHand, (*h)[:i]...)
			newHand = append(newHand, (*h)[i+1:]...)
			*h = newHand
			return true
		}
	}

	return false
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
