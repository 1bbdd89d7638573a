package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Red     Suit = "red"
	Yellow  Suit = "yellow"
	Green   Suit = "green"
	Blue    Suit = "blue"
	Special Suit = "special"
)

// NoSuit is used for rounds without a trump suit
const NoSuit Suit = ""

// special card ranks. Numbered cards use ranks 1-13
const (
	Jester = 0
	Wizard = 14
)

// Suits are the four numbered suits in play order
var Suits = []Suit{Red, Yellow, Green, Blue}

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c *Card) String() string {
	if c.IsWizard() {
		return "W"
	}

	if c.IsJester() {
		return "J"
	}

	var suit string
	switch c.Suit {
	case Red:
		suit = "r"
	case Yellow:
		suit = "y"
	case Green:
		suit = "g"
	case Blue:
		suit = "b"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%d%s", c.Rank, suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// IsWizard returns true if the card is a wizard
func (c *Card) IsWizard() bool {
	return c.Suit == Special && c.Rank == Wizard
}

// IsJester returns true if the card is a jester
func (c *Card) IsJester() bool {
	return c.Suit == Special && c.Rank == Jester
}

// IsSpecial returns true for wizards and jesters
func (c *Card) IsSpecial() bool {
	return c.Suit == Special
}

// Beats returns true if the challenger card beats the current winning card.
// The incumbent is the card currently winning the trick, so a wizard played
// after another wizard still wins, and a jester only wins by staying the
// incumbent in an all-jester trick.
func Beats(challenger, incumbent *Card, trump Suit) bool {
	if challenger.IsWizard() {
		return true
	}

	if incumbent.IsWizard() {
		return false
	}

	if challenger.IsJester() {
		return false
	}

	if incumbent.IsJester() {
		return true
	}

	if challenger.Suit == incumbent.Suit {
		return challenger.Rank > incumbent.Rank
	}

	return challenger.Suit == trump
}

// Clone returns a clone of the card
func (c *Card) Clone() *Card {
	cp := *c
	return &cp
}

var cardRx = regexp.MustCompile(`(?i)^([1-9]|1[0-3])([rygb])\z`)

// CardFromString returns a Card from the string.
// The string must be "w" (wizard), "j" (jester), or <rank><suit> where
// rank >= 1 and <= 13 and suit in [rygb]
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	switch strings.ToLower(s) {
	case "w":
		return &Card{Rank: Wizard, Suit: Special}
	case "j":
		return &Card{Rank: Jester, Suit: Special}
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "r":
		suit = Red
	case "y":
		suit = Yellow
	case "g":
		suit = Green
	case "b":
		suit = Blue
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return &Card{
		Rank: rank,
		Suit: suit,
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (7 of Red) to a string (7r)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	if card.IsWizard() {
		return "w"
	}

	if card.IsJester() {
		return "j"
	}

	var suit string
	switch card.Suit {
	case Red:
		suit = "r"
	case Yellow:
		suit = "y"
	case Green:
		suit = "g"
	case Blue:
		suit = "b"
	}

	return fmt.Sprintf("%d%s", card.Rank, suit)
}

// CardsToString will convert a slice of cards to a string in the format of 1r,13b,w,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
