package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_String(t *testing.T) {
	assert.Equal(t, "7g", CardFromString("7g").String())
	assert.Equal(t, "13b", CardFromString("13b").String())
	assert.Equal(t, "W", CardFromString("w").String())
	assert.Equal(t, "J", CardFromString("j").String())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("1r")
	a.Equal(Card{Rank: 1, Suit: Red}, *card)

	card = CardFromString("13y")
	a.Equal(Card{Rank: 13, Suit: Yellow}, *card)

	a.True(CardFromString("w").IsWizard())
	a.True(CardFromString("j").IsJester())
	a.False(CardFromString("5b").IsSpecial())

	a.Nil(CardFromString(""))

	a.Panics(func() {
		CardFromString("14r")
	})

	a.Panics(func() {
		CardFromString("5x")
	})
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("5r").Equal(CardFromString("5r")))
	a.False(CardFromString("5r").Equal(CardFromString("5g")))
	a.False(CardFromString("5r").Equal(CardFromString("6r")))

	// wizards and jesters are indistinguishable
	a.True(CardFromString("w").Equal(CardFromString("w")))
	a.False(CardFromString("w").Equal(CardFromString("j")))
}

func TestCardsToString(t *testing.T) {
	cards := CardsFromString("2r,13b,w,j")
	assert.Equal(t, "2r,13b,w,j", CardsToString(cards))
	assert.Equal(t, "", CardsToString(nil))
}

func TestBeats(t *testing.T) {
	a := assert.New(t)

	// a wizard beats everything, including an earlier wizard
	a.True(Beats(CardFromString("w"), CardFromString("13r"), Red))
	a.True(Beats(CardFromString("w"), CardFromString("w"), NoSuit))
	a.False(Beats(CardFromString("13r"), CardFromString("w"), Red))

	// a jester beats nothing, and anything beats a jester
	a.False(Beats(CardFromString("j"), CardFromString("1r"), NoSuit))
	a.False(Beats(CardFromString("j"), CardFromString("j"), NoSuit))
	a.True(Beats(CardFromString("1r"), CardFromString("j"), NoSuit))

	// same suit compares by rank
	a.True(Beats(CardFromString("9g"), CardFromString("8g"), NoSuit))
	a.False(Beats(CardFromString("7g"), CardFromString("8g"), NoSuit))

	// trump beats non-trump
	a.True(Beats(CardFromString("1b"), CardFromString("13g"), Blue))
	a.False(Beats(CardFromString("13g"), CardFromString("1b"), Blue))

	// off-suit, non-trump cards never win
	a.False(Beats(CardFromString("13y"), CardFromString("2g"), Blue))
	a.False(Beats(CardFromString("13y"), CardFromString("2g"), NoSuit))
}
