package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_roundScore(t *testing.T) {
	a := assert.New(t)

	a.Equal(20, roundScore(0, 0))
	a.Equal(50, roundScore(3, 3))
	a.Equal(-20, roundScore(3, 1))
	a.Equal(-20, roundScore(1, 3))
	a.Equal(-10, roundScore(0, 1))
	a.Equal(30, roundScore(1, 1))
}
