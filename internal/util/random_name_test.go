package util

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	a := assert.New(t)

	random = rand.New(rand.NewSource(0)) // nolint:gosec
	name1 := GetRandomName()

	parts := strings.SplitN(name1, " ", 2)
	a.Equal(2, len(parts))
	a.Contains(adjectives, parts[0])
	a.Contains(animals, parts[1])

	random = rand.New(rand.NewSource(0)) // nolint:gosec
	a.Equal(name1, GetRandomName())
}
