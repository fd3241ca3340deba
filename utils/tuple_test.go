package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpack2(t *testing.T) {
	a, b := Unpack2(strings.SplitN("village.NewVillager", ".", 2))
	assert.Equal(t, "village", a)
	assert.Equal(t, "NewVillager", b)

	a, b = Unpack2([]string{"main"})
	assert.Equal(t, "main", a)
	assert.Empty(t, b)

	x, y := Unpack2([]int(nil))
	assert.Zero(t, x)
	assert.Zero(t, y)

	x, y = Unpack2([]int{1, 2, 3})
	assert.Equal(t, 1, x)
	assert.Equal(t, 2, y)
}
