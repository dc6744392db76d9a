package dpns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "sat0sh1", NormalizeLabel("Satoshi"))
	assert.Equal(t, "a11ce", NormalizeLabel("Alice"))
	assert.Equal(t, "d0ge-1", NormalizeLabel("Doge-I"))
}

func TestIsContestedWithinRange(t *testing.T) {
	assert.True(t, IsContested("bob"))
	assert.True(t, IsContested("abcdefghijklmnopqrs")) // len 19
	assert.False(t, IsContested("ab"))                  // len 2, too short
	assert.False(t, IsContested("abcdefghijklmnopqrst")) // len 20, too long
}

func TestIsContestedRejectsReservedDigits(t *testing.T) {
	assert.False(t, IsContested("abc2"))
	assert.False(t, IsContested("abc9"))
}

func TestIsContestedAllowsZeroOneAndHyphen(t *testing.T) {
	assert.True(t, IsContested("a0b1-c"))
}

func TestIsContestedRejectsInvalidCharacters(t *testing.T) {
	assert.False(t, IsContested("abc_def"))
	assert.False(t, IsContested("abc.def"))
}
