package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func shuffleLetters(s Shuffler, letters []string) []string {
	out := append([]string(nil), letters...)
	s.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestCannedShuffler(t *testing.T) {
	letters := []string{"a", "b", "c", "d"}
	tests := []struct {
		name     string
		perm     []int
		expected []string
	}{
		{"identity", []int{0, 1, 2, 3}, []string{"a", "b", "c", "d"}},
		{"reverse", []int{3, 2, 1, 0}, []string{"d", "c", "b", "a"}},
		{"rotation", []int{2, 0, 1, 3}, []string{"c", "a", "b", "d"}},
		{"cycle", []int{1, 2, 3, 0}, []string{"b", "c", "d", "a"}},
		{"wrong length", []int{1, 0}, []string{"a", "b", "c", "d"}},
		{"nil", nil, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shuffleLetters(NewCannedShuffler(tt.perm), letters))
		})
	}
}

func TestRandomShuffler_Seeded(t *testing.T) {
	letters := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	first := shuffleLetters(NewRandomShuffler(99), letters)
	second := shuffleLetters(NewRandomShuffler(99), letters)
	assert.Equal(t, first, second)
	assert.ElementsMatch(t, letters, first)

	s := NewRandomShuffler(99)
	shuffleLetters(s, letters)
	assert.NotEqual(t, first, shuffleLetters(s, letters), "a shuffler keeps its stream going")
}
