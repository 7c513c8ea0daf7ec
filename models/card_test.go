package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenIsColumnMajor(t *testing.T) {
	card := Card{
		B: []int{1, 2, 3, 4, 5},
		I: []int{16, 17, 18, 19, 20},
		N: []int{31, 32, FreeCell, 33, 34},
		G: []int{46, 47, 48, 49, 50},
		O: []int{61, 62, 63, 64, 65},
	}
	flat := card.Flatten()
	assert.Len(t, flat, 25)
	assert.Equal(t, 1, flat[0], "B column first")
	assert.Equal(t, 16, flat[5])
	assert.Equal(t, FreeCell, flat[12], "free cell at column-major center")
	assert.Equal(t, 65, flat[24])
}

func TestPresetPatternsWellFormed(t *testing.T) {
	for _, p := range PresetPatterns() {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Index, "pattern %s", p.Name)
		seen := make(map[int]bool)
		for _, idx := range p.Index {
			assert.GreaterOrEqual(t, idx, 0, "pattern %s", p.Name)
			assert.Less(t, idx, 25, "pattern %s", p.Name)
			assert.False(t, seen[idx], "pattern %s repeats index %d", p.Name, idx)
			seen[idx] = true
		}
	}
}

func TestFullCardPatternCoversGrid(t *testing.T) {
	p := FullCardPattern()
	assert.Len(t, p.Index, 25)
}
