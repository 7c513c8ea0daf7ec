package game

import (
	"fmt"
	"math/rand"

	"github.com/EMCSquare12/live-bingo/models"
)

// maxDrawAttempts bounds the rejection sampler. Five unique draws out of
// fifteen values converge almost immediately; the cap only exists so a
// broken RNG cannot spin forever.
const maxDrawAttempts = 1000

// uniqueNumbers draws count distinct values from [min, max] inclusive.
func uniqueNumbers(min, max, count int) []int {
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	for attempts := 0; len(out) < count; attempts++ {
		if attempts > maxDrawAttempts {
			panic(fmt.Sprintf("card generator: %d unique values in [%d,%d] not found after %d draws", count, min, max, maxDrawAttempts))
		}
		n := min + rand.Intn(max-min+1)
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// GenerateCard produces one card: five unique numbers per column, each
// column drawing from its own 15-value range, with the middle N cell held
// by the free-space sentinel.
func GenerateCard() models.Card {
	n := uniqueNumbers(31, 45, models.ColumnSize-1)
	return models.Card{
		B: uniqueNumbers(1, 15, models.ColumnSize),
		I: uniqueNumbers(16, 30, models.ColumnSize),
		N: []int{n[0], n[1], models.FreeCell, n[2], n[3]},
		G: uniqueNumbers(46, 60, models.ColumnSize),
		O: uniqueNumbers(61, 75, models.ColumnSize),
	}
}
