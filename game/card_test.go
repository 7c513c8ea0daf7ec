package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EMCSquare12/live-bingo/models"
)

func TestGenerateCardColumns(t *testing.T) {
	ranges := []struct {
		min, max int
	}{
		{1, 15}, {16, 30}, {31, 45}, {46, 60}, {61, 75},
	}

	for i := 0; i < 200; i++ {
		card := GenerateCard()
		for col, numbers := range card.Columns() {
			require.Len(t, numbers, models.ColumnSize, "column %d", col)
			for row, n := range numbers {
				if col == 2 && row == models.FreeCellRow {
					assert.Equal(t, models.FreeCell, n, "center cell must be free")
					continue
				}
				assert.GreaterOrEqual(t, n, ranges[col].min, "column %d", col)
				assert.LessOrEqual(t, n, ranges[col].max, "column %d", col)
			}
		}
	}
}

func TestGenerateCardDistinctness(t *testing.T) {
	for i := 0; i < 200; i++ {
		card := GenerateCard()
		seen := make(map[int]bool)
		for _, n := range card.Flatten() {
			if n == models.FreeCell {
				continue
			}
			require.False(t, seen[n], "duplicate %d in card %+v", n, card)
			seen[n] = true
		}
		require.Len(t, seen, models.ColumnCount*models.ColumnSize-1)
	}
}

func TestUniqueNumbersFullRange(t *testing.T) {
	// Drawing the whole range forces the sampler through every rejection.
	got := uniqueNumbers(1, 5, 5)
	require.ElementsMatch(t, []int{1, 2, 3, 4, 5}, got)
}
