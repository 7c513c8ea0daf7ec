package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EMCSquare12/live-bingo/models"
)

func fixedCard() models.Card {
	return models.Card{
		B: []int{1, 2, 3, 4, 5},
		I: []int{16, 17, 18, 19, 20},
		N: []int{31, 32, models.FreeCell, 33, 34},
		G: []int{46, 47, 48, 49, 50},
		O: []int{61, 62, 63, 64, 65},
	}
}

func middleRow() models.WinningPattern {
	return models.WinningPattern{Name: "Middle Row", Index: []int{10, 11, 12, 13, 14}}
}

func TestEvaluateEmptyInputs(t *testing.T) {
	assert.Empty(t, Evaluate(nil, middleRow(), nil))
	assert.Empty(t, Evaluate([]models.Card{fixedCard()}, models.WinningPattern{}, nil))
}

func TestEvaluateRowMajorConversion(t *testing.T) {
	// Row-major indices 10-14 are the middle row of the displayed grid,
	// which lands on index 2 of each column. The free cell is dropped.
	got := Evaluate([]models.Card{fixedCard()}, middleRow(), nil)
	assert.Equal(t, []int{3, 18, 48, 63}, got)
}

func TestEvaluateSubtractsMarked(t *testing.T) {
	got := Evaluate([]models.Card{fixedCard()}, middleRow(), []int{3, 48, 99})
	assert.Equal(t, []int{18, 63}, got)
}

func TestEvaluateEmptyIffAllRequiredMarked(t *testing.T) {
	cards := []models.Card{fixedCard()}
	pattern := middleRow()

	assert.Empty(t, Evaluate(cards, pattern, []int{3, 18, 48, 63}))
	assert.NotEmpty(t, Evaluate(cards, pattern, []int{3, 18, 48}))
}

func TestEvaluatePicksClosestCard(t *testing.T) {
	far := fixedCard()
	near := models.Card{
		B: []int{6, 7, 8, 9, 10},
		I: []int{21, 22, 23, 24, 25},
		N: []int{35, 36, models.FreeCell, 37, 38},
		G: []int{51, 52, 53, 54, 55},
		O: []int{66, 67, 68, 69, 70},
	}
	// near's middle row is 8, 23, 53, 68; three of those are marked.
	got := Evaluate([]models.Card{far, near}, middleRow(), []int{8, 23, 53})
	assert.Equal(t, []int{68}, got)
}

func TestEvaluateTieBreaksOnFirstCard(t *testing.T) {
	a, b := fixedCard(), fixedCard()
	b.B[2] = 11
	got := Evaluate([]models.Card{a, b}, middleRow(), nil)
	assert.Equal(t, []int{3, 18, 48, 63}, got, "first card wins the tie")
}

func TestEvaluateIsPure(t *testing.T) {
	cards := []models.Card{fixedCard()}
	pattern := middleRow()
	marked := []int{3, 18}

	first := Evaluate(cards, pattern, marked)
	second := Evaluate(cards, pattern, marked)
	assert.Equal(t, first, second)

	require.Equal(t, fixedCard(), cards[0], "card must not be modified")
	require.Equal(t, []int{10, 11, 12, 13, 14}, pattern.Index)
	require.Equal(t, []int{3, 18}, marked)
}

func TestEvaluateIgnoresOutOfRangeIndices(t *testing.T) {
	pattern := models.WinningPattern{Name: "bogus", Index: []int{-1, 12, 99}}
	// Index 12 is the free cell, so nothing is required at all.
	assert.Empty(t, Evaluate([]models.Card{fixedCard()}, pattern, nil))
}
