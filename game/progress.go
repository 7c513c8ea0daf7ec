package game

import "github.com/EMCSquare12/live-bingo/models"

// toColumnMajor converts a row-major 5x5 grid index (the WinningPattern
// convention, matching how cards are displayed) into the column-major index
// space of models.Card.Flatten. Both the progress path and the win check go
// through this one conversion.
func toColumnMajor(idx int) int {
	row, col := idx/models.ColumnSize, idx%models.ColumnSize
	return col*models.ColumnSize + row
}

// requiredNumbers lists the non-free numbers a card needs for the pattern.
func requiredNumbers(card models.Card, pattern models.WinningPattern) []int {
	flat := card.Flatten()
	required := make([]int, 0, len(pattern.Index))
	for _, idx := range pattern.Index {
		if idx < 0 || idx >= len(flat) {
			continue
		}
		if n := flat[toColumnMajor(idx)]; n != models.FreeCell {
			required = append(required, n)
		}
	}
	return required
}

// Evaluate returns the numbers still needed to finish the pattern on
// whichever of cards is closest to completion, ties broken by card order.
// Pure: identical inputs always yield identical output and no input is
// modified. Empty cards or an empty pattern evaluate to an empty remainder.
func Evaluate(cards []models.Card, pattern models.WinningPattern, marked []int) []int {
	best := []int{}
	if len(cards) == 0 || len(pattern.Index) == 0 {
		return best
	}
	markedSet := make(map[int]bool, len(marked))
	for _, n := range marked {
		markedSet[n] = true
	}
	first := true
	for _, card := range cards {
		remaining := []int{}
		for _, n := range requiredNumbers(card, pattern) {
			if !markedSet[n] {
				remaining = append(remaining, n)
			}
		}
		if first || len(remaining) < len(best) {
			best = remaining
			first = false
		}
	}
	return best
}
