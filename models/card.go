package models

// FreeCell is the sentinel held by the card's center cell and leading every
// call sequence. No bingo number is ever 0.
const FreeCell = 0

const (
	ColumnSize  = 5
	ColumnCount = 5
	ColumnRange = 15
	MaxNumber   = ColumnCount * ColumnRange

	// Free space sits in the middle of the N column.
	FreeCellRow = 2
)

// Card is one 5x5 bingo card. Cells are stored per column; column k draws
// from [15(k-1)+1, 15k] and N[2] always holds FreeCell.
type Card struct {
	B []int `json:"B"`
	I []int `json:"I"`
	N []int `json:"N"`
	G []int `json:"G"`
	O []int `json:"O"`
}

// Columns returns the card's columns in B-I-N-G-O order.
func (c Card) Columns() [][]int {
	return [][]int{c.B, c.I, c.N, c.G, c.O}
}

// Flatten lays the card out column-major: B occupies indices 0-4, I 5-9 and
// so on. WinningPattern indices are row-major and must be converted before
// indexing the result.
func (c Card) Flatten() []int {
	flat := make([]int, 0, ColumnCount*ColumnSize)
	for _, col := range c.Columns() {
		flat = append(flat, col...)
	}
	return flat
}
