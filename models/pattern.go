package models

// WinningPattern names the set of 5x5 grid cells that must all be marked to
// win. Index values are row-major over the displayed grid (0 = top-left,
// 24 = bottom-right); the free cell's position is implicitly satisfied.
type WinningPattern struct {
	Name  string `json:"name"`
	Index []int  `json:"index"`
}

// FullCardPattern covers every cell. Used as the default when a room is
// created without a pattern.
func FullCardPattern() WinningPattern {
	index := make([]int, ColumnCount*ColumnSize)
	for i := range index {
		index[i] = i
	}
	return WinningPattern{Name: "Full Card", Index: index}
}

// PresetPatterns are the masks clients can offer without hand-building an
// index list.
func PresetPatterns() []WinningPattern {
	frame := make([]int, 0, 16)
	for i := 0; i < ColumnCount*ColumnSize; i++ {
		row, col := i/ColumnSize, i%ColumnSize
		if row == 0 || row == ColumnSize-1 || col == 0 || col == ColumnSize-1 {
			frame = append(frame, i)
		}
	}
	return []WinningPattern{
		{Name: "Middle Row", Index: []int{10, 11, 12, 13, 14}},
		{Name: "Middle Column", Index: []int{2, 7, 12, 17, 22}},
		{Name: "Diagonal", Index: []int{0, 6, 12, 18, 24}},
		{Name: "Four Corners", Index: []int{0, 4, 20, 24}},
		{Name: "X", Index: []int{0, 6, 12, 18, 24, 4, 8, 16, 20}},
		{Name: "Plus", Index: []int{10, 11, 12, 13, 14, 2, 7, 17, 22}},
		{Name: "Frame", Index: frame},
		FullCardPattern(),
	}
}
