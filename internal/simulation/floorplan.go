package simulation

// FloorPlan lays an ordering onto a grid.  Cells holds table numbers
// row by row; 0 marks an empty slot.
type FloorPlan struct {
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Cells [][]int `json:"cells"`
}

// Layout fills a grid of cols columns row-major from ordering.  The
// grid has at least minRows rows and grows when the ordering does not
// fit.  cols below 1 is treated as 1.
func Layout(ordering []int, minRows, cols int) FloorPlan {
	if cols < 1 {
		cols = 1
	}
	rows := (len(ordering) + cols - 1) / cols
	if rows < minRows {
		rows = minRows
	}
	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, cols)
	}
	for i, id := range ordering {
		cells[i/cols][i%cols] = id
	}
	return FloorPlan{Rows: rows, Cols: cols, Cells: cells}
}
