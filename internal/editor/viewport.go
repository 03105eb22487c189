package editor

// Frame is the column and row of the top-left visible cell.
type Frame struct {
	X int
	Y int
}

// ComputeFrame scrolls just far enough that the cursor stays margin cells
// away from the right and bottom edges of a cols x rows terminal. It is a
// pure function of the cursor, so moving back toward the origin snaps the
// frame back as well.
func ComputeFrame(col, row, cols, rows, margin int) Frame {
	return Frame{
		X: max(0, col-cols+margin),
		Y: max(0, row-rows+margin),
	}
}
