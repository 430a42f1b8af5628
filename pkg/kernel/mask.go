package kernel

// Mask is a sampled occupancy grid of a region. Row 0 is the top row of the
// sampled window so masks map directly onto image rows.
type Mask struct {
	Cols  int    `json:"cols"`
	Rows  int    `json:"rows"`
	Cells []bool `json:"cells"` // row-major, len Cols*Rows
}

// At reports whether the cell at column c, row r is inside the region.
// Out of range cells are outside.
func (m *Mask) At(c, r int) bool {
	if c < 0 || r < 0 || c >= m.Cols || r >= m.Rows {
		return false
	}
	return m.Cells[r*m.Cols+c]
}

// Count returns the number of inside cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Cells {
		if v {
			n++
		}
	}
	return n
}

// Coverage returns the inside fraction in [0, 1].
func (m *Mask) Coverage() float64 {
	if len(m.Cells) == 0 {
		return 0
	}
	return float64(m.Count()) / float64(len(m.Cells))
}

// IsEmpty returns true if no cell is inside.
func (m *Mask) IsEmpty() bool {
	return m.Count() == 0
}
