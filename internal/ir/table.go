package ir

// TableBlock represents a row-major table grid.
type TableBlock struct {
	Rows              [][]Cell `json:"rows"`
	Caption           []Run    `json:"caption,omitempty"`
	FirstRowHeader    bool     `json:"first_row_header,omitempty"`
	FirstColumnHeader bool     `json:"first_column_header,omitempty"`
}

// Cell represents a single cell in a table.
type Cell struct {
	Blocks    []Block   `json:"blocks"`
	RowSpan   int       `json:"row_span,omitempty"` // number of rows this cell spans
	ColSpan   int       `json:"col_span,omitempty"` // number of columns this cell spans
	Alignment Alignment `json:"alignment,omitempty"`
}

// NewTable creates an empty table.
func NewTable() *TableBlock {
	return &TableBlock{Rows: make([][]Cell, 0)}
}

// AddRow appends a row of cells.
func (t *TableBlock) AddRow(cells []Cell) {
	t.Rows = append(t.Rows, cells)
}

// GetCell returns the cell at the specified position.
func (t *TableBlock) GetCell(row, col int) *Cell {
	if row >= 0 && row < len(t.Rows) && col >= 0 && col < len(t.Rows[row]) {
		return &t.Rows[row][col]
	}
	return nil
}

// Cols returns the widest row's column count, counting column spans.
func (t *TableBlock) Cols() int {
	maxCols := 0
	for _, row := range t.Rows {
		cols := 0
		for _, cell := range row {
			span := cell.ColSpan
			if span < 1 {
				span = 1
			}
			cols += span
		}
		if cols > maxCols {
			maxCols = cols
		}
	}
	return maxCols
}

// IsEmpty returns true if the table has no rows.
func (t *TableBlock) IsEmpty() bool {
	return len(t.Rows) == 0
}
