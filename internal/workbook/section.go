package workbook

import "sort"

// Style tags how a cell is presented by the storage collaborator.
type Style string

const (
	StyleNone      Style = ""
	StyleNormal    Style = "normal"
	StyleHighlight Style = "highlight"
	StyleHeader    Style = "header"
	StyleTitle     Style = "title"
)

// Row is one non-blank row of a section.
type Row struct {
	Number int
	Cells  []Cell
}

// Cell returns the 1-based column of the row, blank when out of range.
func (r Row) Cell(col int) Cell {
	if col < 1 || col > len(r.Cells) {
		return Cell{}
	}
	return r.Cells[col-1]
}

// Section is one named sheet of the document.
type Section struct {
	name   string
	cells  map[cellKey]Cell
	styles map[cellKey]Style
	rows   int
	cols   int
}

type cellKey struct{ col, row int }

func newSection(name string) *Section {
	return &Section{
		name:   name,
		cells:  make(map[cellKey]Cell),
		styles: make(map[cellKey]Style),
	}
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// RowCount is the highest row ever written, including cleared rows.
func (s *Section) RowCount() int { return s.rows }

// ColCount is the highest column ever written.
func (s *Section) ColCount() int { return s.cols }

// Reserve raises the row and column high-water marks without writing cells.
// Marks never go down.
func (s *Section) Reserve(rows, cols int) {
	if rows > s.rows {
		s.rows = rows
	}
	if cols > s.cols {
		s.cols = cols
	}
}

// Get reads a cell by A1 address. Invalid addresses read as blank.
func (s *Section) Get(addr string) Cell {
	col, row, err := ParseAddress(addr)
	if err != nil {
		return Cell{}
	}
	return s.At(col, row)
}

// At reads a cell by position.
func (s *Section) At(col, row int) Cell {
	return s.cells[cellKey{col, row}]
}

// Style returns the style tag of a cell.
func (s *Section) Style(addr string) Style {
	col, row, err := ParseAddress(addr)
	if err != nil {
		return StyleNone
	}
	return s.styles[cellKey{col, row}]
}

// Set writes a cell by A1 address. StyleNone keeps the current style.
func (s *Section) Set(addr string, c Cell, style Style) error {
	col, row, err := ParseAddress(addr)
	if err != nil {
		return err
	}
	s.SetAt(col, row, c, style)
	return nil
}

// SetAt writes a cell by position. StyleNone keeps the current style.
func (s *Section) SetAt(col, row int, c Cell, style Style) {
	if col < 1 || row < 1 {
		return
	}
	key := cellKey{col, row}
	if c.IsEmpty() {
		delete(s.cells, key)
	} else {
		s.cells[key] = c
	}
	if style != StyleNone {
		s.styles[key] = style
	}
	if row > s.rows {
		s.rows = row
	}
	if col > s.cols {
		s.cols = col
	}
}

// Row returns the cells of one row, padded to the section width.
func (s *Section) Row(row int) Row {
	cells := make([]Cell, s.cols)
	for col := 1; col <= s.cols; col++ {
		cells[col-1] = s.cells[cellKey{col, row}]
	}
	return Row{Number: row, Cells: cells}
}

// Rows enumerates non-blank rows starting at from, in row order.
func (s *Section) Rows(from int) []Row {
	if from < 1 {
		from = 1
	}
	present := make(map[int]struct{})
	for key := range s.cells {
		if key.row >= from {
			present[key.row] = struct{}{}
		}
	}
	numbers := make([]int, 0, len(present))
	for row := range present {
		numbers = append(numbers, row)
	}
	sort.Ints(numbers)

	out := make([]Row, 0, len(numbers))
	for _, row := range numbers {
		out = append(out, s.Row(row))
	}
	return out
}

// AppendRow writes the cells into the first row after every row ever used,
// never before FirstDataRow, and returns its number.
func (s *Section) AppendRow(style Style, cells ...Cell) int {
	row := s.rows + 1
	if row < FirstDataRow {
		row = FirstDataRow
	}
	for i, c := range cells {
		s.SetAt(i+1, row, c, style)
	}
	if row > s.rows {
		s.rows = row
	}
	return row
}

// ClearRow blanks every cell of a row. The row number stays reserved.
func (s *Section) ClearRow(row int) {
	for key := range s.cells {
		if key.row == row {
			delete(s.cells, key)
		}
	}
	for key := range s.styles {
		if key.row == row {
			delete(s.styles, key)
		}
	}
}

// RowIsBlank reports whether a row holds no values.
func (s *Section) RowIsBlank(row int) bool {
	for key := range s.cells {
		if key.row == row {
			return false
		}
	}
	return true
}
