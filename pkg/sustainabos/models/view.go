package models

// View is a display table: blank values are empty strings.
type View struct {
	// Columns are the column headers.
	Columns []string `json:"columns"`
	// Rows are the cell values, one slice per row, aligned with Columns.
	Rows [][]string `json:"rows"`
}

// Empty reports whether the view has no rows.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// Len returns the number of rows.
func (v View) Len() int {
	return len(v.Rows)
}
