package model

// Dataset is a tabular export payload.
type Dataset struct {
	// Name is the attachment file name, random when empty.
	Name    string
	Columns []string
	Rows    [][]string
}

// Len returns amount of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}
