package models

// Table is an ordered, read-only sequence of tracker records.
//
// Row order is the sheet order. Group membership is positional: a record
// with a blank vessel belongs to the nearest preceding record that has one.
// The owner of every row is resolved once, in NewTable.
type Table struct {
	records []Record
	owners  []int // index of the owning row, -1 when none
}

// NewTable builds a table over records. The slice must not be modified
// afterwards.
func NewTable(records []Record) *Table {
	owners := make([]int, len(records))
	last := -1
	for i, rec := range records {
		if rec.Vessel != nil {
			last = i
		}
		owners[i] = last
	}
	return &Table{records: records, owners: owners}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the record at index i.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Owner returns the vessel owning row i and whether one exists.
func (t *Table) Owner(i int) (string, bool) {
	if i < 0 || i >= t.Len() {
		return "", false
	}
	o := t.owners[i]
	if o < 0 {
		return "", false
	}
	return *t.records[o].Vessel, true
}

// Orphans returns the number of rows without an owning vessel. A non-zero
// count means the first row of the table has a blank vessel.
func (t *Table) Orphans() int {
	n := 0
	for i := 0; i < t.Len(); i++ {
		if t.owners[i] < 0 {
			n++
		}
	}
	return n
}
