package game

// Chart is a parsed song before it is bound to a sprite geometry.
type Chart struct {
	Title          string
	Rows           []NoteRow
	Tempo          float64 // beats per minute
	RowsPerMeasure float64

	NoteCount  int64
	ChordCount int64
}

// Count fills in the note and chord counters from Rows.
func (c *Chart) Count() {
	c.NoteCount, c.ChordCount = 0, 0
	for _, r := range c.Rows {
		n := r.Count()
		c.NoteCount += int64(n)
		if n > 1 {
			c.ChordCount++
		}
	}
}
