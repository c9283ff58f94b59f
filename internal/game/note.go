package game

import "strings"

// NoteRow is a single chord of the song, one flag per lane.
type NoteRow [NumLanes]bool

// Row builds a NoteRow with the given lanes set.
func Row(lanes ...Lane) NoteRow {
	var r NoteRow
	for _, l := range lanes {
		r[l] = true
	}
	return r
}

func (r NoteRow) Has(l Lane) bool {
	return r[l]
}

// Count is the number of active lanes
func (r NoteRow) Count() int {
	n := 0
	for _, on := range r {
		if on {
			n++
		}
	}
	return n
}

func (r NoteRow) Empty() bool {
	return r.Count() == 0
}

// String renders the row as GRYBO with a dot for every inactive lane.
func (r NoteRow) String() string {
	const syms = "GRYBO"
	var b strings.Builder
	for i, on := range r {
		if on {
			b.WriteByte(syms[i])
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
