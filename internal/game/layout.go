package game

import (
	"github.com/pkg/errors"
)

// ErrBadRecord is returned for a record that is not eight binary digits.
var ErrBadRecord = errors.New("record must be 8 binary digits")

// BitLayout says where the lanes and the strum bar sit in an 8 bit record.
// Positions index the record's binary string, so position 0 is the most
// significant bit and position 7 the least.
type BitLayout struct {
	Lanes         [NumLanes]int
	Strum         int // -1 when the record has no strum bit
	Inverted      bool
	StrumInverted bool
}

var (
	// RegisterLayout is the guitar reader register: lanes are active low.
	RegisterLayout = BitLayout{Lanes: [NumLanes]int{7, 6, 5, 4, 3}, Strum: 2, Inverted: true}

	// SongLayout is the layout of song rows, active high and without strum.
	SongLayout = BitLayout{Lanes: [NumLanes]int{7, 6, 5, 4, 3}, Strum: -1}
)

func bit(v byte, pos int) bool {
	return v&(1<<(7-pos)) != 0
}

// DecodeByte converts a raw register value.
func (b BitLayout) DecodeByte(v byte) ControllerState {
	var c ControllerState
	for i, pos := range b.Lanes {
		c.Lanes[i] = bit(v, pos) != b.Inverted
	}
	if b.Strum >= 0 {
		c.Strum = bit(v, b.Strum) != b.StrumInverted
	}
	return c
}

// EncodeByte is the inverse of DecodeByte. Bits not named by the layout are
// left clear.
func (b BitLayout) EncodeByte(c ControllerState) byte {
	var v byte
	for i, pos := range b.Lanes {
		if c.Lanes[i] != b.Inverted {
			v |= 1 << (7 - pos)
		}
	}
	if b.Strum >= 0 && c.Strum != b.StrumInverted {
		v |= 1 << (7 - b.Strum)
	}
	return v
}

// DecodeString reads an 8 character string of '0' and '1'.
func (b BitLayout) DecodeString(s string) (ControllerState, error) {
	if len(s) != 8 {
		return ControllerState{}, errors.Wrapf(ErrBadRecord, "%q", s)
	}
	var v byte
	for i := 0; i < 8; i++ {
		switch s[i] {
		case '1':
			v |= 1 << (7 - i)
		case '0':
		default:
			return ControllerState{}, errors.Wrapf(ErrBadRecord, "%q", s)
		}
	}
	return b.DecodeByte(v), nil
}

func (b BitLayout) EncodeString(c ControllerState) string {
	v := b.EncodeByte(c)
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		if bit(v, i) {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}
