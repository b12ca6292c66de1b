// cc-injector - inject live text captions into a video stream as CEA-608
//  Copyright (C) 2026, Streamtools
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package cea608 builds CEA-608 caption bitstreams as A/53 cc_data
// triplets for field 1. Only the two line roll-up display mode is
// supported; pop-on building is available but unused by default.
package cea608

import (
	"fmt"
	"math/bits"
)

// MaxLineLength is the longest caption line that fits a single row.
const MaxLineLength = 32

// tripletHeader marks a cc_data triplet as valid field 1 data.
const tripletHeader = 0xFC

// Channel 1 control code pairs. Each is emitted as a single triplet.
const (
	ctrlRollUp2        = 0x25 // RU2: select two line roll-up
	ctrlCarriageReturn = 0x2D // CR: roll the display up one row
	ctrlResumeLoading  = 0x20 // RCL: start pop-on caption
	ctrlEndOfCaption   = 0x2F // EOC: display pop-on caption
	ctrlPrefix         = 0x14
)

// Parity returns the 7 bit value b with bit 7 set so that the total
// number of set bits is odd, as CEA-608 receivers require.
func Parity(b byte) byte {
	b &= 0x7F
	if bits.OnesCount8(b)%2 == 0 {
		return b | 0x80
	}
	return b
}

// rowIndex maps a caption row (1-15) to its position in the CEA-608
// row code table. The table interleaves rows across the address space
// so neighbouring codes address distant rows.
var rowIndex = [16]int{
	0,      // unused
	2, 3,   // rows 1, 2
	4, 5,   // rows 3, 4
	10, 11, // rows 5, 6
	12, 13, // rows 7, 8
	14, 15, // rows 9, 10
	0, 6, // rows 11, 12
	7, 8, // rows 13, 14
	9, // row 15
}

// PAC returns the Preamble Address Code pair for the given row with
// white, non-underlined text. Row must be in the range 1 to 15.
func PAC(row int) (byte, byte, error) {
	return pac(row, 0, false)
}

func pac(row int, attr byte, underline bool) (byte, byte, error) {
	if row < 1 || row > 15 {
		return 0, 0, fmt.Errorf("caption row %d out of range (1-15)", row)
	}
	idx := rowIndex[row]
	rowLSB := byte(idx & 1)
	rowHi3 := byte((idx >> 1) & 7)

	b1 := byte(0x10 | rowHi3)
	b2 := byte(0x40 | rowLSB<<5 | (attr&0x0F)<<1)
	if underline {
		b2 |= 1
	}
	return b1, b2, nil
}

// Encoder renders caption display updates into cc_data bytes. It
// remembers whether the roll-up session has started so the mode select
// code is only repeated when a roll occurs.
type Encoder struct {
	row     int
	started bool
}

// NewEncoder returns an Encoder targeting the given caption row.
func NewEncoder(row int) *Encoder {
	return &Encoder{row: row}
}

func appendPair(out []byte, a, b byte) []byte {
	return append(out, tripletHeader, Parity(a), Parity(b))
}

// appendText encodes up to MaxLineLength characters of line as
// character pairs, padding a final odd character with a space.
func appendText(out []byte, line string) []byte {
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength]
	}
	for i := 0; i < len(line); i += 2 {
		c2 := byte(' ')
		if i+1 < len(line) {
			c2 = line[i+1]
		}
		out = appendPair(out, line[i], c2)
	}
	return out
}

// appendPAC appends the preamble for the encoder's row. An out of
// range row is skipped rather than emitting a malformed pair.
func (e *Encoder) appendPAC(out []byte) []byte {
	b1, b2, err := PAC(e.row)
	if err != nil {
		return out
	}
	return appendPair(out, b1, b2)
}

// Roll emits a full roll-up update: mode select, carriage return to
// scroll the display, then the new bottom line.
func (e *Encoder) Roll(line string) []byte {
	out := appendPair(nil, ctrlPrefix, ctrlRollUp2)
	out = appendPair(out, ctrlPrefix, ctrlCarriageReturn)
	out = e.appendPAC(out)
	out = appendText(out, line)
	e.started = true
	return out
}

// Repaint redraws the bottom line without scrolling. The mode select
// code is included only the first time the encoder emits anything.
func (e *Encoder) Repaint(line string) []byte {
	var out []byte
	if !e.started {
		out = appendPair(out, ctrlPrefix, ctrlRollUp2)
	}
	out = e.appendPAC(out)
	out = appendText(out, line)
	e.started = true
	return out
}

// PopOn builds a complete pop-on caption (RCL, text, EOC). Kept for
// receivers that cannot track roll-up mode; not used by the injector.
func (e *Encoder) PopOn(line string) []byte {
	out := appendPair(nil, ctrlPrefix, ctrlResumeLoading)
	out = e.appendPAC(out)
	out = appendText(out, line)
	out = appendPair(out, ctrlPrefix, ctrlEndOfCaption)
	return out
}
