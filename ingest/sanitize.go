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

package ingest

import "strings"

// maxLineLength matches the longest line a single CEA-608 row holds.
const maxLineLength = 32

// LatestLine extracts the most recent usable caption line from a raw
// datagram. Messages may hold several CR/LF separated lines; only the
// last non-empty one matters since newer text supersedes older text
// within a single poll.
func LatestLine(msg string) (string, bool) {
	msg = strings.Replace(msg, "\r", "\n", -1)
	var last string
	for _, seg := range strings.Split(msg, "\n") {
		if seg != "" {
			last = seg
		}
	}
	if last == "" {
		return "", false
	}
	return SanitizeLine(last)
}

// SanitizeLine reduces line to displayable caption text: printable
// ASCII only, tabs become spaces, the line is cut at the first other
// control byte, clamped to 32 characters and space trimmed. Returns
// false if nothing displayable remains.
func SanitizeLine(line string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(line) && b.Len() < maxLineLength; i++ {
		c := line[i]
		if c >= 0x20 && c <= 0x7E {
			b.WriteByte(c)
		} else if c == '\t' {
			b.WriteByte(' ')
		} else {
			// Control byte: keep what was copied so far.
			break
		}
	}
	out := strings.Trim(b.String(), " ")
	if out == "" {
		return "", false
	}
	return out, true
}
