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

package caption

type actionKind int

const (
	actionNone actionKind = iota
	actionRepaint
	actionRoll
)

type action struct {
	kind actionKind
	text string
}

// RollState holds the two line roll-up display state. It is owned by
// the frame loop and mutated only through decide.
type RollState struct {
	Started bool
	Top     string
	Bottom  string
}

// decide picks the display action for one frame and updates st to
// match. pending is the new line surfacing from ingest or bootstrap
// injection (valid when havePending); lingering reports whether the
// current frame falls inside the linger window.
//
// A repeat of the current bottom line repaints rather than rolls, so a
// duplicate-prone feed never shows the same text on both rows.
func decide(st *RollState, pending string, havePending, lingering bool) action {
	if havePending && pending != "" {
		if !st.Started && st.Bottom == "" {
			st.Bottom = pending
			st.Started = true
			return action{actionRepaint, pending}
		}
		if pending != st.Bottom {
			st.Top = st.Bottom
			st.Bottom = pending
			return action{actionRoll, pending}
		}
		return action{actionRepaint, st.Bottom}
	}
	if st.Bottom != "" && lingering {
		return action{actionRepaint, st.Bottom}
	}
	return action{actionNone, ""}
}
