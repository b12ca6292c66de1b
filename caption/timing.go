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

import "math"

// NoPTS marks a frame without a defined presentation timestamp.
const NoPTS = math.MinInt64

const bootstrapSeconds = 1

// Window tracks the bootstrap and linger expiries against frame
// presentation time, in encoder time-base ticks.
type Window struct {
	lingerTicks    int64
	bootstrapTicks int64
	bootstrap      bool

	started         bool
	sawExternal     bool
	bootstrapExpire int64
	lingerExpire    int64
	lingerArmed     bool
}

// NewWindow returns a Window for an encoder time base of
// timeBaseNum/timeBaseDen seconds per tick.
func NewWindow(timeBaseNum, timeBaseDen, lingerMS int, bootstrap bool) *Window {
	ticksPerSecond := float64(timeBaseDen) / float64(timeBaseNum)
	return &Window{
		lingerTicks:    int64(float64(lingerMS) / 1000.0 * ticksPerSecond),
		bootstrapTicks: int64(bootstrapSeconds * ticksPerSecond),
		bootstrap:      bootstrap,
	}
}

// NoteExternal records an accepted external caption event at pts,
// re-arming the linger window. Once an external line has been seen the
// synthetic bootstrap line is never injected again.
func (w *Window) NoteExternal(pts int64) {
	w.sawExternal = true
	w.lingerExpire = expiry(pts, w.lingerTicks)
	w.lingerArmed = true
}

// BootstrapDue reports whether the bootstrap line should be treated as
// a pending caption for the frame at pts. The first call arms the
// bootstrap window and, if no external caption has arrived yet, the
// linger window for the same interval.
func (w *Window) BootstrapDue(pts int64) bool {
	if !w.bootstrap {
		return false
	}
	if !w.started {
		w.started = true
		w.bootstrapExpire = expiry(pts, w.bootstrapTicks)
		if !w.sawExternal {
			w.lingerExpire = w.bootstrapExpire
			w.lingerArmed = true
		}
		return !w.sawExternal
	}
	if w.sawExternal {
		return false
	}
	return pts != NoPTS && pts < w.bootstrapExpire
}

// Lingering reports whether the frame at pts is still within the
// linger window. Frames without a timestamp cannot be timed relative
// to earlier events and never linger.
func (w *Window) Lingering(pts int64) bool {
	return w.lingerArmed && pts != NoPTS && pts < w.lingerExpire
}

// expiry returns pts + ticks, treating ticks as an absolute expiry for
// frames without a timestamp.
func expiry(pts, ticks int64) int64 {
	if pts == NoPTS {
		return ticks
	}
	return pts + ticks
}
