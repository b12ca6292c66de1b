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

// Package caption decides, frame by frame, what the roll-up caption
// display should do and renders the decision into CEA-608 bytes.
package caption

import (
	"fmt"
	"sync"

	"github.com/streamtools/cc-injector/cea608"
)

// Source yields at most one sanitized caption line per frame. Poll
// must never block.
type Source interface {
	Poll() (string, bool)
}

// Processor advances the caption display once per decoded video
// frame. It is driven synchronously by the frame loop; only Status is
// safe to call from other goroutines.
type Processor struct {
	source        Source
	window        *Window
	enc           *cea608.Encoder
	bootstrapText string

	state RollState

	// Guarded copies for Status, which the dbus goroutine calls.
	mu       sync.Mutex
	shown    RollState
	rolls    uint64
	repaints uint64
}

// NewProcessor wires a caption pipeline for a stream with the given
// encoder time base.
func NewProcessor(conf *Config, timeBaseNum, timeBaseDen int, source Source) *Processor {
	return &Processor{
		source:        source,
		window:        NewWindow(timeBaseNum, timeBaseDen, conf.LingerMS, conf.Bootstrap),
		enc:           cea608.NewEncoder(conf.Row),
		bootstrapText: conf.BootstrapText,
	}
}

// Process advances the caption state for the frame at pts and returns
// the cc_data bytes to attach to it, or nil when the frame should
// carry no caption. It never blocks and never fails; anything that
// goes wrong degrades to an empty return.
func (p *Processor) Process(pts int64) []byte {
	pending, havePending := p.source.Poll()
	if havePending {
		p.window.NoteExternal(pts)
	}
	if due := p.window.BootstrapDue(pts); due && !havePending {
		pending = p.bootstrapText
		havePending = true
	}

	act := decide(&p.state, pending, havePending, p.window.Lingering(pts))

	var cc []byte
	switch act.kind {
	case actionRoll:
		cc = p.enc.Roll(act.text)
	case actionRepaint:
		cc = p.enc.Repaint(act.text)
	default:
		return nil
	}

	p.mu.Lock()
	p.shown = p.state
	if act.kind == actionRoll {
		p.rolls++
	} else {
		p.repaints++
	}
	p.mu.Unlock()
	return cc
}

// Status summarises the display state for the control service.
func (p *Processor) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("top=%q bottom=%q rolls=%d repaints=%d",
		p.shown.Top, p.shown.Bottom, p.rolls, p.repaints)
}
