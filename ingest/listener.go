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

// Package ingest receives caption text for the frame loop. Lines
// arrive as UDP datagrams or through local injection (the dbus
// service) and are drained with a non-blocking poll once per frame.
package ingest

import (
	"log"
	"net"
	"time"

	"github.com/streamtools/cc-injector/loglimiter"
)

const (
	datagramSize  = 2048
	localQueueLen = 16

	recvLogInterval = 10 * time.Second
)

// Poller coalesces pending caption messages. Within one poll the last
// usable line wins; there is no queueing across polls.
type Poller struct {
	conn  net.PacketConn
	local chan string
	buf   []byte
	log   *loglimiter.LogLimiter
}

// NewPoller returns a Poller that only accepts locally injected lines.
func NewPoller() *Poller {
	return &Poller{
		local: make(chan string, localQueueLen),
		buf:   make([]byte, datagramSize),
		log:   loglimiter.New(recvLogInterval),
	}
}

// NewListener returns a Poller bound to a UDP address.
func NewListener(addr string) (*Poller, error) {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, err
	}
	log.Printf("listening for captions on udp://%s", conn.LocalAddr())
	p := NewPoller()
	p.conn = conn
	return p, nil
}

// Inject queues a line from a local source. When the queue is full the
// oldest entry is discarded; only the latest text matters.
func (p *Poller) Inject(text string) {
	for {
		select {
		case p.local <- text:
			return
		default:
			select {
			case <-p.local:
			default:
			}
		}
	}
}

// Poll drains everything currently pending and returns the newest
// usable line. It never blocks and never fails: receive errors are
// treated the same as an empty socket.
func (p *Poller) Poll() (string, bool) {
	var line string
	got := false

	if p.conn != nil {
		p.conn.SetReadDeadline(time.Now())
		for {
			n, _, err := p.conn.ReadFrom(p.buf)
			if err != nil {
				break
			}
			if s, ok := LatestLine(string(p.buf[:n])); ok {
				line = s
				got = true
			}
		}
	}

	// Local injections are newer than anything already on the socket.
	for {
		select {
		case msg := <-p.local:
			if s, ok := LatestLine(msg); ok {
				line = s
				got = true
			}
		default:
			if got {
				p.log.Printf("caption received: %q", line)
			}
			return line, got
		}
	}
}

// Close releases the UDP socket, if any.
func (p *Poller) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
