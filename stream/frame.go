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

package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// NoPTS marks a frame record without a presentation timestamp.
const NoPTS = math.MinInt64

// maxCaptionBytes bounds the caption payload on an output record. A
// full roll update of a 32 character line is 57 bytes.
const maxCaptionBytes = 1024

// Frame is one video frame crossing a stream socket. Pixels is sized
// by the connection header and reused between reads.
type Frame struct {
	PTS      int64
	Pixels   []byte
	Captions []byte
}

// ReadFrame reads an input record: 8 bytes of big endian pts followed
// by len(f.Pixels) pixel bytes. f.Captions is left untouched.
func ReadFrame(r io.Reader, f *Frame) error {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return err
	}
	f.PTS = int64(binary.BigEndian.Uint64(hdr[:]))
	_, err := io.ReadFull(r, f.Pixels)
	return err
}

// WriteFrame writes an input record. Used by the decoder side of the
// socket and by tests.
func WriteFrame(w io.Writer, f *Frame) error {
	var hdr [8]byte
	binary.BigEndian.PutUint64(hdr[:], uint64(f.PTS))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(f.Pixels)
	return err
}

// WriteFrameOut writes an output record: pts, a 16 bit caption length,
// the caption bytes, then the pixels. An empty caption payload is a
// zero length, not an omitted field.
func WriteFrameOut(w io.Writer, f *Frame) error {
	if len(f.Captions) > maxCaptionBytes {
		return fmt.Errorf("caption payload too large: %d bytes", len(f.Captions))
	}
	var hdr [10]byte
	binary.BigEndian.PutUint64(hdr[:8], uint64(f.PTS))
	binary.BigEndian.PutUint16(hdr[8:], uint16(len(f.Captions)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(f.Captions) > 0 {
		if _, err := w.Write(f.Captions); err != nil {
			return err
		}
	}
	_, err := w.Write(f.Pixels)
	return err
}

// ReadFrameOut reads an output record. Used by the encoder side of
// the socket and by tests.
func ReadFrameOut(r io.Reader, f *Frame) error {
	var hdr [10]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return err
	}
	f.PTS = int64(binary.BigEndian.Uint64(hdr[:8]))
	ccLen := binary.BigEndian.Uint16(hdr[8:])
	if ccLen > maxCaptionBytes {
		return fmt.Errorf("caption payload too large: %d bytes", ccLen)
	}
	if cap(f.Captions) < int(ccLen) {
		f.Captions = make([]byte, ccLen)
	}
	f.Captions = f.Captions[:ccLen]
	if ccLen > 0 {
		if _, err := io.ReadFull(r, f.Captions); err != nil {
			return err
		}
	}
	_, err := io.ReadFull(r, f.Pixels)
	return err
}
