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

// Package stream implements the frame exchange used on the decoder
// and encoder sockets: a yaml header describing the stream followed by
// fixed layout frame records.
package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v1"
)

// Header field names.
const (
	XResolution = "x-resolution"
	YResolution = "y-resolution"
	FPS         = "fps"
	FrameSize   = "frame-size"
	TimebaseNum = "timebase-num"
	TimebaseDen = "timebase-den"
	Codec       = "codec"
)

// HeaderInfo describes the stream a decoder is about to send.
type HeaderInfo struct {
	resX      int
	resY      int
	fps       int
	framesize int
	tbNum     int
	tbDen     int
	codec     string
}

// NewHeaderInfo is used by the sending side of the socket.
func NewHeaderInfo(resX, resY, fps, framesize, tbNum, tbDen int, codec string) *HeaderInfo {
	return &HeaderInfo{
		resX:      resX,
		resY:      resY,
		fps:       fps,
		framesize: framesize,
		tbNum:     tbNum,
		tbDen:     tbDen,
		codec:     codec,
	}
}

// ResX returns the frame width in pixels.
func (h *HeaderInfo) ResX() int {
	return h.resX
}

// ResY returns the frame height in pixels.
func (h *HeaderInfo) ResY() int {
	return h.resY
}

// FPS returns the nominal frame rate.
func (h *HeaderInfo) FPS() int {
	return h.fps
}

// FrameSize returns the number of pixel bytes in each frame record.
func (h *HeaderInfo) FrameSize() int {
	return h.framesize
}

// Codec names the pixel format or codec of the payload.
func (h *HeaderInfo) Codec() string {
	return h.codec
}

// TimeBase returns the encoder time base as seconds per tick
// (num/den). When the header carries no time base the frame rate is
// used, making one tick one frame.
func (h *HeaderInfo) TimeBase() (int, int, error) {
	if h.tbNum > 0 && h.tbDen > 0 {
		return h.tbNum, h.tbDen, nil
	}
	if h.fps > 0 {
		return 1, h.fps, nil
	}
	return 0, 0, errors.New("header has neither time base nor fps")
}

// Validate checks the fields every frame loop depends on.
func (h *HeaderInfo) Validate() error {
	if h.framesize <= 0 {
		return errors.New("header is missing frame-size")
	}
	_, _, err := h.TimeBase()
	return err
}

// ReadHeaderInfo consumes yaml header lines up to the blank separator
// line and parses them.
func ReadHeaderInfo(reader *bufio.Reader) (*HeaderInfo, error) {
	var buf bytes.Buffer
	for {
		line, err := reader.ReadString(byte('\n'))
		if err != nil {
			return nil, err
		}
		if strings.Trim(line, " ") == "\n" {
			break
		}
		buf.WriteString(line)
	}
	h := make(map[string]interface{})
	if err := yaml.Unmarshal(buf.Bytes(), &h); err != nil {
		return nil, err
	}

	return &HeaderInfo{
		resX:      toInt(h[XResolution]),
		resY:      toInt(h[YResolution]),
		fps:       toInt(h[FPS]),
		framesize: toInt(h[FrameSize]),
		tbNum:     toInt(h[TimebaseNum]),
		tbDen:     toInt(h[TimebaseDen]),
		codec:     toStr(h[Codec]),
	}, nil
}

// WriteHeaderInfo emits the header followed by the blank separator
// line which marks the start of frame records.
func WriteHeaderInfo(w io.Writer, h *HeaderInfo) error {
	fields := map[string]interface{}{
		XResolution: h.resX,
		YResolution: h.resY,
		FPS:         h.fps,
		FrameSize:   h.framesize,
		TimebaseNum: h.tbNum,
		TimebaseDen: h.tbDen,
		Codec:       h.codec,
	}
	out, err := yaml.Marshal(fields)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func toInt(v interface{}) int {
	out, ok := v.(int)
	if !ok {
		return 0
	}
	return out
}

func toStr(v interface{}) string {
	out, ok := v.(string)
	if !ok {
		return ""
	}
	return out
}
