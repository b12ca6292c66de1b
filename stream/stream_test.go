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
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := NewHeaderInfo(1280, 720, 30, 1280*720*3/2, 1, 90000, "yuv420p")
	require.NoError(t, WriteHeaderInfo(&buf, in))

	out, err := ReadHeaderInfo(bufio.NewReader(&buf))
	require.NoError(t, err)

	assert.Equal(t, 1280, out.ResX())
	assert.Equal(t, 720, out.ResY())
	assert.Equal(t, 30, out.FPS())
	assert.Equal(t, 1280*720*3/2, out.FrameSize())
	assert.Equal(t, "yuv420p", out.Codec())

	num, den, err := out.TimeBase()
	require.NoError(t, err)
	assert.Equal(t, 1, num)
	assert.Equal(t, 90000, den)
}

func TestHeaderTimeBaseFallsBackToFPS(t *testing.T) {
	h := NewHeaderInfo(640, 480, 25, 640*480*3/2, 0, 0, "yuv420p")
	num, den, err := h.TimeBase()
	require.NoError(t, err)
	assert.Equal(t, 1, num)
	assert.Equal(t, 25, den)
}

func TestHeaderValidate(t *testing.T) {
	h := NewHeaderInfo(0, 0, 0, 0, 0, 0, "")
	assert.Error(t, h.Validate())

	h = NewHeaderInfo(640, 480, 25, 100, 0, 0, "")
	assert.NoError(t, h.Validate())
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := &Frame{PTS: 12345, Pixels: []byte{1, 2, 3, 4}}
	require.NoError(t, WriteFrame(&buf, in))

	out := &Frame{Pixels: make([]byte, 4)}
	require.NoError(t, ReadFrame(&buf, out))
	assert.Equal(t, int64(12345), out.PTS)
	assert.Equal(t, in.Pixels, out.Pixels)
}

func TestFrameOutRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := &Frame{
		PTS:      98765,
		Pixels:   []byte{9, 8, 7},
		Captions: []byte{0xFC, 0x94, 0x25},
	}
	require.NoError(t, WriteFrameOut(&buf, in))

	out := &Frame{Pixels: make([]byte, 3)}
	require.NoError(t, ReadFrameOut(&buf, out))
	assert.Equal(t, int64(98765), out.PTS)
	assert.Equal(t, in.Captions, out.Captions)
	assert.Equal(t, in.Pixels, out.Pixels)
}

func TestFrameOutNoCaptions(t *testing.T) {
	var buf bytes.Buffer
	in := &Frame{PTS: 5, Pixels: []byte{1, 2}}
	require.NoError(t, WriteFrameOut(&buf, in))

	out := &Frame{Pixels: make([]byte, 2)}
	require.NoError(t, ReadFrameOut(&buf, out))
	assert.Equal(t, 0, len(out.Captions))
}

func TestNoPTSSurvivesTheWire(t *testing.T) {
	var buf bytes.Buffer
	in := &Frame{PTS: NoPTS, Pixels: []byte{1}}
	require.NoError(t, WriteFrame(&buf, in))

	out := &Frame{Pixels: make([]byte, 1)}
	require.NoError(t, ReadFrame(&buf, out))
	assert.Equal(t, int64(NoPTS), out.PTS)
}

func TestShortReadFails(t *testing.T) {
	out := &Frame{Pixels: make([]byte, 10)}
	err := ReadFrame(bytes.NewReader([]byte{0, 0, 0}), out)
	assert.Error(t, err)
}
