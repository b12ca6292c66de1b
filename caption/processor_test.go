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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource delivers a preset line at a given poll number,
// standing in for the UDP feed.
type scriptedSource struct {
	polls int
	lines map[int]string
}

func (s *scriptedSource) Poll() (string, bool) {
	line, ok := s.lines[s.polls]
	s.polls++
	return line, ok
}

func testConfig(bootstrap bool) *Config {
	conf := DefaultConfig()
	conf.Bootstrap = bootstrap
	return &conf
}

// 30fps over a 90kHz time base.
func pts(frame int) int64 {
	return int64(frame) * 3000
}

const (
	ru2Triplet = 3
	crTriplet  = 3
	pacTriplet = 3
)

func textBytes(line string) int {
	return (len(line) + 1) / 2 * 3
}

func TestBootstrapScenario(t *testing.T) {
	src := &scriptedSource{lines: map[int]string{}}
	proc := NewProcessor(testConfig(true), 1, 90000, src)

	// First frame paints the bootstrap line, mode select included.
	cc := proc.Process(pts(0))
	assert.Equal(t, ru2Triplet+pacTriplet+textBytes("CC ONLINE"), len(cc))

	// The rest of the first second repaints it.
	for frame := 1; frame < 30; frame++ {
		cc := proc.Process(pts(frame))
		assert.Equal(t, pacTriplet+textBytes("CC ONLINE"), len(cc), "frame %d", frame)
	}

	// One second in, the window is over and nothing lingers.
	for frame := 30; frame < 40; frame++ {
		assert.Nil(t, proc.Process(pts(frame)), "frame %d", frame)
	}
}

func TestExternalCaptionScenario(t *testing.T) {
	src := &scriptedSource{lines: map[int]string{
		10: "HELLO",
		12: "HELLO",
		20: "WORLD",
	}}
	proc := NewProcessor(testConfig(false), 1, 90000, src)

	// Nothing to show before the first line arrives.
	for frame := 0; frame < 10; frame++ {
		require.Nil(t, proc.Process(pts(frame)), "frame %d", frame)
	}

	// First line: painted onto the empty display.
	cc := proc.Process(pts(10))
	assert.Equal(t, ru2Triplet+pacTriplet+textBytes("HELLO"), len(cc))

	// Lingering between events repaints without mode select.
	cc = proc.Process(pts(11))
	assert.Equal(t, pacTriplet+textBytes("HELLO"), len(cc))

	// The duplicate repaints instead of rolling.
	cc = proc.Process(pts(12))
	assert.Equal(t, pacTriplet+textBytes("HELLO"), len(cc))

	for frame := 13; frame < 20; frame++ {
		proc.Process(pts(frame))
	}

	// A distinct line rolls: RU2 and CR lead the sequence.
	cc = proc.Process(pts(20))
	require.Equal(t, ru2Triplet+crTriplet+pacTriplet+textBytes("WORLD"), len(cc))
	assert.Equal(t, []byte{0xFC, 0x94, 0x25, 0xFC, 0x94, 0xAD}, cc[:6])

	assert.Equal(t, "HELLO", proc.state.Top)
	assert.Equal(t, "WORLD", proc.state.Bottom)
}

func TestLingerExpiry(t *testing.T) {
	src := &scriptedSource{lines: map[int]string{0: "HELLO"}}
	proc := NewProcessor(testConfig(false), 1, 90000, src)

	require.NotNil(t, proc.Process(pts(0)))

	// 750ms at 90kHz is 67500 ticks: frame 22 (pts 66000) is the last
	// frame inside the window at 30fps.
	for frame := 1; frame <= 22; frame++ {
		assert.NotNil(t, proc.Process(pts(frame)), "frame %d", frame)
	}
	assert.Nil(t, proc.Process(pts(23)))
}

func TestRealCaptionBeatsBootstrapOnSameFrame(t *testing.T) {
	src := &scriptedSource{lines: map[int]string{0: "HELLO"}}
	proc := NewProcessor(testConfig(true), 1, 90000, src)

	cc := proc.Process(pts(0))
	require.NotNil(t, cc)
	assert.Equal(t, "HELLO", proc.state.Bottom)

	// Bootstrap text is never injected once a real line has arrived.
	cc = proc.Process(pts(1))
	require.NotNil(t, cc)
	assert.Equal(t, "HELLO", proc.state.Bottom)
}

func TestNoPTSFrames(t *testing.T) {
	src := &scriptedSource{lines: map[int]string{0: "HELLO"}}
	proc := NewProcessor(testConfig(false), 1, 90000, src)

	require.NotNil(t, proc.Process(NoPTS))

	// Untimed frames cannot satisfy the linger comparison...
	assert.Nil(t, proc.Process(NoPTS))

	// ...but the expiry armed by the untimed event is an absolute tick
	// count, so timed frames before it still linger.
	assert.NotNil(t, proc.Process(60000))
	assert.Nil(t, proc.Process(67500))
}

func TestStatus(t *testing.T) {
	src := &scriptedSource{lines: map[int]string{0: "HELLO", 1: "WORLD"}}
	proc := NewProcessor(testConfig(false), 1, 90000, src)

	proc.Process(pts(0))
	proc.Process(pts(1))

	status := proc.Status()
	assert.Contains(t, status, `top="HELLO"`)
	assert.Contains(t, status, `bottom="WORLD"`)
	assert.Contains(t, status, "rolls=1")
	assert.Contains(t, status, "repaints=1")
}
