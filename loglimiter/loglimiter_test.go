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

package loglimiter

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDistinctMessages(t *testing.T) {
	logs, reset := captureLogs()
	defer reset()

	limiter := New(time.Minute)
	limiter.Print("hello")
	limiter.Printf("count: %d", 42)

	assert.Equal(t, "hello\ncount: 42\n", logs.String())
}

func TestRepeatSuppressed(t *testing.T) {
	logs, reset := captureLogs()
	defer reset()

	now := time.Now()
	limiter := New(2 * time.Second)
	limiter.nowFunc = func() time.Time { return now }

	limiter.Print("caption received: \"HELLO\"")
	assert.Equal(t, "caption received: \"HELLO\"\n", logs.String())

	// Still within the interval: suppressed.
	now = now.Add(time.Second)
	limiter.Print("caption received: \"HELLO\"")
	assert.Equal(t, "caption received: \"HELLO\"\n", logs.String())

	// Past the interval: logged again.
	now = now.Add(time.Second)
	limiter.Print("caption received: \"HELLO\"")
	assert.Equal(t, "caption received: \"HELLO\"\ncaption received: \"HELLO\"\n", logs.String())
}

func TestInterleavingDoesNotReset(t *testing.T) {
	logs, reset := captureLogs()
	defer reset()

	now := time.Now()
	limiter := New(time.Minute)
	limiter.nowFunc = func() time.Time { return now }

	limiter.Print("hello")
	limiter.Print("world")
	limiter.Print("hello")
	limiter.Print("world")

	// Each message is limited independently.
	assert.Equal(t, "hello\nworld\n", logs.String())
}

func TestStaleEntriesDropped(t *testing.T) {
	_, reset := captureLogs()
	defer reset()

	now := time.Now()
	limiter := New(time.Second)
	limiter.nowFunc = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		limiter.Printf("msg %d", i)
	}
	now = now.Add(2 * time.Second)
	limiter.Print("flush")
	assert.True(t, len(limiter.lastSeen) <= 65)
}

func captureLogs() (*bytes.Buffer, func()) {
	flags := log.Flags()
	log.SetFlags(0)

	logs := new(bytes.Buffer)
	log.SetOutput(logs)

	return logs, func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}
}
