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

// Package loglimiter suppresses repeats of recently seen log messages.
// The caption feed repaints the same line for many consecutive frames,
// so anything logged per accepted line needs damping.
package loglimiter

import (
	"fmt"
	"log"
	"time"
)

// New returns a LogLimiter which drops messages repeated within the
// given interval. Distinct messages do not reset each other.
func New(interval time.Duration) *LogLimiter {
	return &LogLimiter{
		interval: interval,
		nowFunc:  time.Now,
		lastSeen: make(map[string]time.Time),
	}
}

type LogLimiter struct {
	interval time.Duration
	nowFunc  func() time.Time
	lastSeen map[string]time.Time
}

func (limiter *LogLimiter) Printf(format string, v ...interface{}) {
	limiter.Print(fmt.Sprintf(format, v...))
}

func (limiter *LogLimiter) Print(s string) {
	now := limiter.nowFunc()
	if prev, ok := limiter.lastSeen[s]; ok && now.Sub(prev) < limiter.interval {
		return
	}

	log.Print(s)
	limiter.lastSeen[s] = now

	// Stop stale entries accumulating from a feed that never repeats.
	if len(limiter.lastSeen) > 64 {
		for msg, t := range limiter.lastSeen {
			if now.Sub(t) >= limiter.interval {
				delete(limiter.lastSeen, msg)
			}
		}
	}
}
