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

// cc-sender feeds caption lines to a running cc-injector. It reads
// text from stdin (or a file) and sends one UDP datagram per line,
// paced so an over-eager feed cannot flood the injector.
package main

import (
	"bufio"
	"io"
	"log"
	"net"
	"os"

	arg "github.com/alexflint/go-arg"
	"github.com/juju/ratelimit"
)

var version = "<not set>"

type Args struct {
	Addr string  `arg:"-a,--addr" help:"injector caption address"`
	Rate float64 `arg:"-r,--rate" help:"maximum lines per second"`
	File string  `arg:"-f,--file" help:"read lines from a file instead of stdin"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.Addr = "127.0.0.1:54001"
	args.Rate = 2
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()
	log.SetFlags(0)

	var in io.Reader = os.Stdin
	if args.File != "" {
		f, err := os.Open(args.File)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	conn, err := net.Dial("udp", args.Addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Allow one line immediately, then refill at the configured rate.
	bucket := ratelimit.NewBucketWithRate(args.Rate, 1)

	sent := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		bucket.Wait(1)
		if _, err := conn.Write([]byte(line)); err != nil {
			return err
		}
		sent++
	}
	log.Printf("%d lines sent to %s", sent, args.Addr)
	return scanner.Err()
}
