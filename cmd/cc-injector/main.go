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

package main

import (
	"bufio"
	"log"
	"net"
	"os"

	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"

	"github.com/streamtools/cc-injector/caption"
	"github.com/streamtools/cc-injector/ingest"
	"github.com/streamtools/cc-injector/stream"
)

var (
	version   = "<not set>"
	processor *caption.Processor
)

type Args struct {
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/cc-injector.yaml"
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

	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	log.Printf("running version: %s", version)
	conf, err := ParseConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	logConfig(conf)

	poller := openCaptionSource(conf)
	defer poller.Close()

	log.Println("starting d-bus service")
	if err := startService(poller); err != nil {
		return err
	}

	daemon.SdNotify(false, "READY=1")

	for {
		// Set up listener for frames sent by the decoder.
		os.Remove(conf.FrameInput)
		listener, err := net.Listen("unix", conf.FrameInput)
		if err != nil {
			return err
		}
		log.Print("waiting for decoder connection")

		conn, err := listener.Accept()
		if err != nil {
			log.Printf("socket accept failed: %v", err)
			continue
		}

		// Prevent concurrent connections.
		listener.Close()

		err = handleConn(conn, conf, poller)
		log.Printf("decoder connection ended with: %v", err)
	}
}

// openCaptionSource opens the UDP caption listener. If that fails the
// injector carries on with local injection only; captions are never
// allowed to take the video pipeline down.
func openCaptionSource(conf *Config) *ingest.Poller {
	if conf.Caption.Listen == "" {
		log.Print("no caption listen address; external captions disabled")
		return ingest.NewPoller()
	}
	poller, err := ingest.NewListener(conf.Caption.Listen)
	if err != nil {
		log.Printf("opening caption listener failed: %v; continuing without external captions", err)
		return ingest.NewPoller()
	}
	return poller
}

func handleConn(conn net.Conn, conf *Config, poller *ingest.Poller) error {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	header, err := stream.ReadHeaderInfo(reader)
	if err != nil {
		return err
	}
	if err := header.Validate(); err != nil {
		return err
	}
	tbNum, tbDen, err := header.TimeBase()
	if err != nil {
		return err
	}

	log.Printf("decoder connection: %s %dx%d@%dfps tb=%d/%d",
		header.Codec(), header.ResX(), header.ResY(), header.FPS(), tbNum, tbDen)

	out, err := net.Dial("unix", conf.FrameOutput)
	if err != nil {
		return err
	}
	defer out.Close()
	writer := bufio.NewWriter(out)

	proc := caption.NewProcessor(&conf.Caption, tbNum, tbDen, poller)
	processor = proc

	fps := header.FPS()
	if fps <= 0 {
		fps = 30
	}
	frameLogIntervalFirstMin := 15 * fps
	frameLogInterval := 60 * 5 * fps
	framesPerSdNotify := 5 * fps

	frame := &stream.Frame{Pixels: make([]byte, header.FrameSize())}

	log.Print("reading frames")

	totalFrames := 0
	notifyCount := 0
	for {
		if err := stream.ReadFrame(reader, frame); err != nil {
			return err
		}
		totalFrames++

		if totalFrames%frameLogIntervalFirstMin == 0 &&
			totalFrames <= 60*fps || totalFrames%frameLogInterval == 0 {
			log.Printf("%d frames for this connection", totalFrames)
		}

		if notifyCount++; notifyCount >= framesPerSdNotify {
			daemon.SdNotify(false, "WATCHDOG=1")
			notifyCount = 0
		}

		frame.Captions = proc.Process(frame.PTS)
		if err := stream.WriteFrameOut(writer, frame); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
}

func logConfig(conf *Config) {
	log.Printf("frame input: %s", conf.FrameInput)
	log.Printf("frame output: %s", conf.FrameOutput)
	log.Printf("caption listen: %s", conf.Caption.Listen)
	log.Printf("caption linger: %dms", conf.Caption.LingerMS)
	log.Printf("caption row: %d", conf.Caption.Row)
	if conf.Caption.Bootstrap {
		log.Printf("bootstrap caption: %q", conf.Caption.BootstrapText)
	}
}
