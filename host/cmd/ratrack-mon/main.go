// ratrack-mon tails the tracker's telemetry stream and prints one
// line per status frame.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ratrack/host/monitor"
	"ratrack/host/serial"
	"ratrack/protocol"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	verbose = flag.Bool("verbose", false, "Also log drop/error counters per frame")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	log.Printf("listening on %s", *device)

	var m *monitor.Monitor
	m = monitor.New(port, func(seq uint8, s protocol.Status) {
		log.Printf("seq=%2d count=%4d duty=%4d dir=%s 2x=%v full=%v disp=%v up=%dus",
			seq, s.Count, s.Duty, direction(s), s.Speed2x, s.SpeedFull,
			s.DisplayOn, s.Uptime)
		if *verbose {
			log.Printf("  frames=%d dropped=%d bad=%d",
				m.Frames(), m.Dropped(), m.BadFrames())
		}
	})

	if err := m.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Printf("stream closed: %d frames, %d dropped, %d bad, %d overflows",
		m.Frames(), m.Dropped(), m.BadFrames(), m.Overflows())
}

func direction(s protocol.Status) string {
	if s.Forward {
		return "fwd"
	}
	return "rev"
}
