// Package monitor turns the firmware's raw telemetry byte stream into
// decoded status reports.
package monitor

import (
	"errors"
	"fmt"
	"io"

	"ratrack/protocol"
)

// Handler receives each decoded status report in stream order.
type Handler func(seq uint8, s protocol.Status)

// Monitor reads the one-way telemetry stream from a serial port (or
// any reader), reassembles frames across read boundaries and decodes
// their status payloads. The stream is lossy: corrupt frames are
// skipped and counted, and 4-bit sequence gaps are totalled in
// Dropped.
type Monitor struct {
	r       io.Reader
	fifo    *protocol.FifoBuffer
	scanner *protocol.Scanner
	handler Handler

	haveSeq bool
	lastSeq uint8

	frames    uint32
	dropped   uint32
	badFrames uint32
	overflows uint32
}

// fifoSize buffers a few reads' worth of stream data while a frame
// straddles read boundaries.
const fifoSize = 1024

// New creates a monitor reading from r and delivering to handler.
func New(r io.Reader, handler Handler) *Monitor {
	return newWithCapacity(r, fifoSize, handler)
}

func newWithCapacity(r io.Reader, capacity int, handler Handler) *Monitor {
	return &Monitor{
		r:       r,
		fifo:    protocol.NewFifoBuffer(capacity),
		scanner: protocol.NewScanner(),
		handler: handler,
	}
}

// Run reads the stream until EOF or a read error. Timeout reads that
// return zero bytes without an error simply poll again, matching the
// tarm/serial ReadTimeout behavior.
func (m *Monitor) Run() error {
	buf := make([]byte, 256)
	for {
		n, err := m.r.Read(buf)
		if n > 0 {
			m.Feed(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("telemetry read: %w", err)
		}
	}
}

// Feed pushes raw stream bytes through the scanner, invoking the
// handler for every complete valid frame.
func (m *Monitor) Feed(data []byte) {
	for len(data) > 0 {
		n := m.fifo.Write(data)
		if n == 0 {
			// Buffer full without a complete frame inside it: drop
			// the backlog and hunt for the next frame boundary.
			m.fifo.Reset()
			m.scanner.Resync()
			m.overflows++
			continue
		}
		data = data[n:]
		m.scanner.Scan(m.fifo, m.onFrame)
	}
}

func (m *Monitor) onFrame(seq uint8, payload []byte) {
	s, err := protocol.DecodeStatus(&payload)
	if err != nil {
		m.badFrames++
		return
	}

	if m.haveSeq {
		m.dropped += uint32((seq - m.lastSeq - 1) & 0x0F)
	}
	m.haveSeq = true
	m.lastSeq = seq
	m.frames++

	if m.handler != nil {
		m.handler(seq, s)
	}
}

// Frames returns how many valid status frames have been decoded.
func (m *Monitor) Frames() uint32 { return m.frames }

// Dropped returns the total sequence-number gap observed, i.e. frames
// the firmware sent that never decoded on this side.
func (m *Monitor) Dropped() uint32 { return m.dropped }

// BadFrames returns how many frames failed status decoding.
func (m *Monitor) BadFrames() uint32 { return m.badFrames }

// Overflows returns how many times the reassembly buffer filled
// without a complete frame and its backlog was discarded.
func (m *Monitor) Overflows() uint32 { return m.overflows }
