package monitor

import (
	"bytes"
	"testing"

	"ratrack/protocol"
)

func buildStream(statuses ...protocol.Status) []byte {
	out := protocol.NewScratchOutput()
	framer := protocol.NewFramer(out)
	for _, s := range statuses {
		framer.Emit(func(o protocol.OutputBuffer) {
			protocol.EncodeStatus(o, s)
		})
	}
	return append([]byte(nil), out.Result()...)
}

func TestMonitorRunDecodesStream(t *testing.T) {
	want := []protocol.Status{
		{Count: 10, Duty: 5, Forward: true, DisplayOn: true, Uptime: 100},
		{Count: 20, Duty: 10, Forward: true, DisplayOn: true, Uptime: 350000},
		{Count: 20, Duty: 10, Speed2x: true, Uptime: 600000},
	}

	var got []protocol.Status
	m := New(bytes.NewReader(buildStream(want...)), func(seq uint8, s protocol.Status) {
		got = append(got, s)
	})
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}

	if len(got) != len(want) {
		t.Fatalf("decoded %d statuses, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("status %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if m.Frames() != 3 || m.Dropped() != 0 || m.BadFrames() != 0 {
		t.Errorf("counters: frames=%d dropped=%d bad=%d",
			m.Frames(), m.Dropped(), m.BadFrames())
	}
}

func TestMonitorFeedAcrossReadBoundaries(t *testing.T) {
	stream := buildStream(protocol.Status{Count: 42, DisplayOn: true, Uptime: 7})

	var got []protocol.Status
	m := New(nil, func(seq uint8, s protocol.Status) {
		got = append(got, s)
	})

	// Dribble the stream in 3-byte reads.
	for len(stream) > 0 {
		n := 3
		if n > len(stream) {
			n = len(stream)
		}
		m.Feed(stream[:n])
		stream = stream[n:]
	}

	if len(got) != 1 || got[0].Count != 42 {
		t.Fatalf("split feed decoded %+v", got)
	}
}

func TestMonitorCountsDroppedFrames(t *testing.T) {
	stream := buildStream(
		protocol.Status{Count: 1, Uptime: 1},
		protocol.Status{Count: 2, Uptime: 2},
		protocol.Status{Count: 3, Uptime: 3},
	)

	// Corrupt the middle frame's payload; its CRC check fails and the
	// scanner resyncs to the third frame.
	frameLen := int(stream[0])
	stream[frameLen+2] ^= 0x01

	var counts []uint32
	m := New(bytes.NewReader(stream), func(seq uint8, s protocol.Status) {
		counts = append(counts, s.Count)
	})
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}

	if len(counts) != 2 || counts[0] != 1 || counts[1] != 3 {
		t.Fatalf("decoded counts %v, want [1 3]", counts)
	}
	if m.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", m.Dropped())
	}
}

func TestMonitorCountsBacklogOverflow(t *testing.T) {
	var got []protocol.Status
	m := newWithCapacity(nil, 16, func(seq uint8, s protocol.Status) {
		got = append(got, s)
	})

	// A frame header claiming the maximum length, then filler that
	// never completes it. The backlog cannot resolve and must be
	// dropped once the buffer fills.
	m.Feed([]byte{protocol.FrameLengthMax, 0x10})
	m.Feed(make([]byte, 20))

	if m.Overflows() != 1 {
		t.Fatalf("overflows = %d, want 1", m.Overflows())
	}
	if m.BadFrames() != 0 {
		t.Errorf("backlog drop counted as bad frame: %d", m.BadFrames())
	}

	// The stream recovers at the next frame boundary.
	stream := buildStream(protocol.Status{Count: 5, Uptime: 1})
	m.Feed([]byte{protocol.SyncByte})
	m.Feed(stream)

	if len(got) != 1 || got[0].Count != 5 {
		t.Fatalf("decoded %+v after overflow, want count 5", got)
	}
}

func TestMonitorSurvivesLeadingGarbage(t *testing.T) {
	stream := buildStream(protocol.Status{Count: 9, Uptime: 1})
	// A valid-looking length byte of garbage first.
	stream = append([]byte{0x08, 0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, protocol.SyncByte}, stream...)

	var got []protocol.Status
	m := New(bytes.NewReader(stream), func(seq uint8, s protocol.Status) {
		got = append(got, s)
	})
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}

	if len(got) != 1 || got[0].Count != 9 {
		t.Fatalf("decoded %+v after garbage", got)
	}
}
