// Telemetry frame format. The firmware emits a one-way stream of
// status frames over serial; nothing is received or acknowledged, so
// the sequence number only lets the host count dropped frames.
//
// Frame layout:
//
//	byte 0    total frame length
//	byte 1    0x10 | (sequence & 0x0F)
//	bytes ... payload
//	bytes n-3, n-2  CRC16 over length..payload, big endian
//	byte n-1  sync byte 0x7E
package protocol

const (
	FrameHeaderSize  = 2
	FrameTrailerSize = 3
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 64

	framePosLen = 0
	framePosSeq = 1

	// SyncByte terminates every frame and is the resync anchor after
	// corruption.
	SyncByte = 0x7E

	seqMask = 0x0F
	seqTag  = 0x10
)

// Framer writes frames to an output buffer, stamping length, sequence,
// CRC and sync trailer around the payload.
type Framer struct {
	out OutputBuffer
	seq uint8
}

// NewFramer creates a framer writing to out.
func NewFramer(out OutputBuffer) *Framer {
	return &Framer{out: out}
}

// Emit writes one frame whose payload is produced by the callback.
func (f *Framer) Emit(payload func(OutputBuffer)) {
	cursor := f.out.CurPosition()

	// Header: length placeholder and tagged sequence.
	f.out.Output([]byte{0, seqTag | (f.seq & seqMask)})
	f.seq++

	payload(f.out)

	// Patch the length now that the payload size is known.
	body := len(f.out.DataSince(cursor))
	f.out.Update(cursor, uint8(body+FrameTrailerSize))

	crc := CRC16(f.out.DataSince(cursor))
	f.out.Output([]byte{
		uint8(crc >> 8),
		uint8(crc & 0xFF),
		SyncByte,
	})
}

// Scanner incrementally extracts frames from a byte stream. After
// garbage, a bad length, or a CRC failure it drops bytes until the
// next sync byte and carries on; partial frames stay buffered until
// the rest arrives.
type Scanner struct {
	synced bool
}

// NewScanner creates a scanner that assumes the stream starts at a
// frame boundary.
func NewScanner() *Scanner {
	return &Scanner{synced: true}
}

// Resync drops synchronization. Scanning resumes at the byte after
// the next sync byte. Callers use this after discarding stream data
// behind the scanner's back.
func (s *Scanner) Resync() {
	s.synced = false
}

// Scan consumes as many complete frames as the input holds, invoking
// emit with the sequence number and payload of each valid frame. The
// payload slice aliases the input and must not be retained across
// calls. Bytes belonging to an incomplete trailing frame are left in
// the input.
func (s *Scanner) Scan(input InputBuffer, emit func(seq uint8, payload []byte)) {
	data := input.Data()

	for len(data) > 0 {
		if !s.synced {
			syncPos := -1
			for i, b := range data {
				if b == SyncByte {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				// No anchor yet; discard everything.
				data = nil
				break
			}
			data = data[syncPos+1:]
			s.synced = true
			continue
		}

		// Skip stray sync bytes between frames.
		if data[0] == SyncByte {
			data = data[1:]
			continue
		}

		if len(data) < FrameLengthMin {
			break
		}

		frameLen := int(data[framePosLen])
		if frameLen < FrameLengthMin || frameLen > FrameLengthMax {
			s.synced = false
			continue
		}

		seq := data[framePosSeq]
		if seq&^seqMask != seqTag {
			s.synced = false
			continue
		}

		if len(data) < frameLen {
			// Wait for the rest of the frame.
			break
		}

		if data[frameLen-1] != SyncByte {
			s.synced = false
			continue
		}

		wireCRC := uint16(data[frameLen-FrameTrailerSize])<<8 |
			uint16(data[frameLen-FrameTrailerSize+1])
		if wireCRC != CRC16(data[:frameLen-FrameTrailerSize]) {
			s.synced = false
			continue
		}

		emit(seq&seqMask, data[FrameHeaderSize:frameLen-FrameTrailerSize])
		data = data[frameLen:]
	}

	consumed := input.Available() - len(data)
	if consumed > 0 {
		input.Pop(consumed)
	}
}
