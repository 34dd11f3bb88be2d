package protocol

import "errors"

// ErrBadFlags reports a status payload whose flag byte carries bits
// this version does not define.
var ErrBadFlags = errors.New("unknown status flag bits")

// Status flag bits.
const (
	flagForward   = 1 << 0
	flagSpeed2x   = 1 << 1
	flagSpeedFull = 1 << 2
	flagDisplayOn = 1 << 3

	flagsKnown = flagForward | flagSpeed2x | flagSpeedFull | flagDisplayOn
)

// Status is the tracker state snapshot carried in each telemetry
// frame.
type Status struct {
	Count     uint32 // bounded encoder count
	Duty      uint32 // last emitted PWM duty, 0..1023
	Forward   bool   // motor direction
	Speed2x   bool
	SpeedFull bool
	DisplayOn bool
	Uptime    uint32 // system ticks at snapshot time
}

// EncodeStatus writes a status payload: count, duty and uptime as VLQ
// varints, the booleans packed into one flag byte.
func EncodeStatus(out OutputBuffer, s Status) {
	EncodeVLQUint(out, s.Count)
	EncodeVLQUint(out, s.Duty)

	var flags uint8
	if s.Forward {
		flags |= flagForward
	}
	if s.Speed2x {
		flags |= flagSpeed2x
	}
	if s.SpeedFull {
		flags |= flagSpeedFull
	}
	if s.DisplayOn {
		flags |= flagDisplayOn
	}
	out.Output([]byte{flags})

	EncodeVLQUint(out, s.Uptime)
}

// DecodeStatus parses a status payload, advancing data past the
// consumed bytes.
func DecodeStatus(data *[]byte) (Status, error) {
	var s Status
	var err error

	if s.Count, err = DecodeVLQUint(data); err != nil {
		return Status{}, err
	}
	if s.Duty, err = DecodeVLQUint(data); err != nil {
		return Status{}, err
	}

	if len(*data) == 0 {
		return Status{}, ErrBufferTooSmall
	}
	flags := (*data)[0]
	*data = (*data)[1:]
	if flags&^uint8(flagsKnown) != 0 {
		return Status{}, ErrBadFlags
	}
	s.Forward = flags&flagForward != 0
	s.Speed2x = flags&flagSpeed2x != 0
	s.SpeedFull = flags&flagSpeedFull != 0
	s.DisplayOn = flags&flagDisplayOn != 0

	if s.Uptime, err = DecodeVLQUint(data); err != nil {
		return Status{}, err
	}
	return s, nil
}
