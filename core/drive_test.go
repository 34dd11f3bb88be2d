package core

import "testing"

var testMotor = DrivePins{Forward: 6, Reverse: 7, PWM: 8}

func TestDriveIdleIsNoOp(t *testing.T) {
	_, pwm, _ := installFakes()
	pos := &Position{}
	d := NewDrive(pos, testMotor)

	if err := d.Update(Intents{Forward: true}); err != nil {
		t.Fatal(err)
	}
	if pwm.setCalls != 0 {
		t.Errorf("drive emitted with clean dirty flag: %d PWM writes", pwm.setCalls)
	}
}

func TestDriveEmitsOnDirty(t *testing.T) {
	gpio, pwm, _ := installFakes()
	pos := &Position{}
	pos.Apply(CountLimit / 2)
	pos.MarkDirty()
	d := NewDrive(pos, testMotor)

	if err := d.Update(Intents{Forward: true}); err != nil {
		t.Fatal(err)
	}
	want := uint32(CountLimit/2) * PWMMax / CountLimit
	if got := pwm.duty[testMotor.PWM]; got != want {
		t.Errorf("duty = %d, want %d", got, want)
	}
	if !gpio.outputs[testMotor.Forward] || gpio.outputs[testMotor.Reverse] {
		t.Error("direction pins not driving forward")
	}
	if pos.TakeDirty() {
		t.Error("dirty flag survived the update")
	}
}

func TestDriveReverse(t *testing.T) {
	gpio, _, _ := installFakes()
	pos := &Position{}
	pos.MarkDirty()
	d := NewDrive(pos, testMotor)

	if err := d.Update(Intents{Forward: false}); err != nil {
		t.Fatal(err)
	}
	if gpio.outputs[testMotor.Forward] || !gpio.outputs[testMotor.Reverse] {
		t.Error("direction pins not driving reverse")
	}
}

func TestDriveSpeedOverrides(t *testing.T) {
	cases := []struct {
		name  string
		count int32
		in    Intents
		want  uint32
	}{
		{
			name:  "2x doubles",
			count: 400,
			in:    Intents{Forward: true, Speed2x: true},
			want:  2 * (400 * PWMMax / CountLimit),
		},
		{
			name:  "2x clamps at the resolution ceiling",
			count: CountLimit,
			in:    Intents{Forward: true, Speed2x: true},
			want:  PWMMax,
		},
		{
			name:  "full forces the ceiling",
			count: 10,
			in:    Intents{Forward: true, SpeedFull: true},
			want:  PWMMax,
		},
		{
			name:  "2x wins over full",
			count: 100,
			in:    Intents{Forward: true, Speed2x: true, SpeedFull: true},
			want:  2 * (100 * PWMMax / CountLimit),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, pwm, _ := installFakes()
			pos := &Position{}
			pos.Apply(tc.count)
			pos.MarkDirty()
			d := NewDrive(pos, testMotor)

			if err := d.Update(tc.in); err != nil {
				t.Fatal(err)
			}
			if got := pwm.duty[testMotor.PWM]; got != tc.want {
				t.Errorf("duty = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDriveIdempotentWhileClean(t *testing.T) {
	_, pwm, _ := installFakes()
	pos := &Position{}
	pos.Apply(1000)
	pos.MarkDirty()
	d := NewDrive(pos, testMotor)

	if err := d.Update(Intents{Forward: true}); err != nil {
		t.Fatal(err)
	}
	emitted := pwm.duty[testMotor.PWM]
	calls := pwm.setCalls

	// Two further updates with the flag clear must not touch the PWM.
	for i := 0; i < 2; i++ {
		if err := d.Update(Intents{Forward: true}); err != nil {
			t.Fatal(err)
		}
	}
	if pwm.setCalls != calls {
		t.Errorf("clean updates wrote PWM %d more times", pwm.setCalls-calls)
	}
	if pwm.duty[testMotor.PWM] != emitted {
		t.Errorf("emitted duty changed from %d to %d", emitted, pwm.duty[testMotor.PWM])
	}
}

func TestDriveDeferredRecomputation(t *testing.T) {
	// An update that lands after the flag is cleared must be picked up
	// on the following cycle, not lost.
	_, pwm, _ := installFakes()
	pos := &Position{}
	pos.Apply(500)
	pos.MarkDirty()
	d := NewDrive(pos, testMotor)

	if err := d.Update(Intents{Forward: true}); err != nil {
		t.Fatal(err)
	}

	// Simulate an interrupt between TakeDirty and the next poll.
	pos.Apply(1)
	pos.MarkDirty()

	if err := d.Update(Intents{Forward: true}); err != nil {
		t.Fatal(err)
	}
	want := uint32(501) * PWMMax / CountLimit
	if got := pwm.duty[testMotor.PWM]; got != want {
		t.Errorf("deferred update emitted duty %d, want %d", got, want)
	}
}
