package core

// Fake drivers so the control pipeline runs on the host.

type fakeGPIO struct {
	inputs  map[GPIOPin]bool
	outputs map[GPIOPin]bool
	pullups map[GPIOPin]bool
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		inputs:  make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
		pullups: make(map[GPIOPin]bool),
	}
}

func (g *fakeGPIO) ConfigureOutput(pin GPIOPin) error {
	g.outputs[pin] = false
	return nil
}

func (g *fakeGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	g.pullups[pin] = true
	// Pulled up and unpressed until a test says otherwise.
	g.inputs[pin] = true
	return nil
}

func (g *fakeGPIO) SetPin(pin GPIOPin, value bool) error {
	g.outputs[pin] = value
	return nil
}

func (g *fakeGPIO) GetPin(pin GPIOPin) (bool, error) {
	return g.inputs[pin], nil
}

func (g *fakeGPIO) ReadPin(pin GPIOPin) bool {
	return g.inputs[pin]
}

// press drives an active-low line to its pressed (low) level.
func (g *fakeGPIO) press(pin GPIOPin) {
	g.inputs[pin] = false
}

func (g *fakeGPIO) release(pin GPIOPin) {
	g.inputs[pin] = true
}

type fakePWM struct {
	duty     map[PWMPin]uint32
	setCalls int
}

func newFakePWM() *fakePWM {
	return &fakePWM{duty: make(map[PWMPin]uint32)}
}

func (p *fakePWM) ConfigurePWM(pin PWMPin, periodNS uint64) (uint64, error) {
	return periodNS, nil
}

func (p *fakePWM) SetDuty(pin PWMPin, value uint32) error {
	p.duty[pin] = value
	p.setCalls++
	return nil
}

type fakeDisplay struct {
	segments [4]uint8
	strobes  int
}

func (d *fakeDisplay) Strobe(position uint8, segments uint8) error {
	d.segments[position&3] = segments
	d.strobes++
	return nil
}

// installFakes registers fresh fake drivers and returns them.
func installFakes() (*fakeGPIO, *fakePWM, *fakeDisplay) {
	g := newFakeGPIO()
	p := newFakePWM()
	d := &fakeDisplay{}
	SetGPIODriver(g)
	SetPWMDriver(p)
	SetDisplayDriver(d)
	ResetTimers()
	SetNow(0)
	return g, p, d
}
