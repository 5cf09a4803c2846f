//go:build tinygo

package enc424j600

import (
	"machine"

	"tinygo.org/x/drivers"
)

// tinygoPin wraps a machine.Pin to satisfy the Pin interface.
type tinygoPin struct {
	pin machine.Pin
}

func (p *tinygoPin) Out(l Level) error {
	p.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.pin.Set(bool(l))
	return nil
}

func (p *tinygoPin) In(pull Pull) error {
	var mode machine.PinMode
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	p.pin.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (p *tinygoPin) Read() Level {
	return Level(p.pin.Get())
}

// driversSPI adapts a tinygo.org/x/drivers.SPI bus to the SPI interface.
// Using the shared drivers.SPI abstraction (rather than a concrete
// *machine.SPI) means this driver also works over any software-bit-banged
// implementation of that interface.
type driversSPI struct {
	bus drivers.SPI
}

func (s *driversSPI) Transfer(w, r []byte) error {
	return s.bus.Tx(w, r)
}

// HardwareConfig holds the configuration for the TinyGo adapter.
type HardwareConfig struct {
	Config
	// SPI is the bus to use, already configured (mode 0, <=14 MHz).
	SPI drivers.SPI
	// CSPin is the chip-select pin. The caller need not configure it;
	// NewWithHardware drives it high immediately.
	CSPin machine.Pin
}

// New constructs an EthController over a TinyGo SPI bus and CS pin.
func New(c HardwareConfig) (*EthController, error) {
	cs := &tinygoPin{pin: c.CSPin}
	return NewWithHardware(&driversSPI{bus: c.SPI}, cs), nil
}
