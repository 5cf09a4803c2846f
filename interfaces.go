package enc424j600

import "context"

// Level represents the logical level of a GPIO pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Pull represents the internal pull-up/down resistor state of a pin.
type Pull uint8

const (
	PullNoChange Pull = iota
	PullFloat
	PullDown
	PullUp
)

// SPI is the host's full-duplex SPI transceiver. Transfer sends w and reads
// the same number of bytes into r; w and r must be the same length. An SPI
// passed to NewWithHardware must already be configured for CPOL=0, CPHA=0
// at no more than 14 MHz — SpiPort issues no bus configuration calls of its
// own. The Linux New configures the bus it opens (mode 0, SpiClockHz).
type SPI interface {
	Transfer(w, r []byte) error
}

// Pin is a GPIO line. SpiPort only ever drives it as an output (chip
// select); In/Read round out the interface for parity with other simple
// GPIO lines, but no method here ever arms an interrupt — this driver is
// polling-only (spec.md Non-goals) and has no IRQ pin to watch.
type Pin interface {
	Out(l Level) error
	In(pull Pull) error
	Read() Level
}

// DelayProvider supplies a blocking microsecond delay, used during the
// device reset sequence in InitDev.
type DelayProvider interface {
	DelayUs(us uint16)
}

// waitUntil polls cond until it reports true or ctx is done. Calling it
// with context.Background() reproduces an unbounded polling loop exactly;
// a context with a deadline turns the same loop into a bounded wait that
// surfaces ctx.Err() on expiry.
func waitUntil(ctx context.Context, cond func() (bool, error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
}
