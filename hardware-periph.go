//go:build !tinygo

package enc424j600

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// realPin wraps a periph.io gpio.PinIO to satisfy the Pin interface.
type realPin struct {
	gpio.PinIO
}

func (p *realPin) Out(l Level) error {
	if l == High {
		return p.PinIO.Out(gpio.High)
	}
	return p.PinIO.Out(gpio.Low)
}

func (p *realPin) In(pull Pull) error {
	var pPull gpio.Pull
	switch pull {
	case PullFloat:
		pPull = gpio.Float
	case PullDown:
		pPull = gpio.PullDown
	case PullUp:
		pPull = gpio.PullUp
	default:
		pPull = gpio.PullNoChange
	}
	return p.PinIO.In(pPull, gpio.NoEdge)
}

func (p *realPin) Read() Level {
	if p.PinIO.Read() == gpio.High {
		return High
	}
	return Low
}

// spiConn adapts a periph.io spi.Conn to the SPI interface.
type spiConn struct {
	conn spi.Conn
}

func (s *spiConn) Transfer(w, r []byte) error {
	return s.conn.Tx(w, r)
}

// HardwareConfig holds the configuration for the Linux/periph.io adapter.
type HardwareConfig struct {
	Config
	// CSPin is the GPIO pin name (e.g. "GPIO25") for chip select.
	// Defaults to "GPIO25" if not provided.
	CSPin string
	// SpiBusPath is the path to the SPI bus device node.
	// Defaults to "/dev/spidev0.0" if not provided.
	SpiBusPath string
	// SpiClockHz is the SPI clock frequency in Hz. Defaults to 1000000
	// (1 MHz) if not provided; the datasheet caps this driver at 14 MHz.
	SpiClockHz int
}

// New opens a Linux SPI device node and GPIO chip-select line via
// periph.io and constructs an EthController over them. It performs no
// device bring-up of its own — call InitDev/InitRxBuf/InitTxBuf on the
// result.
func New(c HardwareConfig) (*EthController, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}

	if c.SpiBusPath == "" {
		c.SpiBusPath = "/dev/spidev0.0"
	}
	port, err := spireg.Open(c.SpiBusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port: %w", err)
	}

	if c.SpiClockHz == 0 {
		c.SpiClockHz = 1000000
	}
	conn, err := port.Connect(physic.Frequency(c.SpiClockHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to create SPI connection: %w", err)
	}

	if c.CSPin == "" {
		c.CSPin = "GPIO25"
	}
	csIO := gpioreg.ByName(c.CSPin)
	if csIO == nil {
		port.Close()
		return nil, fmt.Errorf("failed to open CS pin %s", c.CSPin)
	}
	cs := &realPin{PinIO: csIO}

	globalLogger.Info("opened SPI bus and CS pin for ENC424J600")
	return NewWithHardware(&spiConn{conn: conn}, cs), nil
}
