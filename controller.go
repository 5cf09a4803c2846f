package enc424j600

import (
	"context"
	"fmt"
	"sync"
)

// Config holds hardware-independent driver configuration. It has no
// required fields today — spec.md's bring-up sequence takes no tunables —
// but exists as the slot for caller knobs the way the teacher package
// splits RadioConfig out of HardwareConfig, and is embedded by every
// platform-specific HardwareConfig (see hardware-periph.go, hardware-tinygo.go).
type Config struct{}

// EthController is the top-level driver: it owns one SpiPort, one RxBuffer
// and one TxBuffer exclusively (spec.md §3) and serializes calls to itself
// with an internal mutex, the way the teacher's Device does. It must not be
// called reentrantly — e.g. from within a callback invoked by one of its
// own methods.
type EthController struct {
	spiPort *SpiPort
	rxBuf   *RxBuffer
	txBuf   *TxBuffer

	mu sync.Mutex

	// frameScratch backs ReceiveNext's bulk payload read so no allocation
	// is needed per receive.
	frameScratch [RawFrameLenMax]byte
}

// NewWithHardware constructs an EthController from its SPI transceiver and
// chip-select pin. It performs no device I/O — call InitDev, InitRxBuf and
// InitTxBuf to bring the hardware up.
func NewWithHardware(spi SPI, cs Pin) *EthController {
	return &EthController{
		spiPort: NewSpiPort(spi, cs),
		rxBuf:   NewRxBuffer(),
		txBuf:   NewTxBuffer(),
	}
}

// InitDev runs the datasheet §8.1 bring-up sequence: verify the SPI link by
// round-tripping a sentinel value through EUDAST, wait for CLKRDY, pulse
// ETHRST, and verify EUDAST cleared. ctx governs only the CLKRDY wait —
// pass context.Background() to wait exactly as long as the datasheet
// requires (the original's behavior); a context with a deadline bounds it.
func (c *EthController) InitDev(ctx context.Context, delay DelayProvider) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.spiPort.WriteReg16b(regEUDAST, 0x1234); err != nil {
		return err
	}
	eudast, err := c.spiPort.ReadReg16b(regEUDAST)
	if err != nil {
		return err
	}
	if eudast != 0x1234 {
		globalLogger.Error("EUDAST readback mismatch, device not responding")
		return fmt.Errorf("%w: %w", ErrPkg, ErrGeneral)
	}

	if err := waitUntil(ctx, func() (bool, error) {
		estat, err := c.spiPort.ReadReg16b(regESTAT)
		if err != nil {
			return false, err
		}
		return estat&0x1000 != 0, nil
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrPkg, err)
	}

	econ2, err := c.spiPort.ReadReg8b(regECON2)
	if err != nil {
		return err
	}
	if err := c.spiPort.WriteReg8b(regECON2, 0x10|(econ2&^byte(0x10))); err != nil {
		return err
	}
	delay.DelayUs(25)

	eudast, err = c.spiPort.ReadReg16b(regEUDAST)
	if err != nil {
		return err
	}
	if eudast != 0x0000 {
		globalLogger.Error("EUDAST did not clear after ETHRST")
		return fmt.Errorf("%w: %w", ErrPkg, ErrGeneral)
	}
	delay.DelayUs(256)

	globalLogger.Info("ENC424J600 device bring-up complete")
	return nil
}

// InitRxBuf programs the controller's RX ring from rxBuf's defaults
// (ERXST, ERXTAIL, MAMXFL) and enables RXEN.
func (c *EthController) InitRxBuf() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.spiPort.WriteReg16b(regERXST, c.rxBuf.WrapAddr()); err != nil {
		return err
	}
	if err := c.spiPort.WriteReg16b(regERXTAIL, c.rxBuf.TailAddr()); err != nil {
		return err
	}
	if err := c.spiPort.WriteReg16b(regMAMXFL, RawFrameLenMax); err != nil {
		return err
	}
	econ1, err := c.spiPort.ReadReg16b(regECON1)
	if err != nil {
		return err
	}
	return c.spiPort.WriteReg16b(regECON1, 0x1|(econ1&^uint16(0x1)))
}

// InitTxBuf resets the general-purpose SRAM write pointer to the start of
// the TX staging region.
func (c *EthController) InitTxBuf() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spiPort.WriteReg16b(regEGPWRPT, 0x0000)
}

// SetPromiscuous enables CRCEN, RUNTEN, UCEN, NOTMEEN and MCEN in ERXFCON
// so the controller accepts all incoming frames regardless of content
// (datasheet §10.12).
func (c *EthController) SetPromiscuous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	erxfconLo, err := c.spiPort.ReadReg8b(regERXFCON)
	if err != nil {
		return err
	}
	return c.spiPort.WriteReg8b(regERXFCON, 0b0101_1110|(erxfconLo&0b1010_0001))
}

// ReadFromMAC reads the controller's six-octet MAC address into mac, in
// canonical order.
func (c *EthController) ReadFromMAC(mac *[6]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if mac[0], err = c.spiPort.ReadReg8b(regMAADR1); err != nil {
		return err
	}
	if mac[1], err = c.spiPort.ReadReg8b(regMAADR1 + 1); err != nil {
		return err
	}
	if mac[2], err = c.spiPort.ReadReg8b(regMAADR2); err != nil {
		return err
	}
	if mac[3], err = c.spiPort.ReadReg8b(regMAADR2 + 1); err != nil {
		return err
	}
	if mac[4], err = c.spiPort.ReadReg8b(regMAADR3); err != nil {
		return err
	}
	if mac[5], err = c.spiPort.ReadReg8b(regMAADR3 + 1); err != nil {
		return err
	}
	return nil
}

// ReceiveNext returns the next received frame. With isPoll false it returns
// ErrNoRxPacket immediately when PKTIF is clear — not a fault, just "try
// again later". With isPoll true it blocks until PKTIF sets or ctx is
// done; context.Background() reproduces the spec's unbounded poll exactly.
func (c *EthController) ReceiveNext(ctx context.Context, isPoll bool) (*RxPacket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if isPoll {
		if err := waitUntil(ctx, func() (bool, error) {
			eir, err := c.spiPort.ReadReg16b(regEIR)
			if err != nil {
				return false, err
			}
			return eir&0x40 != 0, nil
		}); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPkg, err)
		}
	} else {
		eir, err := c.spiPort.ReadReg16b(regEIR)
		if err != nil {
			return nil, err
		}
		if eir&0x40 == 0 {
			return nil, ErrNoRxPacket
		}
	}

	if err := c.spiPort.WriteReg16b(regERXRDPT, c.rxBuf.NextAddr()); err != nil {
		return nil, err
	}

	var nextAddrBuf [2]byte
	if err := c.spiPort.ReadRxdat(nextAddrBuf[:], 2); err != nil {
		return nil, err
	}
	newNextAddr := uint16(nextAddrBuf[0]) | uint16(nextAddrBuf[1])<<8
	c.rxBuf.SetNextAddr(newNextAddr)

	var rsvBuf [rsvLength]byte
	if err := c.spiPort.ReadRxdat(rsvBuf[:], rsvLength); err != nil {
		return nil, err
	}

	packet := NewRxPacket()
	packet.WriteToRsv(rsvBuf[:])
	if packet.FrameLength() > RawFrameLenMax {
		globalLogger.Error("RSV frame length exceeds RawFrameLenMax")
		return nil, fmt.Errorf("%w: %w", ErrPkg, ErrGeneral)
	}

	n := packet.FrameLength()
	if err := c.spiPort.ReadRxdat(c.frameScratch[:n], n); err != nil {
		return nil, err
	}
	packet.CopyFrameFrom(c.frameScratch[:n])

	if newNextAddr > ERXSTDefault {
		if err := c.spiPort.WriteReg16b(regERXTAIL, newNextAddr-2); err != nil {
			return nil, err
		}
	} else {
		if err := c.spiPort.WriteReg16b(regERXTAIL, RxMaxAddress-1); err != nil {
			return nil, err
		}
	}

	econ1Hi, err := c.spiPort.ReadReg8b(regECON1 + 1)
	if err != nil {
		return nil, err
	}
	if err := c.spiPort.WriteReg8b(regECON1+1, 0x01|(econ1Hi&^byte(0x01))); err != nil {
		return nil, err
	}

	return packet, nil
}

// SendRawPacket stages packet into the TX SRAM region, requests
// transmission, and blocks until the controller clears TXRTS. ctx governs
// only that final wait; context.Background() reproduces the spec's
// unbounded poll exactly. On error, tx_buf.next_addr is left unchanged and
// the controller is in an indeterminate state with respect to the pending
// send — callers must re-init before further sends.
func (c *EthController) SendRawPacket(ctx context.Context, packet *TxPacket) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.spiPort.WriteReg16b(regEGPWRPT, c.txBuf.NextAddr()); err != nil {
		return err
	}
	if err := c.spiPort.WriteTxdat(packet.Frame(), packet.FrameLength()); err != nil {
		return err
	}
	if err := c.spiPort.WriteReg16b(regETXST, c.txBuf.NextAddr()); err != nil {
		return err
	}
	if err := c.spiPort.WriteReg16b(regETXLEN, uint16(packet.FrameLength())); err != nil {
		return err
	}

	econ1Lo, err := c.spiPort.ReadReg8b(regECON1)
	if err != nil {
		return err
	}
	if err := c.spiPort.WriteReg8b(regECON1, 0x02|(econ1Lo&^byte(0x02))); err != nil {
		return err
	}

	if err := waitUntil(ctx, func() (bool, error) {
		lo, err := c.spiPort.ReadReg8b(regECON1)
		if err != nil {
			return false, err
		}
		return lo&0x02 == 0, nil
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrPkg, err)
	}
	// TODO: read ETXSTAT here to surface late-collision/underrun transmit
	// errors instead of treating TXRTS-cleared as unconditional success.

	c.txBuf.SetNextAddr((c.txBuf.NextAddr() + uint16(packet.FrameLength())) % GPBUFENDefault)
	return nil
}

// Status returns the raw EIR register, for diagnostics.
func (c *EthController) Status() (uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spiPort.ReadReg16b(regEIR)
}

// String returns a short human-readable summary of the controller's
// buffer cursors, for logging.
func (c *EthController) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("ENC424J600(rxNext=0x%04X, txNext=0x%04X)", c.rxBuf.NextAddr(), c.txBuf.NextAddr())
}
