package enc424j600

import "errors"

var (
	// ErrPkg identifies every error returned by this package, for errors.Is.
	ErrPkg = errors.New("enc424j600")
	// ErrSpiPort is returned when the underlying SPI transceiver reports a
	// transfer failure. Chip select is always restored high before this
	// propagates.
	ErrSpiPort = errors.New("spi transfer failed")
	// ErrGeneral is returned when a device sanity check fails (EUDAST
	// readback mismatch, post-reset state wrong, an RSV frame length over
	// RawFrameLenMax). It indicates wiring or a dead device and is not
	// retriable by the driver.
	ErrGeneral = errors.New("device sanity check failed")
	// ErrNoRxPacket is returned by ReceiveNext(ctx, false) when PKTIF is
	// clear. It is informational, not a fault: callers should try again
	// later.
	ErrNoRxPacket = errors.New("no packet available")
	// ErrExhausted is returned by the packet-device adapter's transmit
	// path when the underlying send fails.
	ErrExhausted = errors.New("transmit buffer exhausted")
)
