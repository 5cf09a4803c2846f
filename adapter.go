package enc424j600

import (
	"context"
	"errors"
	"fmt"
)

// Capabilities advertises packet-device limits to the network stack that
// polls PacketDevice.
type Capabilities struct {
	MTU int
}

// RxToken carries one received frame. It borrows PacketDevice's RX scratch
// buffer, so it must not be retained past the call that produced it.
type RxToken struct {
	frame []byte
}

// Consume invokes f with the received frame's bytes, returning f's error.
func (t RxToken) Consume(f func([]byte) error) error {
	return f(t.frame)
}

// TxToken stages and sends one frame. Unlike the Rust original this holds
// a plain closure rather than a raw pointer back into the adapter — Go's
// garbage collector keeps whatever the closure captures alive for exactly
// as long as the token exists, so there is no lifetime bookkeeping to get
// wrong.
type TxToken struct {
	consume func(length int, f func([]byte) error) error
}

// Consume lets f fill a length-byte buffer, then stages and transmits it.
// On failure to send, it returns an error wrapping ErrExhausted.
func (t TxToken) Consume(length int, f func([]byte) error) error {
	return t.consume(length, f)
}

// PacketDevice adapts an EthController into a receive/transmit-token pair
// for a polled, external network stack. It owns the controller and two
// scratch frame buffers, constructed once and never reallocated.
type PacketDevice struct {
	dev       *EthController
	rxScratch [RawFrameLenMax]byte
	txScratch [RawFrameLenMax]byte
}

// NewPacketDevice wraps dev for use by a polled network stack.
func NewPacketDevice(dev *EthController) *PacketDevice {
	return &PacketDevice{dev: dev}
}

// Capabilities reports RawFrameLenMax as the device's MTU.
func (p *PacketDevice) Capabilities() Capabilities {
	return Capabilities{MTU: RawFrameLenMax}
}

// Receive polls for the next frame. ok is false (with a nil error) when no
// frame is currently available — the normal "nothing to do yet" case, not
// a fault. On success it returns a receive token for the frame alongside a
// transmit token for an immediate reply, the way the adapter this is
// modeled on lets a stack ACK inline with the same poll cycle.
func (p *PacketDevice) Receive(ctx context.Context) (rx RxToken, tx TxToken, ok bool, err error) {
	packet, err := p.dev.ReceiveNext(ctx, false)
	if err != nil {
		if errors.Is(err, ErrNoRxPacket) {
			return RxToken{}, TxToken{}, false, nil
		}
		return RxToken{}, TxToken{}, false, err
	}

	n := copy(p.rxScratch[:], packet.Frame())
	return RxToken{frame: p.rxScratch[:n]}, p.Transmit(ctx), true, nil
}

// Transmit returns a transmit token backed by the adapter's TX scratch
// buffer.
func (p *PacketDevice) Transmit(ctx context.Context) TxToken {
	return TxToken{consume: func(length int, f func([]byte) error) error {
		return p.transmit(ctx, length, f)
	}}
}

func (p *PacketDevice) transmit(ctx context.Context, length int, f func([]byte) error) error {
	if length > RawFrameLenMax {
		return fmt.Errorf("%w: frame length %d exceeds %d", ErrPkg, length, RawFrameLenMax)
	}

	buf := p.txScratch[:length]
	if err := f(buf); err != nil {
		return err
	}

	packet := NewTxPacket()
	packet.UpdateFrame(buf, length)
	if err := p.dev.SendRawPacket(ctx, packet); err != nil {
		globalLogger.Warn("packet-device transmit failed")
		return fmt.Errorf("%w: %w", ErrPkg, ErrExhausted)
	}
	return nil
}
