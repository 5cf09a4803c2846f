package enc424j600

import (
	"context"
	"errors"
	"testing"
)

func TestPacketDeviceReceiveNoPacketReturnsOkFalseNilError(t *testing.T) {
	spi := &mockSPI{}
	cs := &mockPin{}
	dev := NewWithHardware(spi, cs)
	pd := NewPacketDevice(dev)

	spi.queueReg8(0x00)
	spi.queueReg8(0x00)

	_, _, ok, err := pd.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive error = %v, want nil", err)
	}
	if ok {
		t.Fatal("Receive ok = true, want false when no packet is pending")
	}
}

func TestPacketDeviceReceiveDeliversFrameBytes(t *testing.T) {
	spi := &mockSPI{}
	cs := &mockPin{}
	dev := NewWithHardware(spi, cs)
	pd := NewPacketDevice(dev)

	spi.queueReg8(0x40) // PKTIF set
	spi.queueReg8(0x00)
	newNextAddr := ERXSTDefault + 10
	spi.queueRxdat([]byte{byte(newNextAddr), byte(newNextAddr >> 8)})
	spi.queueRxdat([]byte{3, 0, 0, 0, 0, 0}) // frame length 3
	spi.queueRxdat([]byte{0x11, 0x22, 0x33})
	spi.queueReg8(0x00) // ECON1 hi readback

	rx, _, ok, err := pd.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if !ok {
		t.Fatal("Receive ok = false, want true")
	}

	var got []byte
	if err := rx.Consume(func(frame []byte) error {
		got = append(got, frame...)
		return nil
	}); err != nil {
		t.Fatalf("RxToken.Consume: %v", err)
	}
	want := []byte{0x11, 0x22, 0x33}
	if len(got) != len(want) {
		t.Fatalf("frame = % X, want % X", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame = % X, want % X", got, want)
		}
	}
}

func TestPacketDeviceTransmitSendsStagedFrame(t *testing.T) {
	spi := &mockSPI{}
	cs := &mockPin{}
	dev := NewWithHardware(spi, cs)
	pd := NewPacketDevice(dev)

	spi.queueReg8(0x00) // ECON1 low readback
	spi.queueReg8(0x00) // TXRTS poll: cleared immediately

	tx := pd.Transmit(context.Background())
	err := tx.Consume(3, func(buf []byte) error {
		copy(buf, []byte{0xAA, 0xBB, 0xCC})
		return nil
	})
	if err != nil {
		t.Fatalf("TxToken.Consume: %v", err)
	}

	wantOpcode := []byte{opWEGPDATA, 0xAA, 0xBB, 0xCC}
	found := false
	for i := 0; i+len(wantOpcode) <= len(spi.tx); i++ {
		match := true
		for j, b := range wantOpcode {
			if spi.tx[i+j] != b {
				match = false
				break
			}
		}
		if match {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected WEGPDATA transaction with staged frame in trace % X", spi.tx)
	}
}

func TestPacketDeviceTransmitRejectsOversizeFrame(t *testing.T) {
	spi := &mockSPI{}
	cs := &mockPin{}
	dev := NewWithHardware(spi, cs)
	pd := NewPacketDevice(dev)

	tx := pd.Transmit(context.Background())
	err := tx.Consume(RawFrameLenMax+1, func([]byte) error { return nil })
	if err == nil {
		t.Fatal("expected error for oversize frame, got nil")
	}
	if !errors.Is(err, ErrPkg) {
		t.Fatalf("error = %v, want wrapping ErrPkg", err)
	}
}

func TestCapabilitiesReportsMTU(t *testing.T) {
	spi := &mockSPI{}
	cs := &mockPin{}
	pd := NewPacketDevice(NewWithHardware(spi, cs))
	if pd.Capabilities().MTU != RawFrameLenMax {
		t.Fatalf("MTU = %d, want %d", pd.Capabilities().MTU, RawFrameLenMax)
	}
}
