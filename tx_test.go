package enc424j600

import "testing"

func TestNewTxBufferLeavesAddressZeroUnused(t *testing.T) {
	b := NewTxBuffer()
	if b.NextAddr() != GPBUFSTDefault+1 {
		t.Fatalf("NextAddr = 0x%04X, want 0x%04X", b.NextAddr(), GPBUFSTDefault+1)
	}
}

func TestTxPacketUpdateFrame(t *testing.T) {
	p := NewTxPacket()
	data := []byte{0x01, 0x02, 0x03}
	p.UpdateFrame(data, len(data))

	if p.FrameLength() != 3 {
		t.Fatalf("FrameLength = %d, want 3", p.FrameLength())
	}
	for i, want := range data {
		if p.FrameByte(i) != want {
			t.Fatalf("FrameByte(%d) = 0x%02X, want 0x%02X", i, p.FrameByte(i), want)
		}
	}
}

func TestTxPacketUpdateFrameOverwritesPreviousContent(t *testing.T) {
	p := NewTxPacket()
	p.UpdateFrame([]byte{0xFF, 0xFF, 0xFF, 0xFF}, 4)
	p.UpdateFrame([]byte{0x01, 0x02}, 2)

	if p.FrameLength() != 2 {
		t.Fatalf("FrameLength = %d, want 2", p.FrameLength())
	}
	frame := p.Frame()
	if len(frame) != 2 || frame[0] != 0x01 || frame[1] != 0x02 {
		t.Fatalf("Frame() = % X, want [01 02]", frame)
	}
}
