package enc424j600

// RX SRAM addresses, ENC424J600 datasheet default memory map.
const (
	// ERXSTDefault is the default RX circular buffer wrap/start address.
	ERXSTDefault uint16 = 0x5340
	// ERXTailDefault is the default RX tail (producer boundary) address.
	ERXTailDefault uint16 = 0x5FFE
	// RxMaxAddress is the last address of the controller's 24 KiB SRAM
	// usable by the RX ring.
	RxMaxAddress uint16 = 0x5FFF
)

// rsvLength is the byte length of the Receive Status Vector the controller
// writes ahead of every received frame.
const rsvLength = 6

// RxBuffer tracks the controller-side RX circular buffer: where it wraps,
// where the next unread packet starts, and the producer boundary released
// to hardware after each receive.
type RxBuffer struct {
	wrapAddr uint16
	nextAddr uint16
	tailAddr uint16
}

// NewRxBuffer returns an RxBuffer with the datasheet's default RX region
// (ERXST=0x5340, ERXTAIL=0x5FFE).
func NewRxBuffer() *RxBuffer {
	return &RxBuffer{
		wrapAddr: ERXSTDefault,
		nextAddr: ERXSTDefault,
		tailAddr: ERXTailDefault,
	}
}

func (b *RxBuffer) WrapAddr() uint16     { return b.wrapAddr }
func (b *RxBuffer) SetWrapAddr(a uint16) { b.wrapAddr = a }
func (b *RxBuffer) NextAddr() uint16     { return b.nextAddr }
func (b *RxBuffer) SetNextAddr(a uint16) { b.nextAddr = a }

// TailAddr returns the cached tail address. EthController.InitRxBuf reads
// it once to program ERXTAIL; after that the driver never updates it —
// EthController.ReceiveNext writes the on-chip ERXTAIL register directly —
// so it is a vestigial bookkeeping field, kept because spec.md's data model
// lists it as essential state.
func (b *RxBuffer) TailAddr() uint16     { return b.tailAddr }
func (b *RxBuffer) SetTailAddr(a uint16) { b.tailAddr = a }

// Rsv is the 6-byte Receive Status Vector the controller writes ahead of
// each received frame's payload in SRAM (datasheet Table 9-1).
type Rsv struct {
	raw         [rsvLength]byte
	frameLength uint16
}

// Write stores raw (must be at least rsvLength bytes) and derives
// FrameLength from bytes 0-1, little-endian.
func (r *Rsv) Write(raw []byte) {
	copy(r.raw[:], raw[:rsvLength])
	r.frameLength = uint16(r.raw[0]) | uint16(r.raw[1])<<8
}

// Raw returns the stored RSV bytes.
func (r *Rsv) Raw() []byte { return r.raw[:] }

// FrameLength returns the frame length (including CRC) encoded in the RSV.
func (r *Rsv) FrameLength() uint16 { return r.frameLength }

// RxPacket is one received frame: its RSV header plus up to RawFrameLenMax
// bytes of payload, stored inline so no allocation is needed per receive.
type RxPacket struct {
	rsv         Rsv
	frame       [RawFrameLenMax]byte
	frameLength int
}

// NewRxPacket returns a zeroed RxPacket.
func NewRxPacket() *RxPacket {
	return &RxPacket{}
}

// WriteToRsv stores the raw RSV bytes and updates FrameLength from them.
func (p *RxPacket) WriteToRsv(raw []byte) {
	p.rsv.Write(raw)
	p.frameLength = int(p.rsv.FrameLength())
}

// RawRsv returns the stored RSV bytes.
func (p *RxPacket) RawRsv() []byte { return p.rsv.Raw() }

// FrameLength returns the number of payload bytes (including CRC) in this
// packet, as derived from the RSV.
func (p *RxPacket) FrameLength() int { return p.frameLength }

// CopyFrameFrom copies FrameLength() bytes from raw into the packet's
// inline frame buffer.
func (p *RxPacket) CopyFrameFrom(raw []byte) {
	copy(p.frame[:p.frameLength], raw[:p.frameLength])
}

// Frame returns the packet's payload, sliced to FrameLength().
func (p *RxPacket) Frame() []byte { return p.frame[:p.frameLength] }

// FrameByte returns the i'th payload byte.
func (p *RxPacket) FrameByte(i int) byte { return p.frame[i] }
