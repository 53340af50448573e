package rudp

import (
	"fmt"
	"io"
)

const (
	// protoID + src PeerID + channel number
	MtHdrSize = 4 + 2 + 1

	// rawOrig
	OrigHdrSize = 1

	// rawSplit + seqnum + chunk count + chunk number
	SplitHdrSize = 1 + 2 + 2 + 2

	// rawRel + seqnum
	RelHdrSize = 1 + 2

	// rawCtl + ctlType + seqnum or PeerID
	CtlHdrSize = 1 + 1 + 2
)

/*
rawPkt wire format (big endian):

	rawType
	switch rawType {
	case rawCtl:
		ctlType
		switch ctlType {
		case ctlAck:
			// Tells peer you received a rawRel
			// and it doesn't need to resend it.
			seqnum
		case ctlSetPeerID:
			// Tells peer to send packets with this Src PeerID.
			PeerID
		case ctlPing:
			// Sent to prevent timeout.
		case ctlDisco:
			// Tells peer that you disconnected.
		}
	case rawOrig:
		Pkt.Data
	case rawSplit:
		// Packet larger than Config.MaxNetPktSize split into smaller packets.
		// Once all Count chunks are recieved, they are sorted by Index and
		// concatenated to make a Pkt.Data.
		seqnum // Identifies split packet.
		Count, Index uint16
		Chunk...
	case rawRel:
		// Resent until a ctlAck with same seqnum is recieved.
		// seqnums are sequencial and start at initSeqnum,
		// these are processed in seqnum order.
		seqnum
		rawPkt
	}
*/
type rawPkt struct {
	Type rawType

	Ctl ctlType
	ID  PeerID // ctlSetPeerID

	SN           seqnum // ctlAck, rawSplit, rawRel
	Count, Index uint16 // rawSplit

	// Payload for rawOrig, chunk for rawSplit and
	// the unparsed inner rawPkt for rawRel.
	Data []byte
}

func (p rawPkt) size() int {
	switch p.Type {
	case rawCtl:
		switch p.Ctl {
		case ctlAck, ctlSetPeerID:
			return CtlHdrSize
		}
		return 2
	case rawOrig:
		return OrigHdrSize + len(p.Data)
	case rawSplit:
		return SplitHdrSize + len(p.Data)
	case rawRel:
		return RelHdrSize + len(p.Data)
	}
	return 0
}

func (p rawPkt) appendTo(buf []byte) []byte {
	buf = append(buf, uint8(p.Type))
	switch p.Type {
	case rawCtl:
		buf = append(buf, uint8(p.Ctl))
		switch p.Ctl {
		case ctlAck:
			buf = be.AppendUint16(buf, uint16(p.SN))
		case ctlSetPeerID:
			buf = be.AppendUint16(buf, uint16(p.ID))
		}
	case rawOrig:
		buf = append(buf, p.Data...)
	case rawSplit:
		buf = be.AppendUint16(buf, uint16(p.SN))
		buf = be.AppendUint16(buf, p.Count)
		buf = be.AppendUint16(buf, p.Index)
		buf = append(buf, p.Data...)
	case rawRel:
		buf = be.AppendUint16(buf, uint16(p.SN))
		buf = append(buf, p.Data...)
	}
	return buf
}

func (p rawPkt) bytes() []byte {
	return p.appendTo(make([]byte, 0, p.size()))
}

// frame returns the network packet carrying p on ch, sent by src.
func frame(src PeerID, ch Channel, p rawPkt) []byte {
	buf := make([]byte, 0, MtHdrSize+p.size())
	buf = be.AppendUint32(buf, protoID)
	buf = be.AppendUint16(buf, uint16(src))
	buf = append(buf, uint8(ch))
	return p.appendTo(buf)
}

// framer reads fields from a packet, recording the first failure.
type framer struct {
	data []byte
	off  int
	base int // Offset of data in the network packet.
	err  error
}

func (f *framer) eat(n int, field string) []byte {
	if f.err != nil {
		return nil
	}
	if len(f.data)-f.off < n {
		f.err = &FramingError{f.base + f.off, field, io.ErrUnexpectedEOF}
		return nil
	}
	b := f.data[f.off : f.off+n]
	f.off += n
	return b
}

func (f *framer) u8(field string) uint8 {
	if b := f.eat(1, field); b != nil {
		return b[0]
	}
	return 0
}

func (f *framer) u16(field string) uint16 {
	if b := f.eat(2, field); b != nil {
		return be.Uint16(b)
	}
	return 0
}

func (f *framer) fail(field string, n int, err error) {
	if f.err == nil {
		f.err = &FramingError{f.base + f.off - n, field, err}
	}
}

func (f *framer) rest() []byte {
	if f.err != nil {
		return nil
	}
	b := f.data[f.off:]
	f.off = len(f.data)
	return b
}

// parseNetPkt parses the network header of data.
func parseNetPkt(data []byte) (src PeerID, ch Channel, raw []byte, err error) {
	f := framer{data: data}

	if b := f.eat(4, "protocol id"); b != nil {
		if id := be.Uint32(b); id != protoID {
			f.fail("protocol id", 4, fmt.Errorf("unsupported protocol id: 0x%08x", id))
		}
	}
	src = PeerID(f.u16("src peer id"))
	ch = Channel(f.u8("channel"))
	if f.err == nil && ch >= ChannelCount {
		f.fail("channel", 1, TooBigChError(ch))
	}

	return src, ch, f.rest(), f.err
}

// parseRawPkt parses a rawPkt found at offset off of a network packet.
// Data fields of the result alias data.
func parseRawPkt(data []byte, off int) (p rawPkt, err error) {
	f := framer{data: data, base: off}

	p.Type = rawType(f.u8("type"))
	switch p.Type {
	case rawCtl:
		p.Ctl = ctlType(f.u8("ctl type"))
		switch p.Ctl {
		case ctlAck:
			p.SN = seqnum(f.u16("ack seqnum"))
		case ctlSetPeerID:
			p.ID = PeerID(f.u16("peer id"))
		case ctlPing, ctlDisco:
		default:
			f.fail("ctl type", 1, fmt.Errorf("unsupported ctl type: %d", p.Ctl))
		}
		if f.err == nil && f.off < len(f.data) {
			return p, TrailingDataError(f.rest())
		}
	case rawOrig:
		p.Data = f.rest()
	case rawSplit:
		p.SN = seqnum(f.u16("split seqnum"))
		p.Count = f.u16("chunk count")
		p.Index = f.u16("chunk number")
		p.Data = f.rest()
	case rawRel:
		p.SN = seqnum(f.u16("rel seqnum"))
		p.Data = f.rest()
	default:
		if f.err == nil {
			f.fail("type", 1, fmt.Errorf("unsupported pkt type: %d", p.Type))
		}
	}

	return p, f.err
}

// parse splits a network packet into its header fields and rawPkt.
func parse(data []byte) (PeerID, Channel, rawPkt, error) {
	src, ch, raw, err := parseNetPkt(data)
	if err != nil {
		return src, ch, rawPkt{}, err
	}
	p, err := parseRawPkt(raw, MtHdrSize)
	return src, ch, p, err
}
