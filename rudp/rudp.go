/*
Package rudp implements the low-level Minetest protocol described at
https://dev.minetest.net/Network_Protocol#Low-level_protocol.

It turns datagrams exchanged with an Endpoint into per-channel streams of
packets, handling reliable delivery, acknowledgments, retransmission and
splitting of packets larger than one datagram.

All exported functions and methods in this package are safe for concurrent use
by multiple goroutines.
*/
package rudp

import "encoding/binary"

var be = binary.BigEndian

// protoID must be at the start of every network packet.
const protoID uint32 = 0x4f457403

// PeerIDs aren't actually used to identify peers, network addresses are,
// these just exist for backward compatability.
type PeerID uint16

const (
	// Used by clients before the server sets their ID.
	PeerIDNil PeerID = iota

	// The server always has this ID.
	PeerIDSrv

	// Lowest ID the server can assign to a client.
	PeerIDCltMin
)

// A Channel is one of the independent, sequenced streams of a connection.
type Channel uint8

// ChannelCount is the maximum channel number + 1.
const ChannelCount = 3

type rawType uint8

const (
	rawCtl rawType = iota
	rawOrig
	rawSplit
	rawRel
)

func (t rawType) String() string {
	switch t {
	case rawCtl:
		return "ctl"
	case rawOrig:
		return "orig"
	case rawSplit:
		return "split"
	case rawRel:
		return "rel"
	}
	return "unknown"
}

type ctlType uint8

const (
	ctlAck ctlType = iota
	ctlSetPeerID
	ctlPing
	ctlDisco
)

func (t ctlType) String() string {
	switch t {
	case ctlAck:
		return "ack"
	case ctlSetPeerID:
		return "setpeerid"
	case ctlPing:
		return "ping"
	case ctlDisco:
		return "disco"
	}
	return "unknown"
}

// PktInfo describes how a Pkt is (to be) transmitted.
type PktInfo struct {
	Channel

	// Unrel (unreliable) packets may be dropped, duplicated or reordered.
	Unrel bool
}

// A Pkt is a packet's payload together with its transmission info.
type Pkt struct {
	Data []byte
	PktInfo
}

// seqnums are sequence numbers used to maintain reliable packet order
// and to identify split packets.
type seqnum uint16

const initSeqnum seqnum = 65500

// before reports whether sn comes before x,
// assuming they are less than 0x8000 apart.
func (sn seqnum) before(x seqnum) bool {
	return x-sn-1 < 0x7fff
}
