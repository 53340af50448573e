package rudp

import (
	"errors"
	"net"
)

// An Endpoint sends network packets.
// net.PacketConn satisfies it.
type Endpoint interface {
	WriteTo(b []byte, addr net.Addr) (int, error)
	LocalAddr() net.Addr
}

/*
netPkt.Data format (big endian):

	ProtoID
	Src PeerID
	ChNo uint8 // Must be < ChannelCount.
	rawPkt
*/
type netPkt struct {
	SrcAddr net.Addr
	Data    []byte
}

// readNetPkts reads network packets from conn and calls handle with each one
// until conn is closed. Read errors other than net.ErrClosed are passed to
// handleErr.
func readNetPkts(conn net.PacketConn, size int, handle func(netPkt), handleErr func(error)) {
	for {
		buf := make([]byte, size)
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}

			handleErr(err)
			continue
		}

		handle(netPkt{addr, buf[:n]})
	}
}

// sameAddr reports whether a and b are the same network address.
func sameAddr(a, b net.Addr) bool {
	return a.Network() == b.Network() && a.String() == b.String()
}
