package rudp

import "net"

// NewConn returns a Peer for the server at addr reached through ep.
// Network packets received from addr must be passed to its HandleDatagram
// method.
func NewConn(ep Endpoint, addr net.Addr, cfg Config) *Peer {
	return newPeer(ep, addr, PeerIDSrv, PeerIDNil, cfg, nil)
}

// Connect returns a Peer connected to the server at addr through pc.
// pc is closed when the Peer is.
func Connect(pc net.PacketConn, addr net.Addr, cfg Config) *Peer {
	srv := NewConn(pc, addr, cfg)

	go readNetPkts(pc, srv.cfg.MaxNetPktSize, func(pkt netPkt) {
		if !sameAddr(pkt.SrcAddr, addr) {
			srv.log.Debug("got pkt from wrong addr", "from", pkt.SrcAddr.String())
			return
		}
		if err := srv.HandleDatagram(pkt.Data); err != nil {
			srv.log.Debug("dropped net pkt", "err", err)
		}
	}, func(err error) {
		srv.log.Warn("can't read net pkt", "err", err)
	})

	go func() {
		<-srv.Closed()
		pc.Close()
	}()

	return srv
}
