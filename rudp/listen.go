package rudp

import (
	"context"
	"net"
	"sync"
)

// A Listener accepts client Peers connecting to an Endpoint.
type Listener struct {
	ep  Endpoint
	cfg Config
	reg *Registry

	clts chan *Peer

	closed    chan struct{} // close-only
	closeOnce sync.Once
}

// NewListener returns a Listener for clients reached through ep.
// Network packets received on ep must be passed to its HandleDatagram method.
func NewListener(ep Endpoint, cfg Config) *Listener {
	cfg = cfg.sanitize()

	l := &Listener{
		ep:  ep,
		cfg: cfg,

		clts:   make(chan *Peer),
		closed: make(chan struct{}),
	}
	l.reg = newRegistry(func(addr net.Addr, id PeerID, onClose func(*Peer)) *Peer {
		return newPeer(ep, addr, id, PeerIDSrv, cfg, onClose)
	}, l.accept)

	return l
}

// Listen listens for packets on pc until it is closed,
// then closes the Listener.
func Listen(pc net.PacketConn, cfg Config) *Listener {
	l := NewListener(pc, cfg)

	go func() {
		readNetPkts(pc, l.cfg.MaxNetPktSize, func(pkt netPkt) {
			if err := l.HandleDatagram(pkt.SrcAddr, pkt.Data); err != nil {
				l.cfg.Logger.Debug("dropped net pkt", "addr", pkt.SrcAddr.String(), "err", err)
			}
		}, func(err error) {
			l.cfg.Logger.Warn("can't read net pkt", "err", err)
		})

		l.Close()
	}()

	return l
}

// HandleDatagram passes a network packet received from src to its Peer.
// A Peer is only created for src if the packet has a valid header.
func (l *Listener) HandleDatagram(src net.Addr, data []byte) error {
	select {
	case <-l.closed:
		return net.ErrClosed
	default:
	}

	if p, ok := l.reg.lookupAddr(src); ok {
		return p.HandleDatagram(data)
	}

	if _, _, _, err := parseNetPkt(data); err != nil {
		l.cfg.Metrics.framingError()
		return PktError{"net", data, err}
	}

	p, _, err := l.reg.resolveOrCreate(src)
	if err != nil {
		return err
	}

	return p.HandleDatagram(data)
}

// accept tells a new Peer its PeerID and offers it to Accept.
func (l *Listener) accept(p *Peer) {
	p.log.Info("connected")

	// The window is empty, this doesn't block.
	if _, err := p.sendRaw(context.Background(), rawPkt{Type: rawCtl, Ctl: ctlSetPeerID, ID: p.ID()},
		PktInfo{}); err != nil {
		p.log.Warn("can't set client peer id", "err", err)
	}

	go func() {
		select {
		case l.clts <- p:
		case <-p.Closed():
		case <-l.closed:
		}
	}()
}

// Accept waits for and returns a connecting Peer.
// It returns net.ErrClosed once the Listener is closed.
func (l *Listener) Accept(ctx context.Context) (*Peer, error) {
	select {
	case clt := <-l.clts:
		return clt, nil
	case <-l.closed:
		return nil, net.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Registry returns the Registry of the Listener's Peers.
func (l *Listener) Registry() *Registry { return l.reg }

// Addr returns the local address of the Listener's Endpoint.
func (l *Listener) Addr() net.Addr { return l.ep.LocalAddr() }

// Close stops accepting Peers and closes all of them.
// It doesn't close the Endpoint.
func (l *Listener) Close() error {
	err := net.ErrClosed
	l.closeOnce.Do(func() {
		err = nil
		close(l.closed)
		l.reg.Range(func(p *Peer) bool {
			p.Close()
			return true
		})
	})
	return err
}
