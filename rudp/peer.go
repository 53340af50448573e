package rudp

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ConnState is the lifecycle state of a Peer.
type ConnState uint32

const (
	// Connecting Peers haven't received a packet yet.
	Connecting ConnState = iota
	// Active Peers have received a packet from the other side.
	Active
	// Disconnecting Peers are sending their disconnect packet.
	Disconnecting
	Closed
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Active:
		return "active"
	case Disconnecting:
		return "disconnecting"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// A Peer is a connection to a client or server.
type Peer struct {
	ep   Endpoint
	addr net.Addr
	cfg  Config
	log  *slog.Logger

	id PeerID

	in   chan []byte // Network packets to process.
	pkts chan Pkt

	gone     chan struct{} // close-only
	goneOnce sync.Once
	onClose  func(*Peer)

	// Only accessed by Peer.processNetPkts.
	badPkts *rate.Limiter

	lastRecv, lastSend atomic.Int64 // UnixNano.
	state              atomic.Uint32

	mu       sync.RWMutex
	idOfPeer PeerID
	err      error

	chans [ChannelCount]pktChan
}

type pktChan struct {
	out *outWindow

	// Only accessed by Peer.processNetPkts.
	in relIn

	splitsMu sync.Mutex
	splits   *reassembler

	outSplitMu sync.Mutex
	outSplitSN seqnum
}

// ID returns the PeerID of the Peer.
func (p *Peer) ID() PeerID { return p.id }

// IsSrv reports whether the Peer is a server.
func (p *Peer) IsSrv() bool { return p.ID() == PeerIDSrv }

// LocalAddr returns the local network address.
func (p *Peer) LocalAddr() net.Addr { return p.ep.LocalAddr() }

// RemoteAddr returns the address of the Peer.
func (p *Peer) RemoteAddr() net.Addr { return p.addr }

// State returns the current ConnState of the Peer.
func (p *Peer) State() ConnState { return ConnState(p.state.Load()) }

// Closed returns a channel which is closed when the Peer is closed.
func (p *Peer) Closed() <-chan struct{} { return p.gone }

// WhyClosed returns the error that caused the Peer to be closed or nil
// if the Peer was closed using the Close method or by the peer.
// WhyClosed returns nil if the Peer is not closed.
func (p *Peer) WhyClosed() error {
	select {
	case <-p.Closed():
		p.mu.RLock()
		defer p.mu.RUnlock()
		return p.err
	default:
		return nil
	}
}

// srcID returns the PeerID the Peer knows us by.
func (p *Peer) srcID() PeerID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.idOfPeer
}

func newPeer(ep Endpoint, addr net.Addr, id, idOfPeer PeerID, cfg Config, onClose func(*Peer)) *Peer {
	cfg = cfg.sanitize()

	p := &Peer{
		ep:   ep,
		addr: addr,
		cfg:  cfg,
		log:  cfg.Logger.With("peer", uint16(id), "addr", addr.String()),

		id: id,

		in:   make(chan []byte, cfg.QueueSize),
		pkts: make(chan Pkt, cfg.QueueSize),

		gone:    make(chan struct{}),
		onClose: onClose,

		idOfPeer: idOfPeer,
	}

	if cfg.BadPktRate > 0 {
		p.badPkts = rate.NewLimiter(rate.Limit(cfg.BadPktRate), cfg.BadPktBurst)
	}

	for i := range p.chans {
		p.chans[i] = pktChan{
			out:        newOutWindow(cfg.WindowSize),
			in:         newRelIn(),
			splits:     newReassembler(),
			outSplitSN: initSeqnum,
		}
	}

	now := time.Now().UnixNano()
	p.lastRecv.Store(now)
	p.lastSend.Store(now)

	cfg.Metrics.peerOpened()

	go p.processNetPkts()
	go p.sweep()

	return p
}

// Recv receives a Pkt from the Peer.
// It returns ErrPeerGone once the Peer is closed
// and all Pkts received before have been returned.
func (p *Peer) Recv(ctx context.Context) (Pkt, error) {
	select {
	case pkt := <-p.pkts:
		return pkt, nil
	default:
	}

	select {
	case pkt := <-p.pkts:
		return pkt, nil
	case <-p.gone:
		return Pkt{}, ErrPeerGone
	case <-ctx.Done():
		return Pkt{}, ctx.Err()
	}
}

func (p *Peer) gotPkt(pkt Pkt) {
	select {
	case p.pkts <- pkt:
	case <-p.gone:
	}
}

// HandleDatagram passes a network packet received from the Peer's address
// to the Peer. Packets are processed in order by a single goroutine;
// if too many are waiting the packet is dropped and an error returned.
func (p *Peer) HandleDatagram(data []byte) error {
	select {
	case <-p.gone:
		return ErrPeerGone
	default:
	}

	data = append([]byte(nil), data...)

	select {
	case p.in <- data:
		return nil
	case <-p.gone:
		return ErrPeerGone
	default:
		return errors.New("ignoring net pkt from " + p.addr.String() + " because buf is full")
	}
}

// Close sends a disconnect packet and closes the Peer.
// Any blocked Send or Recv calls will return ErrPeerGone.
func (p *Peer) Close() error {
	return p.closeDisco(nil)
}

func (p *Peer) closeDisco(err error) error {
	if !p.state.CompareAndSwap(uint32(Connecting), uint32(Disconnecting)) &&
		!p.state.CompareAndSwap(uint32(Active), uint32(Disconnecting)) {
		return ErrPeerGone
	}

	if _, err := p.sendRaw(context.Background(), rawPkt{Type: rawCtl, Ctl: ctlDisco},
		PktInfo{Unrel: true}); err != nil {
		p.log.Debug("can't send disco", "err", err)
	}

	return p.close(err)
}

// close tears the Peer down without telling the peer.
func (p *Peer) close(err error) error {
	closed := false
	p.goneOnce.Do(func() {
		closed = true

		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		p.state.Store(uint32(Closed))

		close(p.gone)

		for i := range p.chans {
			c := &p.chans[i]

			p.cfg.Metrics.inflight(-c.out.clear())

			c.splitsMu.Lock()
			c.splits.reset()
			c.splitsMu.Unlock()
		}

		p.cfg.Metrics.peerClosed()

		if err != nil {
			p.log.Info("disconnected", "err", err)
		} else {
			p.log.Info("disconnected")
		}

		if p.onClose != nil {
			p.onClose(p)
		}
	})

	if !closed {
		return ErrPeerGone
	}
	return nil
}

func (p *Peer) sweep() {
	t := time.NewTicker(p.cfg.SweepInterval)
	defer t.Stop()

	for {
		select {
		case now := <-t.C:
			p.sweepOnce(now)
		case <-p.gone:
			return
		}
	}
}

// sweepOnce resends timed out reliable packets, expires split packets,
// sends a ping if nothing has been sent for a while
// and closes the Peer if nothing has been received for too long.
func (p *Peer) sweepOnce(now time.Time) {
	for i := range p.chans {
		c := &p.chans[i]

		resend, exceeded := c.out.due(now, p.cfg.RetransmitInterval, p.cfg.MaxRetransmits)
		if exceeded {
			p.closeDisco(ErrRetransmitLimit)
			return
		}
		for _, data := range resend {
			if err := p.write(data); err != nil {
				p.log.Warn("can't resend reliable pkt", "ch", i, "err", err)
			}
		}
		p.cfg.Metrics.retransmit(len(resend))

		if p.cfg.SplitTimeout > 0 {
			c.splitsMu.Lock()
			n := c.splits.expire(now, p.cfg.SplitTimeout)
			c.splitsMu.Unlock()

			if n > 0 {
				p.log.Debug("dropped incomplete split pkts", "ch", i, "n", n)
			}
		}
	}

	if now.Sub(time.Unix(0, p.lastRecv.Load())) >= p.cfg.ConnTimeout {
		p.closeDisco(ErrTimedOut)
		return
	}

	if now.Sub(time.Unix(0, p.lastSend.Load())) >= p.cfg.PingInterval {
		if _, err := p.sendRaw(context.Background(), rawPkt{Type: rawCtl, Ctl: ctlPing},
			PktInfo{Unrel: true}); err != nil && !errors.Is(err, net.ErrClosed) {
			p.log.Warn("can't send ping", "err", err)
		}
	}
}
