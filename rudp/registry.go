package rudp

import (
	"net"
	"sync"
)

// A Registry maps client addresses and PeerIDs to Peers.
// Its lock is the only state shared between Peers.
type Registry struct {
	newPeer func(addr net.Addr, id PeerID, onClose func(*Peer)) *Peer
	created func(*Peer) // Called without mu held.

	mu        sync.Mutex
	addr2peer map[string]*Peer
	id2peer   map[PeerID]*Peer
	peerID    PeerID // Last assigned.
}

func newRegistry(newPeer func(net.Addr, PeerID, func(*Peer)) *Peer, created func(*Peer)) *Registry {
	return &Registry{
		newPeer:   newPeer,
		created:   created,
		addr2peer: make(map[string]*Peer),
		id2peer:   make(map[PeerID]*Peer),
		peerID:    PeerIDCltMin - 1,
	}
}

// ResolveOrCreate returns the PeerID of the Peer at addr,
// creating the Peer if there is none.
// A created Peer is told its PeerID and offered to Accept.
// New PeerIDs are assigned in increasing order, wrapping around,
// so the ID of a removed Peer isn't reused right away.
func (r *Registry) ResolveOrCreate(addr net.Addr) (id PeerID, created bool, err error) {
	p, created, err := r.resolveOrCreate(addr)
	if err != nil {
		return PeerIDNil, false, err
	}
	return p.ID(), created, nil
}

func (r *Registry) resolveOrCreate(addr net.Addr) (*Peer, bool, error) {
	p, created, err := r.add(addr)
	if created && r.created != nil {
		r.created(p)
	}
	return p, created, err
}

func (r *Registry) add(addr net.Addr) (*Peer, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := addr.String()
	if p, ok := r.addr2peer[key]; ok {
		return p, false, nil
	}

	id := r.peerID
	for i := 0; ; i++ {
		if i > 0xffff {
			return nil, false, ErrOutOfPeerIDs
		}

		id++
		if id < PeerIDCltMin {
			continue
		}
		if _, used := r.id2peer[id]; !used {
			break
		}
	}
	r.peerID = id

	p := r.newPeer(addr, id, r.remove)
	r.addr2peer[key] = p
	r.id2peer[id] = p

	return p, true, nil
}

// lookupAddr returns the Peer at addr.
func (r *Registry) lookupAddr(addr net.Addr) (*Peer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.addr2peer[addr.String()]
	return p, ok
}

// Lookup returns the Peer with id.
func (r *Registry) Lookup(id PeerID) (*Peer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.id2peer[id]
	return p, ok
}

// Teardown closes the Peer with id, which removes it from the Registry.
// Its pending sends fail with ErrPeerGone
// and its unacked and partially received packets are dropped.
func (r *Registry) Teardown(id PeerID) error {
	p, ok := r.Lookup(id)
	if !ok {
		return ErrPeerGone
	}
	return p.Close()
}

// remove is called by Peers when they close.
func (r *Registry) remove(p *Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := p.RemoteAddr().String()
	if r.addr2peer[key] == p {
		delete(r.addr2peer, key)
	}
	if r.id2peer[p.ID()] == p {
		delete(r.id2peer, p.ID())
	}
}

// Len returns the number of Peers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.id2peer)
}

// Range calls f for each Peer until f returns false.
// f may tear Peers down.
func (r *Registry) Range(f func(*Peer) bool) {
	r.mu.Lock()
	peers := make([]*Peer, 0, len(r.id2peer))
	for _, p := range r.id2peer {
		peers = append(peers, p)
	}
	r.mu.Unlock()

	for _, p := range peers {
		if !f(p) {
			return
		}
	}
}
