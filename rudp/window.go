package rudp

import (
	"context"
	"sync"
	"time"
)

// A relRecord is a reliable packet waiting for its ack.
type relRecord struct {
	sn      seqnum
	data    []byte // Framed network packet, resent as is.
	sent    time.Time
	retries int
	ack     chan struct{} // close-only
}

// An outWindow limits the number of unacked reliable packets of a channel
// and keeps them around for retransmission.
type outWindow struct {
	slots chan struct{} // One element per unacked packet.

	mu   sync.Mutex
	next seqnum
	recs map[seqnum]*relRecord
}

func newOutWindow(size int) *outWindow {
	return &outWindow{
		slots: make(chan struct{}, size),
		next:  initSeqnum,
		recs:  make(map[seqnum]*relRecord),
	}
}

// push waits for a free slot, then assigns the next seqnum,
// builds the packet with it and writes it.
// It fails with ErrPeerGone once gone is closed.
func (w *outWindow) push(ctx context.Context, gone <-chan struct{}, now time.Time,
	build func(seqnum) []byte, write func([]byte) error) (*relRecord, error) {
	select {
	case <-gone:
		return nil, ErrPeerGone
	default:
	}

	select {
	case w.slots <- struct{}{}:
	case <-gone:
		return nil, ErrPeerGone
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-gone:
		return nil, ErrPeerGone
	default:
	}

	rec := &relRecord{
		sn:   w.next,
		sent: now,
		ack:  make(chan struct{}),
	}
	rec.data = build(rec.sn)

	if err := write(rec.data); err != nil {
		<-w.slots
		return nil, err
	}

	w.next++
	w.recs[rec.sn] = rec
	return rec, nil
}

// ack removes the record of sn, reporting whether there was one.
func (w *outWindow) ack(sn seqnum) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.recs[sn]
	if !ok {
		return false
	}

	delete(w.recs, sn)
	close(rec.ack)
	<-w.slots
	return true
}

// due returns the packets that weren't acked for interval and marks them
// as resent at now. It reports whether a packet was resent more than
// maxRetries times.
func (w *outWindow) due(now time.Time, interval time.Duration, maxRetries int) (resend [][]byte, exceeded bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, rec := range w.recs {
		if now.Sub(rec.sent) < interval {
			continue
		}

		rec.retries++
		if maxRetries > 0 && rec.retries > maxRetries {
			exceeded = true
			continue
		}

		rec.sent = now
		resend = append(resend, rec.data)
	}

	return
}

// inflight returns the number of unacked packets.
func (w *outWindow) inflight() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.recs)
}

// clear forgets all unacked packets and returns how many there were.
// Senders waiting for a slot are released by closing their gone channel.
func (w *outWindow) clear() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(w.recs)
	w.recs = make(map[seqnum]*relRecord)
	return n
}
