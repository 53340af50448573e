package rudp

import (
	"context"
	"errors"
	"net"
	"time"
)

// Send sends a packet to the Peer.
// It returns a channel that's closed when all chunks are acked or an error.
// The ack channel is nil if pkt.Unrel is true.
//
// Reliable sends block while the channel's window is full,
// until an ack frees a slot, ctx is done or the Peer is closed.
func (p *Peer) Send(ctx context.Context, pkt Pkt) (ack <-chan struct{}, err error) {
	if pkt.Channel >= ChannelCount {
		return nil, ErrChNoTooBig
	}

	hdrsize := MtHdrSize
	if !pkt.Unrel {
		hdrsize += RelHdrSize
	}

	if hdrsize+OrigHdrSize+len(pkt.Data) <= p.cfg.MaxNetPktSize {
		return p.sendRaw(ctx, rawPkt{Type: rawOrig, Data: pkt.Data}, pkt.PktInfo)
	}

	c := &p.chans[pkt.Channel]

	c.outSplitMu.Lock()
	sn := c.outSplitSN
	c.outSplitSN++
	c.outSplitMu.Unlock()

	chunks, err := splitPkts(sn, pkt.Data, p.cfg.MaxNetPktSize-(hdrsize+SplitHdrSize))
	if err != nil {
		return nil, err
	}

	var acks []<-chan struct{}
	for _, chunk := range chunks {
		ack, err := p.sendRaw(ctx, chunk, pkt.PktInfo)
		if err != nil {
			return nil, err
		}
		if ack != nil {
			acks = append(acks, ack)
		}
	}

	if pkt.Unrel {
		return nil, nil
	}

	all := make(chan struct{})
	go func() {
		for _, ack := range acks {
			select {
			case <-ack:
			case <-p.gone:
				return
			}
		}
		close(all)
	}()

	return all, nil
}

// sendRaw sends a raw packet to the Peer.
func (p *Peer) sendRaw(ctx context.Context, raw rawPkt, pi PktInfo) (ack <-chan struct{}, err error) {
	if pi.Channel >= ChannelCount {
		return nil, ErrChNoTooBig
	}

	select {
	case <-p.gone:
		return nil, ErrPeerGone
	default:
	}

	if !pi.Unrel {
		return p.sendRel(ctx, raw, pi.Channel)
	}

	data := frame(p.srcID(), pi.Channel, raw)
	if len(data) > p.cfg.MaxNetPktSize {
		return nil, ErrPktTooBig
	}

	if err := p.write(data); err != nil {
		return nil, err
	}
	p.cfg.Metrics.sent(raw.Type)

	return nil, nil
}

// sendRel sends a reliable raw packet to the Peer.
// It blocks while the channel's window is full.
func (p *Peer) sendRel(ctx context.Context, raw rawPkt, ch Channel) (ack <-chan struct{}, err error) {
	if raw.size()+MtHdrSize+RelHdrSize > p.cfg.MaxNetPktSize {
		return nil, ErrPktTooBig
	}

	inner := raw.bytes()
	rec, err := p.chans[ch].out.push(ctx, p.gone, time.Now(),
		func(sn seqnum) []byte {
			return frame(p.srcID(), ch, rawPkt{Type: rawRel, SN: sn, Data: inner})
		},
		p.write,
	)
	if err != nil {
		return nil, err
	}

	p.cfg.Metrics.sent(rawRel)
	p.cfg.Metrics.inflight(1)

	return rec.ack, nil
}

// write writes a network packet to the Peer's address.
func (p *Peer) write(data []byte) error {
	_, err := p.ep.WriteTo(data, p.addr)
	if errors.Is(err, net.ErrWriteToConnected) {
		conn, ok := p.ep.(net.Conn)
		if !ok {
			return err
		}
		_, err = conn.Write(data)
	}
	if err != nil {
		return err
	}

	p.lastSend.Store(time.Now().UnixNano())
	return nil
}
