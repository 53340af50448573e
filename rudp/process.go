package rudp

import (
	"context"
	"errors"
	"fmt"
	"time"
)

func (p *Peer) processNetPkts() {
	defer func() {
		// Drop received but unprocessed reliable packets.
		for i := range p.chans {
			p.chans[i].in = newRelIn()
		}
	}()

	for {
		select {
		case data := <-p.in:
			if err := p.processNetPkt(data); err != nil {
				p.badPkt(PktError{"net", data, err})
			}
		case <-p.gone:
			return
		}
	}
}

// badPkt logs a malformed packet and closes the Peer
// if it sends them too often.
func (p *Peer) badPkt(err error) {
	p.cfg.Metrics.framingError()
	p.log.Debug("bad pkt", "err", err)

	if p.badPkts != nil && !p.badPkts.Allow() {
		p.closeDisco(ErrTooManyBadPkts)
	}
}

func (p *Peer) processNetPkt(data []byte) error {
	_, ch, raw, err := parse(data)

	var tde TrailingDataError
	if err != nil && !errors.As(err, &tde) {
		return err
	}

	p.lastRecv.Store(time.Now().UnixNano())
	p.state.CompareAndSwap(uint32(Connecting), uint32(Active))
	p.cfg.Metrics.received(raw.Type)

	if err := p.processRawPkt(raw, PktInfo{Channel: ch, Unrel: true}); err != nil {
		return err
	}

	// Trailing data doesn't stop a packet from being processed.
	return err
}

func (p *Peer) processRawPkt(raw rawPkt, pi PktInfo) (err error) {
	errWrap := func(format string, a ...any) {
		if err != nil {
			err = fmt.Errorf(format, append(a, err)...)
		}
	}

	c := &p.chans[pi.Channel]

	switch raw.Type {
	case rawCtl:
		defer errWrap("ctl: %w")

		switch raw.Ctl {
		case ctlAck:
			if c.out.ack(raw.SN) {
				p.cfg.Metrics.inflight(-1)
			}
		case ctlSetPeerID:
			defer errWrap("set peer id: %w")

			p.mu.Lock()
			defer p.mu.Unlock()

			if p.idOfPeer != PeerIDNil && p.idOfPeer != raw.ID {
				return errors.New("peer id already set")
			}
			p.idOfPeer = raw.ID
		case ctlPing:
		case ctlDisco:
			p.close(nil)
		}
	case rawOrig:
		p.gotPkt(Pkt{raw.Data, pi})
	case rawSplit:
		defer errWrap("split %d: %w", raw.SN)

		var data []byte
		c.splitsMu.Lock()
		select {
		case <-p.gone:
			// Closed Peers keep no chunks.
		default:
			data, err = c.splits.push(time.Now(), raw, pi.Unrel)
		}
		c.splitsMu.Unlock()
		if err != nil {
			return err
		}

		if data != nil {
			p.gotPkt(Pkt{data, pi})
		}
	case rawRel:
		defer errWrap("rel %d: %w", raw.SN)

		if !pi.Unrel {
			return errors.New("nested rel pkt")
		}

		// Duplicates are acked too, the first ack may have been lost.
		if _, err := p.sendRaw(context.Background(), rawPkt{Type: rawCtl, Ctl: ctlAck, SN: raw.SN},
			PktInfo{Channel: pi.Channel, Unrel: true}); err != nil {
			if errors.Is(err, ErrPeerGone) {
				return nil
			}
			return fmt.Errorf("can't ack: %w", err)
		}
		p.cfg.Metrics.ackSent()

		if !c.in.push(raw.SN, raw.Data) {
			p.cfg.Metrics.duplicate()
			return nil
		}

		for {
			data, ok := c.in.pop()
			if !ok {
				break
			}

			inner, err := parseRawPkt(data, MtHdrSize+RelHdrSize)
			var tde TrailingDataError
			if err != nil && !errors.As(err, &tde) {
				p.badPkt(PktError{"rel", data, err})
				continue
			}

			if err := p.processRawPkt(inner, PktInfo{Channel: pi.Channel}); err != nil {
				p.badPkt(PktError{"rel", data, err})
			}
		}
	}

	return nil
}
