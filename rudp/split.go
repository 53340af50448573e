package rudp

import (
	"fmt"
	"math"
	"time"
)

// split cuts data into chunks of chunksize bytes, the last one may be shorter.
func split(data []byte, chunksize int) [][]byte {
	chunks := make([][]byte, 0, (len(data)+chunksize-1)/chunksize)

	for i := 0; i < len(data); i += chunksize {
		end := i + chunksize
		if end > len(data) {
			end = len(data)
		}

		chunks = append(chunks, data[i:end])
	}

	return chunks
}

// splitPkts returns the rawSplit packets carrying data
// in chunks of at most chunksize bytes.
func splitPkts(sn seqnum, data []byte, chunksize int) ([]rawPkt, error) {
	chunks := split(data, chunksize)
	if len(chunks) > math.MaxUint16 {
		return nil, ErrPktTooBig
	}

	pkts := make([]rawPkt, len(chunks))
	for i, chunk := range chunks {
		pkts[i] = rawPkt{
			Type:  rawSplit,
			SN:    sn,
			Count: uint16(len(chunks)),
			Index: uint16(i),
			Data:  chunk,
		}
	}
	return pkts, nil
}

// An inSplit is an incomplete split packet.
// Chunks are stored sparsely since count is chosen by the sender.
type inSplit struct {
	chunks map[uint16][]byte
	count  uint16
	size   int
	unrel  bool

	created, touched time.Time
}

// doneHistory is how many completed split seqnums are remembered
// so late duplicate chunks don't start a new assembly.
const doneHistory = 256

// A reassembler collects the chunks of split packets of one channel.
// It is not safe for concurrent use.
type reassembler struct {
	splits map[seqnum]*inSplit

	done    [doneHistory]seqnum
	doneSet map[seqnum]int // seqnum -> number of entries in done
	doneLen int
	doneI   int
}

func newReassembler() *reassembler {
	return &reassembler{
		splits:  make(map[seqnum]*inSplit),
		doneSet: make(map[seqnum]int),
	}
}

// push adds a chunk and returns the reassembled data
// if it completed its split packet.
func (r *reassembler) push(now time.Time, p rawPkt, unrel bool) ([]byte, error) {
	sn, n, i := p.SN, p.Count, p.Index

	if i >= n {
		return nil, fmt.Errorf("chunk number (%d) >= chunk count (%d)", i, n)
	}

	if r.doneSet[sn] > 0 {
		// Late duplicate of a finished split packet.
		return nil, nil
	}

	s := r.splits[sn]
	if s == nil {
		// Delete old incomplete split packets
		// so new ones don't get corrupted.
		delete(r.splits, sn-0x8000)

		s = &inSplit{
			chunks:  make(map[uint16][]byte),
			count:   n,
			unrel:   unrel,
			created: now,
		}
		r.splits[sn] = s
	}

	if n != s.count {
		return nil, fmt.Errorf("chunk count changed from %d to %d", s.count, n)
	}

	s.touched = now
	if _, ok := s.chunks[i]; !ok {
		s.chunks[i] = p.Data
		s.size += len(p.Data)
	}

	if len(s.chunks) < int(s.count) {
		return nil, nil
	}

	delete(r.splits, sn)
	r.markDone(sn)

	data := make([]byte, 0, s.size)
	for j := range s.count {
		data = append(data, s.chunks[j]...)
	}
	return data, nil
}

func (r *reassembler) markDone(sn seqnum) {
	if r.doneLen == len(r.done) {
		old := r.done[r.doneI]
		if r.doneSet[old]--; r.doneSet[old] <= 0 {
			delete(r.doneSet, old)
		}
	} else {
		r.doneLen++
	}
	r.done[r.doneI] = sn
	r.doneSet[sn]++
	r.doneI = (r.doneI + 1) % len(r.done)
}

// expire discards unreliable split packets
// that haven't received a chunk for timeout.
func (r *reassembler) expire(now time.Time, timeout time.Duration) (n int) {
	for sn, s := range r.splits {
		if s.unrel && now.Sub(s.touched) >= timeout {
			delete(r.splits, sn)
			n++
		}
	}
	return
}

// pending returns the number of incomplete split packets.
func (r *reassembler) pending() int { return len(r.splits) }

// reset discards all incomplete split packets.
func (r *reassembler) reset() {
	r.splits = make(map[seqnum]*inSplit)
}
