package rudp

// relIn puts received reliable packets of a channel back in order
// and filters out duplicates.
// It is only accessed by the goroutine processing the Peer's packets.
type relIn struct {
	next seqnum
	buf  map[seqnum][]byte // Received, waiting for earlier seqnums.
}

func newRelIn() relIn {
	return relIn{
		next: initSeqnum,
		buf:  make(map[seqnum][]byte),
	}
}

// push stores data received with sn.
// It reports false if sn was already received.
func (in *relIn) push(sn seqnum, data []byte) bool {
	if sn-in.next >= 0x8000 {
		// Already processed.
		return false
	}
	if _, ok := in.buf[sn]; ok {
		return false
	}

	in.buf[sn] = data
	return true
}

// pop returns the next packet in seqnum order, if it has been received.
func (in *relIn) pop() ([]byte, bool) {
	data, ok := in.buf[in.next]
	if !ok {
		return nil, false
	}

	delete(in.buf, in.next)
	in.next++
	return data, true
}

func (in *relIn) buffered() int { return len(in.buf) }
