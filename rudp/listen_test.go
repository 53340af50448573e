package rudp

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hello = frame(PeerIDNil, 0, rawPkt{Type: rawOrig, Data: []byte("hi")})

func TestRegistryTeardown(t *testing.T) {
	cfg := testConfig()
	cfg.WindowSize = 1
	l := NewListener(&testEP{addr: "srv"}, cfg)
	defer l.Close()
	reg := l.Registry()

	a, b := testAddr("a"), testAddr("b")
	require.NoError(t, l.HandleDatagram(a, hello))
	require.NoError(t, l.HandleDatagram(b, hello))
	assert.Equal(t, 2, reg.Len())

	id, created, err := reg.ResolveOrCreate(a)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, PeerIDCltMin, id)

	p, ok := reg.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, a, p.RemoteAddr())

	// The unacked set peer id fills the window.
	errs := make(chan error)
	go func() {
		_, err := p.Send(context.Background(), Pkt{Data: []byte("stuck")})
		errs <- err
	}()

	// Half of a split packet.
	half := rawPkt{Type: rawSplit, SN: 0, Count: 2, Data: []byte("half")}
	require.NoError(t, l.HandleDatagram(a, frame(PeerIDNil, 1, half)))
	assert.Eventually(t, func() bool { return pendingSplits(p) == 1 }, time.Second, time.Millisecond)

	require.NoError(t, reg.Teardown(id))
	assert.ErrorIs(t, <-errs, ErrPeerGone)
	assert.Equal(t, Closed, p.State())
	assert.Equal(t, 1, reg.Len())
	assert.Zero(t, pendingSplits(p))

	// Chunks still being processed are dropped too.
	require.NoError(t, p.processRawPkt(half, PktInfo{Channel: 1, Unrel: true}))
	assert.Zero(t, pendingSplits(p))

	_, ok = reg.Lookup(id)
	assert.False(t, ok)
	assert.ErrorIs(t, reg.Teardown(id), ErrPeerGone)

	// The address gets a fresh Peer with a new PeerID.
	require.NoError(t, l.HandleDatagram(a, hello))
	q, ok := reg.lookupAddr(a)
	require.True(t, ok)
	assert.NotSame(t, p, q)
	assert.Equal(t, PeerIDCltMin+2, q.ID())
	assert.Equal(t, 1, q.chans[0].out.inflight(), "only its own set peer id")
	assert.Zero(t, q.chans[1].out.inflight())
}

func pendingSplits(p *Peer) (n int) {
	for i := range p.chans {
		c := &p.chans[i]
		c.splitsMu.Lock()
		n += c.splits.pending()
		c.splitsMu.Unlock()
	}
	return
}

func TestRegistryResolveOrCreateAccepts(t *testing.T) {
	ep := &testEP{addr: "srv"}
	l := NewListener(ep, testConfig())
	defer l.Close()
	reg := l.Registry()

	id, created, err := reg.ResolveOrCreate(testAddr("clt"))
	require.NoError(t, err)
	assert.True(t, created)

	p, ok := reg.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, 1, p.chans[0].out.inflight(), "set peer id sent")

	require.NoError(t, l.HandleDatagram(testAddr("clt"), hello))
	assert.Equal(t, 1, reg.Len())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clt, err := l.Accept(ctx)
	require.NoError(t, err)
	assert.Same(t, p, clt)

	pkt, err := clt.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), pkt.Data)
}

func TestRegistryRange(t *testing.T) {
	l := NewListener(&testEP{addr: "srv"}, testConfig())
	defer l.Close()

	for _, addr := range []testAddr{"a", "b", "c"} {
		require.NoError(t, l.HandleDatagram(addr, hello))
	}

	var n int
	l.Registry().Range(func(p *Peer) bool {
		n++
		return true
	})
	assert.Equal(t, 3, n)

	// Tearing Peers down while ranging.
	l.Registry().Range(func(p *Peer) bool {
		return assert.NoError(t, l.Registry().Teardown(p.ID()))
	})
	assert.Zero(t, l.Registry().Len())
}

func TestListenerRejectsMalformed(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics = NewMetrics(prometheus.NewRegistry())
	l := NewListener(&testEP{addr: "srv"}, cfg)
	defer l.Close()

	err := l.HandleDatagram(testAddr("a"), []byte("junk"))

	var pe PktError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "net", pe.Type)

	var fe *FramingError
	assert.ErrorAs(t, err, &fe)

	assert.Zero(t, l.Registry().Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(cfg.Metrics.FramingErrors))
	assert.Zero(t, testutil.ToFloat64(cfg.Metrics.Peers))
}

func TestListenerClose(t *testing.T) {
	l := NewListener(&testEP{addr: "srv"}, testConfig())
	require.NoError(t, l.HandleDatagram(testAddr("a"), hello))
	p, ok := l.Registry().Lookup(PeerIDCltMin)
	require.True(t, ok)

	require.NoError(t, l.Close())
	assert.ErrorIs(t, l.Close(), net.ErrClosed)

	_, err := l.Accept(context.Background())
	assert.ErrorIs(t, err, net.ErrClosed)
	assert.ErrorIs(t, l.HandleDatagram(testAddr("b"), hello), net.ErrClosed)

	waitClosed(t, p)
	assert.Zero(t, l.Registry().Len())
}

func TestUDP(t *testing.T) {
	lc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { lc.Close() })
	l := Listen(lc, testConfig())
	assert.Equal(t, lc.LocalAddr(), l.Addr())

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	clt := Connect(pc, lc.LocalAddr(), testConfig())
	defer clt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = clt.Send(ctx, Pkt{Data: []byte("ping"), PktInfo: PktInfo{Channel: 2}})
	require.NoError(t, err)

	srv, err := l.Accept(ctx)
	require.NoError(t, err)

	pkt, err := srv.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, Pkt{Data: []byte("ping"), PktInfo: PktInfo{Channel: 2}}, pkt)

	big := testPayload(2000)
	ack, err := srv.Send(ctx, Pkt{Data: big})
	require.NoError(t, err)

	pkt, err = clt.Recv(ctx)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(big, pkt.Data))

	select {
	case <-ack:
	case <-ctx.Done():
		t.Fatal("not acked")
	}

	require.NoError(t, clt.Close())
	waitClosed(t, srv)

	// Connect closes its PacketConn with the Peer.
	assert.Eventually(t, func() bool {
		_, err := pc.WriteTo([]byte{0}, lc.LocalAddr())
		return err != nil
	}, time.Second, time.Millisecond)
}
