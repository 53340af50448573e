package rudp

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"
)

type testAddr string

func (a testAddr) Network() string { return "test" }
func (a testAddr) String() string  { return string(a) }

// testEP is an in-memory Endpoint.
// Each written packet is delivered as many times as filter says.
type testEP struct {
	addr testAddr

	mu      sync.Mutex
	deliver func(src net.Addr, data []byte)
	filter  func(data []byte) int
	sent    int
}

func (ep *testEP) LocalAddr() net.Addr { return ep.addr }

func (ep *testEP) WriteTo(b []byte, addr net.Addr) (int, error) {
	ep.mu.Lock()
	deliver, filter := ep.deliver, ep.filter
	ep.sent++
	ep.mu.Unlock()

	n := 1
	if filter != nil {
		n = filter(b)
	}
	for i := 0; i < n; i++ {
		if deliver != nil {
			deliver(ep.addr, append([]byte(nil), b...))
		}
	}
	return len(b), nil
}

func (ep *testEP) setFilter(f func([]byte) int) {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	ep.filter = f
}

func isRel(data []byte) bool {
	return len(data) > MtHdrSize && rawType(data[MtHdrSize]) == rawRel
}

func testConfig() Config {
	return Config{
		RetransmitInterval: 20 * time.Millisecond,
		SweepInterval:      5 * time.Millisecond,
		Logger:             slog.New(slog.DiscardHandler),
	}
}

// testPair is a Listener and a client Peer connected in memory.
type testPair struct {
	l      *Listener
	clt    *Peer
	srvEP  *testEP
	cltEP  *testEP
	srvCfg Config
	cltCfg Config
}

func newTestPair(t *testing.T, srvCfg, cltCfg Config) *testPair {
	t.Helper()

	pr := &testPair{
		srvEP:  &testEP{addr: "srv"},
		cltEP:  &testEP{addr: "clt"},
		srvCfg: srvCfg,
		cltCfg: cltCfg,
	}

	pr.l = NewListener(pr.srvEP, srvCfg)
	pr.cltEP.deliver = func(src net.Addr, data []byte) {
		pr.l.HandleDatagram(src, data)
	}

	pr.clt = NewConn(pr.cltEP, testAddr("srv"), cltCfg)
	pr.srvEP.deliver = func(_ net.Addr, data []byte) {
		pr.clt.HandleDatagram(data)
	}

	t.Cleanup(func() {
		pr.clt.Close()
		pr.l.Close()
	})

	return pr
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
