package main

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/voxelnet/mt"
	"github.com/voxelnet/mt/rudp"
)

// connect returns both ends of a connection over the loopback interface:
// srv connects to clt's listener.
func connect(ctx context.Context, t *testing.T, cfg rudp.Config) (srv, clt mt.Peer) {
	t.Helper()

	lc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { lc.Close() })
	l := mt.Listen(lc, cfg)

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	srv = mt.Connect(pc, lc.LocalAddr(), cfg)
	t.Cleanup(func() { srv.Close() })

	_, err = srv.SendCmd(ctx, &mt.ToSrvInit{SerializeVer: 28, PlayerName: "p"})
	require.NoError(t, err)

	clt, err = l.Accept(ctx)
	require.NoError(t, err)
	_, err = clt.Recv(ctx)
	require.NoError(t, err)

	return srv, clt
}

func TestForwardRaw(t *testing.T) {
	cfg := rudp.Config{Logger: slog.New(slog.DiscardHandler)}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// upSrv is the proxy's connection to the server, upClt is the server's end.
	upSrv, upClt := connect(ctx, t, cfg)
	// player is the client's connection to the proxy, downClt is the proxy's end.
	player, downClt := connect(ctx, t, cfg)

	var g errgroup.Group
	g.Go(func() error { return forward(ctx, slog.New(slog.DiscardHandler), upSrv, downClt) })

	blk := &mt.ToCltBlkData{Blkpos: [3]int16{1, 2, 3}}
	blk.Blk.SetNode(7, mt.Node{Param0: mt.Air})

	raw := [][]byte{
		{0x00, 0xee, 1, 2, 3}, // unknown
		{0x00, 0x33},          // truncated ToCltHP
	}
	for _, data := range raw {
		_, err := upClt.Peer.Send(ctx, rudp.Pkt{Data: data})
		require.NoError(t, err)
	}
	_, err := upClt.Send(ctx, mt.Pkt{Cmd: blk})
	require.NoError(t, err)

	for _, want := range raw {
		pkt, err := player.Peer.Recv(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, pkt.Data)
	}

	pkt, err := player.Recv(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(blk, pkt.Cmd, cmpopts.EquateEmpty()))

	require.NoError(t, upClt.Close())
	require.NoError(t, g.Wait())

	_, err = player.Recv(ctx)
	assert.ErrorIs(t, err, net.ErrClosed)
}
