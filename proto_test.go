package mt

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelnet/mt/rudp"
)

func TestPeerCmds(t *testing.T) {
	cfg := rudp.Config{Logger: slog.New(slog.DiscardHandler)}

	lc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lc.Close()
	l := Listen(lc, cfg)

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := Connect(pc, lc.LocalAddr(), cfg)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// A client can only send ToSrvCmds.
	_, err = srv.SendCmd(ctx, &ToCltHP{HP: 1})
	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
	assert.ErrorIs(t, err, ErrUnknownCmd)

	hello := &ToSrvInit{SerializeVer: 28, MinProtoVer: 37, MaxProtoVer: 44, PlayerName: "p"}
	_, err = srv.Send(ctx, Pkt{hello, rudp.PktInfo{Channel: 1}})
	require.NoError(t, err)

	clt, err := l.Accept(ctx)
	require.NoError(t, err)

	pkt, err := clt.Recv(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(Pkt{hello, rudp.PktInfo{Channel: 1}}, pkt, equateEmpty))

	_, err = clt.SendCmd(ctx, &ToSrvRespawn{})
	assert.ErrorIs(t, err, ErrUnknownCmd)

	// Large enough to be split.
	media := &ToCltMedia{N: 1, Files: []MediaFile{{"a.png", make([]byte, 4000)}}}
	ack, err := clt.SendCmd(ctx, media)
	require.NoError(t, err)

	pkt, err = srv.Recv(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(media, pkt.Cmd, equateEmpty))
	assert.Equal(t, media.DefaultPktInfo(), pkt.PktInfo)

	select {
	case <-ack:
	case <-ctx.Done():
		t.Fatal("media not acked")
	}

	require.NoError(t, srv.Close())
	_, err = clt.Recv(ctx)
	assert.ErrorIs(t, err, net.ErrClosed)
}

func TestPeerRecvBadCmd(t *testing.T) {
	cfg := rudp.Config{Logger: slog.New(slog.DiscardHandler)}

	lc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lc.Close()
	l := Listen(lc, cfg)

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := Connect(pc, lc.LocalAddr(), cfg)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = srv.Peer.Send(ctx, rudp.Pkt{Data: []byte{0xff, 0xff}})
	require.NoError(t, err)
	_, err = srv.Peer.Send(ctx, rudp.Pkt{Data: []byte{0x00, 0x35, 0, 3, 0xaa}})
	require.NoError(t, err)

	clt, err := l.Accept(ctx)
	require.NoError(t, err)

	_, err = clt.Recv(ctx)
	assert.ErrorIs(t, err, ErrUnknownCmd)

	// Undecodable commands don't close the Peer.
	pkt, err := clt.Recv(ctx)
	var tde rudp.TrailingDataError
	assert.ErrorAs(t, err, &tde)
	assert.Equal(t, &ToSrvFallDmg{Amount: 3}, pkt.Cmd)
	assert.NoError(t, clt.WhyClosed())
}
