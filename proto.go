package mt

import (
	"context"
	"net"

	"github.com/voxelnet/mt/rudp"
)

// A Pkt is a deserialized rudp.Pkt.
type Pkt struct {
	Cmd
	rudp.PktInfo
}

// Peer wraps rudp.Peer, adding (de)serialization.
type Peer struct {
	*rudp.Peer
}

// Send sends pkt.Cmd to the Peer. The Cmd must be a ToSrvCmd
// if the Peer is a server and a ToCltCmd otherwise.
func (p Peer) Send(ctx context.Context, pkt Pkt) (ack <-chan struct{}, err error) {
	if err := p.checkDir(pkt.Cmd); err != nil {
		return nil, err
	}

	data, err := Marshal(pkt.Cmd)
	if err != nil {
		return nil, err
	}

	return p.Peer.Send(ctx, rudp.Pkt{Data: data, PktInfo: pkt.PktInfo})
}

func (p Peer) checkDir(cmd Cmd) error {
	var ok bool
	if p.IsSrv() {
		_, ok = cmd.(ToSrvCmd)
	} else {
		_, ok = cmd.(ToCltCmd)
	}
	if !ok {
		return &EncodeError{Cmd: cmdName(cmd), Field: "cmd no", Err: ErrUnknownCmd}
	}
	return nil
}

// SendCmd is equivalent to Send(ctx, Pkt{cmd, cmd.DefaultPktInfo()}).
func (p Peer) SendCmd(ctx context.Context, cmd Cmd) (ack <-chan struct{}, err error) {
	return p.Send(ctx, Pkt{cmd, cmd.DefaultPktInfo()})
}

// Recv receives and decodes a Pkt from the Peer.
// A packet that can't be decoded is returned as an error
// without closing the Peer.
// A Pkt with trailing data is returned together with a rudp.TrailingDataError.
func (p Peer) Recv(ctx context.Context) (Pkt, error) {
	pkt, err := p.Peer.Recv(ctx)
	if err != nil {
		return Pkt{}, err
	}

	cmd, err := p.Decode(pkt.Data)
	if cmd == nil {
		return Pkt{}, err
	}

	return Pkt{cmd, pkt.PktInfo}, err
}

// Decode decodes command bytes received from the Peer:
// a ToCltCmd if the Peer is a server and a ToSrvCmd otherwise.
// Like Recv, it returns a Cmd with trailing data
// together with a rudp.TrailingDataError.
func (p Peer) Decode(data []byte) (Cmd, error) {
	if p.IsSrv() {
		cmd, err := UnmarshalToClt(data)
		if cmd == nil {
			return nil, err
		}
		return cmd, err
	}

	cmd, err := UnmarshalToSrv(data)
	if cmd == nil {
		return nil, err
	}
	return cmd, err
}

// Connect connects to the server at addr through pc.
func Connect(pc net.PacketConn, addr net.Addr, cfg rudp.Config) Peer {
	return Peer{rudp.Connect(pc, addr, cfg)}
}

// A Listener accepts typed Peers from a rudp.Listener.
type Listener struct {
	*rudp.Listener
}

// Listen listens for clients on pc.
func Listen(pc net.PacketConn, cfg rudp.Config) Listener {
	return Listener{rudp.Listen(pc, cfg)}
}

// Accept waits for and returns the next client.
func (l Listener) Accept(ctx context.Context) (Peer, error) {
	rpeer, err := l.Listener.Accept(ctx)
	return Peer{rpeer}, err
}
