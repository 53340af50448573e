package mt

import "github.com/voxelnet/mt/rudp"

// A Cmd is a command sent to a server (ToSrvCmd) or a client (ToCltCmd).
type Cmd interface {
	DefaultPktInfo() rudp.PktInfo
	cmd()
}

var (
	// Default channel.
	reliable = rudp.PktInfo{}
	unrel    = rudp.PktInfo{Unrel: true}

	// Init, auth and HUD channel.
	initCh      = rudp.PktInfo{Channel: 1}
	initChUnrel = rudp.PktInfo{Channel: 1, Unrel: true}

	// Responses to requests such as media and map blocks.
	respCh = rudp.PktInfo{Channel: 2}
)
