package mt

import "github.com/voxelnet/mt/rudp"

type ToSrvCmd interface {
	Cmd
	toSrvCmdNo() uint16
}

var newToSrvCmd = map[uint16]func() ToSrvCmd{
	0x00: func() ToSrvCmd { return new(ToSrvNil) },
	0x02: func() ToSrvCmd { return new(ToSrvInit) },
	0x11: func() ToSrvCmd { return new(ToSrvInit2) },
	0x17: func() ToSrvCmd { return new(ToSrvModChanJoin) },
	0x18: func() ToSrvCmd { return new(ToSrvModChanLeave) },
	0x19: func() ToSrvCmd { return new(ToSrvModChanMsg) },
	0x23: func() ToSrvCmd { return new(ToSrvPlayerPos) },
	0x24: func() ToSrvCmd { return new(ToSrvGotBlks) },
	0x25: func() ToSrvCmd { return new(ToSrvDeletedBlks) },
	0x31: func() ToSrvCmd { return new(ToSrvInvAction) },
	0x32: func() ToSrvCmd { return new(ToSrvChatMsg) },
	0x35: func() ToSrvCmd { return new(ToSrvFallDmg) },
	0x37: func() ToSrvCmd { return new(ToSrvSelectItem) },
	0x38: func() ToSrvCmd { return new(ToSrvRespawn) },
	0x39: func() ToSrvCmd { return new(ToSrvInteract) },
	0x3a: func() ToSrvCmd { return new(ToSrvRemovedSounds) },
	0x3b: func() ToSrvCmd { return new(ToSrvNodeMetaFields) },
	0x3c: func() ToSrvCmd { return new(ToSrvInvFields) },
	0x40: func() ToSrvCmd { return new(ToSrvReqMedia) },
	0x41: func() ToSrvCmd { return new(ToSrvHaveMedia) },
	0x43: func() ToSrvCmd { return new(ToSrvCltReady) },
	0x50: func() ToSrvCmd { return new(ToSrvFirstSRP) },
	0x51: func() ToSrvCmd { return new(ToSrvSRPBytesA) },
	0x52: func() ToSrvCmd { return new(ToSrvSRPBytesM) },
	0x53: func() ToSrvCmd { return new(ToSrvUpdateClientInfo) },
}

func (*ToSrvNil) toSrvCmdNo() uint16              { return 0x00 }
func (*ToSrvInit) toSrvCmdNo() uint16             { return 0x02 }
func (*ToSrvInit2) toSrvCmdNo() uint16            { return 0x11 }
func (*ToSrvModChanJoin) toSrvCmdNo() uint16      { return 0x17 }
func (*ToSrvModChanLeave) toSrvCmdNo() uint16     { return 0x18 }
func (*ToSrvModChanMsg) toSrvCmdNo() uint16       { return 0x19 }
func (*ToSrvPlayerPos) toSrvCmdNo() uint16        { return 0x23 }
func (*ToSrvGotBlks) toSrvCmdNo() uint16          { return 0x24 }
func (*ToSrvDeletedBlks) toSrvCmdNo() uint16      { return 0x25 }
func (*ToSrvInvAction) toSrvCmdNo() uint16        { return 0x31 }
func (*ToSrvChatMsg) toSrvCmdNo() uint16          { return 0x32 }
func (*ToSrvFallDmg) toSrvCmdNo() uint16          { return 0x35 }
func (*ToSrvSelectItem) toSrvCmdNo() uint16       { return 0x37 }
func (*ToSrvRespawn) toSrvCmdNo() uint16          { return 0x38 }
func (*ToSrvInteract) toSrvCmdNo() uint16         { return 0x39 }
func (*ToSrvRemovedSounds) toSrvCmdNo() uint16    { return 0x3a }
func (*ToSrvNodeMetaFields) toSrvCmdNo() uint16   { return 0x3b }
func (*ToSrvInvFields) toSrvCmdNo() uint16        { return 0x3c }
func (*ToSrvReqMedia) toSrvCmdNo() uint16         { return 0x40 }
func (*ToSrvHaveMedia) toSrvCmdNo() uint16        { return 0x41 }
func (*ToSrvCltReady) toSrvCmdNo() uint16         { return 0x43 }
func (*ToSrvFirstSRP) toSrvCmdNo() uint16         { return 0x50 }
func (*ToSrvSRPBytesA) toSrvCmdNo() uint16        { return 0x51 }
func (*ToSrvSRPBytesM) toSrvCmdNo() uint16        { return 0x52 }
func (*ToSrvUpdateClientInfo) toSrvCmdNo() uint16 { return 0x53 }

func (*ToSrvNil) DefaultPktInfo() rudp.PktInfo              { return reliable }
func (*ToSrvInit) DefaultPktInfo() rudp.PktInfo             { return initChUnrel }
func (*ToSrvInit2) DefaultPktInfo() rudp.PktInfo            { return initCh }
func (*ToSrvModChanJoin) DefaultPktInfo() rudp.PktInfo      { return reliable }
func (*ToSrvModChanLeave) DefaultPktInfo() rudp.PktInfo     { return reliable }
func (*ToSrvModChanMsg) DefaultPktInfo() rudp.PktInfo       { return reliable }
func (*ToSrvPlayerPos) DefaultPktInfo() rudp.PktInfo        { return unrel }
func (*ToSrvGotBlks) DefaultPktInfo() rudp.PktInfo          { return respCh }
func (*ToSrvDeletedBlks) DefaultPktInfo() rudp.PktInfo      { return respCh }
func (*ToSrvInvAction) DefaultPktInfo() rudp.PktInfo        { return reliable }
func (*ToSrvChatMsg) DefaultPktInfo() rudp.PktInfo          { return reliable }
func (*ToSrvFallDmg) DefaultPktInfo() rudp.PktInfo          { return reliable }
func (*ToSrvSelectItem) DefaultPktInfo() rudp.PktInfo       { return reliable }
func (*ToSrvRespawn) DefaultPktInfo() rudp.PktInfo          { return reliable }
func (*ToSrvInteract) DefaultPktInfo() rudp.PktInfo         { return reliable }
func (*ToSrvRemovedSounds) DefaultPktInfo() rudp.PktInfo    { return respCh }
func (*ToSrvNodeMetaFields) DefaultPktInfo() rudp.PktInfo   { return reliable }
func (*ToSrvInvFields) DefaultPktInfo() rudp.PktInfo        { return reliable }
func (*ToSrvReqMedia) DefaultPktInfo() rudp.PktInfo         { return initCh }
func (*ToSrvHaveMedia) DefaultPktInfo() rudp.PktInfo        { return respCh }
func (*ToSrvCltReady) DefaultPktInfo() rudp.PktInfo         { return initCh }
func (*ToSrvFirstSRP) DefaultPktInfo() rudp.PktInfo         { return initCh }
func (*ToSrvSRPBytesA) DefaultPktInfo() rudp.PktInfo        { return initCh }
func (*ToSrvSRPBytesM) DefaultPktInfo() rudp.PktInfo        { return initCh }
func (*ToSrvUpdateClientInfo) DefaultPktInfo() rudp.PktInfo { return initCh }

func (*ToSrvNil) cmd()              {}
func (*ToSrvInit) cmd()             {}
func (*ToSrvInit2) cmd()            {}
func (*ToSrvModChanJoin) cmd()      {}
func (*ToSrvModChanLeave) cmd()     {}
func (*ToSrvModChanMsg) cmd()       {}
func (*ToSrvPlayerPos) cmd()        {}
func (*ToSrvGotBlks) cmd()          {}
func (*ToSrvDeletedBlks) cmd()      {}
func (*ToSrvInvAction) cmd()        {}
func (*ToSrvChatMsg) cmd()          {}
func (*ToSrvFallDmg) cmd()          {}
func (*ToSrvSelectItem) cmd()       {}
func (*ToSrvRespawn) cmd()          {}
func (*ToSrvInteract) cmd()         {}
func (*ToSrvRemovedSounds) cmd()    {}
func (*ToSrvNodeMetaFields) cmd()   {}
func (*ToSrvInvFields) cmd()        {}
func (*ToSrvReqMedia) cmd()         {}
func (*ToSrvHaveMedia) cmd()        {}
func (*ToSrvCltReady) cmd()         {}
func (*ToSrvFirstSRP) cmd()         {}
func (*ToSrvSRPBytesA) cmd()        {}
func (*ToSrvSRPBytesM) cmd()        {}
func (*ToSrvUpdateClientInfo) cmd() {}

// ToSrvNil is the first packet sent in a connection.
type ToSrvNil struct{}

// ToSrvInit is sent as unreliable after ToSrvNil and is re-sent repeatedly
// until either the server replies with ToCltHello or 10 seconds pass and
// the connection times out.
type ToSrvInit struct {
	SerializeVer             uint8
	SupportedCompression     CompressionModes
	MinProtoVer, MaxProtoVer uint16
	PlayerName               string

	// Optional.
	SendFullItemMeta bool
}

// ToSrvInit2 is sent after ToCltAcceptAuth is received.
// The server responds to ToSrvInit2 by sending ToCltAnnounceMedia,
// ToCltMovement and ToCltCSMRestrictionFlags among others.
type ToSrvInit2 struct {
	// Optional.
	Lang string
}

// ToSrvModChanJoin attempts to join a mod channel.
type ToSrvModChanJoin struct {
	Channel string
}

// ToSrvModChanLeave attempts to leave a mod channel.
type ToSrvModChanLeave struct {
	Channel string
}

// ToSrvModChanMsg sends a message on a mod channel.
type ToSrvModChanMsg struct {
	Channel string
	Msg     string
}

// ToSrvPlayerPos tells the server that the client's PlayerPos has changed.
type ToSrvPlayerPos struct {
	Pos PlayerPos
}

// ToSrvGotBlks tells the server that the client has received Blks.
type ToSrvGotBlks struct {
	Blks [][3]int16 // At most 255.
}

// ToSrvDeletedBlks tells the server that the client has deleted Blks.
type ToSrvDeletedBlks struct {
	Blks [][3]int16 // At most 255.
}

// ToSrvInvAction tells the server that the client has performed an inventory action.
type ToSrvInvAction struct {
	// Sent as is, up to the end of the command.
	Action string
}

// ToSrvChatMsg tells the server that the client has sent a chat message.
type ToSrvChatMsg struct {
	Msg string // Sent as UTF-16.
}

// ToSrvFallDmg tells the server that the client has taken fall damage.
type ToSrvFallDmg struct {
	Amount uint16
}

// ToSrvSelectItem tells the server the selected item in the client's hotbar.
type ToSrvSelectItem struct {
	Slot uint16
}

// ToSrvRespawn tells the server that the player has respawned.
type ToSrvRespawn struct{}

// ToSrvInteract tells the server that a node or AO has been interacted with.
type ToSrvInteract struct {
	Action   Interaction
	ItemSlot uint16
	Pointed  PointedThing // nil if nothing is pointed at.
	Pos      PlayerPos
}

type Interaction uint8

const (
	Dig Interaction = iota
	StopDigging
	Dug
	Place
	Use      // Left click snowball-like.
	Activate // Right click air.
	maxInteraction
)

// ToSrvRemovedSounds tells the server that the client has finished playing
// the sounds with the given IDs.
type ToSrvRemovedSounds struct {
	IDs []SoundID
}

type ToSrvNodeMetaFields struct {
	Pos      [3]int16
	Formname string
	Fields   []Field
}

type ToSrvInvFields struct {
	Formname string
	Fields   []Field
}

// ToSrvReqMedia requests media files from the server.
type ToSrvReqMedia struct {
	Filenames []string
}

// ToSrvHaveMedia tells the server that the client has loaded
// the media pushed with the given tokens.
type ToSrvHaveMedia struct {
	Tokens []uint32 // At most 255.
}

type ToSrvCltReady struct {
	// Version information.
	Major, Minor, Patch uint8
	Reserved            uint8
	Version             string

	// Optional.
	Formspec uint16
}

type ToSrvFirstSRP struct {
	Salt        []byte
	Verifier    []byte
	EmptyPasswd bool
}

type ToSrvSRPBytesA struct {
	A      []byte
	NoSHA1 bool
}

type ToSrvSRPBytesM struct {
	M []byte
}

// ToSrvUpdateClientInfo tells the server about the client's window.
type ToSrvUpdateClientInfo struct {
	RenderTargetSize [2]uint32
	RealGUIScaling   float32
	RealHUDScaling   float32
	MaxFormspecSize  [2]float32

	// Optional.
	TouchControls bool
}
