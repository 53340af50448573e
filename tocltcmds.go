package mt

import (
	"crypto/sha1"
	"fmt"
	"image/color"

	"github.com/voxelnet/mt/rudp"
)

type ToCltCmd interface {
	Cmd
	toCltCmdNo() uint16
}

var newToCltCmd = map[uint16]func() ToCltCmd{
	0x02: func() ToCltCmd { return new(ToCltHello) },
	0x03: func() ToCltCmd { return new(ToCltAcceptAuth) },
	0x04: func() ToCltCmd { return new(ToCltAcceptSudoMode) },
	0x05: func() ToCltCmd { return new(ToCltDenySudoMode) },
	0x0a: func() ToCltCmd { return new(ToCltDisco) },
	0x20: func() ToCltCmd { return new(ToCltBlkData) },
	0x21: func() ToCltCmd { return new(ToCltAddNode) },
	0x22: func() ToCltCmd { return new(ToCltRemoveNode) },
	0x27: func() ToCltCmd { return new(ToCltInv) },
	0x29: func() ToCltCmd { return new(ToCltTimeOfDay) },
	0x2a: func() ToCltCmd { return new(ToCltCSMRestrictionFlags) },
	0x2b: func() ToCltCmd { return new(ToCltAddPlayerVel) },
	0x2c: func() ToCltCmd { return new(ToCltMediaPush) },
	0x2f: func() ToCltCmd { return new(ToCltChatMsg) },
	0x31: func() ToCltCmd { return new(ToCltAORmAdd) },
	0x32: func() ToCltCmd { return new(ToCltAOMsgs) },
	0x33: func() ToCltCmd { return new(ToCltHP) },
	0x34: func() ToCltCmd { return new(ToCltMovePlayer) },
	0x35: func() ToCltCmd { return new(ToCltDiscoLegacy) },
	0x36: func() ToCltCmd { return new(ToCltFOV) },
	0x37: func() ToCltCmd { return new(ToCltDeathScreen) },
	0x38: func() ToCltCmd { return new(ToCltMedia) },
	0x3a: func() ToCltCmd { return new(ToCltNodeDefs) },
	0x3c: func() ToCltCmd { return new(ToCltAnnounceMedia) },
	0x3d: func() ToCltCmd { return new(ToCltItemDefs) },
	0x3f: func() ToCltCmd { return new(ToCltPlaySound) },
	0x40: func() ToCltCmd { return new(ToCltStopSound) },
	0x41: func() ToCltCmd { return new(ToCltPrivs) },
	0x42: func() ToCltCmd { return new(ToCltInvFormspec) },
	0x43: func() ToCltCmd { return new(ToCltDetachedInv) },
	0x44: func() ToCltCmd { return new(ToCltShowFormspec) },
	0x45: func() ToCltCmd { return new(ToCltMovement) },
	0x46: func() ToCltCmd { return new(ToCltSpawnParticle) },
	0x47: func() ToCltCmd { return new(ToCltAddParticleSpawner) },
	0x49: func() ToCltCmd { return new(ToCltAddHUD) },
	0x4a: func() ToCltCmd { return new(ToCltRmHUD) },
	0x4b: func() ToCltCmd { return new(ToCltChangeHUD) },
	0x4c: func() ToCltCmd { return new(ToCltHUDFlags) },
	0x4d: func() ToCltCmd { return new(ToCltSetHotbarParam) },
	0x4e: func() ToCltCmd { return new(ToCltBreath) },
	0x4f: func() ToCltCmd { return new(ToCltSkyParams) },
	0x50: func() ToCltCmd { return new(ToCltOverrideDayNightRatio) },
	0x51: func() ToCltCmd { return new(ToCltLocalPlayerAnim) },
	0x52: func() ToCltCmd { return new(ToCltEyeOffset) },
	0x53: func() ToCltCmd { return new(ToCltDelParticleSpawner) },
	0x54: func() ToCltCmd { return new(ToCltCloudParams) },
	0x55: func() ToCltCmd { return new(ToCltFadeSound) },
	0x56: func() ToCltCmd { return new(ToCltUpdatePlayerList) },
	0x57: func() ToCltCmd { return new(ToCltModChanMsg) },
	0x58: func() ToCltCmd { return new(ToCltModChanSig) },
	0x59: func() ToCltCmd { return new(ToCltNodeMetasChanged) },
	0x5a: func() ToCltCmd { return new(ToCltSunParams) },
	0x5b: func() ToCltCmd { return new(ToCltMoonParams) },
	0x5c: func() ToCltCmd { return new(ToCltStarParams) },
	0x60: func() ToCltCmd { return new(ToCltSRPBytesSaltB) },
	0x61: func() ToCltCmd { return new(ToCltFormspecPrepend) },
	0x62: func() ToCltCmd { return new(ToCltMinimapModes) },
}

func (*ToCltHello) toCltCmdNo() uint16                 { return 0x02 }
func (*ToCltAcceptAuth) toCltCmdNo() uint16            { return 0x03 }
func (*ToCltAcceptSudoMode) toCltCmdNo() uint16        { return 0x04 }
func (*ToCltDenySudoMode) toCltCmdNo() uint16          { return 0x05 }
func (*ToCltDisco) toCltCmdNo() uint16                 { return 0x0a }
func (*ToCltBlkData) toCltCmdNo() uint16               { return 0x20 }
func (*ToCltAddNode) toCltCmdNo() uint16               { return 0x21 }
func (*ToCltRemoveNode) toCltCmdNo() uint16            { return 0x22 }
func (*ToCltInv) toCltCmdNo() uint16                   { return 0x27 }
func (*ToCltTimeOfDay) toCltCmdNo() uint16             { return 0x29 }
func (*ToCltCSMRestrictionFlags) toCltCmdNo() uint16   { return 0x2a }
func (*ToCltAddPlayerVel) toCltCmdNo() uint16          { return 0x2b }
func (*ToCltMediaPush) toCltCmdNo() uint16             { return 0x2c }
func (*ToCltChatMsg) toCltCmdNo() uint16               { return 0x2f }
func (*ToCltAORmAdd) toCltCmdNo() uint16               { return 0x31 }
func (*ToCltAOMsgs) toCltCmdNo() uint16                { return 0x32 }
func (*ToCltHP) toCltCmdNo() uint16                    { return 0x33 }
func (*ToCltMovePlayer) toCltCmdNo() uint16            { return 0x34 }
func (*ToCltDiscoLegacy) toCltCmdNo() uint16           { return 0x35 }
func (*ToCltFOV) toCltCmdNo() uint16                   { return 0x36 }
func (*ToCltDeathScreen) toCltCmdNo() uint16           { return 0x37 }
func (*ToCltNodeDefs) toCltCmdNo() uint16              { return 0x3a }
func (*ToCltItemDefs) toCltCmdNo() uint16              { return 0x3d }
func (*ToCltSpawnParticle) toCltCmdNo() uint16         { return 0x46 }
func (*ToCltAddParticleSpawner) toCltCmdNo() uint16    { return 0x47 }
func (*ToCltSkyParams) toCltCmdNo() uint16             { return 0x4f }
func (*ToCltNodeMetasChanged) toCltCmdNo() uint16      { return 0x59 }
func (*ToCltMedia) toCltCmdNo() uint16                 { return 0x38 }
func (*ToCltAnnounceMedia) toCltCmdNo() uint16         { return 0x3c }
func (*ToCltPlaySound) toCltCmdNo() uint16             { return 0x3f }
func (*ToCltStopSound) toCltCmdNo() uint16             { return 0x40 }
func (*ToCltPrivs) toCltCmdNo() uint16                 { return 0x41 }
func (*ToCltInvFormspec) toCltCmdNo() uint16           { return 0x42 }
func (*ToCltDetachedInv) toCltCmdNo() uint16           { return 0x43 }
func (*ToCltShowFormspec) toCltCmdNo() uint16          { return 0x44 }
func (*ToCltMovement) toCltCmdNo() uint16              { return 0x45 }
func (*ToCltAddHUD) toCltCmdNo() uint16                { return 0x49 }
func (*ToCltRmHUD) toCltCmdNo() uint16                 { return 0x4a }
func (*ToCltChangeHUD) toCltCmdNo() uint16             { return 0x4b }
func (*ToCltHUDFlags) toCltCmdNo() uint16              { return 0x4c }
func (*ToCltSetHotbarParam) toCltCmdNo() uint16        { return 0x4d }
func (*ToCltBreath) toCltCmdNo() uint16                { return 0x4e }
func (*ToCltOverrideDayNightRatio) toCltCmdNo() uint16 { return 0x50 }
func (*ToCltLocalPlayerAnim) toCltCmdNo() uint16       { return 0x51 }
func (*ToCltEyeOffset) toCltCmdNo() uint16             { return 0x52 }
func (*ToCltDelParticleSpawner) toCltCmdNo() uint16    { return 0x53 }
func (*ToCltCloudParams) toCltCmdNo() uint16           { return 0x54 }
func (*ToCltFadeSound) toCltCmdNo() uint16             { return 0x55 }
func (*ToCltUpdatePlayerList) toCltCmdNo() uint16      { return 0x56 }
func (*ToCltModChanMsg) toCltCmdNo() uint16            { return 0x57 }
func (*ToCltModChanSig) toCltCmdNo() uint16            { return 0x58 }
func (*ToCltSunParams) toCltCmdNo() uint16             { return 0x5a }
func (*ToCltMoonParams) toCltCmdNo() uint16            { return 0x5b }
func (*ToCltStarParams) toCltCmdNo() uint16            { return 0x5c }
func (*ToCltSRPBytesSaltB) toCltCmdNo() uint16         { return 0x60 }
func (*ToCltFormspecPrepend) toCltCmdNo() uint16       { return 0x61 }
func (*ToCltMinimapModes) toCltCmdNo() uint16          { return 0x62 }

func (*ToCltHello) DefaultPktInfo() rudp.PktInfo                 { return reliable }
func (*ToCltAcceptAuth) DefaultPktInfo() rudp.PktInfo            { return reliable }
func (*ToCltAcceptSudoMode) DefaultPktInfo() rudp.PktInfo        { return reliable }
func (*ToCltDenySudoMode) DefaultPktInfo() rudp.PktInfo          { return reliable }
func (*ToCltDisco) DefaultPktInfo() rudp.PktInfo                 { return reliable }
func (*ToCltAddNode) DefaultPktInfo() rudp.PktInfo               { return reliable }
func (*ToCltRemoveNode) DefaultPktInfo() rudp.PktInfo            { return reliable }
func (*ToCltInv) DefaultPktInfo() rudp.PktInfo                   { return reliable }
func (*ToCltTimeOfDay) DefaultPktInfo() rudp.PktInfo             { return reliable }
func (*ToCltCSMRestrictionFlags) DefaultPktInfo() rudp.PktInfo   { return reliable }
func (*ToCltAddPlayerVel) DefaultPktInfo() rudp.PktInfo          { return reliable }
func (*ToCltMediaPush) DefaultPktInfo() rudp.PktInfo             { return reliable }
func (*ToCltChatMsg) DefaultPktInfo() rudp.PktInfo               { return reliable }
func (*ToCltAORmAdd) DefaultPktInfo() rudp.PktInfo               { return reliable }
func (*ToCltAOMsgs) DefaultPktInfo() rudp.PktInfo                { return reliable }
func (*ToCltHP) DefaultPktInfo() rudp.PktInfo                    { return reliable }
func (*ToCltMovePlayer) DefaultPktInfo() rudp.PktInfo            { return reliable }
func (*ToCltDiscoLegacy) DefaultPktInfo() rudp.PktInfo           { return reliable }
func (*ToCltFOV) DefaultPktInfo() rudp.PktInfo                   { return reliable }
func (*ToCltDeathScreen) DefaultPktInfo() rudp.PktInfo           { return reliable }
func (*ToCltMedia) DefaultPktInfo() rudp.PktInfo                 { return respCh }
func (*ToCltBlkData) DefaultPktInfo() rudp.PktInfo               { return respCh }
func (*ToCltNodeDefs) DefaultPktInfo() rudp.PktInfo              { return reliable }
func (*ToCltItemDefs) DefaultPktInfo() rudp.PktInfo              { return reliable }
func (*ToCltSpawnParticle) DefaultPktInfo() rudp.PktInfo         { return reliable }
func (*ToCltAddParticleSpawner) DefaultPktInfo() rudp.PktInfo    { return reliable }
func (*ToCltSkyParams) DefaultPktInfo() rudp.PktInfo             { return reliable }
func (*ToCltNodeMetasChanged) DefaultPktInfo() rudp.PktInfo      { return reliable }
func (*ToCltAnnounceMedia) DefaultPktInfo() rudp.PktInfo         { return reliable }
func (*ToCltPlaySound) DefaultPktInfo() rudp.PktInfo             { return reliable }
func (*ToCltStopSound) DefaultPktInfo() rudp.PktInfo             { return reliable }
func (*ToCltPrivs) DefaultPktInfo() rudp.PktInfo                 { return reliable }
func (*ToCltInvFormspec) DefaultPktInfo() rudp.PktInfo           { return reliable }
func (*ToCltDetachedInv) DefaultPktInfo() rudp.PktInfo           { return reliable }
func (*ToCltShowFormspec) DefaultPktInfo() rudp.PktInfo          { return reliable }
func (*ToCltMovement) DefaultPktInfo() rudp.PktInfo              { return reliable }
func (*ToCltAddHUD) DefaultPktInfo() rudp.PktInfo                { return initCh }
func (*ToCltRmHUD) DefaultPktInfo() rudp.PktInfo                 { return initCh }
func (*ToCltChangeHUD) DefaultPktInfo() rudp.PktInfo             { return initCh }
func (*ToCltHUDFlags) DefaultPktInfo() rudp.PktInfo              { return initCh }
func (*ToCltSetHotbarParam) DefaultPktInfo() rudp.PktInfo        { return initCh }
func (*ToCltBreath) DefaultPktInfo() rudp.PktInfo                { return reliable }
func (*ToCltOverrideDayNightRatio) DefaultPktInfo() rudp.PktInfo { return reliable }
func (*ToCltLocalPlayerAnim) DefaultPktInfo() rudp.PktInfo       { return reliable }
func (*ToCltEyeOffset) DefaultPktInfo() rudp.PktInfo             { return reliable }
func (*ToCltDelParticleSpawner) DefaultPktInfo() rudp.PktInfo    { return reliable }
func (*ToCltCloudParams) DefaultPktInfo() rudp.PktInfo           { return reliable }
func (*ToCltFadeSound) DefaultPktInfo() rudp.PktInfo             { return reliable }
func (*ToCltUpdatePlayerList) DefaultPktInfo() rudp.PktInfo      { return reliable }
func (*ToCltModChanMsg) DefaultPktInfo() rudp.PktInfo            { return reliable }
func (*ToCltModChanSig) DefaultPktInfo() rudp.PktInfo            { return reliable }
func (*ToCltSunParams) DefaultPktInfo() rudp.PktInfo             { return reliable }
func (*ToCltMoonParams) DefaultPktInfo() rudp.PktInfo            { return reliable }
func (*ToCltStarParams) DefaultPktInfo() rudp.PktInfo            { return reliable }
func (*ToCltSRPBytesSaltB) DefaultPktInfo() rudp.PktInfo         { return reliable }
func (*ToCltFormspecPrepend) DefaultPktInfo() rudp.PktInfo       { return reliable }
func (*ToCltMinimapModes) DefaultPktInfo() rudp.PktInfo          { return reliable }

func (*ToCltHello) cmd()                 {}
func (*ToCltBlkData) cmd()               {}
func (*ToCltNodeDefs) cmd()              {}
func (*ToCltItemDefs) cmd()              {}
func (*ToCltSpawnParticle) cmd()         {}
func (*ToCltAddParticleSpawner) cmd()    {}
func (*ToCltSkyParams) cmd()             {}
func (*ToCltNodeMetasChanged) cmd()      {}
func (*ToCltAcceptAuth) cmd()            {}
func (*ToCltAcceptSudoMode) cmd()        {}
func (*ToCltDenySudoMode) cmd()          {}
func (*ToCltDisco) cmd()                 {}
func (*ToCltAddNode) cmd()               {}
func (*ToCltRemoveNode) cmd()            {}
func (*ToCltInv) cmd()                   {}
func (*ToCltTimeOfDay) cmd()             {}
func (*ToCltCSMRestrictionFlags) cmd()   {}
func (*ToCltAddPlayerVel) cmd()          {}
func (*ToCltMediaPush) cmd()             {}
func (*ToCltChatMsg) cmd()               {}
func (*ToCltAORmAdd) cmd()               {}
func (*ToCltAOMsgs) cmd()                {}
func (*ToCltHP) cmd()                    {}
func (*ToCltMovePlayer) cmd()            {}
func (*ToCltDiscoLegacy) cmd()           {}
func (*ToCltFOV) cmd()                   {}
func (*ToCltDeathScreen) cmd()           {}
func (*ToCltMedia) cmd()                 {}
func (*ToCltAnnounceMedia) cmd()         {}
func (*ToCltPlaySound) cmd()             {}
func (*ToCltStopSound) cmd()             {}
func (*ToCltPrivs) cmd()                 {}
func (*ToCltInvFormspec) cmd()           {}
func (*ToCltDetachedInv) cmd()           {}
func (*ToCltShowFormspec) cmd()          {}
func (*ToCltMovement) cmd()              {}
func (*ToCltAddHUD) cmd()                {}
func (*ToCltRmHUD) cmd()                 {}
func (*ToCltChangeHUD) cmd()             {}
func (*ToCltHUDFlags) cmd()              {}
func (*ToCltSetHotbarParam) cmd()        {}
func (*ToCltBreath) cmd()                {}
func (*ToCltOverrideDayNightRatio) cmd() {}
func (*ToCltLocalPlayerAnim) cmd()       {}
func (*ToCltEyeOffset) cmd()             {}
func (*ToCltDelParticleSpawner) cmd()    {}
func (*ToCltCloudParams) cmd()           {}
func (*ToCltFadeSound) cmd()             {}
func (*ToCltUpdatePlayerList) cmd()      {}
func (*ToCltModChanMsg) cmd()            {}
func (*ToCltModChanSig) cmd()            {}
func (*ToCltSunParams) cmd()             {}
func (*ToCltMoonParams) cmd()            {}
func (*ToCltStarParams) cmd()            {}
func (*ToCltSRPBytesSaltB) cmd()         {}
func (*ToCltFormspecPrepend) cmd()       {}
func (*ToCltMinimapModes) cmd()          {}

// ToCltHello is sent as a response to ToSrvInit.
// The client responds to ToCltHello by authenticating.
type ToCltHello struct {
	SerializeVer uint8
	Compression  CompressionModes
	ProtoVer     uint16
	AuthMethods
	Username string
}

// ToCltAcceptAuth is sent after the client successfully authenticates.
// The client responds to ToCltAcceptAuth with ToSrvInit2.
type ToCltAcceptAuth struct {
	// The client does the equivalent of
	//	PlayerPos[1] -= 5
	// before using PlayerPos.
	PlayerPos Pos

	MapSeed         uint64
	SendInterval    float32
	SudoAuthMethods AuthMethods
}

type ToCltAcceptSudoMode struct{}

type ToCltDenySudoMode struct{}

// ToCltDisco tells that the client that it has been disconnected by the server.
type ToCltDisco struct {
	Reason DiscoReason

	// Only sent if Reason is Custom, Shutdown or Crash.
	Custom string

	// Only sent if Reason is Shutdown or Crash.
	Reconnect bool
}

type DiscoReason uint8

const (
	WrongPasswd DiscoReason = iota
	UnexpectedData
	SrvIsSingleplayer
	UnsupportedVer
	BadNameChars
	BadName
	TooManyClts
	EmptyPasswd
	AlreadyConnected
	SrvErr
	Custom
	Shutdown
	Crash
	maxDiscoReason
)

func (dr DiscoReason) hasCustom() bool {
	return dr == Custom || dr == Shutdown || dr == Crash
}

func (dr DiscoReason) hasReconnect() bool {
	return dr == Shutdown || dr == Crash
}

func (cmd ToCltDisco) String() (msg string) {
	switch cmd.Reason {
	case WrongPasswd:
		return "wrong password"
	case UnexpectedData:
		return "unexpected data"
	case SrvIsSingleplayer:
		return "server is singleplayer"
	case UnsupportedVer:
		return "unsupported client version"
	case BadNameChars:
		return "disallowed character(s) in player name"
	case BadName:
		return "disallowed player name"
	case TooManyClts:
		return "too many clients"
	case EmptyPasswd:
		return "empty password"
	case AlreadyConnected:
		return "another client is already connected with the same name"
	case SrvErr:
		return "server error"
	case Custom:
		return cmd.Custom
	case Shutdown:
		msg = "server shutdown"
	case Crash:
		msg = "server crash"
	default:
		msg = fmt.Sprintf("DiscoReason(%d)", cmd.Reason)
	}

	if cmd.Custom != "" {
		msg += ": " + cmd.Custom
	}

	return
}

// ToCltBlkData tells the client the contents of a nearby MapBlk.
type ToCltBlkData struct {
	Blkpos [3]int16
	Blk    MapBlk
}

// ToCltAddNode tells the client that a nearby node changed
// to something other than air.
type ToCltAddNode struct {
	Pos [3]int16
	Node
	KeepMeta bool
}

// ToCltRemoveNode tells the client that a nearby node changed to air.
type ToCltRemoveNode struct {
	Pos [3]int16
}

// ToCltInv updates the client's inventory.
type ToCltInv struct {
	// Sent as is, up to the end of the command.
	Inv string
}

// ToCltTimeOfDay updates the client's in-game time of day.
type ToCltTimeOfDay struct {
	Time uint16 // %24000

	// Optional.
	Speed float32 // Speed times faster than real time
}

// ToCltCSMRestrictionFlags tells the client how use of CSMs should be restricted.
type ToCltCSMRestrictionFlags struct {
	Flags CSMRestrictionFlags

	// MapRange is the maximum distance from the player CSMs can read the map
	// if Flags&LimitMapRange != 0.
	MapRange uint32
}

type CSMRestrictionFlags uint64

const (
	NoCSMs CSMRestrictionFlags = 1 << iota
	NoChatMsgs
	NoItemDefs
	NoNodeDefs
	LimitMapRange
	NoPlayerList
)

// ToCltAddPlayerVel tells the client to add Vel to the player's velocity.
type ToCltAddPlayerVel struct {
	Vel Vec
}

// ToCltMediaPush is sent when a media file is dynamically added.
type ToCltMediaPush struct {
	SHA1        [sha1.Size]byte
	Filename    string
	ShouldCache bool

	Data []byte
}

// ToCltChatMsg tells the client that is has received a chat message.
type ToCltChatMsg struct {
	Type ChatMsgType

	// Sent as UTF-16.
	Sender, Text string

	Timestamp int64 // Unix time.
}

type ChatMsgType uint8

const (
	RawMsg      ChatMsgType = iota // raw
	NormalMsg                      // normal
	AnnounceMsg                    // announce
	SysMsg                         // sys
	maxMsg
)

// ToCltAORmAdd tells the client that AOs have been removed from and/or added to
// the AOs that it can see.
type ToCltAORmAdd struct {
	Remove []AOID
	Add    []AOAdd
}

// ToCltAOMsgs updates the client about nearby AOs.
type ToCltAOMsgs struct {
	// Sent without a count, up to the end of the command.
	Msgs []IDAOMsg
}

// ToCltHP updates the player's HP on the client.
type ToCltHP struct {
	HP uint16

	// Optional.
	DamageEffect bool
}

// ToCltMovePlayer tells the client that the player has been moved server-side.
type ToCltMovePlayer struct {
	Pos
	Pitch, Yaw float32
}

type ToCltDiscoLegacy struct {
	Reason string // Sent as UTF-16.
}

// ToCltFOV tells the client to change its FOV.
type ToCltFOV struct {
	FOV        float32
	Multiplier bool

	// Optional.
	TransitionTime float32
}

// ToCltDeathScreen tells the client to show the death screen.
type ToCltDeathScreen struct {
	PointCam bool
	PointAt  Pos
}

// ToCltMedia responds to a ToSrvMedia packet with the requested media files.
type ToCltMedia struct {
	// N is the total number of ToCltMedia packets.
	// I is the index of this packet.
	N, I uint16

	Files []MediaFile
}

type MediaFile struct {
	Name string
	Data []byte
}

// ToCltNodeDefs tells the client the definitions of nodes.
// They are sent zlib-compressed.
type ToCltNodeDefs struct {
	Defs []NodeDef
}

// ToCltAnnounceMedia tells the client what media is available on request.
// See ToSrvReqMedia.
type ToCltAnnounceMedia struct {
	Files []AnnouncedFile
	URL   string
}

type AnnouncedFile struct {
	Name       string
	Base64SHA1 string
}

// ToCltItemDefs tells the client the definitions of items.
// They are sent zlib-compressed.
type ToCltItemDefs struct {
	Defs    []ItemDef
	Aliases []ItemAlias
}

// ToCltPlaySound tells the client to play a sound.
type ToCltPlaySound struct {
	ID      SoundID
	Name    string
	Gain    float32
	SrcType SoundSrcType
	Pos
	SrcAOID AOID
	Loop    bool

	// Optional.
	Fade      float32
	Pitch     float32
	Ephemeral bool
}

// ToCltStopSound tells the client to stop playing a sound.
type ToCltStopSound struct {
	ID SoundID
}

// ToCltPrivs tells the client its privs.
type ToCltPrivs struct {
	Privs []string
}

// ToCltInvFormspec tells the client its inventory formspec.
type ToCltInvFormspec struct {
	Formspec string // Sent as a long string.
}

// ToCltDetachedInv updates a detached inventory on the client.
type ToCltDetachedInv struct {
	Name string
	Keep bool
	Len  uint16 // deprecated

	// Sent as is, up to the end of the command.
	Inv string
}

// ToCltShowFormspec tells the client to show a formspec.
type ToCltShowFormspec struct {
	Formspec string // Sent as a long string.
	Formname string
}

// ToCltMovement tells the client how to move.
type ToCltMovement struct {
	DefaultAccel, AirAccel, FastAccel,
	WalkSpeed, CrouchSpeed, FastSpeed, ClimbSpeed, JumpSpeed,
	Fluidity, Smoothing, Sink, // liquids
	Gravity float32
}

// ToCltSpawnParticle tells the client to spawn a particle.
type ToCltSpawnParticle struct {
	Pos, Vel, Acc  [3]float32
	ExpirationTime float32 // in seconds.
	Size           float32
	Collide        bool

	Texture // Sent as a long string.

	Vertical    bool
	CollisionRm bool
	AnimParams  TileAnim
	Glow        uint8
	AOCollision bool
	NodeParam0  Content
	NodeParam2  uint8
	NodeTile    uint8
}

type ParticleSpawnerID uint32

// ToCltAddParticleSpawner tells the client to add a particle spawner.
// Ranges are sent as min, max.
type ToCltAddParticleSpawner struct {
	Amount         uint16
	Duration       float32
	Pos, Vel, Acc  [2][3]float32
	ExpirationTime [2]float32 // in seconds.
	Size           [2]float32
	Collide        bool

	Texture // Sent as a long string.

	ID           ParticleSpawnerID
	Vertical     bool
	CollisionRm  bool
	AttachedAOID AOID
	AnimParams   TileAnim
	Glow         uint8
	AOCollision  bool
	NodeParam0   Content
	NodeParam2   uint8
	NodeTile     uint8
}

type HUDID uint32

// ToCltAddHUD tells the client to add a HUD.
type ToCltAddHUD struct {
	ID HUDID

	Type HUDType

	Pos      [2]float32
	Name     string
	Scale    [2]float32
	Text     string
	Number   uint32
	Item     uint32
	Dir      uint32
	Align    [2]float32
	Offset   [2]float32
	WorldPos Pos
	Size     [2]int32
	ZIndex   int16
	Text2    string

	// Optional.
	Style uint32
}

type HUDType uint8

const (
	ImgHUD HUDType = iota
	TextHUD
	StatbarHUD
	InvHUD
	WaypointHUD
	ImgWaypointHUD
)

// ToCltRmHUD tells the client to remove a HUD.
type ToCltRmHUD struct {
	ID HUDID
}

// ToCltChangeHUD tells the client to change a field in a HUD.
// Only the field selected by Field is sent.
type ToCltChangeHUD struct {
	ID HUDID

	Field HUDField

	Pos      [2]float32
	Name     string
	Scale    [2]float32
	Text     string
	Number   uint32
	Item     uint32
	Dir      uint32
	Align    [2]float32
	Offset   [2]float32
	WorldPos Pos
	Size     [2]int32
	ZIndex   uint32
	Text2    string
}

type HUDField uint8

const (
	HUDPos HUDField = iota
	HUDName
	HUDScale
	HUDText
	HUDNumber
	HUDItem
	HUDDir
	HUDAlign
	HUDOffset
	HUDWorldPos
	HUDSize
	HUDZIndex
	HUDText2
	hudMax
)

// ToCltHUDFlags tells the client to update its HUD flags.
type ToCltHUDFlags struct {
	// &^= Mask
	// |= Flags
	Flags, Mask HUDFlags
}

type HUDFlags uint32

const (
	ShowHotbar HUDFlags = 1 << iota
	ShowHealthBar
	ShowCrosshair
	ShowWieldedItem
	ShowBreathBar
	ShowMinimap
	ShowRadarMinimap
)

// ToCltSetHotbarParam tells the client to set a hotbar parameter.
type ToCltSetHotbarParam struct {
	Param HotbarParam

	Size int32   // HotbarSize
	Img  Texture // HotbarImg, HotbarSelImg
}

type HotbarParam uint16

const (
	HotbarSize HotbarParam = 1 + iota
	HotbarImg
	HotbarSelImg
)

// ToCltBreath tells the client how much breath it has.
type ToCltBreath struct {
	Breath uint16
}

// ToCltSkyParams tells the client how to render the sky.
type ToCltSkyParams struct {
	BgColor     color.NRGBA
	Type        SkyType
	Clouds      bool
	SunFogTint  color.NRGBA
	MoonFogTint color.NRGBA
	FogTintType string

	// SkyboxSky only.
	Textures []Texture

	// RegularSky only.
	DaySky, DayHorizon,
	DawnSky, DawnHorizon,
	NightSky, NightHorizon,
	Indoor color.NRGBA

	// Optional.
	BodyOrbitTilt float32
}

// A SkyType is the type of the sky, sent as a string.
type SkyType string

const (
	PlainSky   SkyType = "plain"
	SkyboxSky  SkyType = "skybox"
	RegularSky SkyType = "regular"
)

// ToCltOverrideDayNightRatio overrides the client's day-night ratio
type ToCltOverrideDayNightRatio struct {
	Override bool
	Ratio    uint16
}

// ToCltLocalPlayerAnim tells the client how to animate the player.
type ToCltLocalPlayerAnim struct {
	Idle, Walk, Dig, WalkDig [2]int32
	Speed                    float32
}

// ToCltEyeOffset tells the client where to position the camera
// relative to the player.
type ToCltEyeOffset struct {
	First, Third Vec
}

// ToCltDelParticleSpawner tells the client to delete a particle spawner.
type ToCltDelParticleSpawner struct {
	ID ParticleSpawnerID
}

// ToCltCloudParams tells the client how to render the clouds.
type ToCltCloudParams struct {
	Density      float32
	DiffuseColor color.NRGBA
	AmbientColor color.NRGBA
	Height       float32
	Thickness    float32
	Speed        [2]float32

	// Optional.
	ShadowColor color.NRGBA
}

// ToCltFadeSound tells the client to fade a sound.
type ToCltFadeSound struct {
	ID   SoundID
	Step float32
	Gain float32
}

// ToCltUpdatePlayerList informs the client of players leaving or joining.
type ToCltUpdatePlayerList struct {
	Type    PlayerListUpdateType
	Players []string
}

type PlayerListUpdateType uint8

const (
	InitPlayers   PlayerListUpdateType = iota // init
	AddPlayers                                // add
	RemovePlayers                             // remove
)

// ToCltModChanMsg tells the client it has been sent a message on a mod channel.
type ToCltModChanMsg struct {
	Channel string
	Sender  string
	Msg     string
}

// ToCltModChanSig tells the client it has received a signal on a mod channel.
type ToCltModChanSig struct {
	Signal  ModChanSig
	Channel string
}

type ModChanSig uint8

const (
	JoinOK ModChanSig = iota
	JoinFail
	LeaveOK
	LeaveFail
	NotRegistered
	SetState
)

// ToCltNodeMetasChanged is sent when node metadata near the client changes.
// The metadata is sent zlib-compressed.
type ToCltNodeMetasChanged struct {
	Changed map[[3]int16]*NodeMeta
}

// ToCltSunParams tells the client how to render the sun.
type ToCltSunParams struct {
	Visible bool
	Texture
	ToneMap Texture
	Rise    Texture
	Rising  bool
	Size    float32
}

// ToCltMoonParams tells the client how to render the moon.
type ToCltMoonParams struct {
	Visible bool
	Texture
	ToneMap Texture
	Size    float32
}

// ToCltStarParams tells the client how to render the stars.
type ToCltStarParams struct {
	Visible bool
	Count   uint32
	Color   color.NRGBA
	Size    float32
}

type ToCltSRPBytesSaltB struct {
	Salt, B []byte
}

// ToCltFormspecPrepend tells the client to prepend a string to all formspecs.
type ToCltFormspecPrepend struct {
	Prepend string
}

// ToCltMinimapModes tells the client the set of available minimap modes.
type ToCltMinimapModes struct {
	Current uint16
	Modes   []MinimapMode
}
