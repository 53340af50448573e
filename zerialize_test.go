package mt

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelnet/mt/rudp"
)

var equateEmpty = cmpopts.EquateEmpty()

func TestRoundTripToSrv(t *testing.T) {
	pos := PlayerPos{
		Pos100:      [3]int32{100, -200, 300},
		Vel100:      [3]int32{1, 2, 3},
		Pitch100:    -4500,
		Yaw100:      9000,
		Keys:        ForwardKey | JumpKey,
		FOV80:       72,
		WantedRange: 12,
	}

	cmds := []ToSrvCmd{
		&ToSrvNil{},
		&ToSrvInit{
			SerializeVer:     28,
			MinProtoVer:      37,
			MaxProtoVer:      44,
			PlayerName:       "singleplayer",
			SendFullItemMeta: true,
		},
		&ToSrvInit2{Lang: "de"},
		&ToSrvModChanJoin{Channel: "chan"},
		&ToSrvModChanMsg{Channel: "chan", Msg: "msg"},
		&ToSrvPlayerPos{Pos: pos},
		&ToSrvGotBlks{Blks: [][3]int16{{1, 2, 3}, {-1, -2, -3}}},
		&ToSrvDeletedBlks{},
		&ToSrvInvAction{Action: "Move 1 current_player main 0 current_player main 1"},
		&ToSrvChatMsg{Msg: "hällo 🙂"},
		&ToSrvFallDmg{Amount: 7},
		&ToSrvSelectItem{Slot: 3},
		&ToSrvRespawn{},
		&ToSrvInteract{Action: Dig, ItemSlot: 1, Pointed: PointedSameNode([3]int16{4, 5, 6}), Pos: pos},
		&ToSrvInteract{Action: Use, Pointed: &PointedAO{ID: 42}, Pos: pos},
		&ToSrvInteract{Action: Activate, Pos: pos},
		&ToSrvRemovedSounds{IDs: []SoundID{1, -2}},
		&ToSrvNodeMetaFields{
			Pos:      [3]int16{1, 2, 3},
			Formname: "form",
			Fields:   []Field{{"quit", "true"}, {"text", strings.Repeat("x", 1000)}},
		},
		&ToSrvInvFields{Formname: "", Fields: []Field{{"a", ""}}},
		&ToSrvReqMedia{Filenames: []string{"a.png", "b.ogg"}},
		&ToSrvHaveMedia{Tokens: []uint32{1, 2, 3}},
		&ToSrvCltReady{Major: 5, Minor: 8, Patch: 0, Version: "5.8.0", Formspec: 7},
		&ToSrvFirstSRP{Salt: []byte{1, 2}, Verifier: []byte{3, 4}, EmptyPasswd: true},
		&ToSrvSRPBytesA{A: []byte{5, 6}, NoSHA1: true},
		&ToSrvSRPBytesM{M: []byte{7}},
		&ToSrvUpdateClientInfo{
			RenderTargetSize: [2]uint32{1920, 1080},
			RealGUIScaling:   1.5,
			RealHUDScaling:   1,
			MaxFormspecSize:  [2]float32{20, 12.5},
			TouchControls:    true,
		},
	}

	for _, cmd := range cmds {
		t.Run(cmdName(cmd), func(t *testing.T) {
			data, err := Marshal(cmd)
			require.NoError(t, err)
			assert.Equal(t, cmd.toSrvCmdNo(), be.Uint16(data))

			got, err := UnmarshalToSrv(data)
			require.NoError(t, err)
			if diff := cmp.Diff(cmd, got, equateEmpty); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTripToClt(t *testing.T) {
	cmds := []ToCltCmd{
		&ToCltHello{SerializeVer: 28, ProtoVer: 44, AuthMethods: SRP, Username: "player"},
		&ToCltAcceptAuth{PlayerPos: Pos{1, 2, 3}, MapSeed: 1 << 60, SendInterval: 0.09, SudoAuthMethods: SRP},
		&ToCltAcceptSudoMode{},
		&ToCltDisco{Reason: WrongPasswd},
		&ToCltDisco{Reason: Custom, Custom: "kicked"},
		&ToCltDisco{Reason: Crash, Custom: "oops", Reconnect: true},
		&ToCltRemoveNode{Pos: [3]int16{-1, 0, 1}},
		&ToCltInv{Inv: "List main 32\nEnd\n"},
		&ToCltTimeOfDay{Time: 6000, Speed: 72},
		&ToCltCSMRestrictionFlags{Flags: NoCSMs | LimitMapRange, MapRange: 8},
		&ToCltMediaPush{SHA1: [20]byte{1, 2, 3}, Filename: "a.png", ShouldCache: true, Data: []byte("png")},
		&ToCltChatMsg{Type: NormalMsg, Sender: "a", Text: "𝄞 clef", Timestamp: 1700000000},
		&ToCltAORmAdd{
			Remove: []AOID{1, 2},
			Add:    []AOAdd{{ID: 3, InitData: []byte{1, 2, 3}}, {ID: 4}},
		},
		&ToCltAOMsgs{Msgs: []IDAOMsg{{ID: 1, Msg: []byte{1}}, {ID: 2, Msg: []byte{2, 3}}}},
		&ToCltAOMsgs{},
		&ToCltHP{HP: 20, DamageEffect: true},
		&ToCltFOV{FOV: 72, Multiplier: true, TransitionTime: 0.5},
		&ToCltMedia{N: 2, I: 1, Files: []MediaFile{{"a.png", []byte{1}}, {"b.ogg", nil}}},
		&ToCltAnnounceMedia{
			Files: []AnnouncedFile{{"a.png", "qUqP5cyxm6YcTAhz05Hph5gvu9M="}},
			URL:   "https://media.example.org/",
		},
		&ToCltChangeHUD{ID: 1, Field: HUDText, Text: "hello"},
		&ToCltChangeHUD{ID: 2, Field: HUDWorldPos, WorldPos: Pos{1, 2, 3}},
		&ToCltChangeHUD{ID: 3, Field: HUDSize, Size: [2]int32{-1, 1}},
		&ToCltHUDFlags{Flags: ShowHotbar, Mask: ShowHotbar | ShowMinimap},
		&ToCltSetHotbarParam{Param: HotbarSize, Size: 8},
		&ToCltSetHotbarParam{Param: HotbarSelImg, Img: "sel.png"},
		&ToCltMovement{WalkSpeed: 4, JumpSpeed: 6.5, Gravity: 9.81},
		&ToCltMinimapModes{Current: 1, Modes: DefaultMinimap},
	}

	for _, cmd := range cmds {
		t.Run(cmdName(cmd), func(t *testing.T) {
			data, err := Marshal(cmd)
			require.NoError(t, err)
			assert.Equal(t, cmd.toCltCmdNo(), be.Uint16(data))

			got, err := UnmarshalToClt(data)
			require.NoError(t, err)
			if diff := cmp.Diff(cmd, got, equateEmpty); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalWire(t *testing.T) {
	tests := []struct {
		cmd  Cmd
		want []byte
	}{
		{&ToCltDisco{Reason: WrongPasswd}, []byte{0x00, 0x0a, 0}},
		{&ToCltDisco{Reason: WrongPasswd, Custom: "ignored"}, []byte{0x00, 0x0a, 0}},
		{
			&ToCltDisco{Reason: Shutdown, Custom: "bye", Reconnect: true},
			[]byte{0x00, 0x0a, 11, 0, 3, 'b', 'y', 'e', 1},
		},
		{&ToSrvChatMsg{Msg: "hi"}, []byte{0x00, 0x32, 0, 2, 0, 'h', 0, 'i'}},
		{&ToSrvChatMsg{Msg: "🙂"}, []byte{0x00, 0x32, 0, 2, 0xd8, 0x3d, 0xde, 0x42}},
		{&ToCltHP{HP: 5}, []byte{0x00, 0x33, 0, 5, 0}},
		{&ToCltSetHotbarParam{Param: HotbarSize, Size: 9}, []byte{0x00, 0x4d, 0, 1, 0, 4, 0, 0, 0, 9}},
		{
			&ToSrvInteract{Action: Place, Pointed: &PointedAO{ID: 0x0102}},
			append([]byte{0x00, 0x39, 3, 0, 0, 0, 0, 0, 4, 0, 2, 1, 2}, make([]byte, 38)...),
		},
	}

	for _, tt := range tests {
		t.Run(cmdName(tt.cmd), func(t *testing.T) {
			got, err := Marshal(tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnmarshalOptionalFieldsAbsent(t *testing.T) {
	clt, err := UnmarshalToClt([]byte{0x00, 0x33, 0, 5})
	require.NoError(t, err)
	assert.Equal(t, &ToCltHP{HP: 5}, clt)

	clt, err = UnmarshalToClt([]byte{0x00, 0x29, 0x17, 0x70})
	require.NoError(t, err)
	assert.Equal(t, &ToCltTimeOfDay{Time: 6000}, clt)

	srv, err := UnmarshalToSrv([]byte{0x00, 0x11})
	require.NoError(t, err)
	assert.Equal(t, &ToSrvInit2{}, srv)

	srv, err = UnmarshalToSrv([]byte{0x00, 0x02, 28, 0, 0, 0, 37, 0, 44, 0, 1, 'p'})
	require.NoError(t, err)
	assert.Equal(t, &ToSrvInit{SerializeVer: 28, MinProtoVer: 37, MaxProtoVer: 44, PlayerName: "p"}, srv)
}

func TestUnmarshalTruncated(t *testing.T) {
	data, err := Marshal(&ToCltHello{SerializeVer: 28, ProtoVer: 44, AuthMethods: SRP, Username: "player"})
	require.NoError(t, err)

	for n := 0; n < len(data); n++ {
		cmd, err := UnmarshalToClt(data[:n])
		assert.Nil(t, cmd, "len %d", n)

		var de *DecodeError
		require.ErrorAs(t, err, &de, "len %d", n)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, ErrLenTooLong),
			"len %d: %v", n, err)

		if n < 2 {
			assert.Equal(t, "cmd no", de.Field)
			assert.Empty(t, de.Cmd)
		} else {
			assert.Equal(t, "ToCltHello", de.Cmd)
			assert.LessOrEqual(t, de.Off, n)
		}
	}
}

func TestUnmarshalUnknownCmd(t *testing.T) {
	_, err := UnmarshalToClt([]byte{0xff, 0xff, 1, 2, 3})
	assert.ErrorIs(t, err, ErrUnknownCmd)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "cmd no", de.Field)

	// Known, but only in the other direction.
	_, err = UnmarshalToSrv([]byte{0x00, 0x0a, 0})
	assert.ErrorIs(t, err, ErrUnknownCmd)
}

func TestUnmarshalLenTooLong(t *testing.T) {
	_, err := UnmarshalToSrv([]byte{0x00, 0x40, 0xff, 0xff, 0, 1, 'a'})
	assert.ErrorIs(t, err, ErrLenTooLong)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "ToSrvReqMedia", de.Cmd)
	assert.Equal(t, "Filenames", de.Field)
	assert.Equal(t, 2, de.Off)

	_, err = UnmarshalToClt([]byte{0x00, 0x38, 0, 1, 0, 0, 0xff, 0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, ErrLenTooLong)
}

func TestUnmarshalTrailingData(t *testing.T) {
	data, err := Marshal(&ToCltBreath{Breath: 3})
	require.NoError(t, err)

	cmd, err := UnmarshalToClt(append(data, 0xaa, 0xbb))
	assert.Equal(t, &ToCltBreath{Breath: 3}, cmd)

	var tde rudp.TrailingDataError
	require.ErrorAs(t, err, &tde)
	assert.Equal(t, rudp.TrailingDataError{0xaa, 0xbb}, tde)
}

func TestUnmarshalInvalidUTF16(t *testing.T) {
	for name, data := range map[string][]byte{
		"lone high surrogate":    {0x00, 0x32, 0, 1, 0xd8, 0x00},
		"lone low surrogate":     {0x00, 0x32, 0, 1, 0xdc, 0x00},
		"high surrogate then a":  {0x00, 0x32, 0, 2, 0xd8, 0x00, 0, 'a'},
		"swapped surrogate pair": {0x00, 0x32, 0, 2, 0xde, 0x42, 0xd8, 0x3d},
	} {
		_, err := UnmarshalToSrv(data)
		assert.ErrorIs(t, err, ErrInvalidUTF16, name)
	}
}

func TestInvalidDiscriminants(t *testing.T) {
	_, err := Marshal(&ToCltDisco{Reason: maxDiscoReason})
	assert.ErrorIs(t, err, ErrInvalid)

	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "ToCltDisco", ee.Cmd)
	assert.Equal(t, "Reason", ee.Field)

	_, err = UnmarshalToClt([]byte{0x00, 0x0a, 200})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Marshal(&ToCltChangeHUD{Field: hudMax})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = UnmarshalToClt([]byte{0x00, 0x4b, 0, 0, 0, 1, 0xee})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Marshal(&ToCltSetHotbarParam{Param: 0})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Marshal(&ToSrvInteract{Action: maxInteraction})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = UnmarshalToClt([]byte{0x00, 0x2f, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrInvalid, "chat msg version")

	_, err = UnmarshalToClt([]byte{0x00, 0x31, 0, 0, 0, 1, 0, 1, 100, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrInvalid, "AO type")
}

func TestPointedThingErrors(t *testing.T) {
	interact := func(pointed ...byte) []byte {
		data := []byte{0x00, 0x39, 0, 0, 0}
		data = be.AppendUint32(data, uint32(len(pointed)))
		data = append(data, pointed...)
		return append(data, make([]byte, 38)...)
	}

	cmd, err := UnmarshalToSrv(interact(0, 1, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, &PointedNode{Under: [3]int16{1, 2, 3}, Above: [3]int16{4, 5, 6}},
		cmd.(*ToSrvInteract).Pointed)

	_, err = UnmarshalToSrv(interact(1, 0))
	assert.ErrorIs(t, err, ErrInvalid, "version")

	_, err = UnmarshalToSrv(interact(0, 9))
	assert.ErrorIs(t, err, ErrInvalid, "type")

	_, err = UnmarshalToSrv(interact(0, 0, 0xff))
	var tde rudp.TrailingDataError
	assert.ErrorAs(t, err, &tde, "trailing data inside the length prefix")

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 11, de.Off)

	_, err = Marshal(&ToSrvInteract{Pointed: badPointedThing{}})
	assert.ErrorIs(t, err, ErrInvalid)
}

type badPointedThing struct{}

func (badPointedThing) pt() {}

func TestEncodeTooLong(t *testing.T) {
	_, err := Marshal(&ToSrvModChanJoin{Channel: strings.Repeat("x", 1<<16)})
	assert.ErrorIs(t, err, ErrTooLong)

	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "ToSrvModChanJoin", ee.Cmd)
	assert.Equal(t, "Channel", ee.Field)

	_, err = Marshal(&ToSrvGotBlks{Blks: make([][3]int16, 256)})
	assert.ErrorIs(t, err, ErrTooLong)

	_, err = Marshal(&ToSrvChatMsg{Msg: strings.Repeat("🙂", 1<<15)})
	assert.ErrorIs(t, err, ErrTooLong, "counted in UTF-16 units")
}

func TestDiscoString(t *testing.T) {
	assert.Equal(t, "wrong password", ToCltDisco{Reason: WrongPasswd}.String())
	assert.Equal(t, "kicked", ToCltDisco{Reason: Custom, Custom: "kicked"}.String())
	assert.Equal(t, "server shutdown", ToCltDisco{Reason: Shutdown}.String())
	assert.Equal(t, "server crash: oops", ToCltDisco{Reason: Crash, Custom: "oops"}.String())
	assert.Equal(t, "DiscoReason(99)", ToCltDisco{Reason: 99}.String())
}

func TestEncodeInvalidUTF8(t *testing.T) {
	_, err := Marshal(&ToSrvChatMsg{Msg: "a\xffb"})
	assert.ErrorIs(t, err, ErrInvalid)

	var ee *EncodeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "ToSrvChatMsg", ee.Cmd)
	assert.Equal(t, "Msg", ee.Field)

	_, err = Marshal(&ToCltChatMsg{Sender: "\xc3", Text: "ok"})
	assert.ErrorIs(t, err, ErrInvalid, "UTF-16 text")

	// Byte strings are sent as is.
	data, err := Marshal(&ToSrvModChanJoin{Channel: "\xed\xa0\x80"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x17, 0, 3, 0xed, 0xa0, 0x80}, data)
}
