package mt

import (
	"crypto/sha1"
	"fmt"
	"image/color"
)

func (cmd *ToCltHello) serialize(w *writer) {
	w.u8(cmd.SerializeVer)
	w.u16(uint16(cmd.Compression))
	w.u16(cmd.ProtoVer)
	w.u32(uint32(cmd.AuthMethods))
	w.str("Username", cmd.Username)
}

func (cmd *ToCltHello) deserialize(r *reader) {
	cmd.SerializeVer = r.u8("SerializeVer")
	cmd.Compression = CompressionModes(r.u16("Compression"))
	cmd.ProtoVer = r.u16("ProtoVer")
	cmd.AuthMethods = AuthMethods(r.u32("AuthMethods"))
	cmd.Username = r.str("Username")
}

func (cmd *ToCltAcceptAuth) serialize(w *writer) {
	w.v3f32(cmd.PlayerPos)
	w.u64(cmd.MapSeed)
	w.f32(cmd.SendInterval)
	w.u32(uint32(cmd.SudoAuthMethods))
}

func (cmd *ToCltAcceptAuth) deserialize(r *reader) {
	cmd.PlayerPos = r.v3f32("PlayerPos")
	cmd.MapSeed = r.u64("MapSeed")
	cmd.SendInterval = r.f32("SendInterval")
	cmd.SudoAuthMethods = AuthMethods(r.u32("SudoAuthMethods"))
}

func (cmd *ToCltAcceptSudoMode) serialize(w *writer)   {}
func (cmd *ToCltAcceptSudoMode) deserialize(r *reader) {}

func (cmd *ToCltDenySudoMode) serialize(w *writer)   {}
func (cmd *ToCltDenySudoMode) deserialize(r *reader) {}

func (cmd *ToCltDisco) serialize(w *writer) {
	if cmd.Reason >= maxDiscoReason {
		w.fail("Reason", fmt.Errorf("%w: %d", ErrInvalid, cmd.Reason))
	}
	w.u8(uint8(cmd.Reason))
	if cmd.Reason.hasCustom() {
		w.str("Custom", cmd.Custom)
	}
	if cmd.Reason.hasReconnect() {
		w.bool(cmd.Reconnect)
	}
}

func (cmd *ToCltDisco) deserialize(r *reader) {
	cmd.Reason = DiscoReason(r.u8("Reason"))
	if cmd.Reason >= maxDiscoReason {
		r.failAt(r.off-1, "Reason", fmt.Errorf("%w: %d", ErrInvalid, cmd.Reason))
	}
	if cmd.Reason.hasCustom() {
		cmd.Custom = r.str("Custom")
	}
	if cmd.Reason.hasReconnect() {
		cmd.Reconnect = r.bool("Reconnect")
	}
}

func (cmd *ToCltAddNode) serialize(w *writer) {
	w.v3s16(cmd.Pos)
	w.u16(uint16(cmd.Param0))
	w.u8(cmd.Param1)
	w.u8(cmd.Param2)
	w.bool(cmd.KeepMeta)
}

func (cmd *ToCltAddNode) deserialize(r *reader) {
	cmd.Pos = r.v3s16("Pos")
	cmd.Param0 = Content(r.u16("Param0"))
	cmd.Param1 = r.u8("Param1")
	cmd.Param2 = r.u8("Param2")
	cmd.KeepMeta = r.bool("KeepMeta")
}

func (cmd *ToCltRemoveNode) serialize(w *writer) {
	w.v3s16(cmd.Pos)
}

func (cmd *ToCltRemoveNode) deserialize(r *reader) {
	cmd.Pos = r.v3s16("Pos")
}

func (cmd *ToCltInv) serialize(w *writer) {
	w.raw([]byte(cmd.Inv))
}

func (cmd *ToCltInv) deserialize(r *reader) {
	cmd.Inv = string(r.rest())
}

func (cmd *ToCltTimeOfDay) serialize(w *writer) {
	w.u16(cmd.Time)
	w.f32(cmd.Speed)
}

func (cmd *ToCltTimeOfDay) deserialize(r *reader) {
	cmd.Time = r.u16("Time")
	if r.more() {
		cmd.Speed = r.f32("Speed")
	}
}

func (cmd *ToCltCSMRestrictionFlags) serialize(w *writer) {
	w.u64(uint64(cmd.Flags))
	w.u32(cmd.MapRange)
}

func (cmd *ToCltCSMRestrictionFlags) deserialize(r *reader) {
	cmd.Flags = CSMRestrictionFlags(r.u64("Flags"))
	cmd.MapRange = r.u32("MapRange")
}

func (cmd *ToCltAddPlayerVel) serialize(w *writer) {
	w.v3f32(cmd.Vel)
}

func (cmd *ToCltAddPlayerVel) deserialize(r *reader) {
	cmd.Vel = r.v3f32("Vel")
}

func (cmd *ToCltMediaPush) serialize(w *writer) {
	w.u16(sha1.Size)
	w.raw(cmd.SHA1[:])
	w.str("Filename", cmd.Filename)
	w.bool(cmd.ShouldCache)
	w.bytes32("Data", cmd.Data)
}

func (cmd *ToCltMediaPush) deserialize(r *reader) {
	if n := r.u16("SHA1"); n != sha1.Size {
		r.failAt(r.off-2, "SHA1", fmt.Errorf("%w: SHA1 len: %d", ErrInvalid, n))
	}
	copy(cmd.SHA1[:], r.eat("SHA1", sha1.Size))
	cmd.Filename = r.str("Filename")
	cmd.ShouldCache = r.bool("ShouldCache")
	cmd.Data = r.bytes32("Data")
}

func (cmd *ToCltChatMsg) serialize(w *writer) {
	w.u8(1) // Version.
	w.u8(uint8(cmd.Type))
	w.wstr("Sender", cmd.Sender)
	w.wstr("Text", cmd.Text)
	w.i64(cmd.Timestamp)
}

func (cmd *ToCltChatMsg) deserialize(r *reader) {
	if v := r.u8("Version"); v != 1 {
		r.failAt(r.off-1, "Version", fmt.Errorf("%w: chat msg version: %d", ErrInvalid, v))
	}
	cmd.Type = ChatMsgType(r.u8("Type"))
	cmd.Sender = r.wstr("Sender")
	cmd.Text = r.wstr("Text")
	cmd.Timestamp = r.i64("Timestamp")
}

func (cmd *ToCltAORmAdd) serialize(w *writer) {
	w.len16("Remove", len(cmd.Remove))
	for _, id := range cmd.Remove {
		w.u16(uint16(id))
	}

	w.len16("Add", len(cmd.Add))
	for _, ao := range cmd.Add {
		w.u16(uint16(ao.ID))
		w.u8(uint8(genericCAO))
		w.bytes32("Add.InitData", ao.InitData)
	}
}

func (cmd *ToCltAORmAdd) deserialize(r *reader) {
	cmd.Remove = make([]AOID, r.len16("Remove", 2))
	for i := range cmd.Remove {
		cmd.Remove[i] = AOID(r.u16("Remove"))
	}

	cmd.Add = make([]AOAdd, r.len16("Add", 2+1+4))
	for i := range cmd.Add {
		cmd.Add[i].ID = AOID(r.u16("Add.ID"))
		if t := aoType(r.u8("Add.Type")); t != genericCAO {
			r.failAt(r.off-1, "Add.Type", fmt.Errorf("%w: AO type: %d", ErrInvalid, t))
		}
		cmd.Add[i].InitData = r.bytes32("Add.InitData")
	}
}

func (cmd *ToCltAOMsgs) serialize(w *writer) {
	for _, msg := range cmd.Msgs {
		w.u16(uint16(msg.ID))
		w.bytes16("Msgs.Msg", msg.Msg)
	}
}

func (cmd *ToCltAOMsgs) deserialize(r *reader) {
	cmd.Msgs = nil
	for r.more() {
		cmd.Msgs = append(cmd.Msgs, IDAOMsg{
			ID:  AOID(r.u16("Msgs.ID")),
			Msg: r.bytes16("Msgs.Msg"),
		})
	}
}

func (cmd *ToCltHP) serialize(w *writer) {
	w.u16(cmd.HP)
	w.bool(cmd.DamageEffect)
}

func (cmd *ToCltHP) deserialize(r *reader) {
	cmd.HP = r.u16("HP")
	if r.more() {
		cmd.DamageEffect = r.bool("DamageEffect")
	}
}

func (cmd *ToCltMovePlayer) serialize(w *writer) {
	w.v3f32(cmd.Pos)
	w.f32(cmd.Pitch)
	w.f32(cmd.Yaw)
}

func (cmd *ToCltMovePlayer) deserialize(r *reader) {
	cmd.Pos = r.v3f32("Pos")
	cmd.Pitch = r.f32("Pitch")
	cmd.Yaw = r.f32("Yaw")
}

func (cmd *ToCltDiscoLegacy) serialize(w *writer) {
	w.wstr("Reason", cmd.Reason)
}

func (cmd *ToCltDiscoLegacy) deserialize(r *reader) {
	cmd.Reason = r.wstr("Reason")
}

func (cmd *ToCltFOV) serialize(w *writer) {
	w.f32(cmd.FOV)
	w.bool(cmd.Multiplier)
	w.f32(cmd.TransitionTime)
}

func (cmd *ToCltFOV) deserialize(r *reader) {
	cmd.FOV = r.f32("FOV")
	cmd.Multiplier = r.bool("Multiplier")
	if r.more() {
		cmd.TransitionTime = r.f32("TransitionTime")
	}
}

func (cmd *ToCltDeathScreen) serialize(w *writer) {
	w.bool(cmd.PointCam)
	w.v3f32(cmd.PointAt)
}

func (cmd *ToCltDeathScreen) deserialize(r *reader) {
	cmd.PointCam = r.bool("PointCam")
	cmd.PointAt = r.v3f32("PointAt")
}

func (cmd *ToCltMedia) serialize(w *writer) {
	w.u16(cmd.N)
	w.u16(cmd.I)
	w.len32("Files", len(cmd.Files))
	for _, f := range cmd.Files {
		w.str("Files.Name", f.Name)
		w.bytes32("Files.Data", f.Data)
	}
}

func (cmd *ToCltMedia) deserialize(r *reader) {
	cmd.N = r.u16("N")
	cmd.I = r.u16("I")
	cmd.Files = make([]MediaFile, r.len32("Files", 2+4))
	for i := range cmd.Files {
		cmd.Files[i].Name = r.str("Files.Name")
		cmd.Files[i].Data = r.bytes32("Files.Data")
	}
}

func (cmd *ToCltAnnounceMedia) serialize(w *writer) {
	w.len16("Files", len(cmd.Files))
	for _, f := range cmd.Files {
		w.str("Files.Name", f.Name)
		w.str("Files.Base64SHA1", f.Base64SHA1)
	}
	w.str("URL", cmd.URL)
}

func (cmd *ToCltAnnounceMedia) deserialize(r *reader) {
	cmd.Files = make([]AnnouncedFile, r.len16("Files", 2+2))
	for i := range cmd.Files {
		cmd.Files[i].Name = r.str("Files.Name")
		cmd.Files[i].Base64SHA1 = r.str("Files.Base64SHA1")
	}
	cmd.URL = r.str("URL")
}

func (cmd *ToCltPlaySound) serialize(w *writer) {
	w.i32(int32(cmd.ID))
	w.str("Name", cmd.Name)
	w.f32(cmd.Gain)
	w.u8(uint8(cmd.SrcType))
	w.v3f32(cmd.Pos)
	w.u16(uint16(cmd.SrcAOID))
	w.bool(cmd.Loop)
	w.f32(cmd.Fade)
	w.f32(cmd.Pitch)
	w.bool(cmd.Ephemeral)
}

func (cmd *ToCltPlaySound) deserialize(r *reader) {
	cmd.ID = SoundID(r.i32("ID"))
	cmd.Name = r.str("Name")
	cmd.Gain = r.f32("Gain")
	cmd.SrcType = SoundSrcType(r.u8("SrcType"))
	cmd.Pos = r.v3f32("Pos")
	cmd.SrcAOID = AOID(r.u16("SrcAOID"))
	cmd.Loop = r.bool("Loop")
	if r.more() {
		cmd.Fade = r.f32("Fade")
	}
	if r.more() {
		cmd.Pitch = r.f32("Pitch")
	}
	if r.more() {
		cmd.Ephemeral = r.bool("Ephemeral")
	}
}

func (cmd *ToCltStopSound) serialize(w *writer) {
	w.i32(int32(cmd.ID))
}

func (cmd *ToCltStopSound) deserialize(r *reader) {
	cmd.ID = SoundID(r.i32("ID"))
}

func (cmd *ToCltPrivs) serialize(w *writer) {
	writeStrs(w, "Privs", cmd.Privs)
}

func (cmd *ToCltPrivs) deserialize(r *reader) {
	cmd.Privs = readStrs(r, "Privs")
}

func (cmd *ToCltInvFormspec) serialize(w *writer) {
	w.str32("Formspec", cmd.Formspec)
}

func (cmd *ToCltInvFormspec) deserialize(r *reader) {
	cmd.Formspec = r.str32("Formspec")
}

func (cmd *ToCltDetachedInv) serialize(w *writer) {
	w.str("Name", cmd.Name)
	w.bool(cmd.Keep)
	w.u16(cmd.Len)
	w.raw([]byte(cmd.Inv))
}

func (cmd *ToCltDetachedInv) deserialize(r *reader) {
	cmd.Name = r.str("Name")
	cmd.Keep = r.bool("Keep")
	cmd.Len = r.u16("Len")
	cmd.Inv = string(r.rest())
}

func (cmd *ToCltShowFormspec) serialize(w *writer) {
	w.str32("Formspec", cmd.Formspec)
	w.str("Formname", cmd.Formname)
}

func (cmd *ToCltShowFormspec) deserialize(r *reader) {
	cmd.Formspec = r.str32("Formspec")
	cmd.Formname = r.str("Formname")
}

func (cmd *ToCltMovement) fields() []*float32 {
	return []*float32{
		&cmd.DefaultAccel, &cmd.AirAccel, &cmd.FastAccel,
		&cmd.WalkSpeed, &cmd.CrouchSpeed, &cmd.FastSpeed, &cmd.ClimbSpeed, &cmd.JumpSpeed,
		&cmd.Fluidity, &cmd.Smoothing, &cmd.Sink,
		&cmd.Gravity,
	}
}

func (cmd *ToCltMovement) serialize(w *writer) {
	for _, f := range cmd.fields() {
		w.f32(*f)
	}
}

func (cmd *ToCltMovement) deserialize(r *reader) {
	for _, f := range cmd.fields() {
		*f = r.f32("Movement")
	}
}

func (cmd *ToCltAddHUD) serialize(w *writer) {
	w.u32(uint32(cmd.ID))
	w.u8(uint8(cmd.Type))
	w.v2f32(cmd.Pos)
	w.str("Name", cmd.Name)
	w.v2f32(cmd.Scale)
	w.str("Text", cmd.Text)
	w.u32(cmd.Number)
	w.u32(cmd.Item)
	w.u32(cmd.Dir)
	w.v2f32(cmd.Align)
	w.v2f32(cmd.Offset)
	w.v3f32(cmd.WorldPos)
	w.v2s32(cmd.Size)
	w.i16(cmd.ZIndex)
	w.str("Text2", cmd.Text2)
	w.u32(cmd.Style)
}

func (cmd *ToCltAddHUD) deserialize(r *reader) {
	cmd.ID = HUDID(r.u32("ID"))
	cmd.Type = HUDType(r.u8("Type"))
	cmd.Pos = r.v2f32("Pos")
	cmd.Name = r.str("Name")
	cmd.Scale = r.v2f32("Scale")
	cmd.Text = r.str("Text")
	cmd.Number = r.u32("Number")
	cmd.Item = r.u32("Item")
	cmd.Dir = r.u32("Dir")
	cmd.Align = r.v2f32("Align")
	cmd.Offset = r.v2f32("Offset")
	cmd.WorldPos = r.v3f32("WorldPos")
	cmd.Size = r.v2s32("Size")
	cmd.ZIndex = r.i16("ZIndex")
	cmd.Text2 = r.str("Text2")
	if r.more() {
		cmd.Style = r.u32("Style")
	}
}

func (cmd *ToCltRmHUD) serialize(w *writer) {
	w.u32(uint32(cmd.ID))
}

func (cmd *ToCltRmHUD) deserialize(r *reader) {
	cmd.ID = HUDID(r.u32("ID"))
}

func (cmd *ToCltChangeHUD) serialize(w *writer) {
	w.u32(uint32(cmd.ID))
	if cmd.Field >= hudMax {
		w.fail("Field", fmt.Errorf("%w: %d", ErrInvalid, cmd.Field))
	}
	w.u8(uint8(cmd.Field))

	switch cmd.Field {
	case HUDPos:
		w.v2f32(cmd.Pos)
	case HUDName:
		w.str("Name", cmd.Name)
	case HUDScale:
		w.v2f32(cmd.Scale)
	case HUDText:
		w.str("Text", cmd.Text)
	case HUDNumber:
		w.u32(cmd.Number)
	case HUDItem:
		w.u32(cmd.Item)
	case HUDDir:
		w.u32(cmd.Dir)
	case HUDAlign:
		w.v2f32(cmd.Align)
	case HUDOffset:
		w.v2f32(cmd.Offset)
	case HUDWorldPos:
		w.v3f32(cmd.WorldPos)
	case HUDSize:
		w.v2s32(cmd.Size)
	case HUDZIndex:
		w.u32(cmd.ZIndex)
	case HUDText2:
		w.str("Text2", cmd.Text2)
	}
}

func (cmd *ToCltChangeHUD) deserialize(r *reader) {
	cmd.ID = HUDID(r.u32("ID"))
	cmd.Field = HUDField(r.u8("Field"))

	switch cmd.Field {
	case HUDPos:
		cmd.Pos = r.v2f32("Pos")
	case HUDName:
		cmd.Name = r.str("Name")
	case HUDScale:
		cmd.Scale = r.v2f32("Scale")
	case HUDText:
		cmd.Text = r.str("Text")
	case HUDNumber:
		cmd.Number = r.u32("Number")
	case HUDItem:
		cmd.Item = r.u32("Item")
	case HUDDir:
		cmd.Dir = r.u32("Dir")
	case HUDAlign:
		cmd.Align = r.v2f32("Align")
	case HUDOffset:
		cmd.Offset = r.v2f32("Offset")
	case HUDWorldPos:
		cmd.WorldPos = r.v3f32("WorldPos")
	case HUDSize:
		cmd.Size = r.v2s32("Size")
	case HUDZIndex:
		cmd.ZIndex = r.u32("ZIndex")
	case HUDText2:
		cmd.Text2 = r.str("Text2")
	default:
		r.failAt(r.off-1, "Field", fmt.Errorf("%w: %d", ErrInvalid, cmd.Field))
	}
}

func (cmd *ToCltHUDFlags) serialize(w *writer) {
	w.u32(uint32(cmd.Flags))
	w.u32(uint32(cmd.Mask))
}

func (cmd *ToCltHUDFlags) deserialize(r *reader) {
	cmd.Flags = HUDFlags(r.u32("Flags"))
	cmd.Mask = HUDFlags(r.u32("Mask"))
}

func (cmd *ToCltSetHotbarParam) serialize(w *writer) {
	w.u16(uint16(cmd.Param))
	switch cmd.Param {
	case HotbarSize:
		w.u16(4) // Size of Size field.
		w.i32(cmd.Size)
	case HotbarImg, HotbarSelImg:
		w.str("Img", string(cmd.Img))
	default:
		w.fail("Param", fmt.Errorf("%w: %d", ErrInvalid, cmd.Param))
	}
}

func (cmd *ToCltSetHotbarParam) deserialize(r *reader) {
	cmd.Param = HotbarParam(r.u16("Param"))
	switch cmd.Param {
	case HotbarSize:
		if n := r.u16("Size"); n != 4 {
			r.failAt(r.off-2, "Size", fmt.Errorf("%w: size len: %d", ErrInvalid, n))
		}
		cmd.Size = r.i32("Size")
	case HotbarImg, HotbarSelImg:
		cmd.Img = Texture(r.str("Img"))
	default:
		r.failAt(r.off-2, "Param", fmt.Errorf("%w: %d", ErrInvalid, cmd.Param))
	}
}

func (cmd *ToCltBreath) serialize(w *writer) {
	w.u16(cmd.Breath)
}

func (cmd *ToCltBreath) deserialize(r *reader) {
	cmd.Breath = r.u16("Breath")
}

func (cmd *ToCltOverrideDayNightRatio) serialize(w *writer) {
	w.bool(cmd.Override)
	w.u16(cmd.Ratio)
}

func (cmd *ToCltOverrideDayNightRatio) deserialize(r *reader) {
	cmd.Override = r.bool("Override")
	cmd.Ratio = r.u16("Ratio")
}

func (cmd *ToCltLocalPlayerAnim) serialize(w *writer) {
	w.v2s32(cmd.Idle)
	w.v2s32(cmd.Walk)
	w.v2s32(cmd.Dig)
	w.v2s32(cmd.WalkDig)
	w.f32(cmd.Speed)
}

func (cmd *ToCltLocalPlayerAnim) deserialize(r *reader) {
	cmd.Idle = r.v2s32("Idle")
	cmd.Walk = r.v2s32("Walk")
	cmd.Dig = r.v2s32("Dig")
	cmd.WalkDig = r.v2s32("WalkDig")
	cmd.Speed = r.f32("Speed")
}

func (cmd *ToCltEyeOffset) serialize(w *writer) {
	w.v3f32(cmd.First)
	w.v3f32(cmd.Third)
}

func (cmd *ToCltEyeOffset) deserialize(r *reader) {
	cmd.First = r.v3f32("First")
	cmd.Third = r.v3f32("Third")
}

func (cmd *ToCltDelParticleSpawner) serialize(w *writer) {
	w.u32(uint32(cmd.ID))
}

func (cmd *ToCltDelParticleSpawner) deserialize(r *reader) {
	cmd.ID = ParticleSpawnerID(r.u32("ID"))
}

func (cmd *ToCltCloudParams) serialize(w *writer) {
	w.f32(cmd.Density)
	w.color(cmd.DiffuseColor)
	w.color(cmd.AmbientColor)
	w.f32(cmd.Height)
	w.f32(cmd.Thickness)
	w.v2f32(cmd.Speed)
	w.color(cmd.ShadowColor)
}

func (cmd *ToCltCloudParams) deserialize(r *reader) {
	cmd.Density = r.f32("Density")
	cmd.DiffuseColor = r.color("DiffuseColor")
	cmd.AmbientColor = r.color("AmbientColor")
	cmd.Height = r.f32("Height")
	cmd.Thickness = r.f32("Thickness")
	cmd.Speed = r.v2f32("Speed")
	if r.more() {
		cmd.ShadowColor = r.color("ShadowColor")
	}
}

func (cmd *ToCltFadeSound) serialize(w *writer) {
	w.i32(int32(cmd.ID))
	w.f32(cmd.Step)
	w.f32(cmd.Gain)
}

func (cmd *ToCltFadeSound) deserialize(r *reader) {
	cmd.ID = SoundID(r.i32("ID"))
	cmd.Step = r.f32("Step")
	cmd.Gain = r.f32("Gain")
}

func (cmd *ToCltUpdatePlayerList) serialize(w *writer) {
	w.u8(uint8(cmd.Type))
	writeStrs(w, "Players", cmd.Players)
}

func (cmd *ToCltUpdatePlayerList) deserialize(r *reader) {
	cmd.Type = PlayerListUpdateType(r.u8("Type"))
	cmd.Players = readStrs(r, "Players")
}

func (cmd *ToCltModChanMsg) serialize(w *writer) {
	w.str("Channel", cmd.Channel)
	w.str("Sender", cmd.Sender)
	w.str("Msg", cmd.Msg)
}

func (cmd *ToCltModChanMsg) deserialize(r *reader) {
	cmd.Channel = r.str("Channel")
	cmd.Sender = r.str("Sender")
	cmd.Msg = r.str("Msg")
}

func (cmd *ToCltModChanSig) serialize(w *writer) {
	w.u8(uint8(cmd.Signal))
	w.str("Channel", cmd.Channel)
}

func (cmd *ToCltModChanSig) deserialize(r *reader) {
	cmd.Signal = ModChanSig(r.u8("Signal"))
	cmd.Channel = r.str("Channel")
}

func (cmd *ToCltSunParams) serialize(w *writer) {
	w.bool(cmd.Visible)
	w.str("Texture", string(cmd.Texture))
	w.str("ToneMap", string(cmd.ToneMap))
	w.str("Rise", string(cmd.Rise))
	w.bool(cmd.Rising)
	w.f32(cmd.Size)
}

func (cmd *ToCltSunParams) deserialize(r *reader) {
	cmd.Visible = r.bool("Visible")
	cmd.Texture = Texture(r.str("Texture"))
	cmd.ToneMap = Texture(r.str("ToneMap"))
	cmd.Rise = Texture(r.str("Rise"))
	cmd.Rising = r.bool("Rising")
	cmd.Size = r.f32("Size")
}

func (cmd *ToCltMoonParams) serialize(w *writer) {
	w.bool(cmd.Visible)
	w.str("Texture", string(cmd.Texture))
	w.str("ToneMap", string(cmd.ToneMap))
	w.f32(cmd.Size)
}

func (cmd *ToCltMoonParams) deserialize(r *reader) {
	cmd.Visible = r.bool("Visible")
	cmd.Texture = Texture(r.str("Texture"))
	cmd.ToneMap = Texture(r.str("ToneMap"))
	cmd.Size = r.f32("Size")
}

func (cmd *ToCltStarParams) serialize(w *writer) {
	w.bool(cmd.Visible)
	w.u32(cmd.Count)
	w.color(cmd.Color)
	w.f32(cmd.Size)
}

func (cmd *ToCltStarParams) deserialize(r *reader) {
	cmd.Visible = r.bool("Visible")
	cmd.Count = r.u32("Count")
	cmd.Color = r.color("Color")
	cmd.Size = r.f32("Size")
}

func (cmd *ToCltSRPBytesSaltB) serialize(w *writer) {
	w.bytes16("Salt", cmd.Salt)
	w.bytes16("B", cmd.B)
}

func (cmd *ToCltSRPBytesSaltB) deserialize(r *reader) {
	cmd.Salt = r.bytes16("Salt")
	cmd.B = r.bytes16("B")
}

func (cmd *ToCltFormspecPrepend) serialize(w *writer) {
	w.str("Prepend", cmd.Prepend)
}

func (cmd *ToCltFormspecPrepend) deserialize(r *reader) {
	cmd.Prepend = r.str("Prepend")
}

func (cmd *ToCltMinimapModes) serialize(w *writer) {
	w.len16("Modes", len(cmd.Modes))
	w.u16(cmd.Current)
	for _, m := range cmd.Modes {
		w.u16(uint16(m.Type))
		w.str("Modes.Label", m.Label)
		w.u16(m.Size)
		w.str("Modes.Texture", string(m.Texture))
		w.u16(m.Scale)
	}
}

func (cmd *ToCltMinimapModes) deserialize(r *reader) {
	n := r.len16("Modes", 2+2+2+2+2)
	cmd.Current = r.u16("Current")
	cmd.Modes = make([]MinimapMode, n)
	for i := range cmd.Modes {
		m := &cmd.Modes[i]
		m.Type = MinimapType(r.u16("Modes.Type"))
		m.Label = r.str("Modes.Label")
		m.Size = r.u16("Modes.Size")
		m.Texture = Texture(r.str("Modes.Texture"))
		m.Scale = r.u16("Modes.Scale")
	}
}

func (cmd *ToCltNodeDefs) serialize(w *writer) {
	w.lenhdr32("Defs", func(w *writer) {
		w.zlib("Defs", func(w *writer) {
			w.u8(1)
			w.len16("Defs", len(cmd.Defs))
			w.lenhdr32("Defs", func(w *writer) {
				for i := range cmd.Defs {
					cmd.Defs[i].serialize(w)
				}
			})
		})
	})
}

func (cmd *ToCltNodeDefs) deserialize(r *reader) {
	r.lenhdr32("Defs", func(r *reader) {
		r.zlib("Defs", maxInflatedLen, func(r *reader) {
			r.version("Defs.Version", 1)
			off := r.off
			n := int(r.u16("Defs"))
			r.lenhdr32("Defs", func(r *reader) {
				cmd.Defs = make([]NodeDef, r.count("Defs", off, n, 2+2))
				for i := range cmd.Defs {
					cmd.Defs[i].deserialize(r)
				}
			})
		})
	})
}

func (cmd *ToCltItemDefs) serialize(w *writer) {
	w.lenhdr32("Defs", func(w *writer) {
		w.zlib("Defs", func(w *writer) {
			w.u8(0)
			w.len16("Defs", len(cmd.Defs))
			for i := range cmd.Defs {
				cmd.Defs[i].serialize(w)
			}
			w.len16("Aliases", len(cmd.Aliases))
			for _, a := range cmd.Aliases {
				w.str("Aliases", a.Alias)
				w.str("Aliases", a.Orig)
			}
		})
	})
}

func (cmd *ToCltItemDefs) deserialize(r *reader) {
	r.lenhdr32("Defs", func(r *reader) {
		r.zlib("Defs", maxInflatedLen, func(r *reader) {
			r.version("Defs.Version", 0)
			cmd.Defs = make([]ItemDef, r.len16("Defs", 2))
			for i := range cmd.Defs {
				cmd.Defs[i].deserialize(r)
			}
			cmd.Aliases = make([]ItemAlias, r.len16("Aliases", 2+2))
			for i := range cmd.Aliases {
				cmd.Aliases[i].Alias = r.str("Aliases")
				cmd.Aliases[i].Orig = r.str("Aliases")
			}
		})
	})
}

func (cmd *ToCltSpawnParticle) serialize(w *writer) {
	w.v3f32(cmd.Pos)
	w.v3f32(cmd.Vel)
	w.v3f32(cmd.Acc)
	w.f32(cmd.ExpirationTime)
	w.f32(cmd.Size)
	w.bool(cmd.Collide)
	w.str32("Texture", string(cmd.Texture))
	w.bool(cmd.Vertical)
	w.bool(cmd.CollisionRm)
	cmd.AnimParams.serialize(w, "AnimParams")
	w.u8(cmd.Glow)
	w.bool(cmd.AOCollision)
	w.u16(uint16(cmd.NodeParam0))
	w.u8(cmd.NodeParam2)
	w.u8(cmd.NodeTile)
}

func (cmd *ToCltSpawnParticle) deserialize(r *reader) {
	cmd.Pos = r.v3f32("Pos")
	cmd.Vel = r.v3f32("Vel")
	cmd.Acc = r.v3f32("Acc")
	cmd.ExpirationTime = r.f32("ExpirationTime")
	cmd.Size = r.f32("Size")
	cmd.Collide = r.bool("Collide")
	cmd.Texture = Texture(r.str32("Texture"))
	cmd.Vertical = r.bool("Vertical")
	cmd.CollisionRm = r.bool("CollisionRm")
	cmd.AnimParams.deserialize(r, "AnimParams")
	cmd.Glow = r.u8("Glow")
	cmd.AOCollision = r.bool("AOCollision")
	cmd.NodeParam0 = Content(r.u16("NodeParam0"))
	cmd.NodeParam2 = r.u8("NodeParam2")
	cmd.NodeTile = r.u8("NodeTile")
}

func (cmd *ToCltAddParticleSpawner) serialize(w *writer) {
	w.u16(cmd.Amount)
	w.f32(cmd.Duration)
	for _, v := range [][2][3]float32{cmd.Pos, cmd.Vel, cmd.Acc} {
		w.v3f32(v[0])
		w.v3f32(v[1])
	}
	w.v2f32(cmd.ExpirationTime)
	w.v2f32(cmd.Size)
	w.bool(cmd.Collide)
	w.str32("Texture", string(cmd.Texture))
	w.u32(uint32(cmd.ID))
	w.bool(cmd.Vertical)
	w.bool(cmd.CollisionRm)
	w.u16(uint16(cmd.AttachedAOID))
	cmd.AnimParams.serialize(w, "AnimParams")
	w.u8(cmd.Glow)
	w.bool(cmd.AOCollision)
	w.u16(uint16(cmd.NodeParam0))
	w.u8(cmd.NodeParam2)
	w.u8(cmd.NodeTile)
}

func (cmd *ToCltAddParticleSpawner) deserialize(r *reader) {
	cmd.Amount = r.u16("Amount")
	cmd.Duration = r.f32("Duration")
	cmd.Pos = [2][3]float32{r.v3f32("Pos"), r.v3f32("Pos")}
	cmd.Vel = [2][3]float32{r.v3f32("Vel"), r.v3f32("Vel")}
	cmd.Acc = [2][3]float32{r.v3f32("Acc"), r.v3f32("Acc")}
	cmd.ExpirationTime = r.v2f32("ExpirationTime")
	cmd.Size = r.v2f32("Size")
	cmd.Collide = r.bool("Collide")
	cmd.Texture = Texture(r.str32("Texture"))
	cmd.ID = ParticleSpawnerID(r.u32("ID"))
	cmd.Vertical = r.bool("Vertical")
	cmd.CollisionRm = r.bool("CollisionRm")
	cmd.AttachedAOID = AOID(r.u16("AttachedAOID"))
	cmd.AnimParams.deserialize(r, "AnimParams")
	cmd.Glow = r.u8("Glow")
	cmd.AOCollision = r.bool("AOCollision")
	cmd.NodeParam0 = Content(r.u16("NodeParam0"))
	cmd.NodeParam2 = r.u8("NodeParam2")
	cmd.NodeTile = r.u8("NodeTile")
}

func (cmd *ToCltSkyParams) regularColors() [7]*color.NRGBA {
	return [7]*color.NRGBA{
		&cmd.DaySky, &cmd.DayHorizon,
		&cmd.DawnSky, &cmd.DawnHorizon,
		&cmd.NightSky, &cmd.NightHorizon,
		&cmd.Indoor,
	}
}

func (cmd *ToCltSkyParams) serialize(w *writer) {
	w.color(cmd.BgColor)
	w.str("Type", string(cmd.Type))
	w.bool(cmd.Clouds)
	w.color(cmd.SunFogTint)
	w.color(cmd.MoonFogTint)
	w.str("FogTintType", cmd.FogTintType)
	switch cmd.Type {
	case PlainSky:
	case SkyboxSky:
		w.len16("Textures", len(cmd.Textures))
		for _, t := range cmd.Textures {
			w.str("Textures", string(t))
		}
	case RegularSky:
		for _, c := range cmd.regularColors() {
			w.color(*c)
		}
	default:
		w.fail("Type", fmt.Errorf("%w: %q", ErrInvalid, cmd.Type))
	}
	w.f32(cmd.BodyOrbitTilt)
}

func (cmd *ToCltSkyParams) deserialize(r *reader) {
	cmd.BgColor = r.color("BgColor")
	off := r.off
	cmd.Type = SkyType(r.str("Type"))
	cmd.Clouds = r.bool("Clouds")
	cmd.SunFogTint = r.color("SunFogTint")
	cmd.MoonFogTint = r.color("MoonFogTint")
	cmd.FogTintType = r.str("FogTintType")
	switch cmd.Type {
	case PlainSky:
	case SkyboxSky:
		cmd.Textures = make([]Texture, r.len16("Textures", 2))
		for i := range cmd.Textures {
			cmd.Textures[i] = Texture(r.str("Textures"))
		}
	case RegularSky:
		for _, c := range cmd.regularColors() {
			*c = r.color("Colors")
		}
	default:
		r.failAt(off, "Type", fmt.Errorf("%w: %q", ErrInvalid, cmd.Type))
	}
	if r.more() {
		cmd.BodyOrbitTilt = r.f32("BodyOrbitTilt")
	}
}
