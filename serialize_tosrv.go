package mt

import "fmt"

func (cmd *ToSrvNil) serialize(w *writer)   {}
func (cmd *ToSrvNil) deserialize(r *reader) {}

func (cmd *ToSrvInit) serialize(w *writer) {
	w.u8(cmd.SerializeVer)
	w.u16(uint16(cmd.SupportedCompression))
	w.u16(cmd.MinProtoVer)
	w.u16(cmd.MaxProtoVer)
	w.str("PlayerName", cmd.PlayerName)
	w.bool(cmd.SendFullItemMeta)
}

func (cmd *ToSrvInit) deserialize(r *reader) {
	cmd.SerializeVer = r.u8("SerializeVer")
	cmd.SupportedCompression = CompressionModes(r.u16("SupportedCompression"))
	cmd.MinProtoVer = r.u16("MinProtoVer")
	cmd.MaxProtoVer = r.u16("MaxProtoVer")
	cmd.PlayerName = r.str("PlayerName")
	if r.more() {
		cmd.SendFullItemMeta = r.bool("SendFullItemMeta")
	}
}

func (cmd *ToSrvInit2) serialize(w *writer) {
	w.str("Lang", cmd.Lang)
}

func (cmd *ToSrvInit2) deserialize(r *reader) {
	if r.more() {
		cmd.Lang = r.str("Lang")
	}
}

func (cmd *ToSrvModChanJoin) serialize(w *writer) {
	w.str("Channel", cmd.Channel)
}

func (cmd *ToSrvModChanJoin) deserialize(r *reader) {
	cmd.Channel = r.str("Channel")
}

func (cmd *ToSrvModChanLeave) serialize(w *writer) {
	w.str("Channel", cmd.Channel)
}

func (cmd *ToSrvModChanLeave) deserialize(r *reader) {
	cmd.Channel = r.str("Channel")
}

func (cmd *ToSrvModChanMsg) serialize(w *writer) {
	w.str("Channel", cmd.Channel)
	w.str("Msg", cmd.Msg)
}

func (cmd *ToSrvModChanMsg) deserialize(r *reader) {
	cmd.Channel = r.str("Channel")
	cmd.Msg = r.str("Msg")
}

func (cmd *ToSrvPlayerPos) serialize(w *writer) {
	cmd.Pos.serialize(w)
}

func (cmd *ToSrvPlayerPos) deserialize(r *reader) {
	cmd.Pos.deserialize(r)
}

func writeBlks(w *writer, blks [][3]int16) {
	w.len8("Blks", len(blks))
	for _, blk := range blks {
		w.v3s16(blk)
	}
}

func readBlks(r *reader) [][3]int16 {
	blks := make([][3]int16, r.len8("Blks", 3*2))
	for i := range blks {
		blks[i] = r.v3s16("Blks")
	}
	return blks
}

func (cmd *ToSrvGotBlks) serialize(w *writer)   { writeBlks(w, cmd.Blks) }
func (cmd *ToSrvGotBlks) deserialize(r *reader) { cmd.Blks = readBlks(r) }

func (cmd *ToSrvDeletedBlks) serialize(w *writer)   { writeBlks(w, cmd.Blks) }
func (cmd *ToSrvDeletedBlks) deserialize(r *reader) { cmd.Blks = readBlks(r) }

func (cmd *ToSrvInvAction) serialize(w *writer) {
	w.raw([]byte(cmd.Action))
}

func (cmd *ToSrvInvAction) deserialize(r *reader) {
	cmd.Action = string(r.rest())
}

func (cmd *ToSrvChatMsg) serialize(w *writer) {
	w.wstr("Msg", cmd.Msg)
}

func (cmd *ToSrvChatMsg) deserialize(r *reader) {
	cmd.Msg = r.wstr("Msg")
}

func (cmd *ToSrvFallDmg) serialize(w *writer) {
	w.u16(cmd.Amount)
}

func (cmd *ToSrvFallDmg) deserialize(r *reader) {
	cmd.Amount = r.u16("Amount")
}

func (cmd *ToSrvSelectItem) serialize(w *writer) {
	w.u16(cmd.Slot)
}

func (cmd *ToSrvSelectItem) deserialize(r *reader) {
	cmd.Slot = r.u16("Slot")
}

func (cmd *ToSrvRespawn) serialize(w *writer)   {}
func (cmd *ToSrvRespawn) deserialize(r *reader) {}

func (cmd *ToSrvInteract) serialize(w *writer) {
	if cmd.Action >= maxInteraction {
		w.fail("Action", fmt.Errorf("%w: %d", ErrInvalid, cmd.Action))
	}
	w.u8(uint8(cmd.Action))
	w.u16(cmd.ItemSlot)
	w.lenhdr32("Pointed", func(w *writer) {
		writePointedThing(w, cmd.Pointed)
	})
	cmd.Pos.serialize(w)
}

func (cmd *ToSrvInteract) deserialize(r *reader) {
	cmd.Action = Interaction(r.u8("Action"))
	if cmd.Action >= maxInteraction {
		r.failAt(r.off-1, "Action", fmt.Errorf("%w: %d", ErrInvalid, cmd.Action))
	}
	cmd.ItemSlot = r.u16("ItemSlot")
	r.lenhdr32("Pointed", func(r *reader) {
		cmd.Pointed = readPointedThing(r)
	})
	cmd.Pos.deserialize(r)
}

func (cmd *ToSrvRemovedSounds) serialize(w *writer) {
	w.len16("IDs", len(cmd.IDs))
	for _, id := range cmd.IDs {
		w.i32(int32(id))
	}
}

func (cmd *ToSrvRemovedSounds) deserialize(r *reader) {
	cmd.IDs = make([]SoundID, r.len16("IDs", 4))
	for i := range cmd.IDs {
		cmd.IDs[i] = SoundID(r.i32("IDs"))
	}
}

func writeFields(w *writer, fields []Field) {
	w.len16("Fields", len(fields))
	for _, f := range fields {
		w.str("Fields.Name", f.Name)
		w.str32("Fields.Value", f.Value)
	}
}

func readFields(r *reader) []Field {
	fields := make([]Field, r.len16("Fields", 2+4))
	for i := range fields {
		fields[i].Name = r.str("Fields.Name")
		fields[i].Value = r.str32("Fields.Value")
	}
	return fields
}

func (cmd *ToSrvNodeMetaFields) serialize(w *writer) {
	w.v3s16(cmd.Pos)
	w.str("Formname", cmd.Formname)
	writeFields(w, cmd.Fields)
}

func (cmd *ToSrvNodeMetaFields) deserialize(r *reader) {
	cmd.Pos = r.v3s16("Pos")
	cmd.Formname = r.str("Formname")
	cmd.Fields = readFields(r)
}

func (cmd *ToSrvInvFields) serialize(w *writer) {
	w.str("Formname", cmd.Formname)
	writeFields(w, cmd.Fields)
}

func (cmd *ToSrvInvFields) deserialize(r *reader) {
	cmd.Formname = r.str("Formname")
	cmd.Fields = readFields(r)
}

func writeStrs(w *writer, field string, strs []string) {
	w.len16(field, len(strs))
	for _, s := range strs {
		w.str(field, s)
	}
}

func readStrs(r *reader, field string) []string {
	strs := make([]string, r.len16(field, 2))
	for i := range strs {
		strs[i] = r.str(field)
	}
	return strs
}

func (cmd *ToSrvReqMedia) serialize(w *writer) {
	writeStrs(w, "Filenames", cmd.Filenames)
}

func (cmd *ToSrvReqMedia) deserialize(r *reader) {
	cmd.Filenames = readStrs(r, "Filenames")
}

func (cmd *ToSrvHaveMedia) serialize(w *writer) {
	w.len8("Tokens", len(cmd.Tokens))
	for _, t := range cmd.Tokens {
		w.u32(t)
	}
}

func (cmd *ToSrvHaveMedia) deserialize(r *reader) {
	cmd.Tokens = make([]uint32, r.len8("Tokens", 4))
	for i := range cmd.Tokens {
		cmd.Tokens[i] = r.u32("Tokens")
	}
}

func (cmd *ToSrvCltReady) serialize(w *writer) {
	w.u8(cmd.Major)
	w.u8(cmd.Minor)
	w.u8(cmd.Patch)
	w.u8(cmd.Reserved)
	w.str("Version", cmd.Version)
	w.u16(cmd.Formspec)
}

func (cmd *ToSrvCltReady) deserialize(r *reader) {
	cmd.Major = r.u8("Major")
	cmd.Minor = r.u8("Minor")
	cmd.Patch = r.u8("Patch")
	cmd.Reserved = r.u8("Reserved")
	cmd.Version = r.str("Version")
	if r.more() {
		cmd.Formspec = r.u16("Formspec")
	}
}

func (cmd *ToSrvFirstSRP) serialize(w *writer) {
	w.bytes16("Salt", cmd.Salt)
	w.bytes16("Verifier", cmd.Verifier)
	w.bool(cmd.EmptyPasswd)
}

func (cmd *ToSrvFirstSRP) deserialize(r *reader) {
	cmd.Salt = r.bytes16("Salt")
	cmd.Verifier = r.bytes16("Verifier")
	cmd.EmptyPasswd = r.bool("EmptyPasswd")
}

func (cmd *ToSrvSRPBytesA) serialize(w *writer) {
	w.bytes16("A", cmd.A)
	w.bool(cmd.NoSHA1)
}

func (cmd *ToSrvSRPBytesA) deserialize(r *reader) {
	cmd.A = r.bytes16("A")
	cmd.NoSHA1 = r.bool("NoSHA1")
}

func (cmd *ToSrvSRPBytesM) serialize(w *writer) {
	w.bytes16("M", cmd.M)
}

func (cmd *ToSrvSRPBytesM) deserialize(r *reader) {
	cmd.M = r.bytes16("M")
}

func (cmd *ToSrvUpdateClientInfo) serialize(w *writer) {
	w.v2u32(cmd.RenderTargetSize)
	w.f32(cmd.RealGUIScaling)
	w.f32(cmd.RealHUDScaling)
	w.v2f32(cmd.MaxFormspecSize)
	w.bool(cmd.TouchControls)
}

func (cmd *ToSrvUpdateClientInfo) deserialize(r *reader) {
	cmd.RenderTargetSize = r.v2u32("RenderTargetSize")
	cmd.RealGUIScaling = r.f32("RealGUIScaling")
	cmd.RealHUDScaling = r.f32("RealHUDScaling")
	cmd.MaxFormspecSize = r.v2f32("MaxFormspecSize")
	if r.more() {
		cmd.TouchControls = r.bool("TouchControls")
	}
}
