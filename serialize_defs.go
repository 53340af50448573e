package mt

import "fmt"

func (r *reader) version(field string, want uint8) {
	if v := r.u8(field); v != want {
		r.failAt(r.off-1, field, fmt.Errorf("%w: version %d", ErrInvalid, v))
	}
}

func writeGroups(w *writer, field string, groups []Group) {
	w.len16(field, len(groups))
	for _, g := range groups {
		w.str(field, g.Name)
		w.i16(g.Rating)
	}
}

func readGroups(r *reader, field string) []Group {
	groups := make([]Group, r.len16(field, 2+2))
	for i := range groups {
		groups[i].Name = r.str(field)
		groups[i].Rating = r.i16(field)
	}
	return groups
}

func (s *SoundDef) serialize(w *writer) {
	w.str("Name", s.Name)
	w.f32(s.Gain)
	w.f32(s.Pitch)
	w.f32(s.Fade)
}

func (s *SoundDef) deserialize(r *reader, field string) {
	s.Name = r.str(field + ".Name")
	s.Gain = r.f32(field + ".Gain")
	s.Pitch = r.f32(field + ".Pitch")
	s.Fade = r.f32(field + ".Fade")
}

func (a *TileAnim) serialize(w *writer, field string) {
	if a.Type >= maxAnim {
		w.fail(field, fmt.Errorf("%w: anim type %d", ErrInvalid, a.Type))
	}
	w.u8(uint8(a.Type))
	switch a.Type {
	case VerticalFrameAnim:
		w.u16(a.NFrames[0])
		w.u16(a.NFrames[1])
	case SpritesheetAnim:
		w.u8(a.AspectRatio[0])
		w.u8(a.AspectRatio[1])
	}
	if a.Type != NoAnim {
		w.f32(a.Duration)
	}
}

func (a *TileAnim) deserialize(r *reader, field string) {
	a.Type = AnimType(r.u8(field))
	if a.Type >= maxAnim {
		r.failAt(r.off-1, field, fmt.Errorf("%w: anim type %d", ErrInvalid, a.Type))
	}
	switch a.Type {
	case VerticalFrameAnim:
		a.NFrames[0] = r.u16(field)
		a.NFrames[1] = r.u16(field)
	case SpritesheetAnim:
		a.AspectRatio[0] = r.u8(field)
		a.AspectRatio[1] = r.u8(field)
	}
	if a.Type != NoAnim {
		a.Duration = r.f32(field)
	}
}

func (t *TileDef) serialize(w *writer, field string) {
	w.u8(tileDefVer)
	w.str(field, string(t.Texture))
	t.Anim.serialize(w, field)
	w.u16(uint16(t.Flags))
	if t.Flags&TileColor != 0 {
		w.u8(t.R)
		w.u8(t.G)
		w.u8(t.B)
	}
	if t.Flags&TileScale != 0 {
		w.u8(t.Scale)
	}
	if t.Flags&TileAlign != 0 {
		w.u8(uint8(t.Align))
	}
}

func (t *TileDef) deserialize(r *reader, field string) {
	r.version(field, tileDefVer)
	t.Texture = Texture(r.str(field))
	t.Anim.deserialize(r, field)
	t.Flags = TileFlags(r.u16(field))
	if t.Flags&TileColor != 0 {
		t.R = r.u8(field)
		t.G = r.u8(field)
		t.B = r.u8(field)
	}
	if t.Flags&TileScale != 0 {
		t.Scale = r.u8(field)
	}
	if t.Flags&TileAlign != 0 {
		t.Align = AlignType(r.u8(field))
	}
}

func writeTiles(w *writer, field string, tiles *[6]TileDef) {
	for i := range tiles {
		tiles[i].serialize(w, field)
	}
}

func readTiles(r *reader, field string, tiles *[6]TileDef) {
	for i := range tiles {
		tiles[i].deserialize(r, field)
	}
}

func (w *writer) box(b Box) {
	w.v3f32(b[0])
	w.v3f32(b[1])
}

func (r *reader) box(field string) Box {
	return Box{r.v3f32(field), r.v3f32(field)}
}

func writeBoxes(w *writer, field string, boxes []Box) {
	w.len16(field, len(boxes))
	for _, b := range boxes {
		w.box(b)
	}
}

func readBoxes(r *reader, field string) []Box {
	boxes := make([]Box, r.len16(field, 2*3*4))
	for i := range boxes {
		boxes[i] = r.box(field)
	}
	return boxes
}

func (nb *NodeBox) serialize(w *writer, field string) {
	if nb.Type >= maxBox {
		w.fail(field, fmt.Errorf("%w: box type %d", ErrInvalid, nb.Type))
	}
	w.u8(nodeBoxVer)
	w.u8(uint8(nb.Type))
	switch nb.Type {
	case MountedBox:
		w.box(nb.WallTop)
		w.box(nb.WallBot)
		w.box(nb.WallSides)
	case FixedBox, LeveledBox:
		writeBoxes(w, field, nb.Fixed)
	case ConnectedBox:
		writeBoxes(w, field, nb.Fixed)
		for _, l := range nb.ConnDirs.lists() {
			writeBoxes(w, field, *l)
		}
		for _, l := range nb.DiscoDirs.lists() {
			writeBoxes(w, field, *l)
		}
		writeBoxes(w, field, nb.DiscoAll)
		writeBoxes(w, field, nb.DiscoSides)
	}
}

func (nb *NodeBox) deserialize(r *reader, field string) {
	r.version(field, nodeBoxVer)
	nb.Type = NodeBoxType(r.u8(field))
	switch nb.Type {
	case CubeBox:
	case MountedBox:
		nb.WallTop = r.box(field)
		nb.WallBot = r.box(field)
		nb.WallSides = r.box(field)
	case FixedBox, LeveledBox:
		nb.Fixed = readBoxes(r, field)
	case ConnectedBox:
		nb.Fixed = readBoxes(r, field)
		for _, l := range nb.ConnDirs.lists() {
			*l = readBoxes(r, field)
		}
		for _, l := range nb.DiscoDirs.lists() {
			*l = readBoxes(r, field)
		}
		nb.DiscoAll = readBoxes(r, field)
		nb.DiscoSides = readBoxes(r, field)
	default:
		r.failAt(r.off-1, field, fmt.Errorf("%w: box type %d", ErrInvalid, nb.Type))
	}
}

func (d *NodeDef) serialize(w *writer) {
	w.u16(uint16(d.Param0))
	w.lenhdr16("Defs", func(w *writer) {
		w.u8(nodeDefVer)
		w.str("Name", d.Name)
		writeGroups(w, "Groups", d.Groups)
		w.u8(uint8(d.P1Type))
		w.u8(uint8(d.P2Type))
		w.u8(uint8(d.DrawType))
		w.str("Mesh", d.Mesh)
		w.f32(d.Scale)

		w.u8(6)
		writeTiles(w, "Tiles", &d.Tiles)
		writeTiles(w, "OverlayTiles", &d.OverlayTiles)
		w.u8(6)
		writeTiles(w, "SpecialTiles", &d.SpecialTiles)

		w.color(d.Color)
		w.str("Palette", string(d.Palette))
		w.u8(uint8(d.Waving))
		w.u8(d.ConnectSides)
		w.len16("ConnectTo", len(d.ConnectTo))
		for _, c := range d.ConnectTo {
			w.u16(uint16(c))
		}
		w.color(d.InsideTint)
		w.u8(d.Level)

		w.bool(d.Translucent)
		w.bool(d.Transparent)
		w.u8(d.LightSrc)

		w.bool(d.GndContent)
		w.bool(d.Collides)
		w.bool(d.Pointable)
		w.bool(d.Diggable)
		w.bool(d.Climbable)
		w.bool(d.Replaceable)
		w.bool(d.OnRightClick)

		w.i32(d.DmgPerSec)

		w.u8(uint8(d.LiquidType))
		w.str("FlowingAlt", d.FlowingAlt)
		w.str("SrcAlt", d.SrcAlt)
		w.u8(d.Viscosity)
		w.bool(d.LiqRenewable)
		w.u8(d.FlowRange)
		w.u8(d.DrownDmg)
		w.bool(d.Floodable)

		d.DrawBox.serialize(w, "DrawBox")
		d.SelBox.serialize(w, "SelBox")
		d.ColBox.serialize(w, "ColBox")

		d.FootstepSnd.serialize(w)
		d.DiggingSnd.serialize(w)
		d.DugSnd.serialize(w)

		w.bool(d.LegacyFaceDir)
		w.bool(d.LegacyMounted)

		w.str("DigPredict", d.DigPredict)
		w.u8(d.MaxLvl)
		w.u8(uint8(d.AlphaUse))

		w.u8(d.MoveResistance)
		w.bool(d.LiquidMovePhysics)
	})
}

func (d *NodeDef) deserialize(r *reader) {
	d.Param0 = Content(r.u16("Param0"))
	r.lenhdr16("Defs", func(r *reader) {
		r.version("Version", nodeDefVer)
		d.Name = r.str("Name")
		d.Groups = readGroups(r, "Groups")
		d.P1Type = Param1Type(r.u8("P1Type"))
		d.P2Type = Param2Type(r.u8("P2Type"))
		d.DrawType = DrawType(r.u8("DrawType"))
		d.Mesh = r.str("Mesh")
		d.Scale = r.f32("Scale")

		r.tileCount("Tiles")
		readTiles(r, "Tiles", &d.Tiles)
		readTiles(r, "OverlayTiles", &d.OverlayTiles)
		r.tileCount("SpecialTiles")
		readTiles(r, "SpecialTiles", &d.SpecialTiles)

		d.Color = r.color("Color")
		d.Palette = Texture(r.str("Palette"))
		d.Waving = WaveType(r.u8("Waving"))
		d.ConnectSides = r.u8("ConnectSides")
		d.ConnectTo = make([]Content, r.len16("ConnectTo", 2))
		for i := range d.ConnectTo {
			d.ConnectTo[i] = Content(r.u16("ConnectTo"))
		}
		d.InsideTint = r.color("InsideTint")
		d.Level = r.u8("Level")

		d.Translucent = r.bool("Translucent")
		d.Transparent = r.bool("Transparent")
		d.LightSrc = r.u8("LightSrc")

		d.GndContent = r.bool("GndContent")
		d.Collides = r.bool("Collides")
		d.Pointable = r.bool("Pointable")
		d.Diggable = r.bool("Diggable")
		d.Climbable = r.bool("Climbable")
		d.Replaceable = r.bool("Replaceable")
		d.OnRightClick = r.bool("OnRightClick")

		d.DmgPerSec = r.i32("DmgPerSec")

		d.LiquidType = LiquidType(r.u8("LiquidType"))
		d.FlowingAlt = r.str("FlowingAlt")
		d.SrcAlt = r.str("SrcAlt")
		d.Viscosity = r.u8("Viscosity")
		d.LiqRenewable = r.bool("LiqRenewable")
		d.FlowRange = r.u8("FlowRange")
		d.DrownDmg = r.u8("DrownDmg")
		d.Floodable = r.bool("Floodable")

		d.DrawBox.deserialize(r, "DrawBox")
		d.SelBox.deserialize(r, "SelBox")
		d.ColBox.deserialize(r, "ColBox")

		d.FootstepSnd.deserialize(r, "FootstepSnd")
		d.DiggingSnd.deserialize(r, "DiggingSnd")
		d.DugSnd.deserialize(r, "DugSnd")

		d.LegacyFaceDir = r.bool("LegacyFaceDir")
		d.LegacyMounted = r.bool("LegacyMounted")

		d.DigPredict = r.str("DigPredict")
		d.MaxLvl = r.u8("MaxLvl")
		d.AlphaUse = AlphaUse(r.u8("AlphaUse"))

		if r.more() {
			d.MoveResistance = r.u8("MoveResistance")
		}
		if r.more() {
			d.LiquidMovePhysics = r.bool("LiquidMovePhysics")
		}
	})
}

func (r *reader) tileCount(field string) {
	if n := r.u8(field); n != 6 {
		r.failAt(r.off-1, field, fmt.Errorf("%w: %d tiles", ErrInvalid, n))
	}
}

func (tc *ToolCaps) serialize(w *writer) {
	w.lenhdr16("ToolCaps", func(w *writer) {
		if !tc.NonNil {
			return
		}

		w.u8(toolCapsVer)
		w.f32(tc.AttackCooldown)
		w.i16(tc.MaxDropLvl)

		w.len32("ToolCaps.GroupCaps", len(tc.GroupCaps))
		for _, gc := range tc.GroupCaps {
			w.str("ToolCaps.GroupCaps", gc.Name)
			w.i16(gc.Uses)
			w.i16(gc.MaxLvl)
			w.len32("ToolCaps.GroupCaps.Times", len(gc.Times))
			for _, dt := range gc.Times {
				w.i16(dt.Rating)
				w.f32(dt.Time)
			}
		}

		w.len32("ToolCaps.DmgGroups", len(tc.DmgGroups))
		for _, g := range tc.DmgGroups {
			w.str("ToolCaps.DmgGroups", g.Name)
			w.i16(g.Rating)
		}

		w.u16(tc.PunchUses)
	})
}

func (tc *ToolCaps) deserialize(r *reader) {
	r.lenhdr16("ToolCaps", func(r *reader) {
		if tc.NonNil = r.more(); !tc.NonNil {
			return
		}

		r.version("ToolCaps.Version", toolCapsVer)
		tc.AttackCooldown = r.f32("ToolCaps.AttackCooldown")
		tc.MaxDropLvl = r.i16("ToolCaps.MaxDropLvl")

		tc.GroupCaps = make([]ToolGroupCap, r.len32("ToolCaps.GroupCaps", 2+2+2+4))
		for i := range tc.GroupCaps {
			gc := &tc.GroupCaps[i]
			gc.Name = r.str("ToolCaps.GroupCaps")
			gc.Uses = r.i16("ToolCaps.GroupCaps.Uses")
			gc.MaxLvl = r.i16("ToolCaps.GroupCaps.MaxLvl")
			gc.Times = make([]DigTime, r.len32("ToolCaps.GroupCaps.Times", 2+4))
			for j := range gc.Times {
				gc.Times[j].Rating = r.i16("ToolCaps.GroupCaps.Times")
				gc.Times[j].Time = r.f32("ToolCaps.GroupCaps.Times")
			}
		}

		tc.DmgGroups = make([]Group, r.len32("ToolCaps.DmgGroups", 2+2))
		for i := range tc.DmgGroups {
			tc.DmgGroups[i].Name = r.str("ToolCaps.DmgGroups")
			tc.DmgGroups[i].Rating = r.i16("ToolCaps.DmgGroups")
		}

		if r.more() {
			tc.PunchUses = r.u16("ToolCaps.PunchUses")
		}
	})
}

func (d *ItemDef) serialize(w *writer) {
	w.lenhdr16("Defs", func(w *writer) {
		w.u8(itemDefVer)
		w.u8(uint8(d.Type))
		w.str("Name", d.Name)
		w.str("Desc", d.Desc)
		w.str("InvImg", string(d.InvImg))
		w.str("WieldImg", string(d.WieldImg))
		w.v3f32(d.WieldScale)
		w.u16(d.StackMax)
		w.bool(d.Usable)
		w.bool(d.CanPointLiquids)
		d.ToolCaps.serialize(w)
		writeGroups(w, "Groups", d.Groups)
		w.str("PlacePredict", d.PlacePredict)
		d.PlaceSnd.serialize(w)
		d.PlaceFailSnd.serialize(w)
		w.f32(d.PointRange)
		w.str("Palette", string(d.Palette))
		w.color(d.Color)
		w.str("InvOverlay", string(d.InvOverlay))
		w.str("WieldOverlay", string(d.WieldOverlay))
		w.str("ShortDesc", d.ShortDesc)
		w.u8(d.PlaceParam2)
	})
}

func (d *ItemDef) deserialize(r *reader) {
	r.lenhdr16("Defs", func(r *reader) {
		r.version("Version", itemDefVer)
		d.Type = ItemType(r.u8("Type"))
		d.Name = r.str("Name")
		d.Desc = r.str("Desc")
		d.InvImg = Texture(r.str("InvImg"))
		d.WieldImg = Texture(r.str("WieldImg"))
		d.WieldScale = r.v3f32("WieldScale")
		d.StackMax = r.u16("StackMax")
		d.Usable = r.bool("Usable")
		d.CanPointLiquids = r.bool("CanPointLiquids")
		d.ToolCaps.deserialize(r)
		d.Groups = readGroups(r, "Groups")
		d.PlacePredict = r.str("PlacePredict")
		d.PlaceSnd.deserialize(r, "PlaceSnd")
		d.PlaceFailSnd.deserialize(r, "PlaceFailSnd")
		d.PointRange = r.f32("PointRange")
		d.Palette = Texture(r.str("Palette"))
		d.Color = r.color("Color")
		d.InvOverlay = Texture(r.str("InvOverlay"))
		d.WieldOverlay = Texture(r.str("WieldOverlay"))
		if r.more() {
			d.ShortDesc = r.str("ShortDesc")
		}
		if r.more() {
			d.PlaceParam2 = r.u8("PlaceParam2")
		}
	})
}
