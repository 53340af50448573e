package mt

type AlignType uint8

const (
	NoAlign AlignType = iota
	WorldAlign
	UserAlign
)

type TileFlags uint16

const (
	TileBackfaceCull TileFlags = 1 << iota
	TileAbleH
	TileAbleV
	TileColor
	TileScale
	TileAlign
)

const tileDefVer = 6

// A TileDef is a texture of one face of a node.
// R, G and B are sent if Flags&TileColor != 0,
// Scale if Flags&TileScale != 0
// and Align if Flags&TileAlign != 0.
type TileDef struct {
	Texture
	Anim  TileAnim
	Flags TileFlags

	R, G, B uint8
	Scale   uint8
	Align   AlignType
}

type AnimType uint8

const (
	NoAnim AnimType = iota
	VerticalFrameAnim
	SpritesheetAnim
	maxAnim
)

// A TileAnim animates a texture.
type TileAnim struct {
	Type AnimType

	// SpritesheetAnim only.
	AspectRatio [2]uint8

	// VerticalFrameAnim only.
	NFrames [2]uint16

	Duration float32 // in seconds, unless Type is NoAnim.
}
