package mt

type Box [2]Vec

type NodeBoxType uint8

const (
	CubeBox      NodeBoxType = iota // Cube
	FixedBox                        // Fixed
	MountedBox                      // Mounted
	LeveledBox                      // Leveled
	ConnectedBox                    // Connected
	maxBox
)

type DirBoxes struct {
	Top, Bot                 []Box
	Front, Left, Back, Right []Box
}

func (d *DirBoxes) lists() [6]*[]Box {
	return [6]*[]Box{&d.Top, &d.Bot, &d.Front, &d.Left, &d.Back, &d.Right}
}

const nodeBoxVer = 6

// A NodeBox is the shape of a node.
// Only the fields used by Type are sent.
type NodeBox struct {
	Type NodeBoxType

	// MountedBox.
	WallTop, WallBot, WallSides Box

	// FixedBox, LeveledBox and ConnectedBox.
	Fixed []Box

	// ConnectedBox.
	ConnDirs, DiscoDirs  DirBoxes
	DiscoAll, DiscoSides []Box
}
