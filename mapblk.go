package mt

// MapBlkSize is the edge length of a MapBlk in nodes.
const MapBlkSize = 16

// MapBlkNodes is the number of nodes in a MapBlk.
const MapBlkNodes = MapBlkSize * MapBlkSize * MapBlkSize

type MapBlkFlags uint8

const (
	BlkIsUnderground MapBlkFlags = 1 << iota
	BlkDayNightDiff
	BlkLightExpired
	BlkNotGenerated
	maxBlkFlags
)

// LitFromBlks is a bitmask of the neighbors a MapBlk's light is correct for,
// per light bank.
type LitFromBlks uint16

const AlwaysLitFrom LitFromBlks = 0xf000

// LitFrom returns the bit for light coming from direction d in bank b.
func LitFrom(d Dir, b LightBank) LitFromBlks {
	return 1 << (uint8(d) + 6*uint8(b))
}

// A MapBlk is a 16x16x16 cube of nodes.
// Nodes are indexed as described by Pos2Blkpos.
type MapBlk struct {
	Flags   MapBlkFlags
	LitFrom LitFromBlks

	// Sent zlib-compressed.
	Param0 [MapBlkNodes]Content
	Param1 [MapBlkNodes]uint8
	Param2 [MapBlkNodes]uint8

	// Sent zlib-compressed, indexed by node index.
	NodeMetas map[uint16]*NodeMeta
}

// Node returns the node at index i.
func (b *MapBlk) Node(i uint16) Node {
	return Node{Param0: b.Param0[i], Param1: b.Param1[i], Param2: b.Param2[i]}
}

// SetNode sets the node at index i.
func (b *MapBlk) SetNode(i uint16, n Node) {
	b.Param0[i], b.Param1[i], b.Param2[i] = n.Param0, n.Param1, n.Param2
}

// Pos2Blkpos converts a node position to a MapBlk position and node index.
func Pos2Blkpos(pos [3]int16) (blkpos [3]int16, i uint16) {
	for j := range pos {
		blkpos[j] = pos[j] >> 4
		i |= uint16(pos[j]&0xf) << (4 * j)
	}
	return
}

// Blkpos2Pos converts a MapBlk position and node index to a node position.
func Blkpos2Pos(blkpos [3]int16, i uint16) (pos [3]int16) {
	for j := range pos {
		pos[j] = blkpos[j]<<4 | int16(i>>(4*j)&0xf)
	}
	return
}
