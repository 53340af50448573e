package mt

type SoundID int32

type SoundSrcType uint8

const (
	NoSrc SoundSrcType = iota // nowhere
	PosSrc                    // pos
	AOSrc                     // ao
)

// A SoundDef describes a sound played on an event such as digging a node.
type SoundDef struct {
	Name              string
	Gain, Pitch, Fade float32
}
