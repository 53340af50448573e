package mt

const (
	MaxLight = 14 // Maximum artificial light.
	SunLight = 15
)

type LightBank uint8

const (
	Day LightBank = iota
	Night
)

// A Dir is a direction along an axis.
type Dir uint8

const (
	East  Dir = iota // +X
	Above            // +Y
	North            // +Z
	South            // -Z
	Below            // -Y
	West             // -X
	NoDir
)

// Opposite returns the opposite of d.
// NoDir is its own opposite.
func (d Dir) Opposite() Dir {
	if d >= NoDir {
		return NoDir
	}
	return West - d
}
