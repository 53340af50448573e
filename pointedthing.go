package mt

import "fmt"

type PointedThing interface {
	pt()
}

func (*PointedNode) pt() {}
func (*PointedAO) pt()   {}

type PointedNode struct {
	Under, Above [3]int16
}

func PointedSameNode(pos [3]int16) PointedThing {
	return &PointedNode{pos, pos}
}

type PointedAO struct {
	ID AOID
}

const (
	pointedNothing uint8 = iota
	pointedNode
	pointedAO
)

func writePointedThing(w *writer, pt PointedThing) {
	w.u8(0) // Version.
	switch pt := pt.(type) {
	case nil:
		w.u8(pointedNothing)
	case *PointedNode:
		w.u8(pointedNode)
		w.v3s16(pt.Under)
		w.v3s16(pt.Above)
	case *PointedAO:
		w.u8(pointedAO)
		w.u16(uint16(pt.ID))
	default:
		w.fail("Pointed", fmt.Errorf("%w: %T", ErrInvalid, pt))
	}
}

func readPointedThing(r *reader) PointedThing {
	if v := r.u8("Pointed.Version"); v != 0 {
		r.failAt(r.off-1, "Pointed.Version", fmt.Errorf("%w: unsupported PointedThing version: %d", ErrInvalid, v))
	}

	switch t := r.u8("Pointed.Type"); t {
	case pointedNothing:
		return nil
	case pointedNode:
		return &PointedNode{
			Under: r.v3s16("Pointed.Under"),
			Above: r.v3s16("Pointed.Above"),
		}
	case pointedAO:
		return &PointedAO{ID: AOID(r.u16("Pointed.ID"))}
	default:
		r.failAt(r.off-1, "Pointed.Type", fmt.Errorf("%w: PointedThing type: %d", ErrInvalid, t))
	}
	panic("unreachable")
}
