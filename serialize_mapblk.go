package mt

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

const (
	contentWidth = 2
	paramsWidth  = 2

	nodeMetasVer = 2
	blkNetVer    = 2
)

func (b *MapBlk) serialize(w *writer) {
	if b.Flags >= maxBlkFlags {
		w.fail("Blk.Flags", fmt.Errorf("%w: %#x", ErrInvalid, b.Flags))
	}
	w.u8(uint8(b.Flags))
	w.u16(uint16(b.LitFrom))
	w.u8(contentWidth)
	w.u8(paramsWidth)

	w.zlib("Blk.Params", func(w *writer) {
		for _, c := range b.Param0 {
			w.u16(uint16(c))
		}
		w.raw(b.Param1[:])
		w.raw(b.Param2[:])
	})

	w.zlib("Blk.NodeMetas", func(w *writer) {
		if len(b.NodeMetas) == 0 {
			w.u8(0)
			return
		}

		w.u8(nodeMetasVer)
		w.len16("Blk.NodeMetas", len(b.NodeMetas))
		for _, i := range slices.Sorted(maps.Keys(b.NodeMetas)) {
			if i >= MapBlkNodes {
				w.fail("Blk.NodeMetas", fmt.Errorf("%w: node index %d", ErrInvalid, i))
			}
			w.u16(i)
			b.NodeMetas[i].serialize(w)
		}
	})
}

func (b *MapBlk) deserialize(r *reader) {
	b.Flags = MapBlkFlags(r.u8("Blk.Flags"))
	if b.Flags >= maxBlkFlags {
		r.failAt(r.off-1, "Blk.Flags", fmt.Errorf("%w: %#x", ErrInvalid, b.Flags))
	}
	b.LitFrom = LitFromBlks(r.u16("Blk.LitFrom"))
	if cw, pw := r.u8("Blk.ContentWidth"), r.u8("Blk.ParamsWidth"); cw != contentWidth || pw != paramsWidth {
		r.failAt(r.off-2, "Blk.ContentWidth", fmt.Errorf("%w: widths %d, %d", ErrInvalid, cw, pw))
	}

	const paramsLen = (contentWidth + paramsWidth) * MapBlkNodes
	r.zlib("Blk.Params", paramsLen, func(r *reader) {
		if n := r.remaining(); n != paramsLen {
			r.fail("Blk.Params", fmt.Errorf("%w: %d bytes", io.ErrUnexpectedEOF, n))
		}
		for i := range b.Param0 {
			b.Param0[i] = Content(r.u16("Blk.Param0"))
		}
		copy(b.Param1[:], r.eat("Blk.Param1", MapBlkNodes))
		copy(b.Param2[:], r.eat("Blk.Param2", MapBlkNodes))
	})

	r.zlib("Blk.NodeMetas", maxInflatedLen, func(r *reader) {
		b.NodeMetas = nil
		if !readNodeMetasVer(r) {
			return
		}

		n := r.len16("Blk.NodeMetas", 2+nodeMetaMinSize)
		b.NodeMetas = make(map[uint16]*NodeMeta, n)
		for range n {
			i := r.u16("Blk.NodeMetas")
			if i >= MapBlkNodes {
				r.failAt(r.off-2, "Blk.NodeMetas", fmt.Errorf("%w: node index %d", ErrInvalid, i))
			}
			nm := new(NodeMeta)
			nm.deserialize(r)
			b.NodeMetas[i] = nm
		}
	})
}

// readNodeMetasVer reads the version of a node meta list
// and reports whether the list is non-empty.
func readNodeMetasVer(r *reader) bool {
	switch v := r.u8("NodeMetas.Version"); v {
	case 0:
		return false
	case nodeMetasVer:
		return true
	default:
		r.failAt(r.off-1, "NodeMetas.Version", fmt.Errorf("%w: version %d", ErrInvalid, v))
		return false
	}
}

const nodeMetaMinSize = 4 + len(invEnd)

func (nm *NodeMeta) serialize(w *writer) {
	if nm == nil {
		nm = new(NodeMeta)
	}

	w.len32("NodeMetas.Fields", len(nm.Fields))
	for _, f := range nm.Fields {
		w.str("NodeMetas.Fields", f.Name)
		w.str32("NodeMetas.Fields", f.Value)
		w.bool(f.Private)
	}

	if nm.Inv != "" && !strings.HasSuffix(nm.Inv, "\n") {
		w.fail("NodeMetas.Inv", fmt.Errorf("%w: missing final newline", ErrInvalid))
	}
	if invEndIdx([]byte(nm.Inv)) >= 0 {
		w.fail("NodeMetas.Inv", fmt.Errorf("%w: contains %q line", ErrInvalid, strings.TrimSpace(invEnd)))
	}
	w.raw([]byte(nm.Inv))
	w.raw([]byte(invEnd))
}

func (nm *NodeMeta) deserialize(r *reader) {
	nm.Fields = make([]NodeMetaField, r.len32("NodeMetas.Fields", 2+4+1))
	for i := range nm.Fields {
		f := &nm.Fields[i]
		f.Name = r.str("NodeMetas.Fields")
		f.Value = r.str32("NodeMetas.Fields")
		f.Private = r.bool("NodeMetas.Fields")
	}

	i := invEndIdx(r.data[r.off:])
	if i < 0 {
		r.fail("NodeMetas.Inv", fmt.Errorf("%w: missing %q line", io.ErrUnexpectedEOF, strings.TrimSpace(invEnd)))
	}
	nm.Inv = string(r.eat("NodeMetas.Inv", i))
	r.eat("NodeMetas.Inv", len(invEnd))
}

// invEndIdx returns the index of the line ending an inventory in b, or -1.
func invEndIdx(b []byte) int {
	for off := 0; ; {
		i := bytes.Index(b[off:], []byte(invEnd))
		if i < 0 {
			return -1
		}
		i += off
		if i == 0 || b[i-1] == '\n' {
			return i
		}
		off = i + 1
	}
}

func comparePos(a, b [3]int16) int {
	return slices.Compare(a[:], b[:])
}

func (cmd *ToCltNodeMetasChanged) serialize(w *writer) {
	w.lenhdr32("Changed", func(w *writer) {
		w.zlib("Changed", func(w *writer) {
			if len(cmd.Changed) == 0 {
				w.u8(0)
				return
			}

			w.u8(nodeMetasVer)
			w.len16("Changed", len(cmd.Changed))
			for _, pos := range slices.SortedFunc(maps.Keys(cmd.Changed), comparePos) {
				w.v3s16(pos)
				cmd.Changed[pos].serialize(w)
			}
		})
	})
}

func (cmd *ToCltNodeMetasChanged) deserialize(r *reader) {
	r.lenhdr32("Changed", func(r *reader) {
		r.zlib("Changed", maxInflatedLen, func(r *reader) {
			cmd.Changed = nil
			if !readNodeMetasVer(r) {
				return
			}

			n := r.len16("Changed", 6+nodeMetaMinSize)
			cmd.Changed = make(map[[3]int16]*NodeMeta, n)
			for range n {
				pos := r.v3s16("Changed.Pos")
				nm := new(NodeMeta)
				nm.deserialize(r)
				cmd.Changed[pos] = nm
			}
		})
	})
}

func (cmd *ToCltBlkData) serialize(w *writer) {
	w.v3s16(cmd.Blkpos)
	cmd.Blk.serialize(w)
	w.u8(blkNetVer)
}

func (cmd *ToCltBlkData) deserialize(r *reader) {
	cmd.Blkpos = r.v3s16("Blkpos")
	cmd.Blk.deserialize(r)
	r.version("NetVersion", blkNetVer)
}
