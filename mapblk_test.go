package mt

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlkpos(t *testing.T) {
	blkpos, i := Pos2Blkpos([3]int16{-1, 16, 17})
	assert.Equal(t, [3]int16{-1, 1, 1}, blkpos)
	assert.Equal(t, uint16(15|1<<8), i)
	assert.Equal(t, [3]int16{-1, 16, 17}, Blkpos2Pos(blkpos, i))

	for _, pos := range [][3]int16{{0, 0, 0}, {-32768, 32767, -17}, {15, -16, 255}} {
		assert.Equal(t, pos, Blkpos2Pos(Pos2Blkpos(pos)))
	}
}

func TestDirOpposite(t *testing.T) {
	for d, want := range map[Dir]Dir{
		East:  West,
		Above: Below,
		North: South,
		South: North,
		Below: Above,
		West:  East,
		NoDir: NoDir,
	} {
		assert.Equal(t, want, d.Opposite(), "dir %d", d)
	}

	assert.Equal(t, LitFromBlks(0x100), LitFrom(North, Night))
}

func testBlk() MapBlk {
	blk := MapBlk{
		Flags:   BlkIsUnderground | BlkDayNightDiff,
		LitFrom: AlwaysLitFrom | LitFrom(East, Day),
		NodeMetas: map[uint16]*NodeMeta{
			17: {
				Fields: []NodeMetaField{
					{Field{"formspec", "size[8,9]"}, false},
					{Field{"owner", "singleplayer"}, true},
				},
				Inv: "List main 1\nWidth 0\nEmpty\nEndInventoryList\n",
			},
			4095: {Fields: []NodeMetaField{{Field: Field{"infotext", "sign"}}}},
		},
	}
	blk.SetNode(0, Node{Param0: 1, Param1: 0xf0, Param2: 3})
	blk.SetNode(MapBlkNodes-1, Node{Param0: 0x7fff, Param2: 0xff})
	return blk
}

func TestBlkDataRoundTrip(t *testing.T) {
	cmd := &ToCltBlkData{Blkpos: [3]int16{-1, 2, 3}, Blk: testBlk()}

	data, err := Marshal(cmd)
	require.NoError(t, err)
	assert.Less(t, len(data), 500, "params are compressed")
	assert.Equal(t, byte(blkNetVer), data[len(data)-1])

	got, err := UnmarshalToClt(data)
	require.NoError(t, err)
	if diff := cmp.Diff(cmd, got, equateEmpty); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	blk := got.(*ToCltBlkData).Blk
	assert.Equal(t, Node{Param0: 0x7fff, Param2: 0xff}, blk.Node(MapBlkNodes-1))
	assert.Equal(t, "singleplayer", blk.NodeMetas[17].Field("owner").Value)
	assert.Nil(t, blk.NodeMetas[17].Field("nope"))
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// blkData returns a ToCltBlkData of an empty MapBlk
// with the given compressed params and node metas.
func blkData(params, metas []byte) []byte {
	data := []byte{0x00, 0x20, 0, 0, 0, 0, 0, 0, 0, 0, 0, contentWidth, paramsWidth}
	data = append(data, params...)
	data = append(data, metas...)
	return append(data, blkNetVer)
}

func TestBlkDataInflateBounds(t *testing.T) {
	const paramsOff = 13
	emptyMetas := deflate(t, []byte{0})

	cmd, err := UnmarshalToClt(blkData(deflate(t, make([]byte, 4*MapBlkNodes)), emptyMetas))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(&ToCltBlkData{}, cmd, equateEmpty))

	_, err = UnmarshalToClt(blkData(deflate(t, make([]byte, 4*MapBlkNodes+1)), emptyMetas))
	assert.ErrorIs(t, err, ErrInflatedTooLong)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "ToCltBlkData", de.Cmd)
	assert.Equal(t, "Blk.Params", de.Field)
	assert.Equal(t, paramsOff, de.Off)

	_, err = UnmarshalToClt(blkData(deflate(t, make([]byte, 100)), emptyMetas))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "params too short")

	_, err = UnmarshalToClt(blkData([]byte{1, 2, 3, 4}, emptyMetas))
	require.ErrorAs(t, err, &de, "not zlib")
	assert.Equal(t, "Blk.Params", de.Field)

	// Errors inside inflated data are reported at the compressed data.
	params := deflate(t, make([]byte, 4*MapBlkNodes))
	_, err = UnmarshalToClt(blkData(params, deflate(t, []byte{9})))
	assert.ErrorIs(t, err, ErrInvalid)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NodeMetas.Version", de.Field)
	assert.Equal(t, paramsOff+len(params), de.Off)

	data := blkData(params, emptyMetas)
	data[paramsOff-1] = 1
	_, err = UnmarshalToClt(data)
	assert.ErrorIs(t, err, ErrInvalid, "params width")
}

func TestNodeMetaInv(t *testing.T) {
	for _, inv := range []string{
		"List main 0\nEndInventory\n",
		"EndInventory\n",
		"List main 0",
	} {
		cmd := &ToCltNodeMetasChanged{Changed: map[[3]int16]*NodeMeta{{1, 2, 3}: {Inv: inv}}}
		_, err := Marshal(cmd)
		assert.ErrorIs(t, err, ErrInvalid, "%q", inv)

		var ee *EncodeError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, "NodeMetas.Inv", ee.Field)
	}

	// Only a whole line ends the inventory.
	cmd := &ToCltNodeMetasChanged{Changed: map[[3]int16]*NodeMeta{
		{1, 2, 3}:    {Inv: "List main 1\nItem default:EndInventory\nEndInventoryList\n"},
		{-1, -2, -3}: nil,
	}}
	data, err := Marshal(cmd)
	require.NoError(t, err)

	got, err := UnmarshalToClt(data)
	require.NoError(t, err)
	cmd.Changed[[3]int16{-1, -2, -3}] = &NodeMeta{}
	if diff := cmp.Diff(cmd, got, equateEmpty); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	_, err = Marshal(&ToCltBlkData{Blk: MapBlk{NodeMetas: map[uint16]*NodeMeta{MapBlkNodes: {}}}})
	assert.ErrorIs(t, err, ErrInvalid, "node index")

	_, err = Marshal(&ToCltBlkData{Blk: MapBlk{Flags: maxBlkFlags}})
	assert.ErrorIs(t, err, ErrInvalid, "flags")
}

func TestNodeMetaMissingInvEnd(t *testing.T) {
	meta := []byte{nodeMetasVer, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	meta = append(meta, "List main 0\nWidth 0\n"...)

	data := []byte{0x00, 0x59}
	z := deflate(t, meta)
	data = be.AppendUint32(data, uint32(len(z)))
	data = append(data, z...)

	_, err := UnmarshalToClt(data)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "ToCltNodeMetasChanged", de.Cmd)
}
