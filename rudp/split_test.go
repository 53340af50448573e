package rudp

import (
	"bytes"
	"math"
	"math/rand"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i * 7)
	}
	return data
}

func TestSplitPkts(t *testing.T) {
	data := testPayload(5000)

	pkts, err := splitPkts(10, data, 1200)
	require.NoError(t, err)
	require.Len(t, pkts, 5)

	for i, p := range pkts {
		assert.Equal(t, rawSplit, p.Type)
		assert.Equal(t, seqnum(10), p.SN)
		assert.Equal(t, uint16(5), p.Count)
		assert.Equal(t, uint16(i), p.Index)
	}
	assert.Len(t, pkts[4].Data, 200)

	var joined []byte
	for _, p := range pkts {
		joined = append(joined, p.Data...)
	}
	assert.Equal(t, data, joined)
}

func TestSplitPktsTooBig(t *testing.T) {
	_, err := splitPkts(0, make([]byte, 1<<16), 1)
	assert.ErrorIs(t, err, ErrPktTooBig)
}

func TestReassembleAnyOrder(t *testing.T) {
	data := testPayload(5000)
	pkts, err := splitPkts(initSeqnum, data, 1200)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(1))
	now := time.Now()

	for n := 0; n < 20; n++ {
		r := newReassembler()

		perm := rnd.Perm(len(pkts))
		for i, j := range perm {
			got, err := r.push(now, pkts[j], false)
			require.NoError(t, err)

			if i < len(perm)-1 {
				assert.Nil(t, got, "completed early with order %v", perm)
			} else {
				assert.True(t, bytes.Equal(data, got), "order %v", perm)
			}
		}
		assert.Zero(t, r.pending())
	}
}

func TestReassembleDuplicateChunk(t *testing.T) {
	pkts, err := splitPkts(1, testPayload(30), 10)
	require.NoError(t, err)

	r := newReassembler()
	now := time.Now()

	for _, p := range []rawPkt{pkts[0], pkts[0], pkts[1], pkts[1]} {
		got, err := r.push(now, p, false)
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	got, err := r.push(now, pkts[2], false)
	require.NoError(t, err)
	assert.Equal(t, testPayload(30), got)

	// Late duplicates of a finished split packet are ignored.
	got, err = r.push(now, pkts[1], false)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, r.pending())
}

func TestReassembleInvalidChunks(t *testing.T) {
	r := newReassembler()
	now := time.Now()

	_, err := r.push(now, rawPkt{Type: rawSplit, SN: 1, Count: 2, Index: 2}, false)
	assert.Error(t, err)

	_, err = r.push(now, rawPkt{Type: rawSplit, SN: 1, Count: 3, Index: 0, Data: []byte{1}}, false)
	require.NoError(t, err)

	_, err = r.push(now, rawPkt{Type: rawSplit, SN: 1, Count: 4, Index: 1, Data: []byte{2}}, false)
	assert.Error(t, err)
	assert.Equal(t, 1, r.pending())
}

func TestReassembleDoneHistory(t *testing.T) {
	r := newReassembler()
	now := time.Now()

	single := func(sn seqnum) rawPkt {
		return rawPkt{Type: rawSplit, SN: sn, Count: 1, Index: 0, Data: []byte{byte(sn)}}
	}

	for sn := seqnum(0); sn < doneHistory+1; sn++ {
		got, err := r.push(now, single(sn), true)
		require.NoError(t, err)
		require.NotNil(t, got)
	}

	// 0 has been pushed out of the history, the others are remembered.
	got, err := r.push(now, single(0), true)
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = r.push(now, single(doneHistory), true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReassembleExpire(t *testing.T) {
	r := newReassembler()
	now := time.Now()

	_, err := r.push(now, rawPkt{Type: rawSplit, SN: 1, Count: 2, Data: []byte{1}}, true)
	require.NoError(t, err)
	_, err = r.push(now, rawPkt{Type: rawSplit, SN: 2, Count: 2, Data: []byte{1}}, false)
	require.NoError(t, err)

	assert.Zero(t, r.expire(now.Add(time.Second), 2*time.Second))
	assert.Equal(t, 1, r.expire(now.Add(3*time.Second), 2*time.Second))
	assert.Equal(t, 1, r.pending(), "reliable split packets don't expire")

	r.reset()
	assert.Zero(t, r.pending())
}

func TestReassembleHugeCount(t *testing.T) {
	r := newReassembler()
	now := time.Now()

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	for sn := seqnum(0); sn < 100; sn++ {
		got, err := r.push(now, rawPkt{Type: rawSplit, SN: sn, Count: math.MaxUint16, Data: []byte{1}}, false)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	runtime.ReadMemStats(&after)

	assert.Equal(t, 100, r.pending())
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20),
		"storage grows with the chunks received, not the declared count")
	for _, s := range r.splits {
		assert.Len(t, s.chunks, 1)
	}

	// The last chunk in order completes the packet.
	_, err := r.push(now, rawPkt{Type: rawSplit, SN: 200, Count: 3, Index: 2, Data: []byte{3}}, false)
	require.NoError(t, err)
	_, err = r.push(now, rawPkt{Type: rawSplit, SN: 200, Count: 3, Index: 0, Data: []byte{1}}, false)
	require.NoError(t, err)
	got, err := r.push(now, rawPkt{Type: rawSplit, SN: 200, Count: 3, Index: 1}, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 3}, got, "empty chunks count as received")
}
