package gridleaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/model"
)

func smallLayout() Layout {
	return NewLayout([]model.Vec3u64{
		{X: 2, Y: 2, Z: 1}, // 4 bricks, finest
		{X: 1, Y: 1, Z: 1}, // 1 brick, coarsest
	})
}

func newTestPool(t *testing.T, capacity model.Vec3u64) *Pool {
	t.Helper()
	return NewPool(smallLayout(), capacity)
}

// metadata/slot consistency: every resident brick's status encodes exactly
// the pool-linear index of the slot that actually holds it.
func TestUploadBrickKeepsMetadataConsistentWithSlots(t *testing.T) {
	p := newTestPool(t, model.Vec3u64{X: 2, Y: 1, Z: 1}) // 2 slots, last reserved
	p.PrepareForPaging()

	ok := p.UploadBrick(nil, 0, model.Vec3ui{X: 4, Y: 4, Z: 4}, make([]byte, 64))
	require.True(t, ok)

	status := p.Status(0)
	slot, isResident := status.IsResident()
	require.True(t, isResident)
	assert.Equal(t, uint32(0), p.slots[slot].BrickID)
	assert.True(t, p.slots[slot].everUsed)
}

// insertPos monotonicity: UploadBrick never writes past the reserved last
// slot, and refuses once it's reached.
func TestUploadBrickStopsAtReservedSlot(t *testing.T) {
	p := newTestPool(t, model.Vec3u64{X: 2, Y: 1, Z: 1}) // 2 slots total, 1 usable
	p.PrepareForPaging()

	ok1 := p.UploadBrick(nil, 0, model.Vec3ui{}, nil)
	require.True(t, ok1)

	ok2 := p.UploadBrick(nil, 1, model.Vec3ui{}, nil)
	assert.False(t, ok2, "must refuse once insertPos reaches the reserved last slot")
}

func TestUploadBrickNeverWritesSameSlotTwiceInOneFrame(t *testing.T) {
	p := newTestPool(t, model.Vec3u64{X: 3, Y: 1, Z: 1}) // 3 slots, 2 usable
	p.PrepareForPaging()

	require.True(t, p.UploadBrick(nil, 0, model.Vec3ui{}, nil))
	require.True(t, p.UploadBrick(nil, 1, model.Vec3ui{}, nil))

	seen := map[model.Vec3ui]bool{}
	for _, s := range p.slots {
		if !s.everUsed {
			continue
		}
		require.False(t, seen[s.PositionInPool], "slot %v written twice in one frame", s.PositionInPool)
		seen[s.PositionInPool] = true
	}
}

func TestUploadFirstBrickIsNeverEvicted(t *testing.T) {
	p := newTestPool(t, model.Vec3u64{X: 2, Y: 1, Z: 1})
	p.UploadFirstBrick(nil, 4, model.Vec3ui{}, nil)

	// run several paging rounds that keep trying to claim every slot, with
	// ids 0..3 only so brick 4 can stay resident only through its own slot
	for i := 0; i < 5; i++ {
		p.PrepareForPaging()
		p.UploadBrick(nil, uint32(i%4), model.Vec3ui{}, nil)
	}

	status := p.Status(4)
	slot, ok := status.IsResident()
	require.True(t, ok)
	assert.Equal(t, uint32(4), p.slots[slot].BrickID)
}

func TestResetStatusPreservesVisibleResidentBricks(t *testing.T) {
	p := newTestPool(t, model.Vec3u64{X: 2, Y: 1, Z: 1})
	p.PrepareForPaging()
	require.True(t, p.UploadBrick(nil, 2, model.Vec3ui{}, nil))

	p.ResetStatus()

	_, ok := p.Status(2).IsResident()
	assert.True(t, ok, "resident brick should stay resident across ResetStatus")
	assert.Equal(t, model.StatusMissing, p.Status(0))
}

// assertMetadataConsistentWithSlots is property 4: every slot currently
// holding a visible, resident brick must have its brick id's metadata
// entry decode back to exactly that slot's pool-linear index, and nothing
// else claims residency in a slot it doesn't occupy.
func assertMetadataConsistentWithSlots(t *testing.T, p *Pool) {
	t.Helper()
	for i, s := range p.slots {
		if !s.containsVisibleBrick() {
			continue
		}
		slotIdx, ok := p.Status(s.BrickID).IsResident()
		require.True(t, ok, "slot %d holds brick %d but its status is not resident", i, s.BrickID)
		assert.Equal(t, p.slotPoolIndex(s), slotIdx, "brick %d's metadata points at the wrong slot", s.BrickID)
	}
	for id := uint32(0); id < uint32(len(p.brickMeta)); id++ {
		slotIdx, ok := p.Status(id).IsResident()
		if !ok {
			continue
		}
		require.Less(t, int(slotIdx), len(p.slots), "resident status for brick %d names an out-of-range slot", id)
		// p.slots is kept sorted by TCreated, so look the slot up by its
		// pool-linear index rather than by its position in the slice
		var holder *PoolSlot
		for j := range p.slots {
			if p.slotPoolIndex(p.slots[j]) == slotIdx {
				holder = &p.slots[j]
				break
			}
		}
		require.NotNil(t, holder, "no slot has pool-linear index %d", slotIdx)
		assert.Equal(t, id, holder.BrickID, "slot %d is claimed resident by brick %d but actually holds %d", slotIdx, id, holder.BrickID)
	}
}

// TestSteadyStateEightBrickWorkingSetOverTenFrames drives a pool with 4
// usable slots (5 total — the 5th pinned down as the reserved coarsest
// slot via UploadFirstBrick, exactly as NewRenderer does at startup)
// through a repeatedly-swept 8-brick working set for 10 frames. FIFO
// eviction by insertion order means a pool smaller than the working set
// settles into holding exactly the four most recently touched bricks, and
// property 4 must hold at every frame boundary along the way, not just at
// the end.
func TestSteadyStateEightBrickWorkingSetOverTenFrames(t *testing.T) {
	lo := NewLayout([]model.Vec3u64{
		{X: 2, Y: 2, Z: 2}, // 8 bricks, finest — the working set
		{X: 1, Y: 1, Z: 1}, // 1 brick, coarsest — reserved, never evicted
	})
	p := NewPool(lo, model.Vec3u64{X: 5, Y: 1, Z: 1}) // 5 slots, 4 usable

	const coarsestBrickID = 8
	p.UploadFirstBrick(nil, coarsestBrickID, model.Vec3ui{X: 1, Y: 1, Z: 1}, []byte{0})
	assertMetadataConsistentWithSlots(t, p)

	const workingSetSize = 8
	const frames = 10
	touched := make([]uint32, 0, frames)
	for frame := 0; frame < frames; frame++ {
		brickID := uint32(frame % workingSetSize)
		touched = append(touched, brickID)

		p.PrepareForPaging()
		require.True(t, p.UploadBrick(nil, brickID, model.Vec3ui{X: 4, Y: 4, Z: 4}, make([]byte, 64)),
			"frame %d: a single upload must always fit within the usable slots", frame)

		assertMetadataConsistentWithSlots(t, p)

		_, coarsestStillResident := p.Status(coarsestBrickID).IsResident()
		assert.True(t, coarsestStillResident, "frame %d: reserved coarsest brick must never be evicted by ordinary paging", frame)
	}

	wantResident := map[uint32]bool{}
	for _, id := range touched[frames-4:] {
		wantResident[id] = true
	}
	require.Len(t, wantResident, 4, "the last four touches in this access pattern must be four distinct bricks")

	gotResident := map[uint32]bool{}
	for _, s := range p.slots {
		if s.containsVisibleBrick() && s.BrickID != coarsestBrickID {
			gotResident[s.BrickID] = true
		}
	}
	assert.Equal(t, wantResident, gotResident, "steady state must hold exactly the four most recently touched working-set bricks")

	for id := uint32(0); id < workingSetSize; id++ {
		_, resident := p.Status(id).IsResident()
		assert.Equal(t, wantResident[id], resident, "brick %d residency does not match the expected steady state", id)
	}
}
