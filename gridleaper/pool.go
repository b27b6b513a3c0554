package gridleaper

import (
	"sort"

	"github.com/trinity-vr/trinity/model"
)

// PoolSlot is one addressable region of the GPU-resident pool data texture
//.
type PoolSlot struct {
	PositionInPool model.Vec3ui
	BrickID        uint32
	TCreated       uint64
	Empty          bool
	everUsed       bool
}

// containsVisibleBrick reports whether this slot currently holds a brick
// flagged visible in brickStatus (not merely "ever used" — the status can
// flip to Empty without evicting the slot's payload).
func (s PoolSlot) containsVisibleBrick() bool { return s.everUsed && !s.Empty }

// Pool is the per-render-session brick cache: a fixed-capacity slot grid,
// a CPU mirror of the metadata texture, the min/max acceleration structure,
// and the paging cursor/clock that decides which slot gets reused next.
type Pool struct {
	layout   Layout
	capacity model.Vec3u64 // pool slot-grid dimensions (the pool data texture / Bt)

	slots       []PoolSlot
	brickStatus []model.BrickStatus
	brickMeta   []model.MinMaxBlock

	insertPos uint64
	tCreated  uint64

	visibilityUpdated bool
	currentModality   uint64
	currentTimestep   uint64
}

// NewPool builds an empty pool for the given brick layout and slot-grid
// capacity. The last slot is reserved for the single coarsest-LOD brick and
// is loaded once at startup.
func NewPool(lo Layout, capacity model.Vec3u64) *Pool {
	n := capacity.X * capacity.Y * capacity.Z
	slots := make([]PoolSlot, n)
	var i uint64
	for z := uint64(0); z < capacity.Z; z++ {
		for y := uint64(0); y < capacity.Y; y++ {
			for x := uint64(0); x < capacity.X; x++ {
				slots[i] = PoolSlot{PositionInPool: model.Vec3ui{X: uint32(x), Y: uint32(y), Z: uint32(z)}}
				i++
			}
		}
	}
	status := make([]model.BrickStatus, lo.TotalBricks())
	for i := range status {
		status[i] = model.StatusMissing
	}
	return &Pool{
		layout:      lo,
		capacity:    capacity,
		slots:       slots,
		brickStatus: status,
		brickMeta:   make([]model.MinMaxBlock, lo.TotalBricks()),
	}
}

// Layout returns the brick-indexing layout this pool was built against.
func (p *Pool) Layout() Layout { return p.layout }

// SlotCount returns the number of addressable pool slots.
func (p *Pool) SlotCount() int { return len(p.slots) }

// Status returns the current metadata entry for a brick id.
func (p *Pool) Status(id uint32) model.BrickStatus { return p.brickStatus[id] }

// SetBrickMetadata replaces the acceleration structure wholesale, as done
// once per (modality,timestep) change.
func (p *Pool) SetBrickMetadata(modality, timestep uint64, meta []model.MinMaxBlock) {
	p.currentModality, p.currentTimestep = modality, timestep
	p.brickMeta = meta
}

// CurrentModalityTimestep reports the (modality,timestep) the acceleration
// structure was last loaded for.
func (p *Pool) CurrentModalityTimestep() (uint64, uint64) {
	return p.currentModality, p.currentTimestep
}

// ResetStatus sets every brick's status back to Missing except where a slot
// still holds a resident, visible brick — "reset all
// brickStatus to Missing except where a slot already holds a brick that
// remains visible".
func (p *Pool) ResetStatus() {
	for i := range p.brickStatus {
		p.brickStatus[i] = model.StatusMissing
	}
	for _, s := range p.slots {
		if s.containsVisibleBrick() {
			p.brickStatus[s.BrickID] = model.ResidentStatus(p.slotPoolIndex(s))
		}
	}
	p.visibilityUpdated = false
}

// VisibilityUpdated reports whether the visibility pass has completed since
// the last reset.
func (p *Pool) VisibilityUpdated() bool { return p.visibilityUpdated }

// MarkVisibilityUpdated flags the visibility pass complete.
func (p *Pool) MarkVisibilityUpdated() { p.visibilityUpdated = true }

// PrepareForPaging sorts slots ascending by TCreated (oldest first) and
// resets the insertion cursor so paging evicts the stalest slots first.
func (p *Pool) PrepareForPaging() {
	sort.SliceStable(p.slots, func(i, j int) bool {
		return p.slots[i].TCreated < p.slots[j].TCreated
	})
	p.insertPos = 0
}

// slotPoolIndex returns the linear slot index within the pool's capacity
// grid — the value the metadata entry's "poolLinearSlotIndex" encodes.
func (p *Pool) slotPoolIndex(s PoolSlot) uint32 {
	pos := s.PositionInPool
	return pos.X + pos.Y*p.capacity.X + pos.Z*p.capacity.X*p.capacity.Y
}

// UploadBrick writes a completed brick fetch into the slot at insertPos, if
// any slot remains for this frame. It returns false
// when insertPos has already reached the reserved last slot, meaning the
// frame's working set exceeded pool capacity and the brick must be
// re-requested next frame. A non-nil texture sink receives the raw bytes;
// nil is legal for tests that only assert bookkeeping.
func (p *Pool) UploadBrick(sink TextureSink, brickID uint32, voxelCount model.Vec3ui, data []byte) bool {
	if p.insertPos >= uint64(len(p.slots))-1 {
		return false
	}
	slot := &p.slots[p.insertPos]
	if slot.containsVisibleBrick() {
		p.brickStatus[slot.BrickID] = model.StatusMissing
		if sink != nil {
			sink.UploadMetadataTexel(slot.BrickID, model.StatusMissing)
		}
	}

	slot.BrickID = brickID
	slot.everUsed = true
	slot.Empty = false
	p.tCreated++
	slot.TCreated = p.tCreated

	poolCoord := p.slotPoolIndex(*slot)
	status := model.ResidentStatus(poolCoord)
	p.brickStatus[brickID] = status

	if sink != nil {
		sink.UploadMetadataTexel(brickID, status)
		sink.UploadBrickData(slot.PositionInPool, voxelCount, data)
	}
	p.insertPos++
	return true
}

// UploadFirstBrick loads the reserved coarsest-LOD brick into the last slot
// at startup, stamped with the maximum possible TCreated so it is never
// selected for eviction by the paging sort.
func (p *Pool) UploadFirstBrick(sink TextureSink, brickID uint32, voxelCount model.Vec3ui, data []byte) {
	last := len(p.slots) - 1
	slot := &p.slots[last]
	slot.BrickID = brickID
	slot.everUsed = true
	slot.Empty = false
	slot.TCreated = ^uint64(0)

	poolCoord := p.slotPoolIndex(*slot)
	status := model.ResidentStatus(poolCoord)
	p.brickStatus[brickID] = status
	if sink != nil {
		sink.UploadMetadataTexel(brickID, status)
		sink.UploadBrickData(slot.PositionInPool, voxelCount, data)
	}
}
