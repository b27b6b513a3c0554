// Package gridleaper implements the out-of-core GPU brick cache and
// visibility engine: a fixed-capacity pool of GPU-resident brick slots
// addressed by a CPU-mirrored metadata array, a per-frame paging pass that
// drains asynchronously fetched bricks into the pool, and a hierarchical
// min/max visibility pass that flags whole empty subtrees so the shader can
// skip them.
package gridleaper

import (
	"sort"

	"github.com/trinity-vr/trinity/model"
)

// BrickCoord is a brick's grid position within its LOD level plus the level
// itself — the four components the shader addresses a brick by`).
type BrickCoord struct {
	X, Y, Z uint32
	LOD     uint32
}

// Layout describes the brick grid geometry for one modality: the
// per-level brick counts, and the prefix-sum offset table used to fold the
// 4-component BrickCoord into a single integer id.
type Layout struct {
	levels []model.Vec3u64 // layout(ℓ), finest (0) to coarsest
	offset []uint64         // offset[ℓ] = sum of volume(levels[0..ℓ-1])
	total  uint64
}

// NewLayout builds a Layout from the per-level brick-grid dimensions, finest
// level first.
func NewLayout(levels []model.Vec3u64) Layout {
	offset := make([]uint64, len(levels))
	var acc uint64
	for i, l := range levels {
		offset[i] = acc
		acc += l.X * l.Y * l.Z
	}
	return Layout{levels: levels, offset: offset, total: acc}
}

// TotalBricks returns the total brick count across all levels — the size of
// the brickStatus mirror array and the acceleration structure.
func (lo Layout) TotalBricks() uint64 { return lo.total }

// LevelCount returns the number of LOD levels this layout covers.
func (lo Layout) LevelCount() int { return len(lo.levels) }

// LevelLayout returns layout(ℓ), the brick-grid dimensions at level lod.
func (lo Layout) LevelLayout(lod uint32) model.Vec3u64 { return lo.levels[lod] }

// BrickID folds a BrickCoord into its integer id: offset[ℓ] + x +
// y·layout(ℓ).x + z·layout(ℓ).x·layout(ℓ).y.
func (lo Layout) BrickID(c BrickCoord) uint32 {
	l := lo.levels[c.LOD]
	id := lo.offset[c.LOD] + uint64(c.X) + uint64(c.Y)*l.X + uint64(c.Z)*l.X*l.Y
	return uint32(id)
}

// Coord is the inverse of BrickID: a binary search over the offset table
// locates the LOD level, then the remainder is unflattened against that
// level's layout.
func (lo Layout) Coord(id uint32) BrickCoord {
	idx := sort.Search(len(lo.offset), func(i int) bool {
		return lo.offset[i] > uint64(id)
	})
	lod := idx - 1
	l := lo.levels[lod]
	rem := uint64(id) - lo.offset[lod]
	return BrickCoord{
		X:   uint32(rem % l.X),
		Y:   uint32((rem % (l.X * l.Y)) / l.X),
		Z:   uint32(rem / (l.X * l.Y)),
		LOD: uint32(lod),
	}
}

// BrickKeyOf translates a BrickCoord into the wire-level BrickKey that
// addresses the same brick for a given modality and timestep (the role of
// IndexFrom4D in the original source).
func BrickKeyOf(lo Layout, modality, timestep uint64, c BrickCoord) model.BrickKey {
	layout := lo.levels[c.LOD]
	linear := model.LinearIndexOf(uint64(c.X), uint64(c.Y), uint64(c.Z), layout)
	return model.BrickKey{Modality: modality, Timestep: timestep, LOD: uint64(c.LOD), LinearIndex: linear}
}
