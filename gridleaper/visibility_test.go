package gridleaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/model"
)

// twoLevelPool builds a pool over a 4x4x1 finest level / 2x2x1 mid level /
// 1x1x1 coarsest level hierarchy, so every parent has exactly 4 children.
func twoLevelPool() *Pool {
	lo := NewLayout([]model.Vec3u64{
		{X: 4, Y: 4, Z: 1},
		{X: 2, Y: 2, Z: 1},
		{X: 1, Y: 1, Z: 1},
	})
	return NewPool(lo, model.Vec3u64{X: 1, Y: 1, Z: 1})
}

func TestVisibilityIsoPredicateMatchesMinMax(t *testing.T) {
	p := twoLevelPool()
	meta := make([]model.MinMaxBlock, p.layout.TotalBricks())
	meta[0] = model.MinMaxBlock{MinScalar: 0.0, MaxScalar: 0.4}
	meta[1] = model.MinMaxBlock{MinScalar: 0.6, MaxScalar: 1.0}
	p.SetBrickMetadata(0, 0, meta)

	v := model.VisibilityState{Mode: model.RenderModeIso, IsoValue: 0.5}
	assert.False(t, v.ContainsData(meta[0]), "brick entirely below the isovalue contains no crossing")
	assert.True(t, v.ContainsData(meta[1]), "brick straddling/above the isovalue may contain a crossing")
}

func TestVisibilityForOctreeFlagsEmptyFinestBricks(t *testing.T) {
	p := twoLevelPool()
	meta := make([]model.MinMaxBlock, p.layout.TotalBricks())
	// every finest-level brick is uniformly 0, entirely below the isovalue
	for i := 0; i < 16; i++ {
		meta[i] = model.MinMaxBlock{MinScalar: 0, MaxScalar: 0}
	}
	p.SetBrickMetadata(0, 0, meta)

	v := model.VisibilityState{Mode: model.RenderModeIso, IsoValue: 0.5}
	p.ResetStatus()
	p.RecomputeVisibilityForBrickPool(v)
	counts := p.RecomputeVisibilityForOctree(v)

	assert.Equal(t, uint64(16), counts.LeafEmpty)
	// ChildEmpty closure: every finest brick must be ChildEmpty...
	for id := uint32(0); id < 16; id++ {
		assert.Equal(t, model.StatusChildEmpty, p.Status(id), "brick %d", id)
	}
	// ...and since all 4 children of each mid-level parent are ChildEmpty,
	// every mid-level parent must also be ChildEmpty, not merely Empty.
	for id := uint32(16); id < 20; id++ {
		assert.Equal(t, model.StatusChildEmpty, p.Status(id), "brick %d", id)
	}
	// and the coarsest root, whose four mid-level children are all
	// ChildEmpty, closes the same way.
	assert.Equal(t, model.StatusChildEmpty, p.Status(20))
}

func TestVisibilityForOctreeParentNotEmptyWhenOneChildIsVisible(t *testing.T) {
	p := twoLevelPool()
	meta := make([]model.MinMaxBlock, p.layout.TotalBricks())
	for i := 0; i < 16; i++ {
		meta[i] = model.MinMaxBlock{MinScalar: 0, MaxScalar: 0}
	}
	// one finest brick under the first mid-level parent actually has data
	meta[0] = model.MinMaxBlock{MinScalar: 0, MaxScalar: 1}
	p.SetBrickMetadata(0, 0, meta)

	v := model.VisibilityState{Mode: model.RenderModeIso, IsoValue: 0.5}
	p.ResetStatus()
	p.RecomputeVisibilityForBrickPool(v)
	p.RecomputeVisibilityForOctree(v)

	assert.NotEqual(t, model.StatusChildEmpty, p.Status(0), "brick with visible data must not be ChildEmpty")
	// its parent has a non-ChildEmpty child, so it must be plain Empty, not ChildEmpty
	parentID := p.layout.BrickID(BrickCoord{X: 0, Y: 0, Z: 0, LOD: 1})
	require.NotEqual(t, model.StatusChildEmpty, p.Status(parentID))
}

func TestRecomputeVisibilityReloadsMetadataOnModalityChange(t *testing.T) {
	p := twoLevelPool()
	firstMeta := make([]model.MinMaxBlock, p.layout.TotalBricks())
	secondMeta := make([]model.MinMaxBlock, p.layout.TotalBricks())
	secondMeta[0] = model.MinMaxBlock{MinScalar: 10, MaxScalar: 20}

	v := model.VisibilityState{Mode: model.RenderModeIso, IsoValue: 0.5}
	p.RecomputeVisibility(v, 0, 0, firstMeta)
	gotModality, gotTimestep := p.CurrentModalityTimestep()
	require.Equal(t, uint64(0), gotModality)
	require.Equal(t, uint64(0), gotTimestep)

	p.RecomputeVisibility(v, 1, 0, secondMeta)
	gotModality, _ = p.CurrentModalityTimestep()
	assert.Equal(t, uint64(1), gotModality)
	assert.True(t, p.VisibilityUpdated())
}
