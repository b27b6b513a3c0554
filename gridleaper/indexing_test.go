package gridleaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/model"
)

func threeLevelLayout() Layout {
	return NewLayout([]model.Vec3u64{
		{X: 4, Y: 4, Z: 2}, // level 0, finest: 32 bricks
		{X: 2, Y: 2, Z: 1}, // level 1: 4 bricks
		{X: 1, Y: 1, Z: 1}, // level 2, coarsest: 1 brick
	})
}

func TestLayoutTotalBricks(t *testing.T) {
	lo := threeLevelLayout()
	assert.Equal(t, uint64(32+4+1), lo.TotalBricks())
	assert.Equal(t, 3, lo.LevelCount())
}

func TestBrickIDRoundTripsThroughCoord(t *testing.T) {
	lo := threeLevelLayout()
	for lod := uint32(0); lod < uint32(lo.LevelCount()); lod++ {
		l := lo.LevelLayout(lod)
		for z := uint64(0); z < l.Z; z++ {
			for y := uint64(0); y < l.Y; y++ {
				for x := uint64(0); x < l.X; x++ {
					c := BrickCoord{X: uint32(x), Y: uint32(y), Z: uint32(z), LOD: lod}
					id := lo.BrickID(c)
					require.Equal(t, c, lo.Coord(id))
				}
			}
		}
	}
}

func TestBrickIDOffsetsAreContiguousPerLevel(t *testing.T) {
	lo := threeLevelLayout()
	// level 0 occupies ids [0,32), level 1 [32,36), level 2 {36}
	assert.Equal(t, uint32(0), lo.BrickID(BrickCoord{LOD: 0}))
	assert.Equal(t, uint32(32), lo.BrickID(BrickCoord{LOD: 1}))
	assert.Equal(t, uint32(36), lo.BrickID(BrickCoord{LOD: 2}))
}

func TestBrickKeyOfEncodesLinearIndex(t *testing.T) {
	lo := threeLevelLayout()
	key := BrickKeyOf(lo, 3, 7, BrickCoord{X: 1, Y: 2, Z: 0, LOD: 0})
	assert.Equal(t, uint64(3), key.Modality)
	assert.Equal(t, uint64(7), key.Timestep)
	assert.Equal(t, uint64(0), key.LOD)
	assert.Equal(t, model.LinearIndexOf(1, 2, 0, lo.LevelLayout(0)), key.LinearIndex)
}
