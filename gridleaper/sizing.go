package gridleaper

import (
	"math"

	"github.com/trinity-vr/trinity/model"
)

// reductionStep is the fixed decrement resource sizing retries with when
// allocation fails.
const reductionStep = 10 * 1024 * 1024

// ElementSize returns the per-voxel byte width: component count (from
// Semantic) times per-component width (from ValueType) — `e`.
func ElementSize(valueType model.ValueType, semantic model.Semantic) uint64 {
	return uint64(semantic.ComponentCount()) * uint64(valueType.ComponentWidth())
}

// PoolDimensions chooses the pool data texture's slot-grid capacity: the
// largest multiple-of-totalBrickSize axis-aligned box whose byte footprint
// fits budget/elementSize, clamped to maxTextureEdge. No GPU device is
// opened by this package (see TextureSink), so only the sizing arithmetic
// is kept; the texture-allocation retry itself lives in AllocateWithRetry.
func PoolDimensions(totalBrickSize model.Vec3u64, totalBrickCount, budgetBytes, elementSize uint64, maxTextureEdge uint64) model.Vec3u64 {
	maxVoxels := budgetBytes / elementSize
	r3 := math.Cbrt(float64(maxVoxels))

	roundToMultiple := func(v float64, brick uint64) uint64 {
		m := uint64(v/float64(brick)+0.5) * brick
		if m > maxTextureEdge {
			m = (maxTextureEdge / brick) * brick
		}
		if m < brick {
			m = brick
		}
		return m
	}

	gpuX := roundToMultiple(r3, totalBrickSize.X)
	gpuY := roundToMultiple(float64(maxVoxels/(gpuX*gpuX)), totalBrickSize.Y)
	gpuZ := roundToMultiple(float64(maxVoxels/(gpuX*gpuY)), totalBrickSize.Z)
	gpuBound := model.Vec3u64{X: gpuX, Y: gpuY, Z: gpuZ}

	// the layout the dataset actually needs, so small datasets that fit
	// in-core don't claim a pool sized for the configured GPU budget
	r3Bricks := math.Cbrt(float64(totalBrickCount))
	datasetX := clampEdge(totalBrickSize.X*uint64(r3Bricks), totalBrickSize.X, maxTextureEdge)
	bricksPerRowX := datasetX / totalBrickSize.X
	datasetY := clampEdge(totalBrickSize.Y*uint64(math.Ceil(float64(totalBrickCount)/float64(bricksPerRowX*bricksPerRowX))), totalBrickSize.Y, maxTextureEdge)
	bricksPerRowY := datasetY / totalBrickSize.Y
	datasetZ := clampEdge(totalBrickSize.Z*uint64(math.Ceil(float64(totalBrickCount)/float64(bricksPerRowX*bricksPerRowY))), totalBrickSize.Z, maxTextureEdge)
	datasetBound := model.Vec3u64{X: datasetX, Y: datasetY, Z: datasetZ}

	if volume(datasetBound) < volume(gpuBound) {
		return datasetBound
	}
	return gpuBound
}

func clampEdge(v, brick, maxEdge uint64) uint64 {
	if v > maxEdge {
		return (maxEdge / brick) * brick
	}
	return v
}

func volume(v model.Vec3u64) uint64 { return v.X * v.Y * v.Z }

// AllocateWithRetry calls alloc(budget) repeatedly, reducing budget by
// reductionStep each time it reports failure, until it succeeds or budget
// is exhausted.
func AllocateWithRetry(budgetBytes uint64, alloc func(budget uint64) (model.Vec3u64, bool)) (model.Vec3u64, bool) {
	reduction := uint64(0)
	for reduction < budgetBytes {
		size, ok := alloc(budgetBytes - reduction)
		if ok {
			return size, true
		}
		reduction += reductionStep
	}
	return model.Vec3u64{}, false
}
