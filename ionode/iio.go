// Package ionode implements the I/O node: the process that owns a dataset
// and answers per-session metadata and brick queries.
package ionode

import "github.com/trinity-vr/trinity/model"

// IIO is the dataset-access seam every fixture/format implementation
// satisfies. One IIO backs exactly one IOSession, for the file it was
// opened with.
type IIO interface {
	GetMaxBrickSize() model.Vec3u64
	GetMaxUsedBrickSizes() model.Vec3u64
	MaxMinForKey(key model.BrickKey) (model.MinMaxBlock, error)
	GetLODLevelCount(modality uint64) (int32, error)
	GetNumberOfTimesteps() uint64
	GetDomainSize(lod, modality uint64) (model.Vec3u64, error)
	GetTransformation(modality uint64) (model.Mat4d, error)
	GetBrickOverlapSize() model.Vec3ui
	GetLargestSingleBrickLOD(modality uint64) (uint64, error)
	GetBrickVoxelCounts(key model.BrickKey) (model.Vec3ui, error)
	GetBrickExtents(key model.BrickKey) (model.Vec3f, error)
	GetBrickLayout(lod, modality uint64) (model.Vec3u64, error)
	GetModalityCount() uint64
	GetComponentCount(modality uint64) (uint64, error)
	GetRange(modality uint64) (model.Vec2f, error)
	GetDataType() model.ValueType
	GetSemantic(modality uint64) (model.Semantic, error)
	GetDefault1DTransferFunction(modality uint64) ([]float64, error)
	GetDefault2DTransferFunction(modality uint64) ([]float64, error)
	Get1DHistogram(modality uint64) ([]uint64, error)
	Get2DHistogram(modality uint64) ([]uint64, error)
	// GetBrick returns the brick's raw sample bytes. success is false for a
	// brick key the dataset recognizes as structurally valid but holds no
	// data for.
	GetBrick(key model.BrickKey) (data []byte, success bool, err error)
}
