// Package model holds the data-model types shared by every Trinity package:
// the wire-level vocabulary (BrickKey, MinMaxBlock, ValueType, Semantic),
// and the small numeric vector aliases the renderer and IIO interfaces pass
// across the proxy boundary.
package model

import "github.com/go-gl/mathgl/mgl32"

// Vec3u64 is a 3-component unsigned extent or coordinate (domain size,
// brick layout, brick voxel counts).
type Vec3u64 struct{ X, Y, Z uint64 }

func NewVec3u64(x, y, z uint64) Vec3u64 { return Vec3u64{x, y, z} }

// Vec3ui is a 3-component unsigned vector sized for brick-local extents
// (overlap, voxel counts within a single brick never exceed uint32 range).
type Vec3ui struct{ X, Y, Z uint32 }

// Vec3f is a 3-component float vector (brick extents in object space).
type Vec3f = mgl32.Vec3

// Vec2f is a 2-component float vector (value ranges).
type Vec2f = mgl32.Vec2

// Mat4d is a 4x4 transformation matrix. mgl32 is used pack-wide (the
// teacher's camera/transform code); float64 precision is approximated with
// float32 here since no pack example carries a float64 matrix type and the
// renderer-facing transform never needs more precision than the GPU uses
// downstream.
type Mat4d = mgl32.Mat4

// BrickKey is the global address of a brick.
type BrickKey struct {
	Modality    uint64
	Timestep    uint64
	LOD         uint64
	LinearIndex uint64
}

// LinearIndexOf computes x + y*Lx + z*Lx*Ly for a brick at grid coordinate
// (x,y,z) within a layout of bricksPerAxis L.
func LinearIndexOf(x, y, z uint64, layout Vec3u64) uint64 {
	return x + y*layout.X + z*layout.X*layout.Y
}

// MinMaxBlock is the per-brick acceleration-structure entry.
type MinMaxBlock struct {
	MinScalar float32
	MaxScalar float32
	MinGrad   float32
	MaxGrad   float32
}

// ValueType is the scalar encoding of a dataset's voxels.
type ValueType int

const (
	ValueUint8 ValueType = iota
	ValueUint16
	ValueUint32
	ValueFloat32
)

// ComponentWidth returns the per-component byte width of t.
func (t ValueType) ComponentWidth() int {
	switch t {
	case ValueUint8:
		return 1
	case ValueUint16:
		return 2
	case ValueUint32, ValueFloat32:
		return 4
	default:
		return 1
	}
}

// Semantic describes how a modality's components combine into a sample.
type Semantic int

const (
	SemanticScalar Semantic = iota
	SemanticVector
	SemanticColor
)

// ComponentCount returns the number of scalar components s implies.
func (s Semantic) ComponentCount() int {
	switch s {
	case SemanticVector:
		return 3
	case SemanticColor:
		return 4
	default:
		return 1
	}
}

// BrickStatus is the metadata-texture entry encoding.
type BrickStatus uint32

const (
	StatusMissing BrickStatus = iota
	StatusChildEmpty
	StatusEmpty
	// StatusResidentBase + slotIndex encodes "resident at that slot".
	StatusResidentBase BrickStatus = 3
)

// IsResident reports whether s encodes residency, and if so the slot index.
func (s BrickStatus) IsResident() (slot uint32, ok bool) {
	if s < StatusResidentBase {
		return 0, false
	}
	return uint32(s) - uint32(StatusResidentBase), true
}

// ResidentStatus encodes slotIndex as a resident BrickStatus.
func ResidentStatus(slotIndex uint32) BrickStatus {
	return BrickStatus(uint32(StatusResidentBase) + slotIndex)
}

// RenderMode selects the per-brick visibility predicate.
type RenderMode int

const (
	RenderModeTF1D RenderMode = iota
	RenderModeTF2D
	RenderModeIso
	RenderModeClearView
)

// VisibilityState holds the parameters that decide which bricks contain
// visible data for the active RenderMode.
type VisibilityState struct {
	Mode RenderMode

	TF1DMin, TF1DMax         float32
	TF2DGradMin, TF2DGradMax float32

	IsoValue float32

	ClearViewIso1, ClearViewIso2 float32
}

// ContainsData evaluates the mode-specific predicate against a brick's
// acceleration-structure entry.
func (v VisibilityState) ContainsData(mm MinMaxBlock) bool {
	switch v.Mode {
	case RenderModeTF1D:
		return v.TF1DMax >= mm.MinScalar && v.TF1DMin <= mm.MaxScalar
	case RenderModeTF2D:
		oneD := v.TF1DMax >= mm.MinScalar && v.TF1DMin <= mm.MaxScalar
		return oneD && v.TF2DGradMax >= mm.MinGrad && v.TF2DGradMin <= mm.MaxGrad
	case RenderModeIso:
		return v.IsoValue <= mm.MaxScalar
	case RenderModeClearView:
		return v.ClearViewIso1 <= mm.MaxScalar && v.ClearViewIso2 <= mm.MaxScalar
	default:
		return true
	}
}
