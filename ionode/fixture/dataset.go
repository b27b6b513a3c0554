// Package fixture provides a procedurally generated IIO implementation
// trinity's I/O node serves when no real dataset reader is wired in: a
// multi-resolution scalar volume evaluated analytically rather than read
// from disk — a deterministic dataset any session can open without test
// fixtures on disk, built from a signed-distance field into a full
// multi-LOD, multi-modality dataset so every ionode.IIO method has real,
// brick-addressable data behind it.
//
// The brick/LOD partitioning maps global coordinate -> brick coordinate ->
// local offset the way a sparse sector-of-bricks volume does, generalized
// to a variable brick size and LOD pyramid instead of one fixed brick edge.
package fixture

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/model"
)

// BrickSize is the fixed brick edge length used by every LOD level.
const BrickSize = 32

// OverlapVoxels is the one-voxel ghost border bricks share with neighbors,
// so the grid-leaper's trilinear sampling never reads past a brick edge.
const OverlapVoxels = 1

// Dataset is a self-contained, deterministically generated volume. One
// Dataset backs one opened fileId; NewDataset never touches disk.
type Dataset struct {
	id         uuid.UUID
	numLODs    int
	baseDomain model.Vec3u64
	modalities []modalityInfo

	mu         sync.Mutex
	minMaxLRU  map[model.BrickKey]model.MinMaxBlock
	histograms map[uint64][]uint64 // lazily built coarse-LOD 1-D histogram, per modality
}

type modalityInfo struct {
	semantic model.Semantic
	shape    shapeFunc
}

// shapeFunc evaluates one modality's scalar field at a normalized
// coordinate in [0,1)^3; it is what distinguishes one modality's "dataset"
// from another without needing separate storage.
type shapeFunc func(nx, ny, nz float64) float64

// NewDataset builds a deterministic fixture keyed by fileId. Every fileId
// gets the same sphere and turbulence modalities; a third (gyroid) modality
// is added when the first byte of the uuid derived from fileId is not a
// multiple of 3. No fileId selects a shape of its own.
func NewDataset(fileId string) *Dataset {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fileId))

	shapes := []modalityInfo{
		{semantic: model.SemanticScalar, shape: sphereShape},
		{semantic: model.SemanticScalar, shape: turbulenceShape},
	}
	if extra := int(id[0]) % 3; extra > 0 {
		shapes = append(shapes, modalityInfo{semantic: model.SemanticScalar, shape: gyroidShape})
	}

	return &Dataset{
		id:         id,
		numLODs:    5,
		baseDomain: model.NewVec3u64(256, 256, 160),
		modalities: shapes,
		minMaxLRU:  make(map[model.BrickKey]model.MinMaxBlock),
		histograms: make(map[uint64][]uint64),
	}
}

func sphereShape(nx, ny, nz float64) float64 {
	dx, dy, dz := nx-0.5, ny-0.5, nz-0.5
	r := math.Sqrt(dx*dx + dy*dy + dz*dz)
	return clamp01(1.0 - r*2.0)
}

func turbulenceShape(nx, ny, nz float64) float64 {
	v := math.Sin(nx*6.283) * math.Sin(ny*6.283) * math.Sin(nz*6.283)
	return clamp01(0.5 + 0.5*v)
}

func gyroidShape(nx, ny, nz float64) float64 {
	const k = 12.566 // 4*pi
	v := math.Sin(nx*k)*math.Cos(ny*k) + math.Sin(ny*k)*math.Cos(nz*k) + math.Sin(nz*k)*math.Cos(nx*k)
	return clamp01(0.5 + 0.25*v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (d *Dataset) checkModality(modality uint64) error {
	if modality >= uint64(len(d.modalities)) {
		return errs.New(errs.InvalidArgument, "modality %d out of range [0,%d)", modality, len(d.modalities))
	}
	return nil
}

func (d *Dataset) checkLOD(lod uint64) error {
	if lod >= uint64(d.numLODs) {
		return errs.New(errs.InvalidArgument, "lod %d out of range [0,%d)", lod, d.numLODs)
	}
	return nil
}

// domainAt halves baseDomain per LOD level, floored at one voxel per axis.
func (d *Dataset) domainAt(lod uint64) model.Vec3u64 {
	shift := lod
	halve := func(v uint64) uint64 {
		for i := uint64(0); i < shift; i++ {
			if v <= 1 {
				return 1
			}
			v /= 2
		}
		return v
	}
	return model.NewVec3u64(halve(d.baseDomain.X), halve(d.baseDomain.Y), halve(d.baseDomain.Z))
}

// innerBrickSize is the number of non-overlap voxels a brick contributes to
// the domain; bricks step by this amount, not by BrickSize.
const innerBrickSize = BrickSize - 2*OverlapVoxels

func ceilDiv(a, b uint64) uint64 {
	if a == 0 {
		return 1
	}
	return (a + b - 1) / b
}

func (d *Dataset) layoutAt(lod uint64) model.Vec3u64 {
	domain := d.domainAt(lod)
	return model.NewVec3u64(
		ceilDiv(domain.X, innerBrickSize),
		ceilDiv(domain.Y, innerBrickSize),
		ceilDiv(domain.Z, innerBrickSize),
	)
}

// brickBounds returns the global, LOD-space coordinate of a brick's first
// (overlap-inclusive) voxel, and the brick's in-bounds voxel extent.
func (d *Dataset) brickBounds(key model.BrickKey) (origin [3]int64, counts model.Vec3ui, err error) {
	if err := d.checkLOD(key.LOD); err != nil {
		return origin, counts, err
	}
	layout := d.layoutAt(key.LOD)
	total := layout.X * layout.Y * layout.Z
	if key.LinearIndex >= total {
		return origin, counts, errs.New(errs.InvalidArgument, "brick index %d out of range [0,%d)", key.LinearIndex, total)
	}
	bx := key.LinearIndex % layout.X
	by := (key.LinearIndex / layout.X) % layout.Y
	bz := key.LinearIndex / (layout.X * layout.Y)

	domain := d.domainAt(key.LOD)
	ox := int64(bx*innerBrickSize) - OverlapVoxels
	oy := int64(by*innerBrickSize) - OverlapVoxels
	oz := int64(bz*innerBrickSize) - OverlapVoxels
	origin = [3]int64{ox, oy, oz}

	clampCount := func(o int64, dom uint64) uint32 {
		lo := o
		if lo < 0 {
			lo = 0
		}
		hi := o + BrickSize
		if hi > int64(dom) {
			hi = int64(dom)
		}
		if hi <= lo {
			return 0
		}
		return uint32(hi - lo)
	}
	counts = model.Vec3ui{
		X: clampCount(ox, domain.X),
		Y: clampCount(oy, domain.Y),
		Z: clampCount(oz, domain.Z),
	}
	return origin, counts, nil
}

func (d *Dataset) sample(key model.BrickKey, gx, gy, gz int64) uint8 {
	domain := d.domainAt(key.LOD)
	nx := float64(gx) / float64(domain.X)
	ny := float64(gy) / float64(domain.Y)
	nz := float64(gz) / float64(domain.Z)
	v := d.modalities[key.Modality].shape(nx, ny, nz)
	return uint8(clamp01(v) * 255)
}

// GetMaxBrickSize reports the fixed brick edge the dataset tiles with.
func (d *Dataset) GetMaxBrickSize() model.Vec3u64 {
	return model.NewVec3u64(BrickSize, BrickSize, BrickSize)
}

// GetMaxUsedBrickSizes is identical to GetMaxBrickSize here since every
// brick is regularly sized; a ragged dataset would report the true max.
func (d *Dataset) GetMaxUsedBrickSizes() model.Vec3u64 { return d.GetMaxBrickSize() }

func (d *Dataset) MaxMinForKey(key model.BrickKey) (model.MinMaxBlock, error) {
	d.mu.Lock()
	if mm, ok := d.minMaxLRU[key]; ok {
		d.mu.Unlock()
		return mm, nil
	}
	d.mu.Unlock()

	_, _, err := d.brickBounds(key)
	if err != nil {
		return model.MinMaxBlock{}, err
	}
	data, _, err := d.GetBrick(key)
	if err != nil {
		return model.MinMaxBlock{}, err
	}
	mm := minMaxOf(data)

	d.mu.Lock()
	d.minMaxLRU[key] = mm
	d.mu.Unlock()
	return mm, nil
}

func minMaxOf(data []byte) model.MinMaxBlock {
	if len(data) == 0 {
		return model.MinMaxBlock{}
	}
	minS, maxS := data[0], data[0]
	for _, b := range data[1:] {
		if b < minS {
			minS = b
		}
		if b > maxS {
			maxS = b
		}
	}
	// gradient range approximated from scalar range; a full central-difference
	// pass isn't needed for a synthetic dataset exercising the protocol.
	return model.MinMaxBlock{
		MinScalar: float32(minS), MaxScalar: float32(maxS),
		MinGrad: 0, MaxGrad: float32(maxS-minS) / 2,
	}
}

func (d *Dataset) GetLODLevelCount(modality uint64) (int32, error) {
	if err := d.checkModality(modality); err != nil {
		return 0, err
	}
	return int32(d.numLODs), nil
}

func (d *Dataset) GetNumberOfTimesteps() uint64 { return 1 }

func (d *Dataset) GetDomainSize(lod, modality uint64) (model.Vec3u64, error) {
	if err := d.checkModality(modality); err != nil {
		return model.Vec3u64{}, err
	}
	if err := d.checkLOD(lod); err != nil {
		return model.Vec3u64{}, err
	}
	return d.domainAt(lod), nil
}

func (d *Dataset) GetTransformation(modality uint64) (model.Mat4d, error) {
	if err := d.checkModality(modality); err != nil {
		return model.Mat4d{}, err
	}
	var m model.Mat4d
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m, nil
}

func (d *Dataset) GetBrickOverlapSize() model.Vec3ui {
	return model.Vec3ui{X: OverlapVoxels, Y: OverlapVoxels, Z: OverlapVoxels}
}

func (d *Dataset) GetLargestSingleBrickLOD(modality uint64) (uint64, error) {
	if err := d.checkModality(modality); err != nil {
		return 0, err
	}
	for lod := d.numLODs - 1; lod >= 0; lod-- {
		layout := d.layoutAt(uint64(lod))
		if layout.X == 1 && layout.Y == 1 && layout.Z == 1 {
			return uint64(lod), nil
		}
	}
	return uint64(d.numLODs - 1), nil
}

func (d *Dataset) GetBrickVoxelCounts(key model.BrickKey) (model.Vec3ui, error) {
	if err := d.checkModality(key.Modality); err != nil {
		return model.Vec3ui{}, err
	}
	_, counts, err := d.brickBounds(key)
	return counts, err
}

func (d *Dataset) GetBrickExtents(key model.BrickKey) (model.Vec3f, error) {
	counts, err := d.GetBrickVoxelCounts(key)
	if err != nil {
		return model.Vec3f{}, err
	}
	return model.Vec3f{float32(counts.X), float32(counts.Y), float32(counts.Z)}, nil
}

func (d *Dataset) GetBrickLayout(lod, modality uint64) (model.Vec3u64, error) {
	if err := d.checkModality(modality); err != nil {
		return model.Vec3u64{}, err
	}
	if err := d.checkLOD(lod); err != nil {
		return model.Vec3u64{}, err
	}
	return d.layoutAt(lod), nil
}

func (d *Dataset) GetModalityCount() uint64 { return uint64(len(d.modalities)) }

func (d *Dataset) GetComponentCount(modality uint64) (uint64, error) {
	if err := d.checkModality(modality); err != nil {
		return 0, err
	}
	return uint64(d.modalities[modality].semantic.ComponentCount()), nil
}

func (d *Dataset) GetRange(modality uint64) (model.Vec2f, error) {
	if err := d.checkModality(modality); err != nil {
		return model.Vec2f{}, err
	}
	return model.Vec2f{0, 255}, nil
}

func (d *Dataset) GetDataType() model.ValueType { return model.ValueUint8 }

func (d *Dataset) GetSemantic(modality uint64) (model.Semantic, error) {
	if err := d.checkModality(modality); err != nil {
		return 0, err
	}
	return d.modalities[modality].semantic, nil
}

func (d *Dataset) GetDefault1DTransferFunction(modality uint64) ([]float64, error) {
	if err := d.checkModality(modality); err != nil {
		return nil, err
	}
	// four (value, opacity) control points spanning the full range.
	return []float64{0, 0, 85, 0.05, 170, 0.3, 255, 0.9}, nil
}

func (d *Dataset) GetDefault2DTransferFunction(modality uint64) ([]float64, error) {
	if err := d.checkModality(modality); err != nil {
		return nil, err
	}
	return []float64{0, 0, 0, 255, 255, 0.8}, nil
}

func (d *Dataset) histogramBins(modality uint64) []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if bins, ok := d.histograms[modality]; ok {
		return bins
	}
	bins := make([]uint64, 256)
	const coarseLOD = 3
	lod := coarseLOD
	if lod >= d.numLODs {
		lod = d.numLODs - 1
	}
	domain := d.domainAt(uint64(lod))
	key := model.BrickKey{LOD: uint64(lod), Modality: modality}
	for z := uint64(0); z < domain.Z; z++ {
		for y := uint64(0); y < domain.Y; y++ {
			for x := uint64(0); x < domain.X; x++ {
				v := d.sample(key, int64(x), int64(y), int64(z))
				bins[v]++
			}
		}
	}
	d.histograms[modality] = bins
	return bins
}

func (d *Dataset) Get1DHistogram(modality uint64) ([]uint64, error) {
	if err := d.checkModality(modality); err != nil {
		return nil, err
	}
	return d.histogramBins(modality), nil
}

// Get2DHistogram pairs the scalar value with a coarse local-variation proxy
// standing in for the gradient magnitude axis, bucketed into the same
// 256-wide range on each axis.
func (d *Dataset) Get2DHistogram(modality uint64) ([]uint64, error) {
	if err := d.checkModality(modality); err != nil {
		return nil, err
	}
	bins1D := d.histogramBins(modality)
	out := make([]uint64, 256*256)
	for v, count := range bins1D {
		g := v / 2
		out[v*256+g] += count
	}
	return out, nil
}

func (d *Dataset) GetBrick(key model.BrickKey) (data []byte, success bool, err error) {
	if err := d.checkModality(key.Modality); err != nil {
		return nil, false, err
	}
	origin, counts, err := d.brickBounds(key)
	if err != nil {
		return nil, false, err
	}
	if counts.X == 0 || counts.Y == 0 || counts.Z == 0 {
		return nil, false, nil
	}

	out := make([]byte, int(counts.X)*int(counts.Y)*int(counts.Z))
	i := 0
	for z := int64(0); z < int64(counts.Z); z++ {
		for y := int64(0); y < int64(counts.Y); y++ {
			for x := int64(0); x < int64(counts.X); x++ {
				gx, gy, gz := origin[0]+x, origin[1]+y, origin[2]+z
				out[i] = d.sample(key, gx, gy, gz)
				i++
			}
		}
	}
	return out, true, nil
}

// String identifies the dataset for logging.
func (d *Dataset) String() string {
	return fmt.Sprintf("fixture.Dataset{id=%s,modalities=%d}", d.id, len(d.modalities))
}
