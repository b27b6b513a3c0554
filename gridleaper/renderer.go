package gridleaper

import (
	"context"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/trinity-vr/trinity/model"
	"github.com/trinity-vr/trinity/renderer"
	"github.com/trinity-vr/trinity/telemetry"
)

// DataSource is everything the grid-leaper renderer needs from the I/O
// side: the metadata calls that size the pool and build the layout, plus
// BrickSource's fetch methods the brick-getter drives. Satisfied by an
// IOProxy stub; every method but GetDataType returns an error because, unlike
// the in-process ionode.IIO it ultimately forwards to, every call here is a
// network round trip.
type DataSource interface {
	BrickSource
	GetMaxUsedBrickSizes() (model.Vec3u64, error)
	GetBrickOverlapSize() (model.Vec3ui, error)
	GetLargestSingleBrickLOD(modality uint64) (uint64, error)
	GetLODLevelCount(modality uint64) (int32, error)
	GetBrickLayout(lod, modality uint64) (model.Vec3u64, error)
	GetDataType() model.ValueType
	GetSemantic(modality uint64) (model.Semantic, error)
	MaxMinForKey(ctx context.Context, key model.BrickKey) (model.MinMaxBlock, error)
}

// Renderer is the grid-leaper implementation of renderer.Renderer: the
// paging brick cache plus the per-frame visibility pass, wired to a
// brick-getter worker and a TextureSink. Unlike renderer.Dummy/Simple it
// never holds the whole dataset resident — it pages the working set through
// a fixed-capacity pool.
type Renderer struct {
	source DataSource
	sink   TextureSink
	getter *BrickGetter
	log    telemetry.Logger

	mu         sync.Mutex
	pool       *Pool
	modality   uint64
	timestep   uint64
	visibility model.VisibilityState
	width      uint32
	height     uint32
	running    bool
	yaw, pitch float32
	zoom       float32
	position   mgl32.Vec3
	feedback   []BrickCoord

	getterCancel context.CancelFunc
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer builds the pool's layout and slot capacity from source's
// metadata, uploads the reserved coarsest brick, and starts the
// brick-getter worker.
func NewRenderer(ctx context.Context, source DataSource, sink TextureSink, modality uint64, budgetBytes, maxTextureEdge uint64, log telemetry.Logger) (*Renderer, error) {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	if sink == nil {
		sink = NopSink{}
	}

	maxUsed, err := source.GetMaxUsedBrickSizes()
	if err != nil {
		return nil, err
	}
	lodCount, err := source.GetLODLevelCount(modality)
	if err != nil {
		return nil, err
	}
	levels := make([]model.Vec3u64, lodCount)
	for lod := range levels {
		levels[lod], err = source.GetBrickLayout(uint64(lod), modality)
		if err != nil {
			return nil, err
		}
	}
	layout := NewLayout(levels)

	valueType := source.GetDataType()
	semantic, err := source.GetSemantic(modality)
	if err != nil {
		return nil, err
	}
	elemSize := ElementSize(valueType, semantic)

	poolDims := PoolDimensions(maxUsed, layout.TotalBricks(), budgetBytes, elemSize, maxTextureEdge)
	capacity := model.Vec3u64{
		X: max64(poolDims.X/maxUsed.X, 1),
		Y: max64(poolDims.Y/maxUsed.Y, 1),
		Z: max64(poolDims.Z/maxUsed.Z, 1),
	}
	pool := NewPool(layout, capacity)

	getterCtx, cancel := context.WithCancel(ctx)
	getter := NewBrickGetter(source, log)
	go getter.Run(getterCtx)

	r := &Renderer{
		source:       source,
		sink:         sink,
		getter:       getter,
		log:          log,
		pool:         pool,
		modality:     modality,
		zoom:         1,
		getterCancel: cancel,
	}

	meta, err := r.loadBrickMetadata(ctx, modality, 0)
	if err != nil {
		cancel()
		return nil, err
	}
	pool.SetBrickMetadata(modality, 0, meta)

	coarsestLOD := uint32(lodCount - 1)
	coarsestCoord := BrickCoord{LOD: coarsestLOD}
	coarsestID := layout.BrickID(coarsestCoord)
	key := BrickKeyOf(layout, modality, 0, coarsestCoord)
	voxels, err := source.GetBrickVoxelCounts(ctx, key)
	if err != nil {
		cancel()
		return nil, err
	}
	data, ok, err := source.GetBrick(ctx, key)
	if err != nil {
		cancel()
		return nil, err
	}
	if ok {
		pool.UploadFirstBrick(sink, coarsestID, voxels, data)
	}

	return r, nil
}

func max64(v, min uint64) uint64 {
	if v < min {
		return min
	}
	return v
}

// loadBrickMetadata pulls the min/max acceleration structure one brick at a
// time through MaxMinForKey, the only metadata endpoint the wire protocol
// exposes for this.
func (r *Renderer) loadBrickMetadata(ctx context.Context, modality, timestep uint64) ([]model.MinMaxBlock, error) {
	layout := r.pool.Layout()
	meta := make([]model.MinMaxBlock, layout.TotalBricks())
	for lod := 0; lod < layout.LevelCount(); lod++ {
		l := layout.LevelLayout(uint32(lod))
		for z := uint64(0); z < l.Z; z++ {
			for y := uint64(0); y < l.Y; y++ {
				for x := uint64(0); x < l.X; x++ {
					coord := BrickCoord{X: uint32(x), Y: uint32(y), Z: uint32(z), LOD: uint32(lod)}
					key := BrickKeyOf(layout, modality, timestep, coord)
					mm, err := r.source.MaxMinForKey(ctx, key)
					if err != nil {
						return nil, err
					}
					meta[layout.BrickID(coord)] = mm
				}
			}
		}
	}
	return meta, nil
}

// ReportMissingBricks is called by the real GPU readback path (behind
// TextureSink; see its doc comment) with the brick coordinates the shader's
// feedback buffer flagged missing this frame. It only queues them; the
// paging pass runs on the next Proceed.
func (r *Renderer) ReportMissingBricks(coords []BrickCoord) {
	r.mu.Lock()
	r.feedback = append(r.feedback, coords...)
	r.mu.Unlock()
}

func (r *Renderer) InitContext(ctx context.Context, width, height uint32) error {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	return nil
}

func (r *Renderer) Start(ctx context.Context) error {
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()
	return nil
}

func (r *Renderer) Stop(ctx context.Context) error {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
	return nil
}

// Close stops the brick-getter worker. Call once the render session tears
// down.
func (r *Renderer) Close() { r.getterCancel() }

// Proceed runs one paging+visibility frame and
// composites a frame whose brightness reflects how much of the working set
// is currently resident — the host-side signal a real shader would instead
// derive by sampling the pool texture directly.
func (r *Renderer) Proceed(ctx context.Context) (renderer.Frame, error) {
	r.mu.Lock()
	running := r.running
	width, height := r.width, r.height
	modality, timestep := r.modality, r.timestep
	visibility := r.visibility
	feedback := r.feedback
	r.feedback = nil
	r.mu.Unlock()

	if !running || width == 0 || height == 0 {
		return renderer.Frame{}, nil
	}

	if !r.pool.VisibilityUpdated() {
		curModality, curTimestep := r.pool.CurrentModalityTimestep()
		meta, err := r.loadMetaIfChanged(ctx, modality, timestep, curModality, curTimestep)
		if err != nil {
			return renderer.Frame{}, err
		}
		r.pool.RecomputeVisibility(visibility, modality, timestep, meta)
		if r.sink != nil {
			r.sink.UploadMetadataTexture(r.pool.brickStatus)
		}
	}

	RequestBricks(r.pool, r.getter, r.source, r.sink, feedback, modality, timestep)

	pixels := r.composite(width, height)
	return renderer.Frame{Width: width, Height: height, Pixels: pixels}, nil
}

func (r *Renderer) loadMetaIfChanged(ctx context.Context, modality, timestep, curModality, curTimestep uint64) ([]model.MinMaxBlock, error) {
	if modality == curModality && timestep == curTimestep {
		return nil, nil // RecomputeVisibility keeps the cached structure when unchanged
	}
	return r.loadBrickMetadata(ctx, modality, timestep)
}

func (r *Renderer) composite(width, height uint32) []byte {
	resident := 0
	layout := r.pool.Layout()
	for id := uint64(0); id < layout.TotalBricks(); id++ {
		if _, ok := r.pool.Status(uint32(id)).IsResident(); ok {
			resident++
		}
	}
	fraction := float32(0)
	if layout.TotalBricks() > 0 {
		fraction = float32(resident) / float32(layout.TotalBricks())
	}
	shade := uint8(clampByte(fraction))

	pixels := make([]byte, int(width)*int(height)*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i+0] = shade
		pixels[i+1] = shade
		pixels[i+2] = shade
		pixels[i+3] = 255
	}
	return pixels
}

func clampByte(fraction float32) float32 {
	v := fraction * 255
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return v
}

func (r *Renderer) SetIsoValue(v float32) {
	r.mu.Lock()
	r.visibility.IsoValue = v
	r.pool.visibilityUpdated = false
	r.mu.Unlock()
}

func (r *Renderer) SetRenderMode(mode model.RenderMode) error {
	r.mu.Lock()
	r.visibility.Mode = mode
	r.pool.visibilityUpdated = false
	r.mu.Unlock()
	return nil
}

func (r *Renderer) SupportsRenderMode(mode model.RenderMode) bool {
	switch mode {
	case model.RenderModeTF1D, model.RenderModeTF2D, model.RenderModeIso, model.RenderModeClearView:
		return true
	default:
		return false
	}
}

func (r *Renderer) SetTransferFunction1D(values []float64) {
	if len(values) < 2 {
		return
	}
	r.mu.Lock()
	r.visibility.TF1DMin = float32(values[0])
	r.visibility.TF1DMax = float32(values[len(values)-1])
	r.pool.visibilityUpdated = false
	r.mu.Unlock()
}

func (r *Renderer) SetTransferFunction2D(values []float64) {
	if len(values) < 4 {
		return
	}
	r.mu.Lock()
	r.visibility.TF2DGradMin = float32(values[1])
	r.visibility.TF2DGradMax = float32(values[len(values)-1])
	r.pool.visibilityUpdated = false
	r.mu.Unlock()
}

func (r *Renderer) SetActiveModality(modality uint64) error {
	r.mu.Lock()
	r.modality = modality
	r.pool.visibilityUpdated = false
	r.mu.Unlock()
	return nil
}

func (r *Renderer) SetActiveTimestep(timestep uint64) error {
	r.mu.Lock()
	r.timestep = timestep
	r.pool.visibilityUpdated = false
	r.mu.Unlock()
	return nil
}

func (r *Renderer) ZoomCamera(zoom float32) {
	r.mu.Lock()
	r.zoom += zoom
	r.mu.Unlock()
}

func (r *Renderer) MoveCamera(delta mgl32.Vec3) {
	r.mu.Lock()
	r.position = r.position.Add(delta)
	r.mu.Unlock()
}

func (r *Renderer) RotateCamera(yaw, pitch float32) {
	r.mu.Lock()
	r.yaw += yaw
	r.pitch += pitch
	r.mu.Unlock()
}
