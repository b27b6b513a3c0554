package renderer

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/trinity-vr/trinity/model"
)

// DataSource is the minimal read side Simple needs from the I/O proxy: just
// enough to pull the single coarsest-LOD brick once and answer a modality's
// value range. The paging renderer's much larger BrickSource contract lives
// in package gridleaper.
type DataSource interface {
	GetLargestSingleBrickLOD(modality uint64) (uint64, error)
	GetRange(modality uint64) (model.Vec2f, error)
	GetBrick(ctx context.Context, key model.BrickKey) (data []byte, ok bool, err error)
}

// Simple is a non-paging renderer: it loads the dataset's single coarsest
// brick once and rasterizes a flat-shaded frame driven by the current iso
// value and camera zoom, compositing with the standard library's
// image/draw. It never
// streams additional bricks and never pages — useful for smoke tests and
// low-end clients that accept a coarse preview instead of the full
// grid-leaper pipeline.
type Simple struct {
	source DataSource

	mu        sync.Mutex
	width     uint32
	height    uint32
	camera    cameraState
	mode      model.RenderMode
	isoValue  float32
	modality  uint64
	timestep  uint64
	running   bool
	baseLevel float32 // average brick intensity in [0,1], sampled once
	loaded    bool
}

var _ Renderer = (*Simple)(nil)

// NewSimple builds a Simple renderer pulling its one coarse brick from source.
func NewSimple(source DataSource) *Simple {
	return &Simple{source: source}
}

func (s *Simple) InitContext(ctx context.Context, width, height uint32) error {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
	return s.loadCoarseBrick(ctx)
}

func (s *Simple) loadCoarseBrick(ctx context.Context) error {
	s.mu.Lock()
	modality := s.modality
	timestep := s.timestep
	s.mu.Unlock()

	lod, err := s.source.GetLargestSingleBrickLOD(modality)
	if err != nil {
		return err
	}
	data, ok, err := s.source.GetBrick(ctx, model.BrickKey{Modality: modality, Timestep: timestep, LOD: lod, LinearIndex: 0})
	if err != nil {
		return err
	}
	var avg float32
	if ok && len(data) > 0 {
		var sum int
		for _, b := range data {
			sum += int(b)
		}
		avg = float32(sum) / float32(len(data)) / 255.0
	}
	s.mu.Lock()
	s.baseLevel = avg
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *Simple) Start(ctx context.Context) error {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	return nil
}

func (s *Simple) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return nil
}

func (s *Simple) Proceed(ctx context.Context) (Frame, error) {
	s.mu.Lock()
	running := s.running
	w, h := s.width, s.height
	level := s.baseLevel
	iso := s.isoValue
	zoom := s.camera.Zoom
	s.mu.Unlock()

	if !running || w == 0 || h == 0 {
		return Frame{}, nil
	}

	brightness := clamp01(level*0.6 + iso*0.4 + zoom*0.05)
	shade := uint8(brightness * 255)
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: shade, G: shade, B: shade, A: 255}}, image.Point{}, draw.Src)

	return Frame{Width: w, Height: h, Pixels: img.Pix}, nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (s *Simple) SetIsoValue(v float32) {
	s.mu.Lock()
	s.isoValue = v
	s.mu.Unlock()
}

func (s *Simple) SetRenderMode(mode model.RenderMode) error {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return nil
}

func (s *Simple) SupportsRenderMode(mode model.RenderMode) bool {
	return mode == model.RenderModeTF1D || mode == model.RenderModeIso
}

func (s *Simple) SetTransferFunction1D(values []float64) {}
func (s *Simple) SetTransferFunction2D(values []float64) {}

func (s *Simple) SetActiveModality(modality uint64) error {
	s.mu.Lock()
	s.modality = modality
	s.loaded = false
	s.mu.Unlock()
	return s.loadCoarseBrick(context.Background())
}

func (s *Simple) SetActiveTimestep(timestep uint64) error {
	s.mu.Lock()
	s.timestep = timestep
	s.loaded = false
	s.mu.Unlock()
	return s.loadCoarseBrick(context.Background())
}

func (s *Simple) ZoomCamera(zoom float32) {
	s.mu.Lock()
	s.camera.zoom(zoom)
	s.mu.Unlock()
}

func (s *Simple) MoveCamera(delta mgl32.Vec3) {
	s.mu.Lock()
	s.camera.move(delta)
	s.mu.Unlock()
}

func (s *Simple) RotateCamera(yaw, pitch float32) {
	s.mu.Lock()
	s.camera.rotate(yaw, pitch)
	s.mu.Unlock()
}
