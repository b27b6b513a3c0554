package renderer

import (
	"context"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/trinity-vr/trinity/model"
)

// Dummy accepts every command and always reports an empty frame. It exists
// only as the minimal bring-up fixture — never a stand-in for the paging
// renderer's semantics.
type Dummy struct {
	mu      sync.Mutex
	camera  cameraState
	mode    model.RenderMode
	running bool
}

var _ Renderer = (*Dummy)(nil)

func NewDummy() *Dummy { return &Dummy{} }

func (d *Dummy) InitContext(ctx context.Context, width, height uint32) error { return nil }

func (d *Dummy) Start(ctx context.Context) error {
	d.mu.Lock()
	d.running = true
	d.mu.Unlock()
	return nil
}

func (d *Dummy) Stop(ctx context.Context) error {
	d.mu.Lock()
	d.running = false
	d.mu.Unlock()
	return nil
}

func (d *Dummy) Proceed(ctx context.Context) (Frame, error) { return Frame{}, nil }

func (d *Dummy) SetIsoValue(v float32) {}

func (d *Dummy) SetRenderMode(mode model.RenderMode) error {
	d.mu.Lock()
	d.mode = mode
	d.mu.Unlock()
	return nil
}

func (d *Dummy) SupportsRenderMode(mode model.RenderMode) bool { return true }

func (d *Dummy) SetTransferFunction1D(values []float64) {}
func (d *Dummy) SetTransferFunction2D(values []float64) {}

func (d *Dummy) SetActiveModality(modality uint64) error { return nil }
func (d *Dummy) SetActiveTimestep(timestep uint64) error { return nil }

func (d *Dummy) ZoomCamera(zoom float32) {
	d.mu.Lock()
	d.camera.zoom(zoom)
	d.mu.Unlock()
}

func (d *Dummy) MoveCamera(delta mgl32.Vec3) {
	d.mu.Lock()
	d.camera.move(delta)
	d.mu.Unlock()
}

func (d *Dummy) RotateCamera(yaw, pitch float32) {
	d.mu.Lock()
	d.camera.rotate(yaw, pitch)
	d.mu.Unlock()
}
