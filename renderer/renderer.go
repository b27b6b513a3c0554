// Package renderer defines the Renderer seam a RenderSession drives: the
// set of mutations frontend commands apply directly (camera, transfer
// function, render mode, lifecycle) and the single output each render pass
// produces — an RGBA8 frame the VisStreamSender forwards. Dummy and Simple
// are the two non-paging implementations of the "dummy | simple |
// grid-leaper" trio; the third lives in package gridleaper.
package renderer

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/trinity-vr/trinity/model"
)

// Renderer is implemented by every concrete render backend a RenderSession
// can own. Every mutator is called with the session's control loop holding
// no other lock; implementations serialize their own state.
type Renderer interface {
	InitContext(ctx context.Context, width, height uint32) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	// Proceed advances one frame and returns its pixels, or an empty Frame
	// if the renderer has nothing new to show.
	Proceed(ctx context.Context) (Frame, error)

	SetIsoValue(v float32)
	SetRenderMode(mode model.RenderMode) error
	SupportsRenderMode(mode model.RenderMode) bool
	SetTransferFunction1D(values []float64)
	SetTransferFunction2D(values []float64)
	SetActiveModality(modality uint64) error
	SetActiveTimestep(timestep uint64) error

	ZoomCamera(zoom float32)
	MoveCamera(delta mgl32.Vec3)
	RotateCamera(yaw, pitch float32)
}

// Frame is one rendered RGBA8 image. An empty Frame (Width==0) is the
// explicit idle signal a VisStreamSender forwards to its peer as-is rather
// than reusing the previous frame's pixels.
type Frame struct {
	Width, Height uint32
	Pixels        []byte // len == Width*Height*4, row-major, RGBA8
}

// Empty reports whether f carries no pixel data.
func (f Frame) Empty() bool { return f.Width == 0 || f.Height == 0 }

// cameraState is the shared pan/zoom/orbit state both Dummy and Simple
// mutate identically; grid-leaper.Renderer embeds the same shape.
type cameraState struct {
	Yaw, Pitch float32
	Zoom       float32
	Position   mgl32.Vec3
}

func (c *cameraState) zoom(delta float32)            { c.Zoom += delta }
func (c *cameraState) move(delta mgl32.Vec3)          { c.Position = c.Position.Add(delta) }
func (c *cameraState) rotate(yaw, pitch float32)      { c.Yaw += yaw; c.Pitch += pitch }
