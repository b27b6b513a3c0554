package procnode

import (
	"context"
	"fmt"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/renderer"
	"github.com/trinity-vr/trinity/session"
	"github.com/trinity-vr/trinity/vis"
	"github.com/trinity-vr/trinity/wire"
)

// Factory builds CommandHandlers that mutate a renderer.Renderer directly,
// pushing whatever frame ProceedRendering produces onto the session's vis
// Sender rather than returning it in the reply.
type Factory struct {
	Renderer renderer.Renderer
	Sender   *vis.Sender
}

var _ session.CommandFactory = Factory{}

func (f Factory) Create(req *wire.Request) (session.CommandHandler, error) {
	return renderHandler{f: f, req: req}, nil
}

type renderHandler struct {
	f   Factory
	req *wire.Request
}

func (h renderHandler) Execute(ctx context.Context) (wire.ReplyParams, error) {
	r := h.f.Renderer
	switch p := h.req.Params.(type) {
	case *wire.InitContextRequest:
		if err := r.InitContext(ctx, p.Width, p.Height); err != nil {
			return nil, err
		}
		return &wire.InitContextReply{}, nil

	case *wire.StartRenderingRequest:
		if err := r.Start(ctx); err != nil {
			return nil, err
		}
		return &wire.StartRenderingReply{}, nil

	case *wire.StopRenderingRequest:
		if err := r.Stop(ctx); err != nil {
			return nil, err
		}
		return &wire.StopRenderingReply{}, nil

	case *wire.ProceedRenderingRequest:
		frame, err := r.Proceed(ctx)
		if err != nil {
			return nil, err
		}
		h.f.Sender.Send(frame)
		return &wire.ProceedRenderingReply{}, nil

	case *wire.SetIsoValueRequest:
		r.SetIsoValue(p.Value)
		return &wire.SetIsoValueReply{}, nil

	case *wire.SetRenderModeRequest:
		if err := r.SetRenderMode(p.Mode); err != nil {
			return nil, err
		}
		return &wire.SetRenderModeReply{}, nil

	case *wire.SupportsRenderModeRequest:
		return &wire.SupportsRenderModeReply{Supported: r.SupportsRenderMode(p.Mode)}, nil

	case *wire.ZoomCameraRequest:
		r.ZoomCamera(p.Zoom)
		return &wire.ZoomCameraReply{}, nil

	case *wire.MoveCameraRequest:
		r.MoveCamera(p.Delta)
		return &wire.MoveCameraReply{}, nil

	case *wire.RotateCameraRequest:
		r.RotateCamera(p.Yaw, p.Pitch)
		return &wire.RotateCameraReply{}, nil

	case *wire.SetActiveModalityRequest:
		if err := r.SetActiveModality(p.Modality); err != nil {
			return nil, err
		}
		return &wire.SetActiveModalityReply{}, nil

	case *wire.SetActiveTimestepRequest:
		if err := r.SetActiveTimestep(p.Timestep); err != nil {
			return nil, err
		}
		return &wire.SetActiveTimestepReply{}, nil

	case *wire.SetTransferFunction1DRequest:
		r.SetTransferFunction1D(p.Values)
		return &wire.SetTransferFunction1DReply{}, nil

	case *wire.SetTransferFunction2DRequest:
		r.SetTransferFunction2D(p.Values)
		return &wire.SetTransferFunction2DReply{}, nil

	case *wire.CloseSessionRequest:
		h.f.Sender.Close()
		return &wire.CloseSessionReply{}, nil

	default:
		return nil, errs.New(errs.ProtocolError, "render session: unexpected command %s", fmt.Sprintf("%T", p))
	}
}
