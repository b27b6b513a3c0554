package proxy

import (
	"time"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/model"
	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/wire"
)

// ProcessingProxy is the client stub a frontend drives against a processing
// node's RenderSession: one method per rendering VclType,
// mirroring the mutator surface renderer.Renderer exposes server-side.
type ProcessingProxy struct {
	client
}

// DialProcessingSession opens a control channel to host:port, calls
// InitProcessingSession for fileId against the named I/O node, and returns a
// proxy bound to the session it gets back along with the vis-stream port the
// caller must dial separately to receive frames.
func DialProcessingSession(protocol, host, port, rendererType, fileId, ioProtocol, ioHost, ioPort string, resX, resY uint32, dialTimeout, callTimeout time.Duration) (*ProcessingProxy, string, error) {
	ep := transport.Endpoint{Protocol: protocol, Host: host, Port: port}
	ch, err := transport.Dial(ep, dialTimeout)
	if err != nil {
		return nil, "", errs.Wrap(errs.ConnectFailed, err, "dial processing node %s", ep)
	}
	p := &ProcessingProxy{client: newClient(ch, 0, callTimeout)}

	req := &wire.InitProcessingSessionRequest{
		Protocol:     protocol,
		RendererType: rendererType,
		FileId:       fileId,
		IOProtocol:   ioProtocol,
		IOHost:       ioHost,
		IOPort:       ioPort,
		ResX:         resX,
		ResY:         resY,
	}
	rep, err := p.call(wire.TypeInitProcessingSession, req)
	if err != nil {
		ch.Close()
		return nil, "", err
	}
	init := rep.(*wire.InitProcessingSessionReply)

	sessionEp := transport.Endpoint{Protocol: protocol, Host: host, Port: init.ControlPort}
	sessionCh, err := transport.Dial(sessionEp, dialTimeout)
	if err != nil {
		ch.Close()
		return nil, "", errs.Wrap(errs.ConnectFailed, err, "dial processing session control port %s", sessionEp)
	}
	ch.Close()

	return &ProcessingProxy{client: newClient(sessionCh, init.Sid, callTimeout)}, init.VisPort, nil
}

// NewProcessingProxy wraps an already-dialed session control channel.
func NewProcessingProxy(ch *transport.Channel, sid uint32, callTimeout time.Duration) *ProcessingProxy {
	return &ProcessingProxy{client: newClient(ch, sid, callTimeout)}
}

func (p *ProcessingProxy) Close() error {
	p.call(wire.TypeCloseSession, &wire.CloseSessionRequest{})
	return p.client.Close()
}

func (p *ProcessingProxy) InitContext(width, height uint32) error {
	_, err := p.call(wire.TypeInitContext, &wire.InitContextRequest{Width: width, Height: height})
	return err
}

func (p *ProcessingProxy) StartRendering() error {
	_, err := p.call(wire.TypeStartRendering, &wire.StartRenderingRequest{})
	return err
}

func (p *ProcessingProxy) StopRendering() error {
	_, err := p.call(wire.TypeStopRendering, &wire.StopRenderingRequest{})
	return err
}

// ProceedRendering advances the session's renderer by one frame. The frame
// itself is not in the reply — it arrives on the session's vis stream.
func (p *ProcessingProxy) ProceedRendering() error {
	_, err := p.call(wire.TypeProceedRendering, &wire.ProceedRenderingRequest{})
	return err
}

func (p *ProcessingProxy) SetIsoValue(value float32) error {
	_, err := p.call(wire.TypeSetIsoValue, &wire.SetIsoValueRequest{Value: value})
	return err
}

func (p *ProcessingProxy) SetRenderMode(mode model.RenderMode) error {
	_, err := p.call(wire.TypeSetRenderMode, &wire.SetRenderModeRequest{Mode: mode})
	return err
}

func (p *ProcessingProxy) SupportsRenderMode(mode model.RenderMode) (bool, error) {
	rep, err := p.call(wire.TypeSupportsRenderMode, &wire.SupportsRenderModeRequest{Mode: mode})
	if err != nil {
		return false, err
	}
	return rep.(*wire.SupportsRenderModeReply).Supported, nil
}

func (p *ProcessingProxy) ZoomCamera(zoom float32) error {
	_, err := p.call(wire.TypeZoomCamera, &wire.ZoomCameraRequest{Zoom: zoom})
	return err
}

func (p *ProcessingProxy) MoveCamera(delta model.Vec3f) error {
	_, err := p.call(wire.TypeMoveCamera, &wire.MoveCameraRequest{Delta: delta})
	return err
}

func (p *ProcessingProxy) RotateCamera(yaw, pitch float32) error {
	_, err := p.call(wire.TypeRotateCamera, &wire.RotateCameraRequest{Yaw: yaw, Pitch: pitch})
	return err
}

func (p *ProcessingProxy) SetActiveModality(modality uint64) error {
	_, err := p.call(wire.TypeSetActiveModality, &wire.SetActiveModalityRequest{Modality: modality})
	return err
}

func (p *ProcessingProxy) SetActiveTimestep(timestep uint64) error {
	_, err := p.call(wire.TypeSetActiveTimestep, &wire.SetActiveTimestepRequest{Timestep: timestep})
	return err
}

func (p *ProcessingProxy) SetTransferFunction1D(values []float64) error {
	_, err := p.call(wire.TypeSetTransferFunction1D, &wire.SetTransferFunction1DRequest{Values: values})
	return err
}

func (p *ProcessingProxy) SetTransferFunction2D(values []float64) error {
	_, err := p.call(wire.TypeSetTransferFunction2D, &wire.SetTransferFunction2DRequest{Values: values})
	return err
}
