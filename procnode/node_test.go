package procnode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/ionode"
	"github.com/trinity-vr/trinity/proxy"
	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/vis"
	"github.com/trinity-vr/trinity/wire"
)

func startIONodeForProc(t *testing.T) string {
	t.Helper()
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)
	n := ionode.NewNode("127.0.0.1", nil)
	ctx, cancel := context.WithCancel(context.Background())
	go n.Serve(ctx, acceptor)
	t.Cleanup(cancel)
	return acceptor.Endpoint().Port
}

// startKillableIONodeForProc is like startIONodeForProc but also returns the
// node's own cancel func, letting a caller sever every session the node is
// currently serving without going through any client-initiated Close.
func startKillableIONodeForProc(t *testing.T) (port string, kill func()) {
	t.Helper()
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)
	n := ionode.NewNode("127.0.0.1", nil)
	ctx, cancel := context.WithCancel(context.Background())
	go n.Serve(ctx, acceptor)
	t.Cleanup(cancel)
	return acceptor.Endpoint().Port, cancel
}

func startProcNode(t *testing.T) *transport.Channel {
	t.Helper()
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)
	n := NewNode("127.0.0.1", nil)
	ctx, cancel := context.WithCancel(context.Background())
	go n.Serve(ctx, acceptor)
	t.Cleanup(cancel)

	client, err := transport.Dial(acceptor.Endpoint(), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func roundTrip(t *testing.T, ch *transport.Channel, req *wire.Request) *wire.Reply {
	t.Helper()
	b, err := req.ToBytes()
	require.NoError(t, err)
	require.NoError(t, ch.Send(b))
	respBytes, err := ch.Receive(3 * time.Second)
	require.NoError(t, err)
	rep, err := wire.ReplyFromBytes(respBytes)
	require.NoError(t, err)
	return rep
}

func TestInitProcessingSessionWithDummyRenderer(t *testing.T) {
	ioPort := startIONodeForProc(t)
	client := startProcNode(t)

	req := &wire.InitProcessingSessionRequest{
		Protocol:     "tcp",
		RendererType: "dummy",
		FileId:       "sphere",
		IOProtocol:   "tcp",
		IOHost:       "127.0.0.1",
		IOPort:       ioPort,
		ResX:         32,
		ResY:         32,
	}
	rep := roundTrip(t, client, &wire.Request{Type: wire.TypeInitProcessingSession, Rid: 1, Params: req})
	init, ok := rep.Params.(*wire.InitProcessingSessionReply)
	require.True(t, ok)
	assert.NotEmpty(t, init.ControlPort)
	assert.NotEmpty(t, init.VisPort)
}

func TestInitProcessingSessionWithGridleaperThenProceedRendering(t *testing.T) {
	ioPort := startIONodeForProc(t)
	client := startProcNode(t)

	req := &wire.InitProcessingSessionRequest{
		Protocol:     "tcp",
		RendererType: "gridleaper",
		FileId:       "sphere",
		IOProtocol:   "tcp",
		IOHost:       "127.0.0.1",
		IOPort:       ioPort,
		ResX:         16,
		ResY:         16,
	}
	rep := roundTrip(t, client, &wire.Request{Type: wire.TypeInitProcessingSession, Rid: 1, Params: req})
	init, ok := rep.Params.(*wire.InitProcessingSessionReply)
	require.True(t, ok)

	sessionEp := transport.Endpoint{Protocol: "tcp", Host: "127.0.0.1", Port: init.ControlPort}
	sessionCh, err := transport.Dial(sessionEp, time.Second)
	require.NoError(t, err)
	defer sessionCh.Close()

	visEp := transport.Endpoint{Protocol: "tcp", Host: "127.0.0.1", Port: init.VisPort}
	visCh, err := transport.Dial(visEp, time.Second)
	require.NoError(t, err)
	defer visCh.Close()

	startRep := roundTrip(t, sessionCh, &wire.Request{
		Type: wire.TypeStartRendering, Rid: 2, Sid: init.Sid, Params: &wire.StartRenderingRequest{},
	})
	_, ok = startRep.Params.(*wire.StartRenderingReply)
	require.True(t, ok)

	proceedRep := roundTrip(t, sessionCh, &wire.Request{
		Type: wire.TypeProceedRendering, Rid: 3, Sid: init.Sid, Params: &wire.ProceedRenderingRequest{},
	})
	_, ok = proceedRep.Params.(*wire.ProceedRenderingReply)
	require.True(t, ok)

	frame, err := vis.ReadFrame(visCh)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), frame.Width)
	assert.Equal(t, uint32(16), frame.Height)
}

// TestAbruptIONodeKillSurfacesRemoteErrorToRenderSession kills the I/O node
// backing an already-running gridleaper render session out from under it,
// then drives the session again. The render session's control loop finds its
// own IOProxy call failing locally (a dead connection), wraps that into an
// ErrorReply the way session.Session.sendErrorFor always does, and whoever is
// driving the session sees that cross back over the wire as errs.RemoteError.
func TestAbruptIONodeKillSurfacesRemoteErrorToRenderSession(t *testing.T) {
	ioPort, killIONode := startKillableIONodeForProc(t)
	client := startProcNode(t)

	req := &wire.InitProcessingSessionRequest{
		Protocol:     "tcp",
		RendererType: "gridleaper",
		FileId:       "sphere",
		IOProtocol:   "tcp",
		IOHost:       "127.0.0.1",
		IOPort:       ioPort,
		ResX:         16,
		ResY:         16,
	}
	rep := roundTrip(t, client, &wire.Request{Type: wire.TypeInitProcessingSession, Rid: 1, Params: req})
	init, ok := rep.Params.(*wire.InitProcessingSessionReply)
	require.True(t, ok)

	const callTimeout = 5 * time.Second
	sessionEp := transport.Endpoint{Protocol: "tcp", Host: "127.0.0.1", Port: init.ControlPort}
	sessionCh, err := transport.Dial(sessionEp, time.Second)
	require.NoError(t, err)
	defer sessionCh.Close()
	p := proxy.NewProcessingProxy(sessionCh, init.Sid, callTimeout)

	require.NoError(t, p.StartRendering())
	require.NoError(t, p.ProceedRendering(), "baseline frame must render while the io node is alive")

	killIONode()
	// the io session's own receive loop polls with a bounded deadline before
	// it notices the cancellation and closes the connection out from under
	// the renderer's IOProxy; give it enough room to do so.
	time.Sleep(2500 * time.Millisecond)

	require.NoError(t, p.SetActiveModality(1), "a local setter, independent of the dead io connection")

	start := time.Now()
	proceedErr := p.ProceedRendering()
	elapsed := time.Since(start)

	require.Error(t, proceedErr, "switching modality forces a metadata reload that must hit the dead io session")
	assert.Less(t, elapsed, 2*callTimeout, "must surface the failure within two call deadlines, not hang")

	var e *errs.Error
	require.True(t, errors.As(proceedErr, &e), "error must unwrap to *errs.Error")
	assert.Equal(t, errs.RemoteError, e.Kind)

	assert.NoError(t, p.Close(), "the render session's control loop must still be alive to answer CloseSession")
}
