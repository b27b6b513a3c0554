// Package procnode implements the processing node: the process that opens
// an I/O session against a dataset, owns a renderer (dummy, simple, or
// grid-leaper), and drives that renderer from a frontend's commands while
// streaming its output frames back over a separate vis connection.
package procnode

import (
	"context"
	"time"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/gridleaper"
	"github.com/trinity-vr/trinity/proxy"
	"github.com/trinity-vr/trinity/renderer"
	"github.com/trinity-vr/trinity/session"
	"github.com/trinity-vr/trinity/telemetry"
	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/vis"
	"github.com/trinity-vr/trinity/wire"
)

const (
	nodeReceiveTimeout = 2 * time.Second
	ioDialTimeout      = 5 * time.Second
	ioCallTimeout      = 10 * time.Second

	// defaultPoolBudgetBytes bounds the grid-leaper brick pool's GPU-side
	// footprint when a session doesn't pin a tighter budget.
	defaultPoolBudgetBytes = 256 << 20
	defaultMaxTextureEdge  = 2048
)

// Node is the processing node's well-known listening endpoint: it answers
// InitProcessingSession directly on sid 0, opening its own I/O session and
// renderer before handing control off to a per-session Session on a
// dynamically bound port.
type Node struct {
	host    string
	manager *session.Manager
	log     telemetry.Logger
}

// NewNode builds a Node whose sessions and vis streams bind on host.
func NewNode(host string, log telemetry.Logger) *Node {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	return &Node{
		host:    host,
		manager: session.NewManager(host, log),
		log:     log,
	}
}

// Serve accepts connections on acceptor and answers node-level requests
// until ctx is canceled.
func (n *Node) Serve(ctx context.Context, acceptor *transport.Acceptor) {
	stop := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()

	for {
		ch, err := acceptor.Accept(stop)
		if err != nil {
			if err != transport.ErrStopped {
				n.log.Errorf("node accept failed: %v", err)
			}
			return
		}
		go n.serveConn(ctx, ch)
	}
}

func (n *Node) serveConn(ctx context.Context, ch *transport.Channel) {
	defer ch.Close()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		payload, err := ch.Receive(nodeReceiveTimeout)
		if err != nil {
			if !isTimeoutErr(err) {
				return
			}
			continue
		}
		req, err := wire.RequestFromBytes(payload)
		if err != nil {
			n.log.Errorf("node: malformed request: %v", err)
			continue
		}
		rep, err := n.dispatch(ctx, req)
		if err != nil {
			rep = &wire.Reply{Type: wire.TypeError, Rid: req.Rid, Sid: 0, Params: &wire.ErrorReply{Code: errs.CodeOf(err)}}
		}
		b, encErr := rep.ToBytes()
		if encErr != nil {
			n.log.Errorf("node: cannot encode reply: %v", encErr)
			return
		}
		if err := ch.Send(b); err != nil {
			n.log.Errorf("node: cannot send reply: %v", err)
			return
		}
	}
}

func (n *Node) dispatch(ctx context.Context, req *wire.Request) (*wire.Reply, error) {
	p, ok := req.Params.(*wire.InitProcessingSessionRequest)
	if !ok {
		return nil, errs.New(errs.ProtocolError, "node: unexpected command %s", wire.ToString(req.Type))
	}

	source, err := proxy.DialIOSession(p.IOProtocol, p.IOHost, p.IOPort, p.FileId, ioDialTimeout, ioCallTimeout)
	if err != nil {
		return nil, errs.Wrap(errs.ConnectFailed, err, "processing session: cannot reach io node for %q", p.FileId)
	}

	r, err := buildRenderer(ctx, p.RendererType, source, n.log)
	if err != nil {
		source.Close(ctx)
		return nil, err
	}
	if err := r.InitContext(ctx, p.ResX, p.ResY); err != nil {
		source.Close(ctx)
		return nil, errs.Wrap(errs.InvalidArgument, err, "processing session: cannot size context to %dx%d", p.ResX, p.ResY)
	}

	sender := vis.NewSender(n.log)
	visAcceptor, err := transport.Bind(p.Protocol, n.host, 0, n.log)
	if err != nil {
		source.Close(ctx)
		return nil, errs.Wrap(errs.ConnectFailed, err, "processing session: cannot bind vis endpoint")
	}

	factory := Factory{Renderer: r, Sender: sender}
	s, err := n.manager.Start(ctx, p.Protocol, factory)
	if err != nil {
		visAcceptor.Close()
		source.Close(ctx)
		return nil, errs.Wrap(errs.ConnectFailed, err, "cannot start processing session")
	}

	go serveVis(ctx, visAcceptor, sender, n.log)

	rep := &wire.InitProcessingSessionReply{
		Sid:         s.Sid,
		ControlPort: s.ControlEndpoint().Port,
		VisPort:     visAcceptor.Endpoint().Port,
	}
	return &wire.Reply{Type: wire.TypeInitProcessingSession, Rid: req.Rid, Sid: s.Sid, Params: rep}, nil
}

// buildRenderer constructs the renderer backend named by rendererType.
// "gridleaper" is the production out-of-core pipeline; "simple" and
// "dummy" are the two non-paging bring-up renderers.
func buildRenderer(ctx context.Context, rendererType string, source *proxy.IOProxy, log telemetry.Logger) (renderer.Renderer, error) {
	switch rendererType {
	case "", "gridleaper":
		return gridleaper.NewRenderer(ctx, source, gridleaper.NopSink{}, 0, defaultPoolBudgetBytes, defaultMaxTextureEdge, log)
	case "simple":
		return renderer.NewSimple(source), nil
	case "dummy":
		return renderer.NewDummy(), nil
	default:
		return nil, errs.New(errs.InvalidArgument, "processing session: unknown renderer type %q", rendererType)
	}
}

// serveVis accepts the single vis-stream peer and forwards frames until the
// context is canceled or the sender is closed.
func serveVis(ctx context.Context, acceptor *transport.Acceptor, sender *vis.Sender, log telemetry.Logger) {
	defer acceptor.Close()
	stop := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()

	ch, err := acceptor.Accept(stop)
	if err != nil {
		if err != transport.ErrStopped {
			log.Errorf("vis: accept failed: %v", err)
		}
		return
	}
	defer ch.Close()

	if err := sender.Run(ctx, ch); err != nil {
		log.Debugf("vis: stream ended: %v", err)
	}
}

func isTimeoutErr(err error) bool {
	type timeout interface{ Timeout() bool }
	te, ok := err.(timeout)
	return ok && te.Timeout()
}
