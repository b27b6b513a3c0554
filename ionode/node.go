package ionode

import (
	"context"
	"time"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/ionode/fixture"
	"github.com/trinity-vr/trinity/session"
	"github.com/trinity-vr/trinity/telemetry"
	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/wire"
)

const nodeReceiveTimeout = 2 * time.Second

// Node is the I/O node's well-known listening endpoint: it answers
// ListFiles and InitIOSession directly on sid 0, then hands a freshly
// opened dataset off to its own Session on a dynamically bound port.
type Node struct {
	catalog *Catalog
	manager *session.Manager
	log     telemetry.Logger
}

// NewNode builds a Node whose sessions bind on host.
func NewNode(host string, log telemetry.Logger) *Node {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	return &Node{
		catalog: NewCatalog(),
		manager: session.NewManager(host, log),
		log:     log,
	}
}

// Serve accepts connections on acceptor and answers node-level requests
// until ctx is canceled. Each connection may carry multiple requests.
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
		var repParams wire.ReplyParams
		if err != nil {
			repParams = &wire.ErrorReply{Code: errs.CodeOf(err)}
			rep = &wire.Reply{Type: wire.TypeError, Rid: req.Rid, Sid: 0, Params: repParams}
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
	switch p := req.Params.(type) {
	case *wire.ListFilesRequest:
		entries := n.catalog.List(p.DirId)
		return &wire.Reply{Type: wire.TypeListFiles, Rid: req.Rid, Sid: 0, Params: &wire.ListFilesReply{IOData: entries}}, nil

	case *wire.InitIOSessionRequest:
		ds := fixture.NewDataset(p.FileId)
		factory := Factory{IO: ds}
		s, err := n.manager.Start(ctx, p.Protocol, factory)
		if err != nil {
			return nil, errs.Wrap(errs.ConnectFailed, err, "cannot start io session for %q", p.FileId)
		}
		ep := s.ControlEndpoint()
		rep := &wire.InitIOSessionReply{Sid: s.Sid, ControlPort: ep.Port}
		return &wire.Reply{Type: wire.TypeInitIOSession, Rid: req.Rid, Sid: s.Sid, Params: rep}, nil

	default:
		return nil, errs.New(errs.ProtocolError, "node: unexpected command %s", wire.ToString(req.Type))
	}
}

func isTimeoutErr(err error) bool {
	type timeout interface{ Timeout() bool }
	te, ok := err.(timeout)
	return ok && te.Timeout()
}
