// Package frontend implements the client-facing entry point: it lists
// datasets off an I/O node's bare endpoint, opens a processing session
// bound to one of them, and drives that session's ProcessingProxy while
// reading frames off its vis stream.
package frontend

import (
	"time"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/proxy"
	"github.com/trinity-vr/trinity/renderer"
	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/vis"
	"github.com/trinity-vr/trinity/wire"
)

// ListFiles asks the I/O node at protocol://host:port to list the entries
// under dirId (the empty string means the root directory). Unlike every
// other I/O command, ListFiles runs directly on the node's well-known
// listening connection at sid 0 — it's answered before any
// InitIOSession handshake, since a client needs to see what datasets
// exist before it can pick one to open a session against.
func ListFiles(protocol, host, port, dirId string, dialTimeout, callTimeout time.Duration) ([]wire.IOData, error) {
	ep := transport.Endpoint{Protocol: protocol, Host: host, Port: port}
	ch, err := transport.Dial(ep, dialTimeout)
	if err != nil {
		return nil, errs.Wrap(errs.ConnectFailed, err, "dial io node %s", ep)
	}
	defer ch.Close()

	p := proxy.NewIOProxy(ch, 0, callTimeout)
	return p.ListFiles(dirId)
}

// Session is one end-to-end rendering session: a processing-node control
// proxy plus the vis channel its frames arrive on. Close tears down both.
type Session struct {
	Proxy *proxy.ProcessingProxy
	vis   *transport.Channel
}

// OpenSessionParams names a dataset and the processing node that should
// render it.
type OpenSessionParams struct {
	Protocol     string
	Host         string
	Port         string
	RendererType string
	FileId       string
	IOProtocol   string
	IOHost       string
	IOPort       string
	ResX, ResY   uint32
	DialTimeout  time.Duration
	CallTimeout  time.Duration
}

// OpenSession dials a processing node, opens a session rendering FileId
// through the named I/O node, and dials the vis stream the session
// replies with.
func OpenSession(p OpenSessionParams) (*Session, error) {
	proc, visPort, err := proxy.DialProcessingSession(
		p.Protocol, p.Host, p.Port,
		p.RendererType, p.FileId,
		p.IOProtocol, p.IOHost, p.IOPort,
		p.ResX, p.ResY,
		p.DialTimeout, p.CallTimeout,
	)
	if err != nil {
		return nil, err
	}

	visEp := transport.Endpoint{Protocol: p.Protocol, Host: p.Host, Port: visPort}
	visCh, err := transport.Dial(visEp, p.DialTimeout)
	if err != nil {
		proc.Close()
		return nil, errs.Wrap(errs.ConnectFailed, err, "dial vis endpoint %s", visEp)
	}

	return &Session{Proxy: proc, vis: visCh}, nil
}

// ReadFrame blocks until the next frame arrives on the session's vis
// stream. An empty frame (Frame.Empty()) is the idle signal, not an error.
func (s *Session) ReadFrame() (renderer.Frame, error) {
	return vis.ReadFrame(s.vis)
}

// Close tears down the control session and the vis stream.
func (s *Session) Close() error {
	visErr := s.vis.Close()
	if err := s.Proxy.Close(); err != nil {
		return err
	}
	return visErr
}
