// Package session implements the per-connection run loop every Trinity
// node session follows: bind a control endpoint, accept exactly one peer,
// then repeatedly receive a wire.Request, dispatch it through a
// CommandFactory, and send back the wire.Reply.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/telemetry"
	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/wire"
)

// receiveTimeout bounds how long Receive blocks between interruption
// checks; it is not a session idle timeout.
const receiveTimeout = 2 * time.Second

// CommandHandler executes one already-dispatched request and produces its
// reply. A nil reply with a nil error means the command intentionally sends
// no reply (none currently do, but the seam mirrors ICommandFactory).
type CommandHandler interface {
	Execute(ctx context.Context) (wire.ReplyParams, error)
}

// CommandFactory builds the CommandHandler for one request's params. The
// per-node packages (ionode, procnode) each supply one, closing over the
// session's backing IIO/Renderer.
type CommandFactory interface {
	Create(req *wire.Request) (CommandHandler, error)
}

// Session owns one accepted control connection and serves it until
// Interrupt is called or the peer disconnects.
type Session struct {
	Sid      uint32
	acceptor *transport.Acceptor
	factory  CommandFactory
	log      telemetry.Logger

	channel   *transport.Channel
	stop      chan struct{}
	interrupt chan struct{}
}

// New creates a session bound to its own acceptor. The acceptor is owned by
// the session and closed when Run returns.
func New(sid uint32, acceptor *transport.Acceptor, factory CommandFactory, log telemetry.Logger) *Session {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	return &Session{
		Sid:       sid,
		acceptor:  acceptor,
		factory:   factory,
		log:       log.With(fmt.Sprintf("sid=%d", sid)),
		stop:      make(chan struct{}),
		interrupt: make(chan struct{}),
	}
}

// ControlEndpoint returns the address peers dial to reach this session.
func (s *Session) ControlEndpoint() transport.Endpoint { return s.acceptor.Endpoint() }

// Interrupt asks Run to stop at its next opportunity. Safe to call more
// than once.
func (s *Session) Interrupt() {
	select {
	case <-s.interrupt:
	default:
		close(s.interrupt)
	}
}

// Run accepts the session's one peer, then serves requests until
// Interrupt is called, the peer disconnects, or a protocol-fatal error
// occurs. It blocks until the loop exits.
func (s *Session) Run(ctx context.Context) {
	defer s.acceptor.Close()
	s.log.Infof("session control at %q", s.acceptor.Endpoint())

	ch, err := s.acceptor.Accept(s.interrupt)
	if err != nil {
		if err != transport.ErrStopped {
			s.log.Errorf("cannot accept the control connection: %v", err)
		}
		return
	}
	s.channel = ch
	defer s.channel.Close()

	for {
		select {
		case <-s.interrupt:
			return
		case <-ctx.Done():
			return
		default:
		}

		payload, err := s.channel.Receive(receiveTimeout)
		if err != nil {
			if isTimeout(err) {
				continue
			}
			s.log.Warnf("interrupting because the remote session has gone: %v", err)
			return
		}
		if len(payload) == 0 {
			continue
		}

		req, err := wire.RequestFromBytes(payload)
		if err != nil {
			s.log.Errorf("malformed request: %v", err)
			s.sendError(errs.New(errs.ProtocolError, "malformed request: %v", err))
			return
		}

		s.log.Debugf("request: %s rid=%d", wire.ToString(req.Type), req.Rid)
		handler, err := s.factory.Create(req)
		if err != nil {
			s.sendErrorFor(req, errs.Wrap(errs.ProtocolError, err, "no handler for %s", wire.ToString(req.Type)))
			continue
		}

		repParams, err := handler.Execute(ctx)
		if err != nil {
			s.sendErrorFor(req, err)
			continue
		}
		if repParams == nil {
			continue
		}

		rep := &wire.Reply{Type: repParams.Type(), Rid: req.Rid, Sid: s.Sid, Params: repParams}
		if err := s.send(rep); err != nil {
			s.log.Errorf("cannot send reply: %v", err)
			return
		}
	}
}

func (s *Session) send(rep *wire.Reply) error {
	b, err := rep.ToBytes()
	if err != nil {
		return fmt.Errorf("session: encode reply: %w", err)
	}
	return s.channel.Send(b)
}

func (s *Session) sendErrorFor(req *wire.Request, cause error) {
	code := errs.CodeOf(cause)
	rep := &wire.Reply{Type: wire.TypeError, Rid: req.Rid, Sid: s.Sid, Params: &wire.ErrorReply{Code: code}}
	if err := s.send(rep); err != nil {
		s.log.Errorf("cannot send error reply: %v", err)
	}
}

func (s *Session) sendError(cause error) {
	code := errs.CodeOf(cause)
	rep := &wire.Reply{Type: wire.TypeError, Rid: 0, Sid: s.Sid, Params: &wire.ErrorReply{Code: code}}
	if err := s.send(rep); err != nil {
		s.log.Errorf("cannot send error reply: %v", err)
	}
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	te, ok := err.(timeout)
	return ok && te.Timeout()
}
