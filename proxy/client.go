// Package proxy implements the frontend-side and processing-side client
// stubs that turn a wire.VclType call into a synchronous round trip over a
// transport.Channel: one method per command, translating the
// reply envelope into either a typed result or a *errs.Error.
package proxy

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/wire"
)

// defaultTimeout bounds how long a call waits for its reply before
// surfacing errs.Timeout.
const defaultTimeout = 10 * time.Second

// client is the shared round-trip machinery both IOProxy and
// ProcessingProxy embed. A channel carries one outstanding request at a
// time (mirrors the synchronous request/reply pattern every command
// handler in this module assumes), so call serializes access with a mutex
// to keep one request in flight per channel.
type client struct {
	ch      *transport.Channel
	sid     uint32
	timeout time.Duration

	mu  sync.Mutex
	rid uint32
}

func newClient(ch *transport.Channel, sid uint32, timeout time.Duration) client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return client{ch: ch, sid: sid, timeout: timeout}
}

// call sends params as reqType and returns the matching reply's params, or
// an *errs.Error describing why it could not.
func (c *client) call(reqType wire.VclType, params wire.RequestParams) (wire.ReplyParams, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rid++
	rid := c.rid

	req := &wire.Request{Type: reqType, Rid: rid, Sid: c.sid, Params: params}
	b, err := req.ToBytes()
	if err != nil {
		return nil, errs.Wrap(errs.ProtocolError, err, "encode %s request", wire.ToString(reqType))
	}
	if err := c.ch.Send(b); err != nil {
		return nil, errs.Wrap(errs.ConnectFailed, err, "send %s request", wire.ToString(reqType))
	}

	respBytes, err := c.ch.Receive(c.timeout)
	if err != nil {
		return nil, classifyReceiveError(err, reqType)
	}

	rep, err := wire.ReplyFromBytes(respBytes)
	if err != nil {
		return nil, errs.Wrap(errs.ProtocolError, err, "decode %s reply", wire.ToString(reqType))
	}
	if rep.Rid != rid {
		return nil, errs.New(errs.ProtocolError, "%s: reply rid %d does not match request rid %d", wire.ToString(reqType), rep.Rid, rid)
	}
	if rep.Type == wire.TypeError {
		errRep, ok := rep.Params.(*wire.ErrorReply)
		if !ok {
			return nil, errs.New(errs.ProtocolError, "%s: malformed error reply", wire.ToString(reqType))
		}
		return nil, errs.Remote(errRep.Code)
	}
	if rep.Type != reqType {
		return nil, errs.New(errs.ProtocolError, "%s: reply carried type %s", wire.ToString(reqType), wire.ToString(rep.Type))
	}
	return rep.Params, nil
}

func classifyReceiveError(err error, reqType wire.VclType) *errs.Error {
	if errors.Is(err, io.EOF) {
		return errs.Wrap(errs.ConnectFailed, err, "%s: connection closed", wire.ToString(reqType))
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.Wrap(errs.Timeout, err, "%s: no reply within timeout", wire.ToString(reqType))
	}
	return errs.Wrap(errs.ConnectFailed, err, "%s: receive failed", wire.ToString(reqType))
}

// Close closes the underlying channel.
func (c *client) Close() error { return c.ch.Close() }
