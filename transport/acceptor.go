package transport

import (
	"fmt"
	"net"
	"strconv"

	"github.com/trinity-vr/trinity/telemetry"
)

// maxBindAttempts bounds the port-walk so a saturated port range fails
// instead of spinning forever.
const maxBindAttempts = 1000

// Acceptor owns one bound listener, found by walking ports upward from a
// base until one binds.
type Acceptor struct {
	endpoint Endpoint
	listener net.Listener
	log      telemetry.Logger
}

// Bind walks ports starting at basePort on host until net.Listen succeeds,
// returning the bound Acceptor; its Endpoint reports the port it landed on.
func Bind(protocol, host string, basePort int, log telemetry.Logger) (*Acceptor, error) {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	port := basePort
	for attempt := 0; attempt < maxBindAttempts; attempt++ {
		ep := Endpoint{Protocol: protocol, Host: host, Port: strconv.Itoa(port)}
		ln, err := net.Listen(ep.network(), ep.Address())
		if err == nil {
			return &Acceptor{endpoint: ep, listener: ln, log: log}, nil
		}
		log.Debugf("cannot bind on port %d, rebinding: %v", port, err)
		port++
	}
	return nil, fmt.Errorf("transport: no free port found in [%d,%d)", basePort, basePort+maxBindAttempts)
}

// Endpoint returns the address this acceptor is listening on.
func (a *Acceptor) Endpoint() Endpoint { return a.endpoint }

// Accept blocks for the next inbound connection. stop, if closed while
// waiting, unblocks Accept by closing the listener; the resulting error is
// reported as ErrStopped.
func (a *Acceptor) Accept(stop <-chan struct{}) (*Channel, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	done := make(chan result, 1)
	go func() {
		conn, err := a.listener.Accept()
		done <- result{conn, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("transport: accept: %w", r.err)
		}
		return NewChannel(r.conn), nil
	case <-stop:
		a.listener.Close()
		<-done
		return nil, ErrStopped
	}
}

// Close closes the listener, unblocking any in-flight Accept.
func (a *Acceptor) Close() error { return a.listener.Close() }

// ErrStopped is returned by Accept when stop fires before a peer connects.
var ErrStopped = fmt.Errorf("transport: acceptor stopped")
