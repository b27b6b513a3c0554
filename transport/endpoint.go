// Package transport implements the connection-oriented control channel
// sessions and nodes exchange wire.Request/wire.Reply frames over, using a
// length-prefixed framing style.
package transport

import (
	"fmt"
	"net"
)

// Endpoint addresses one side of a control connection.
type Endpoint struct {
	Protocol string
	Host     string
	Port     string
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s://%s:%s", e.Protocol, e.Host, e.Port)
}

// Address returns the host:port pair net.Dial/net.Listen expect. Protocol
// is expected to be "tcp" for every endpoint trinity currently emits; other
// values are accepted so a future transport can reuse the type.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, e.Port)
}

func (e Endpoint) network() string {
	if e.Protocol == "" {
		return "tcp"
	}
	return e.Protocol
}
