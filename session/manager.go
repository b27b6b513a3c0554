package session

import (
	"context"
	"sync"

	"github.com/trinity-vr/trinity/telemetry"
	"github.com/trinity-vr/trinity/transport"
)

// defaultBasePort mirrors AbstractSession's m_basePort starting value.
const defaultBasePort = 5990

// Manager hands out monotonically increasing session ids and control
// ports, and tracks every live session so a node can interrupt them all on
// shutdown.
type Manager struct {
	host string
	log  telemetry.Logger

	mu       sync.Mutex
	nextSid  uint32
	nextPort int
	sessions map[uint32]*Session
}

// NewManager creates a Manager that binds new sessions on host, walking
// ports upward from defaultBasePort.
func NewManager(host string, log telemetry.Logger) *Manager {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	return &Manager{
		host:     host,
		log:      log,
		nextSid:  1,
		nextPort: defaultBasePort,
		sessions: make(map[uint32]*Session),
	}
}

// Start binds a fresh acceptor, registers a new Session under it with
// factory, and launches Run in its own goroutine. It returns immediately
// with the running session.
func (m *Manager) Start(ctx context.Context, protocol string, factory CommandFactory) (*Session, error) {
	m.mu.Lock()
	sid := m.nextSid
	port := m.nextPort
	m.nextSid++
	m.mu.Unlock()

	acceptor, err := transport.Bind(protocol, m.host, port, m.log)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	// A bind retry inside transport.Bind may have walked past port; start
	// the next session searching from just above whatever this one landed
	// on so two sessions never race for the same port range.
	landedPort := acceptor.Endpoint().Port
	if n := portNumber(landedPort); n >= m.nextPort {
		m.nextPort = n + 1
	}
	m.mu.Unlock()

	s := New(sid, acceptor, factory, m.log)

	m.mu.Lock()
	m.sessions[sid] = s
	m.mu.Unlock()

	go func() {
		s.Run(ctx)
		m.end(sid)
	}()

	return s, nil
}

// Get returns the live session for sid, if any.
func (m *Manager) Get(sid uint32) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sid]
	return s, ok
}

// EndAll interrupts every live session. It does not wait for their Run
// loops to return.
func (m *Manager) EndAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.Interrupt()
	}
}

func (m *Manager) end(sid uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
}

func portNumber(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
