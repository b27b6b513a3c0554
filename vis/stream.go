// Package vis implements the vis stream: the one-way channel a processing
// node pushes rendered frames over to whichever frontend opened the
// session, separate from the command/reply control channel so a slow
// frontend never blocks command dispatch.
package vis

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/trinity-vr/trinity/renderer"
	"github.com/trinity-vr/trinity/telemetry"
	"github.com/trinity-vr/trinity/transport"
)

// errShortFrame is returned when a vis-stream payload is too small to even
// carry the fixed width/height header.
var errShortFrame = errors.New("vis: frame payload shorter than header")

// queueDepth bounds how many frames a Sender buffers before it starts
// dropping the oldest queued frame in favor of the newest. A visualization
// stream only ever cares about the most recent frame, so backpressure here
// should shed frames, not stall the renderer loop.
const queueDepth = 2

// Sender owns the vis endpoint one RenderSession pushes frames to. Send is
// non-blocking: once the queue is full, the oldest unsent frame is dropped
// in favor of the new one, matching a live-video-preview's "latest wins"
// semantics rather than a reliable queue's.
type Sender struct {
	log telemetry.Logger

	mu     sync.Mutex
	queue  []renderer.Frame
	notify chan struct{}

	closeOnce sync.Once
	done      chan struct{}
}

// NewSender builds a Sender with an empty queue. Its frames are written to
// a channel only once Run is started.
func NewSender(log telemetry.Logger) *Sender {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	return &Sender{
		log:    log,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Send enqueues frame, dropping the oldest queued frame first if the queue
// is already at capacity. An empty frame (the idle signal) is forwarded
// exactly like any other frame — the receiver decides what an empty frame
// means to it.
func (s *Sender) Send(frame renderer.Frame) {
	s.mu.Lock()
	if len(s.queue) >= queueDepth {
		s.queue = s.queue[1:]
	}
	s.queue = append(s.queue, frame)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Run drains the queue onto ch until ctx is canceled, the channel errors,
// or Close is called. It's meant to run in its own goroutine, one per
// session, for the lifetime of that session's vis connection.
func (s *Sender) Run(ctx context.Context, ch *transport.Channel) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-s.notify:
		}

		for {
			frame, ok := s.pop()
			if !ok {
				break
			}
			if err := writeFrame(ch, frame); err != nil {
				s.log.Warnf("vis: write frame: %v", err)
				return err
			}
		}
	}
}

func (s *Sender) pop() (renderer.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return renderer.Frame{}, false
	}
	frame := s.queue[0]
	s.queue = s.queue[1:]
	return frame, true
}

// Close stops Run and releases any goroutine blocked in it.
func (s *Sender) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// writeFrame encodes frame as a fixed header (width, height as uint32 big
// endian) followed by its raw RGBA8 pixels, and sends it as one
// transport.Channel frame. An empty frame encodes as a zero-width,
// zero-height header with no pixel payload.
func writeFrame(ch *transport.Channel, frame renderer.Frame) error {
	buf := make([]byte, 8+len(frame.Pixels))
	binary.BigEndian.PutUint32(buf[0:4], frame.Width)
	binary.BigEndian.PutUint32(buf[4:8], frame.Height)
	copy(buf[8:], frame.Pixels)
	return ch.Send(buf)
}

// ReadFrame decodes one frame written by writeFrame. Used by frontend
// clients reading the vis stream.
func ReadFrame(ch *transport.Channel) (renderer.Frame, error) {
	b, err := ch.Receive(0)
	if err != nil {
		return renderer.Frame{}, err
	}
	if len(b) < 8 {
		return renderer.Frame{}, errShortFrame
	}
	width := binary.BigEndian.Uint32(b[0:4])
	height := binary.BigEndian.Uint32(b[4:8])
	pixels := append([]byte(nil), b[8:]...)
	return renderer.Frame{Width: width, Height: height, Pixels: pixels}, nil
}
