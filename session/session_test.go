package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/wire"
)

type echoHandler struct{ rep wire.ReplyParams }

func (h *echoHandler) Execute(ctx context.Context) (wire.ReplyParams, error) { return h.rep, nil }

type echoFactory struct{}

func (echoFactory) Create(req *wire.Request) (CommandHandler, error) {
	switch p := req.Params.(type) {
	case *wire.SetIsoValueRequest:
		return &echoHandler{rep: &wire.SetIsoValueReply{}}, nil
	case *wire.ZoomCameraRequest:
		return &echoHandler{rep: &wire.ZoomCameraReply{}}, nil
	default:
		_ = p
		return nil, assert.AnError
	}
}

func dialSession(t *testing.T, s *Session) *transport.Channel {
	t.Helper()
	var ch *transport.Channel
	var err error
	require.Eventually(t, func() bool {
		ch, err = transport.Dial(s.ControlEndpoint(), 200*time.Millisecond)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	return ch
}

func TestSessionServesRequests(t *testing.T) {
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)

	s := New(1, acceptor, echoFactory{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	client := dialSession(t, s)
	defer client.Close()

	req := &wire.Request{Type: wire.TypeSetIsoValue, Rid: 42, Sid: 1, Params: &wire.SetIsoValueRequest{Value: 0.7}}
	b, err := req.ToBytes()
	require.NoError(t, err)
	require.NoError(t, client.Send(b))

	repBytes, err := client.Receive(time.Second)
	require.NoError(t, err)
	rep, err := wire.ReplyFromBytes(repBytes)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), rep.Rid)
	assert.Equal(t, wire.TypeSetIsoValue, rep.Type)

	s.Interrupt()
}

func TestSessionSendsErrorReplyOnUnknownCommand(t *testing.T) {
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)

	s := New(2, acceptor, echoFactory{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	client := dialSession(t, s)
	defer client.Close()

	req := &wire.Request{Type: wire.TypeMoveCamera, Rid: 1, Sid: 2, Params: &wire.MoveCameraRequest{}}
	b, err := req.ToBytes()
	require.NoError(t, err)
	require.NoError(t, client.Send(b))

	repBytes, err := client.Receive(time.Second)
	require.NoError(t, err)
	rep, err := wire.ReplyFromBytes(repBytes)
	require.NoError(t, err)
	assert.Equal(t, wire.TypeError, rep.Type)

	s.Interrupt()
}

func TestManagerAllocatesDistinctSidsAndPorts(t *testing.T) {
	mgr := NewManager("127.0.0.1", nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s1, err := mgr.Start(ctx, "tcp", echoFactory{})
	require.NoError(t, err)
	s2, err := mgr.Start(ctx, "tcp", echoFactory{})
	require.NoError(t, err)

	assert.NotEqual(t, s1.Sid, s2.Sid)
	assert.NotEqual(t, s1.ControlEndpoint().Port, s2.ControlEndpoint().Port)

	_, ok := mgr.Get(s1.Sid)
	assert.True(t, ok)

	mgr.EndAll()
}
