package vis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/renderer"
	"github.com/trinity-vr/trinity/transport"
)

func startVisPipe(t *testing.T) (*Sender, *transport.Channel, func()) {
	t.Helper()
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)

	sender := NewSender(nil)
	ctx, cancel := context.WithCancel(context.Background())

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		ch, err := acceptor.Accept(nil)
		if err != nil {
			return
		}
		defer ch.Close()
		sender.Run(ctx, ch)
	}()

	client, err := transport.Dial(acceptor.Endpoint(), time.Second)
	require.NoError(t, err)

	return sender, client, func() {
		cancel()
		client.Close()
		acceptor.Close()
		<-serverDone
	}
}

func TestSendDeliversFrameOverChannel(t *testing.T) {
	sender, client, stop := startVisPipe(t)
	defer stop()

	sender.Send(renderer.Frame{Width: 2, Height: 1, Pixels: []byte{1, 2, 3, 4, 5, 6, 7, 8}})

	frame, err := ReadFrame(client)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), frame.Width)
	assert.Equal(t, uint32(1), frame.Height)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, frame.Pixels)
}

func TestSendForwardsEmptyIdleFrame(t *testing.T) {
	sender, client, stop := startVisPipe(t)
	defer stop()

	sender.Send(renderer.Frame{})

	frame, err := ReadFrame(client)
	require.NoError(t, err)
	assert.True(t, frame.Empty())
}

func TestSendDropsOldestFrameWhenQueueFull(t *testing.T) {
	sender := NewSender(nil)
	for i := 0; i < queueDepth+3; i++ {
		sender.Send(renderer.Frame{Width: uint32(i + 1), Height: 1, Pixels: []byte{byte(i)}})
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Len(t, sender.queue, queueDepth)
	assert.Equal(t, uint32(queueDepth+3), sender.queue[len(sender.queue)-1].Width)
}

func TestCloseStopsRun(t *testing.T) {
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)
	defer acceptor.Close()

	sender := NewSender(nil)
	client, err := transport.Dial(acceptor.Endpoint(), time.Second)
	require.NoError(t, err)
	defer client.Close()

	serverCh, err := acceptor.Accept(nil)
	require.NoError(t, err)
	defer serverCh.Close()

	runErr := make(chan error, 1)
	go func() { runErr <- sender.Run(context.Background(), serverCh) }()

	sender.Close()
	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after Close")
	}
}
