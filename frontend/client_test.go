package frontend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/ionode"
	"github.com/trinity-vr/trinity/procnode"
	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/wire"
)

func startIONodeForFrontend(t *testing.T) string {
	t.Helper()
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)
	n := ionode.NewNode("127.0.0.1", nil)
	ctx, cancel := context.WithCancel(context.Background())
	go n.Serve(ctx, acceptor)
	t.Cleanup(cancel)
	return acceptor.Endpoint().Port
}

func startProcNodeForFrontend(t *testing.T) string {
	t.Helper()
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)
	n := procnode.NewNode("127.0.0.1", nil)
	ctx, cancel := context.WithCancel(context.Background())
	go n.Serve(ctx, acceptor)
	t.Cleanup(cancel)
	return acceptor.Endpoint().Port
}

func TestListFilesReturnsCatalog(t *testing.T) {
	ioPort := startIONodeForFrontend(t)

	entries, err := ListFiles("tcp", "127.0.0.1", ioPort, "", time.Second, time.Second)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.FileId
		assert.Equal(t, wire.KindDataset, e.Kind)
	}
	assert.Contains(t, names, "sphere")
}

func TestOpenSessionThenReadFrame(t *testing.T) {
	ioPort := startIONodeForFrontend(t)
	procPort := startProcNodeForFrontend(t)

	sess, err := OpenSession(OpenSessionParams{
		Protocol:     "tcp",
		Host:         "127.0.0.1",
		Port:         procPort,
		RendererType: "gridleaper",
		FileId:       "sphere",
		IOProtocol:   "tcp",
		IOHost:       "127.0.0.1",
		IOPort:       ioPort,
		ResX:         8,
		ResY:         8,
		DialTimeout:  time.Second,
		CallTimeout:  3 * time.Second,
	})
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Proxy.StartRendering())
	require.NoError(t, sess.Proxy.ProceedRendering())

	frame, err := sess.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, uint32(8), frame.Width)
	assert.Equal(t, uint32(8), frame.Height)
}
