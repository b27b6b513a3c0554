package proxy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/ionode"
	"github.com/trinity-vr/trinity/model"
	"github.com/trinity-vr/trinity/transport"
)

func startIONode(t *testing.T) (string, func()) {
	t.Helper()
	acceptor, err := transport.Bind("tcp", "127.0.0.1", 0, nil)
	require.NoError(t, err)

	n := ionode.NewNode("127.0.0.1", nil)
	ctx, cancel := context.WithCancel(context.Background())
	go n.Serve(ctx, acceptor)

	return acceptor.Endpoint().Port, cancel
}

func TestDialIOSessionThenQueryMetadata(t *testing.T) {
	port, stop := startIONode(t)
	defer stop()

	p, err := DialIOSession("tcp", "127.0.0.1", port, "sphere", time.Second, 2*time.Second)
	require.NoError(t, err)
	defer p.Close(context.Background())

	count, err := p.GetModalityCount()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, uint64(2))

	levels, err := p.GetLODLevelCount(0)
	require.NoError(t, err)
	assert.Greater(t, levels, int32(0))

	size, err := p.GetDomainSize(0, 0)
	require.NoError(t, err)
	assert.Greater(t, size.X, uint64(0))

	layout, err := p.GetBrickLayout(uint64(levels)-1, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, layout.X, uint64(1))
}

func TestGetBrickRoundTripsThroughProxy(t *testing.T) {
	port, stop := startIONode(t)
	defer stop()

	p, err := DialIOSession("tcp", "127.0.0.1", port, "sphere", time.Second, 2*time.Second)
	require.NoError(t, err)
	defer p.Close(context.Background())

	levels, err := p.GetLODLevelCount(0)
	require.NoError(t, err)

	key := model.BrickKey{Modality: 0, Timestep: 0, LOD: uint64(levels) - 1, LinearIndex: 0}
	data, ok, err := p.GetBrick(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, data)
}

func TestMaxMinForKeyReturnsAcceleration(t *testing.T) {
	port, stop := startIONode(t)
	defer stop()

	p, err := DialIOSession("tcp", "127.0.0.1", port, "sphere", time.Second, 2*time.Second)
	require.NoError(t, err)
	defer p.Close(context.Background())

	levels, err := p.GetLODLevelCount(0)
	require.NoError(t, err)

	key := model.BrickKey{Modality: 0, Timestep: 0, LOD: uint64(levels) - 1, LinearIndex: 0}
	mm, err := p.MaxMinForKey(context.Background(), key)
	require.NoError(t, err)
	assert.LessOrEqual(t, mm.MinScalar, mm.MaxScalar)
}

func TestCallFailsAfterSessionClosed(t *testing.T) {
	port, stop := startIONode(t)
	defer stop()

	p, err := DialIOSession("tcp", "127.0.0.1", port, "sphere", time.Second, 2*time.Second)
	require.NoError(t, err)

	require.NoError(t, p.Close(context.Background()))

	_, err = p.GetModalityCount()
	assert.Error(t, err)
}
