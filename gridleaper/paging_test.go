package gridleaper

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/model"
	"github.com/trinity-vr/trinity/telemetry"
)

// fakeSource serves a fixed byte pattern for every brick key, recording
// every GetBrick call it receives.
type fakeSource struct {
	mu    sync.Mutex
	calls []model.BrickKey
	delay time.Duration
}

func (f *fakeSource) GetBrick(ctx context.Context, key model.BrickKey) ([]byte, bool, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	return []byte{1, 2, 3, 4}, true, nil
}

func (f *fakeSource) GetBrickVoxelCounts(ctx context.Context, key model.BrickKey) (model.Vec3ui, error) {
	return model.Vec3ui{X: 4, Y: 4, Z: 4}, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func runGetterForTest(t *testing.T, g *BrickGetter) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.Run(ctx)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}

func waitForDone(t *testing.T, g *BrickGetter, n int) []completedBrick {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var drained []completedBrick
	for time.Now().Before(deadline) {
		drained = append(drained, g.DrainDone()...)
		if len(drained) >= n {
			return drained
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Len(t, drained, n, "brick getter never completed the expected fetches")
	return drained
}

func TestRequestBricksRoundTripsThroughBrickGetter(t *testing.T) {
	lo := smallLayout()
	p := NewPool(lo, model.Vec3u64{X: 3, Y: 1, Z: 1})
	src := &fakeSource{}
	getter := NewBrickGetter(src, telemetry.NewNopLogger())
	stop := runGetterForTest(t, getter)
	defer stop()

	missing := []BrickCoord{{X: 0, Y: 0, Z: 0, LOD: 0}, {X: 1, Y: 0, Z: 0, LOD: 0}}
	RequestBricks(p, getter, src, nil, missing, 0, 0)

	done := waitForDone(t, getter, 2)
	for _, d := range done {
		getter.readd(d) // put back so a second RequestBricks pass can drain+upload it
	}
	RequestBricks(p, getter, src, nil, missing, 0, 0)

	id0 := lo.BrickID(BrickCoord{X: 0, Y: 0, Z: 0, LOD: 0})
	id1 := lo.BrickID(BrickCoord{X: 1, Y: 0, Z: 0, LOD: 0})
	_, resident0 := p.Status(id0).IsResident()
	_, resident1 := p.Status(id1).IsResident()
	assert.True(t, resident0)
	assert.True(t, resident1)
}

func TestRequestBricksSkipsAlreadyResolvedEmptyBricks(t *testing.T) {
	lo := smallLayout()
	p := NewPool(lo, model.Vec3u64{X: 2, Y: 1, Z: 1})
	id := lo.BrickID(BrickCoord{X: 0, Y: 0, Z: 0, LOD: 0})
	p.brickStatus[id] = model.StatusEmpty

	src := &fakeSource{}
	getter := NewBrickGetter(src, telemetry.NewNopLogger())
	stop := runGetterForTest(t, getter)
	defer stop()

	RequestBricks(p, getter, src, nil, []BrickCoord{{X: 0, Y: 0, Z: 0, LOD: 0}}, 0, 0)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, src.callCount(), "a brick already resolved Empty must not be re-fetched")
}

func TestBrickGetterDiscardsAbandonedRequestAsWasted(t *testing.T) {
	src := &fakeSource{delay: 50 * time.Millisecond}
	getter := NewBrickGetter(src, telemetry.NewNopLogger())
	stop := runGetterForTest(t, getter)
	defer stop()

	req := BrickRequest{Coord: BrickCoord{LOD: 0}, Key: model.BrickKey{LOD: 0}}
	getter.Enqueue([]BrickRequest{req})

	// abandon it while the fetch is still in flight
	time.Sleep(5 * time.Millisecond)
	getter.mu.Lock()
	getter.todo = nil
	getter.mu.Unlock()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, getter.DrainDone(), "an abandoned request's fetch must be discarded, not promoted to done")
}
