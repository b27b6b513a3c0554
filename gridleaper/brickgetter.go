package gridleaper

import (
	"context"
	"sync"
	"time"

	"github.com/trinity-vr/trinity/model"
	"github.com/trinity-vr/trinity/telemetry"
)

// lockWaitTimeout is how long Run waits on an empty requestTodo before
// checking it again when no Enqueue wake-up arrives. Queue operations take
// the brick-getter's mutex without any timeout.
const lockWaitTimeout = 5 * time.Second

// BrickSource is the network-facing seam the brick-getter worker pulls
// brick payloads through — satisfied by an IOProxy stub talking to the I/O
// node over the wire, kept minimal here so this package does
// not import proxy/ionode directly.
type BrickSource interface {
	GetBrick(ctx context.Context, key model.BrickKey) (data []byte, ok bool, err error)
	GetBrickVoxelCounts(ctx context.Context, key model.BrickKey) (model.Vec3ui, error)
}

// BrickRequest names one outstanding brick fetch: the coordinate the pool
// will index it by once resident, and the key the BrickSource fetches it
// with.
type BrickRequest struct {
	Coord BrickCoord
	Key   model.BrickKey
}

type completedBrick struct {
	req  BrickRequest
	data []byte
}

// BrickGetter runs the dedicated worker described in : it drains
// requestTodo, fetches each brick without holding the queue lock, and moves
// completed fetches to requestDone/requestStorage — or discards them as
// "wasted" if the request was abandoned (no longer in todo) by the time the
// fetch completes.
type BrickGetter struct {
	source BrickSource
	log    telemetry.Logger

	mu   sync.Mutex
	todo []BrickRequest
	done []completedBrick

	wake chan struct{}
}

// NewBrickGetter builds a getter pulling bricks through source. Run must be
// started in its own goroutine to actually process requests.
func NewBrickGetter(source BrickSource, log telemetry.Logger) *BrickGetter {
	if log == nil {
		log = telemetry.NewNopLogger()
	}
	return &BrickGetter{source: source, log: log, wake: make(chan struct{}, 1)}
}

// Enqueue adds requests to requestTodo, skipping any already present in
// requestTodo or requestDone.
func (g *BrickGetter) Enqueue(requests []BrickRequest) (enqueued int) {
	g.mu.Lock()
	for _, r := range requests {
		if g.containsLocked(r) {
			continue
		}
		g.todo = append(g.todo, r)
		enqueued++
	}
	g.mu.Unlock()
	if enqueued > 0 {
		select {
		case g.wake <- struct{}{}:
		default:
		}
	}
	return enqueued
}

func (g *BrickGetter) containsLocked(r BrickRequest) bool {
	for _, t := range g.todo {
		if t == r {
			return true
		}
	}
	for _, d := range g.done {
		if d.req == r {
			return true
		}
	}
	return false
}

// DrainDone removes and returns every completed fetch, for the paging pass
// to upload.
func (g *BrickGetter) DrainDone() []completedBrick {
	g.mu.Lock()
	out := g.done
	g.done = nil
	g.mu.Unlock()
	return out
}

// readd pushes a drained-but-not-yet-uploaded brick back onto requestDone,
// for when the pool's insertPos is exhausted mid-frame.
func (g *BrickGetter) readd(b completedBrick) {
	g.mu.Lock()
	g.done = append([]completedBrick{b}, g.done...)
	g.mu.Unlock()
}

// Run processes requestTodo until ctx is canceled. It is meant to be
// launched as `go getter.Run(ctx)` once per render session.
func (g *BrickGetter) Run(ctx context.Context) {
	for {
		req, ok := g.peekTodo()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-g.wake:
				continue
			case <-time.After(lockWaitTimeout):
				continue
			}
		}

		data, fetched, err := g.source.GetBrick(ctx, req.Key)
		if err != nil || !fetched {
			if err != nil {
				g.log.Errorf("brick getter: fetch %v failed: %v", req.Key, err)
			} else {
				g.log.Warnf("brick getter: brick %v has no data", req.Key)
			}
			// drop the failed request so the ones behind it still get
			// fetched; a later paging pass enqueues it again while missing
			g.mu.Lock()
			for i, t := range g.todo {
				if t == req {
					g.todo = append(g.todo[:i], g.todo[i+1:]...)
					break
				}
			}
			g.mu.Unlock()
		} else {
			g.completeOrDiscard(req, data)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// peekTodo returns the head of requestTodo without removing it — the
// request stays visible to Enqueue's dedup check, and to abandonment, until
// completeOrDiscard confirms it was actually fetched or Run drops it after a
// failed fetch.
func (g *BrickGetter) peekTodo() (BrickRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.todo) == 0 {
		return BrickRequest{}, false
	}
	return g.todo[0], true
}

// completeOrDiscard moves a finished fetch to requestDone, unless the
// request was abandoned (no longer present in requestTodo) while the fetch
// was in flight — a "wasted request", logged but non-fatal.
func (g *BrickGetter) completeOrDiscard(req BrickRequest, data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	found := false
	for i, t := range g.todo {
		if t == req {
			g.todo = append(g.todo[:i], g.todo[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		g.log.Infof("brick getter: wasted a brick request for %v", req.Key)
		return
	}
	g.done = append(g.done, completedBrick{req: req, data: data})
}
