package gridleaper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/model"
	"github.com/trinity-vr/trinity/telemetry"
)

// fakeDataSource is a two-level (8 finest + 1 coarsest brick) dataset with a
// uniform scalar value, enough to exercise NewRenderer's startup sequence
// and one Proceed call without a real I/O node.
type fakeDataSource struct {
	*fakeSource
}

func newFakeDataSource() *fakeDataSource {
	return &fakeDataSource{fakeSource: &fakeSource{}}
}

var _ DataSource = (*fakeDataSource)(nil)

func (f *fakeDataSource) GetMaxUsedBrickSizes() (model.Vec3u64, error) {
	return model.Vec3u64{X: 8, Y: 8, Z: 8}, nil
}

func (f *fakeDataSource) GetBrickOverlapSize() (model.Vec3ui, error) {
	return model.Vec3ui{}, nil
}

func (f *fakeDataSource) GetLargestSingleBrickLOD(modality uint64) (uint64, error) { return 1, nil }

func (f *fakeDataSource) GetLODLevelCount(modality uint64) (int32, error) { return 2, nil }

func (f *fakeDataSource) GetBrickLayout(lod, modality uint64) (model.Vec3u64, error) {
	if lod == 0 {
		return model.Vec3u64{X: 2, Y: 2, Z: 2}, nil
	}
	return model.Vec3u64{X: 1, Y: 1, Z: 1}, nil
}

func (f *fakeDataSource) GetDataType() model.ValueType { return model.ValueUint8 }

func (f *fakeDataSource) GetSemantic(modality uint64) (model.Semantic, error) {
	return model.SemanticScalar, nil
}

func (f *fakeDataSource) MaxMinForKey(ctx context.Context, key model.BrickKey) (model.MinMaxBlock, error) {
	return model.MinMaxBlock{MinScalar: 0, MaxScalar: 1}, nil
}

func TestNewRendererUploadsCoarsestBrickAtStartup(t *testing.T) {
	src := newFakeDataSource()
	r, err := NewRenderer(context.Background(), src, NopSink{}, 0, 64*1024*1024, 2048, telemetry.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()

	lo := r.pool.Layout()
	coarsestID := lo.BrickID(BrickCoord{LOD: 1})
	_, resident := r.pool.Status(coarsestID).IsResident()
	require.True(t, resident, "the reserved coarsest brick must be resident immediately after construction")
}

func TestProceedIsNoopBeforeStartOrInitContext(t *testing.T) {
	src := newFakeDataSource()
	r, err := NewRenderer(context.Background(), src, NopSink{}, 0, 64*1024*1024, 2048, telemetry.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()

	frame, err := r.Proceed(context.Background())
	require.NoError(t, err)
	require.True(t, frame.Empty())
}

func TestProceedProducesFrameMatchingContextSize(t *testing.T) {
	src := newFakeDataSource()
	r, err := NewRenderer(context.Background(), src, NopSink{}, 0, 64*1024*1024, 2048, telemetry.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.InitContext(context.Background(), 32, 32))
	require.NoError(t, r.Start(context.Background()))

	frame, err := r.Proceed(context.Background())
	require.NoError(t, err)
	require.False(t, frame.Empty())
	require.Len(t, frame.Pixels, 32*32*4)
}

func TestReportMissingBricksTriggersPaging(t *testing.T) {
	src := newFakeDataSource()
	r, err := NewRenderer(context.Background(), src, NopSink{}, 0, 64*1024*1024, 2048, telemetry.NewNopLogger())
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.InitContext(context.Background(), 4, 4))
	require.NoError(t, r.Start(context.Background()))

	r.ReportMissingBricks([]BrickCoord{{X: 0, Y: 0, Z: 0, LOD: 0}})

	lo := r.pool.Layout()
	id := lo.BrickID(BrickCoord{X: 0, Y: 0, Z: 0, LOD: 0})
	require.Eventually(t, func() bool {
		_, err := r.Proceed(context.Background())
		require.NoError(t, err)
		_, resident := r.pool.Status(id).IsResident()
		return resident || r.pool.Status(id) == model.StatusEmpty || r.pool.Status(id) == model.StatusChildEmpty
	}, 2*time.Second, 5*time.Millisecond, "requested brick should eventually resolve through the getter and a later Proceed")
}
