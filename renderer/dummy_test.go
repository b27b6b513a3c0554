package renderer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/model"
)

func TestDummyAlwaysReturnsEmptyFrame(t *testing.T) {
	d := NewDummy()
	require.NoError(t, d.InitContext(context.Background(), 64, 64))
	require.NoError(t, d.Start(context.Background()))

	frame, err := d.Proceed(context.Background())
	require.NoError(t, err)
	assert.True(t, frame.Empty())
}

func TestDummySupportsEveryRenderMode(t *testing.T) {
	d := NewDummy()
	for _, mode := range []model.RenderMode{
		model.RenderModeTF1D, model.RenderModeTF2D, model.RenderModeIso, model.RenderModeClearView,
	} {
		assert.True(t, d.SupportsRenderMode(mode))
	}
}
