package gridleaper

import "github.com/trinity-vr/trinity/model"

// TextureSink is the GPU upload seam: whatever owns the real pool metadata
// and pool data textures implements this to receive the host-side bookkeeping
// this package computes. Binding it to an actual 3-D texture (e.g. through
// github.com/cogentcore/webgpu) is out of scope here: GPU/shader bindings are
// not implemented by this package, so production wiring of this interface
// lives outside this repo. NopSink below is the default used wherever no
// such wiring is supplied.
type TextureSink interface {
	// UploadMetadataTexel writes a single brick's status entry.
	UploadMetadataTexel(brickID uint32, status model.BrickStatus)
	// UploadMetadataTexture writes the full metadata mirror array at once
	// (used after a synchronous visibility recompute, ).
	UploadMetadataTexture(status []model.BrickStatus)
	// UploadBrickData writes voxelCount bytes of raw brick payload at the
	// pool-space slot position.
	UploadBrickData(slot model.Vec3ui, voxelCount model.Vec3ui, data []byte)
}

// NopSink discards every upload. It lets the paging/visibility logic run
// (and be tested) with no GPU device attached.
type NopSink struct{}

func (NopSink) UploadMetadataTexel(uint32, model.BrickStatus)    {}
func (NopSink) UploadMetadataTexture([]model.BrickStatus)        {}
func (NopSink) UploadBrickData(model.Vec3ui, model.Vec3ui, []byte) {}

var _ TextureSink = NopSink{}
