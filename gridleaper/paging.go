package gridleaper

import (
	"context"

	"github.com/trinity-vr/trinity/model"
)

// RequestBricks runs one frame's paging pass: for each brick
// id the shader reported missing, either enqueue a fetch or — if the
// status has since resolved to Empty/ChildEmpty — upload just that texel.
// It then drains whatever the brick-getter has finished and writes it into
// the pool, stopping once the pool's insertion cursor reaches the reserved
// last slot.
func RequestBricks(p *Pool, getter *BrickGetter, source BrickSource, sink TextureSink, missing []BrickCoord, modality, timestep uint64) {
	if len(missing) == 0 {
		if !p.VisibilityUpdated() {
			if sink != nil {
				sink.UploadMetadataTexture(p.brickStatus)
			}
			p.MarkVisibilityUpdated()
		}
		return
	}

	p.PrepareForPaging()

	var requests []BrickRequest
	for _, coord := range missing {
		id := p.layout.BrickID(coord)
		switch p.brickStatus[id] {
		case model.StatusMissing:
			requests = append(requests, BrickRequest{
				Coord: coord,
				Key:   BrickKeyOf(p.layout, modality, timestep, coord),
			})
		case model.StatusEmpty, model.StatusChildEmpty:
			if sink != nil {
				sink.UploadMetadataTexel(id, p.brickStatus[id])
			}
		}
	}
	getter.Enqueue(requests)

	done := getter.DrainDone()
	for i, finished := range done {
		voxels, err := source.GetBrickVoxelCounts(context.Background(), finished.req.Key)
		if err != nil {
			continue
		}
		id := p.layout.BrickID(finished.req.Coord)
		if !p.UploadBrick(sink, id, voxels, finished.data) {
			// insertPos exhausted this frame; put this brick and every one
			// after it back at the requestDone head, in their original
			// order, so the next drain picks them up and none is lost.
			for j := len(done) - 1; j >= i; j-- {
				getter.readd(done[j])
			}
			break
		}
	}

	if !p.VisibilityUpdated() {
		if sink != nil {
			sink.UploadMetadataTexture(p.brickStatus)
		}
		p.MarkVisibilityUpdated()
	}
}
