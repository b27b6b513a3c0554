package gridleaper

import "github.com/trinity-vr/trinity/model"

// containsData evaluates the mode-specific predicate against a brick's
// acceleration-structure entry. The
// predicate itself lives on model.VisibilityState so wire decoding and the
// visibility engine share one definition.
func (p *Pool) containsData(v model.VisibilityState, brickID uint32) bool {
	return v.ContainsData(p.brickMeta[brickID])
}

// RecomputeVisibilityForBrickPool re-evaluates the predicate for every slot
// that has ever held a brick, flipping it between resident and empty and
// rewriting its status entry accordingly.
func (p *Pool) RecomputeVisibilityForBrickPool(v model.VisibilityState) {
	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.everUsed {
			continue
		}
		contains := p.containsData(v, slot.BrickID)
		wasVisible := slot.containsVisibleBrick()
		if contains {
			if !wasVisible {
				slot.Empty = false
			}
			p.brickStatus[slot.BrickID] = model.ResidentStatus(p.slotPoolIndex(*slot))
		} else {
			if wasVisible {
				slot.Empty = true
			}
			p.brickStatus[slot.BrickID] = model.StatusEmpty
		}
	}
}

// OctreeVisibilityCounts tallies how many bricks were processed, how many
// were flagged plain Empty, how many parent (coarser-level) bricks were
// flagged ChildEmpty, and how many finest-level leaves were flagged
// ChildEmpty (LeafEmpty, not included in ChildEmpty) — the four counters a test asserting the ChildEmpty
// closure can be verified against.
type OctreeVisibilityCounts struct {
	Processed, Empty, ChildEmpty, LeafEmpty uint64
}

// RecomputeVisibilityForOctree walks the brick hierarchy finest-to-coarsest
// and marks empty subtrees, preserving the invariant that ChildEmpty at a
// parent implies its entire subtree is empty.
func (p *Pool) RecomputeVisibilityForOctree(v model.VisibilityState) OctreeVisibilityCounts {
	var counts OctreeVisibilityCounts

	finest := p.layout.LevelLayout(0)
	for z := uint64(0); z < finest.Z; z++ {
		for y := uint64(0); y < finest.Y; y++ {
			for x := uint64(0); x < finest.X; x++ {
				counts.Processed++
				id := p.layout.BrickID(BrickCoord{X: uint32(x), Y: uint32(y), Z: uint32(z), LOD: 0})
				if p.brickStatus[id] >= model.StatusResidentBase {
					continue // resident bricks are skipped
				}
				if !p.containsData(v, id) {
					p.brickStatus[id] = model.StatusChildEmpty
					counts.LeafEmpty++
				}
			}
		}
	}

	childLayout := finest
	for lod := 1; lod < p.layout.LevelCount(); lod++ {
		parentLayout := p.layout.LevelLayout(uint32(lod))
		for z := uint64(0); z < parentLayout.Z; z++ {
			for y := uint64(0); y < parentLayout.Y; y++ {
				for x := uint64(0); x < parentLayout.X; x++ {
					counts.Processed++
					id := p.layout.BrickID(BrickCoord{X: uint32(x), Y: uint32(y), Z: uint32(z), LOD: uint32(lod)})
					if p.brickStatus[id] >= model.StatusResidentBase {
						continue
					}
					if p.containsData(v, id) {
						continue
					}
					p.brickStatus[id] = model.StatusChildEmpty // tentative

					allChildrenEmpty := true
					anyChild := false
					for _, dz := range [2]uint64{0, 1} {
						cz := z*2 + dz
						if cz >= childLayout.Z {
							continue
						}
						for _, dy := range [2]uint64{0, 1} {
							cy := y*2 + dy
							if cy >= childLayout.Y {
								continue
							}
							for _, dx := range [2]uint64{0, 1} {
								cx := x*2 + dx
								if cx >= childLayout.X {
									continue
								}
								anyChild = true
								childID := p.layout.BrickID(BrickCoord{X: uint32(cx), Y: uint32(cy), Z: uint32(cz), LOD: uint32(lod - 1)})
								if p.brickStatus[childID] != model.StatusChildEmpty {
									allChildrenEmpty = false
								}
							}
						}
					}

					if !anyChild || !allChildrenEmpty {
						p.brickStatus[id] = model.StatusEmpty
						counts.Empty++
					} else {
						counts.ChildEmpty++
					}
				}
			}
		}
		childLayout = parentLayout
	}

	return counts
}

// RecomputeVisibility runs the full visibility pass: reloading the
// acceleration structure on a (modality,timestep) change, the resident-slot
// pass, then the hierarchy pass, finally marking the pool ready for upload
//.
func (p *Pool) RecomputeVisibility(v model.VisibilityState, modality, timestep uint64, meta []model.MinMaxBlock) OctreeVisibilityCounts {
	if modality != p.currentModality || timestep != p.currentTimestep {
		p.SetBrickMetadata(modality, timestep, meta)
	}
	p.ResetStatus()
	p.RecomputeVisibilityForBrickPool(v)
	counts := p.RecomputeVisibilityForOctree(v)
	p.visibilityUpdated = true
	return counts
}
