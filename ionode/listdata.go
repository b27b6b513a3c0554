package ionode

import "github.com/trinity-vr/trinity/wire"

// Catalog answers ListFiles for the node's root directory. A
// single flat directory is enough for the fixture dataset this node always
// serves; a real catalog would walk dirId instead of ignoring it.
type Catalog struct {
	entries []wire.IOData
}

// NewCatalog registers the fixture datasets this node can open by fileId.
func NewCatalog() *Catalog {
	return &Catalog{entries: []wire.IOData{
		{Name: "sphere.trinity", FileId: "sphere", Kind: wire.KindDataset},
		{Name: "turbulence.trinity", FileId: "turbulence", Kind: wire.KindDataset},
		{Name: "gyroid.trinity", FileId: "gyroid", Kind: wire.KindDataset},
	}}
}

// List returns every entry, ignoring dirId.
func (c *Catalog) List(dirId string) []wire.IOData {
	return c.entries
}
