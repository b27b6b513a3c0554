package proxy

import (
	"context"
	"time"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/gridleaper"
	"github.com/trinity-vr/trinity/model"
	"github.com/trinity-vr/trinity/renderer"
	"github.com/trinity-vr/trinity/transport"
	"github.com/trinity-vr/trinity/wire"
)

// IOProxy is the client stub a processing node (or a frontend that bypasses
// processing entirely) drives against an I/O node's IOSession.
// It implements gridleaper.DataSource and renderer.DataSource structurally
// — both packages were shaped around exactly this method set so a
// processing node can hand either renderer kind the same *IOProxy.
type IOProxy struct {
	client
}

var (
	_ renderer.DataSource   = (*IOProxy)(nil)
	_ gridleaper.DataSource = (*IOProxy)(nil)
)

// DialIOSession opens a control channel to host:port and calls
// InitIOSession for fileId, returning a proxy bound to the session it gets
// back.
func DialIOSession(protocol, host, port, fileId string, dialTimeout, callTimeout time.Duration) (*IOProxy, error) {
	ep := transport.Endpoint{Protocol: protocol, Host: host, Port: port}
	ch, err := transport.Dial(ep, dialTimeout)
	if err != nil {
		return nil, errs.Wrap(errs.ConnectFailed, err, "dial io node %s", ep)
	}
	p := &IOProxy{client: newClient(ch, 0, callTimeout)}

	rep, err := p.call(wire.TypeInitIOSession, &wire.InitIOSessionRequest{Protocol: protocol, FileId: fileId})
	if err != nil {
		ch.Close()
		return nil, err
	}
	init := rep.(*wire.InitIOSessionReply)

	sessionEp := transport.Endpoint{Protocol: protocol, Host: host, Port: init.ControlPort}
	sessionCh, err := transport.Dial(sessionEp, dialTimeout)
	if err != nil {
		ch.Close()
		return nil, errs.Wrap(errs.ConnectFailed, err, "dial io session control port %s", sessionEp)
	}
	ch.Close()

	return &IOProxy{client: newClient(sessionCh, init.Sid, callTimeout)}, nil
}

// NewIOProxy wraps an already-dialed session control channel, for callers
// that perform the InitIOSession handshake themselves (e.g. a frontend that
// also needs ListFiles against the bare node channel first).
func NewIOProxy(ch *transport.Channel, sid uint32, callTimeout time.Duration) *IOProxy {
	return &IOProxy{client: newClient(ch, sid, callTimeout)}
}

func (p *IOProxy) Close(ctx context.Context) error {
	p.call(wire.TypeCloseSession, &wire.CloseSessionRequest{})
	return p.client.Close()
}

// ListFiles lists the entries under dirId. Valid on a bare node connection
// at sid 0, before InitIOSession — see NewIOProxy.
func (p *IOProxy) ListFiles(dirId string) ([]wire.IOData, error) {
	rep, err := p.call(wire.TypeListFiles, &wire.ListFilesRequest{DirId: dirId})
	if err != nil {
		return nil, err
	}
	return rep.(*wire.ListFilesReply).IOData, nil
}

func (p *IOProxy) GetLODLevelCount(modality uint64) (int32, error) {
	req := &wire.GetLODLevelCountRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGetLODLevelCount, req)
	if err != nil {
		return 0, err
	}
	return rep.(*wire.GetLODLevelCountReply).LODCount, nil
}

func (p *IOProxy) GetModalityCount() (uint64, error) {
	rep, err := p.call(wire.TypeGetModalityCount, &wire.GetModalityCountRequest{})
	if err != nil {
		return 0, err
	}
	return rep.(*wire.GetModalityCountReply).Count, nil
}

func (p *IOProxy) GetComponentCount(modality uint64) (uint64, error) {
	req := &wire.GetComponentCountRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGetComponentCount, req)
	if err != nil {
		return 0, err
	}
	return rep.(*wire.GetComponentCountReply).Count, nil
}

func (p *IOProxy) GetNumberOfTimesteps() (uint64, error) {
	rep, err := p.call(wire.TypeGetNumberOfTimesteps, &wire.GetNumberOfTimestepsRequest{})
	if err != nil {
		return 0, err
	}
	return rep.(*wire.GetNumberOfTimestepsReply).Count, nil
}

func (p *IOProxy) GetDomainSize(lod, modality uint64) (model.Vec3u64, error) {
	req := &wire.GetDomainSizeRequest{}
	req.LOD, req.Modality = lod, modality
	rep, err := p.call(wire.TypeGetDomainSize, req)
	if err != nil {
		return model.Vec3u64{}, err
	}
	return rep.(*wire.GetDomainSizeReply).Size, nil
}

func (p *IOProxy) GetTransformation(modality uint64) (model.Mat4d, error) {
	req := &wire.GetTransformationRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGetTransformation, req)
	if err != nil {
		return model.Mat4d{}, err
	}
	return rep.(*wire.GetTransformationReply).Matrix, nil
}

func (p *IOProxy) GetRange(modality uint64) (model.Vec2f, error) {
	req := &wire.GetRangeRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGetRange, req)
	if err != nil {
		return model.Vec2f{}, err
	}
	return rep.(*wire.GetRangeReply).Range, nil
}

func (p *IOProxy) GetBrickLayout(lod, modality uint64) (model.Vec3u64, error) {
	req := &wire.GetBrickLayoutRequest{}
	req.LOD, req.Modality = lod, modality
	rep, err := p.call(wire.TypeGetBrickLayout, req)
	if err != nil {
		return model.Vec3u64{}, err
	}
	return rep.(*wire.GetBrickLayoutReply).Layout, nil
}

func (p *IOProxy) GetBrickOverlapSize() (model.Vec3ui, error) {
	rep, err := p.call(wire.TypeGetBrickOverlapSize, &wire.GetBrickOverlapSizeRequest{})
	if err != nil {
		return model.Vec3ui{}, err
	}
	return rep.(*wire.GetBrickOverlapSizeReply).Overlap, nil
}

func (p *IOProxy) GetBrickExtents(key model.BrickKey) (model.Vec3f, error) {
	req := &wire.GetBrickExtentsRequest{}
	req.BrickKey = key
	rep, err := p.call(wire.TypeGetBrickExtents, req)
	if err != nil {
		return model.Vec3f{}, err
	}
	return rep.(*wire.GetBrickExtentsReply).Extents, nil
}

func (p *IOProxy) GetBrickVoxelCounts(ctx context.Context, key model.BrickKey) (model.Vec3ui, error) {
	req := &wire.GetBrickVoxelCountsRequest{}
	req.BrickKey = key
	rep, err := p.call(wire.TypeGetBrickVoxelCounts, req)
	if err != nil {
		return model.Vec3ui{}, err
	}
	return rep.(*wire.GetBrickVoxelCountsReply).Counts, nil
}

func (p *IOProxy) MaxMinForKey(ctx context.Context, key model.BrickKey) (model.MinMaxBlock, error) {
	req := &wire.MaxMinForKeyRequest{}
	req.BrickKey = key
	rep, err := p.call(wire.TypeMaxMinForKey, req)
	if err != nil {
		return model.MinMaxBlock{}, err
	}
	return rep.(*wire.MaxMinForKeyReply).MinMax, nil
}

func (p *IOProxy) GetMaxBrickSize() (model.Vec3u64, error) {
	rep, err := p.call(wire.TypeGetMaxBrickSize, &wire.GetMaxBrickSizeRequest{})
	if err != nil {
		return model.Vec3u64{}, err
	}
	return rep.(*wire.GetMaxBrickSizeReply).Size, nil
}

func (p *IOProxy) GetMaxUsedBrickSizes() (model.Vec3u64, error) {
	rep, err := p.call(wire.TypeGetMaxUsedBrickSizes, &wire.GetMaxUsedBrickSizesRequest{})
	if err != nil {
		return model.Vec3u64{}, err
	}
	return rep.(*wire.GetMaxUsedBrickSizesReply).Size, nil
}

func (p *IOProxy) GetLargestSingleBrickLOD(modality uint64) (uint64, error) {
	req := &wire.GetLargestSingleBrickLODRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGetLargestSingleBrickLOD, req)
	if err != nil {
		return 0, err
	}
	return rep.(*wire.GetLargestSingleBrickLODReply).LOD, nil
}

func (p *IOProxy) GetDataType() model.ValueType {
	rep, err := p.call(wire.TypeGetDataType, &wire.GetDataTypeRequest{})
	if err != nil {
		return model.ValueUint8
	}
	return rep.(*wire.GetDataTypeReply).ValueType
}

func (p *IOProxy) GetSemantic(modality uint64) (model.Semantic, error) {
	req := &wire.GetSemanticRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGetSemantic, req)
	if err != nil {
		return model.SemanticScalar, err
	}
	return rep.(*wire.GetSemanticReply).Semantic, nil
}

func (p *IOProxy) GetDefault1DTransferFunction(modality uint64) ([]float64, error) {
	req := &wire.GetDefault1DTransferFunctionRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGetDefault1DTransferFunction, req)
	if err != nil {
		return nil, err
	}
	return rep.(*wire.GetDefault1DTransferFunctionReply).Values, nil
}

func (p *IOProxy) GetDefault2DTransferFunction(modality uint64) ([]float64, error) {
	req := &wire.GetDefault2DTransferFunctionRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGetDefault2DTransferFunction, req)
	if err != nil {
		return nil, err
	}
	return rep.(*wire.GetDefault2DTransferFunctionReply).Values, nil
}

func (p *IOProxy) Get1DHistogram(modality uint64) ([]uint64, error) {
	req := &wire.Get1DHistogramRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGet1DHistogram, req)
	if err != nil {
		return nil, err
	}
	return rep.(*wire.Get1DHistogramReply).Bins, nil
}

func (p *IOProxy) Get2DHistogram(modality uint64) ([]uint64, error) {
	req := &wire.Get2DHistogramRequest{}
	req.Modality = modality
	rep, err := p.call(wire.TypeGet2DHistogram, req)
	if err != nil {
		return nil, err
	}
	return rep.(*wire.Get2DHistogramReply).Bins, nil
}

func (p *IOProxy) GetBrick(ctx context.Context, key model.BrickKey) ([]byte, bool, error) {
	req := &wire.GetBrickRequest{}
	req.BrickKey = key
	rep, err := p.call(wire.TypeGetBrick, req)
	if err != nil {
		return nil, false, err
	}
	br := rep.(*wire.GetBrickReply)
	return br.Data, br.Success, nil
}
