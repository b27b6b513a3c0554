package ionode

import (
	"context"
	"fmt"

	"github.com/trinity-vr/trinity/errs"
	"github.com/trinity-vr/trinity/session"
	"github.com/trinity-vr/trinity/wire"
)

// Factory builds CommandHandlers that forward 1:1 onto an IIO, one handler
// method per command.
type Factory struct {
	IO IIO
}

var _ session.CommandFactory = Factory{}

func (f Factory) Create(req *wire.Request) (session.CommandHandler, error) {
	return ioHandler{io: f.IO, req: req}, nil
}

type ioHandler struct {
	io  IIO
	req *wire.Request
}

func (h ioHandler) Execute(ctx context.Context) (wire.ReplyParams, error) {
	switch p := h.req.Params.(type) {
	case *wire.GetLODLevelCountRequest:
		count, err := h.io.GetLODLevelCount(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetLODLevelCountReply{LODCount: count}, nil

	case *wire.GetModalityCountRequest:
		return &wire.GetModalityCountReply{Count: h.io.GetModalityCount()}, nil

	case *wire.GetComponentCountRequest:
		count, err := h.io.GetComponentCount(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetComponentCountReply{Count: count}, nil

	case *wire.GetNumberOfTimestepsRequest:
		return &wire.GetNumberOfTimestepsReply{Count: h.io.GetNumberOfTimesteps()}, nil

	case *wire.GetDomainSizeRequest:
		size, err := h.io.GetDomainSize(p.LOD, p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetDomainSizeReply{Size: size}, nil

	case *wire.GetTransformationRequest:
		m, err := h.io.GetTransformation(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetTransformationReply{Matrix: m}, nil

	case *wire.GetRangeRequest:
		r, err := h.io.GetRange(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetRangeReply{Range: r}, nil

	case *wire.GetBrickLayoutRequest:
		l, err := h.io.GetBrickLayout(p.LOD, p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetBrickLayoutReply{Layout: l}, nil

	case *wire.GetBrickOverlapSizeRequest:
		return &wire.GetBrickOverlapSizeReply{Overlap: h.io.GetBrickOverlapSize()}, nil

	case *wire.GetBrickExtentsRequest:
		e, err := h.io.GetBrickExtents(p.BrickKey)
		if err != nil {
			return nil, err
		}
		return &wire.GetBrickExtentsReply{Extents: e}, nil

	case *wire.GetBrickVoxelCountsRequest:
		c, err := h.io.GetBrickVoxelCounts(p.BrickKey)
		if err != nil {
			return nil, err
		}
		return &wire.GetBrickVoxelCountsReply{Counts: c}, nil

	case *wire.MaxMinForKeyRequest:
		mm, err := h.io.MaxMinForKey(p.BrickKey)
		if err != nil {
			return nil, err
		}
		return &wire.MaxMinForKeyReply{MinMax: mm}, nil

	case *wire.GetMaxBrickSizeRequest:
		return &wire.GetMaxBrickSizeReply{Size: h.io.GetMaxBrickSize()}, nil

	case *wire.GetMaxUsedBrickSizesRequest:
		return &wire.GetMaxUsedBrickSizesReply{Size: h.io.GetMaxUsedBrickSizes()}, nil

	case *wire.GetLargestSingleBrickLODRequest:
		lod, err := h.io.GetLargestSingleBrickLOD(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetLargestSingleBrickLODReply{LOD: lod}, nil

	case *wire.GetDataTypeRequest:
		return &wire.GetDataTypeReply{ValueType: h.io.GetDataType()}, nil

	case *wire.GetSemanticRequest:
		s, err := h.io.GetSemantic(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetSemanticReply{Semantic: s}, nil

	case *wire.GetDefault1DTransferFunctionRequest:
		v, err := h.io.GetDefault1DTransferFunction(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetDefault1DTransferFunctionReply{Values: v}, nil

	case *wire.GetDefault2DTransferFunctionRequest:
		v, err := h.io.GetDefault2DTransferFunction(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.GetDefault2DTransferFunctionReply{Values: v}, nil

	case *wire.Get1DHistogramRequest:
		b, err := h.io.Get1DHistogram(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.Get1DHistogramReply{Bins: b}, nil

	case *wire.Get2DHistogramRequest:
		b, err := h.io.Get2DHistogram(p.Modality)
		if err != nil {
			return nil, err
		}
		return &wire.Get2DHistogramReply{Bins: b}, nil

	case *wire.GetBrickRequest:
		data, ok, err := h.io.GetBrick(p.BrickKey)
		if err != nil {
			return nil, err
		}
		return &wire.GetBrickReply{Data: data, Success: ok}, nil

	case *wire.CloseSessionRequest:
		return &wire.CloseSessionReply{}, nil

	default:
		return nil, errs.New(errs.ProtocolError, "io session: unexpected command %s", fmt.Sprintf("%T", p))
	}
}
