package wire

import "fmt"

// RequestParams is implemented by every command's request payload.
type RequestParams interface {
	Serializable
	Readable
	Type() VclType
}

// Request is the client->server envelope. Rid is client-local and
// monotonically increasing; Sid identifies the target session (0 = node).
type Request struct {
	Type   VclType
	Rid    uint32
	Sid    uint32
	Params RequestParams
}

// ToBytes wraps the params with a type discriminator.
func (req *Request) ToBytes() ([]byte, error) {
	w := NewSerialWriter()
	w.AppendString("type", ToString(req.Type))
	w.AppendUint("rid", uint64(req.Rid))
	w.AppendUint("sid", uint64(req.Sid))
	w.AppendObject("req", req.Params)
	return w.Bytes()
}

// RequestFromBytes looks up the discriminator and constructs the concrete
// Request. An unknown type, missing key, or type mismatch
// raises an InvalidMessage-flavored error the caller must treat as
// protocol-fatal on that connection.
func RequestFromBytes(b []byte) (*Request, error) {
	r, err := NewSerialReader(b)
	if err != nil {
		return nil, err
	}
	typeToken, err := r.GetString("type")
	if err != nil {
		return nil, err
	}
	t, ok := ToType(typeToken)
	if !ok {
		return nil, fmt.Errorf("wire: invalid message: unknown request type %q", typeToken)
	}
	rid, err := r.GetUint64("rid")
	if err != nil {
		return nil, err
	}
	sid, err := r.GetUint64("sid")
	if err != nil {
		return nil, err
	}
	nested, err := r.GetObject("req")
	if err != nil {
		return nil, err
	}
	params, err := newRequestParams(t)
	if err != nil {
		return nil, err
	}
	if err := params.ReadFrom(nested); err != nil {
		return nil, fmt.Errorf("wire: invalid message: %w", err)
	}
	return &Request{Type: t, Rid: uint32(rid), Sid: uint32(sid), Params: params}, nil
}

// newRequestParams constructs a zero-value params struct for t. This is the
// tagged-union dispatch; one arm per VclType.
func newRequestParams(t VclType) (RequestParams, error) {
	switch t {
	case TypeInitIOSession:
		return &InitIOSessionRequest{}, nil
	case TypeInitProcessingSession:
		return &InitProcessingSessionRequest{}, nil
	case TypeCloseSession:
		return &CloseSessionRequest{}, nil
	case TypeListFiles:
		return &ListFilesRequest{}, nil
	case TypeGetLODLevelCount:
		return &GetLODLevelCountRequest{}, nil
	case TypeGetModalityCount:
		return &GetModalityCountRequest{}, nil
	case TypeGetComponentCount:
		return &GetComponentCountRequest{}, nil
	case TypeGetNumberOfTimesteps:
		return &GetNumberOfTimestepsRequest{}, nil
	case TypeGetDomainSize:
		return &GetDomainSizeRequest{}, nil
	case TypeGetTransformation:
		return &GetTransformationRequest{}, nil
	case TypeGetRange:
		return &GetRangeRequest{}, nil
	case TypeGetBrickLayout:
		return &GetBrickLayoutRequest{}, nil
	case TypeGetBrickOverlapSize:
		return &GetBrickOverlapSizeRequest{}, nil
	case TypeGetBrickExtents:
		return &GetBrickExtentsRequest{}, nil
	case TypeGetBrickVoxelCounts:
		return &GetBrickVoxelCountsRequest{}, nil
	case TypeMaxMinForKey:
		return &MaxMinForKeyRequest{}, nil
	case TypeGetMaxBrickSize:
		return &GetMaxBrickSizeRequest{}, nil
	case TypeGetMaxUsedBrickSizes:
		return &GetMaxUsedBrickSizesRequest{}, nil
	case TypeGetLargestSingleBrickLOD:
		return &GetLargestSingleBrickLODRequest{}, nil
	case TypeGetDataType:
		return &GetDataTypeRequest{}, nil
	case TypeGetSemantic:
		return &GetSemanticRequest{}, nil
	case TypeGetDefault1DTransferFunction:
		return &GetDefault1DTransferFunctionRequest{}, nil
	case TypeGetDefault2DTransferFunction:
		return &GetDefault2DTransferFunctionRequest{}, nil
	case TypeGet1DHistogram:
		return &Get1DHistogramRequest{}, nil
	case TypeGet2DHistogram:
		return &Get2DHistogramRequest{}, nil
	case TypeGetBrick:
		return &GetBrickRequest{}, nil
	case TypeSetIsoValue:
		return &SetIsoValueRequest{}, nil
	case TypeSetRenderMode:
		return &SetRenderModeRequest{}, nil
	case TypeSupportsRenderMode:
		return &SupportsRenderModeRequest{}, nil
	case TypeZoomCamera:
		return &ZoomCameraRequest{}, nil
	case TypeMoveCamera:
		return &MoveCameraRequest{}, nil
	case TypeRotateCamera:
		return &RotateCameraRequest{}, nil
	case TypeSetActiveModality:
		return &SetActiveModalityRequest{}, nil
	case TypeSetActiveTimestep:
		return &SetActiveTimestepRequest{}, nil
	case TypeInitContext:
		return &InitContextRequest{}, nil
	case TypeStartRendering:
		return &StartRenderingRequest{}, nil
	case TypeStopRendering:
		return &StopRenderingRequest{}, nil
	case TypeProceedRendering:
		return &ProceedRenderingRequest{}, nil
	case TypeSetTransferFunction1D:
		return &SetTransferFunction1DRequest{}, nil
	case TypeSetTransferFunction2D:
		return &SetTransferFunction2DRequest{}, nil
	default:
		return nil, fmt.Errorf("wire: invalid message: no request for type %s", ToString(t))
	}
}
