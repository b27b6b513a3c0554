package wire

import "fmt"

// ReplyParams is implemented by every command's reply payload, plus
// ErrorReply itself.
type ReplyParams interface {
	Serializable
	Readable
	Type() VclType
}

// Reply is the server->client envelope. Rid echoes the request;
// Sid may carry a freshly allocated session id on session-init replies.
type Reply struct {
	Type   VclType
	Rid    uint32
	Sid    uint32
	Params ReplyParams
}

// ToBytes mirrors Request.ToBytes.
func (rep *Reply) ToBytes() ([]byte, error) {
	w := NewSerialWriter()
	w.AppendString("type", ToString(rep.Type))
	w.AppendUint("rid", uint64(rep.Rid))
	w.AppendUint("sid", uint64(rep.Sid))
	w.AppendObject("rep", rep.Params)
	return w.Bytes()
}

// ReplyFromBytes is the reply-side counterpart of RequestFromBytes.
func ReplyFromBytes(b []byte) (*Reply, error) {
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
		return nil, fmt.Errorf("wire: invalid message: unknown reply type %q", typeToken)
	}
	rid, err := r.GetUint64("rid")
	if err != nil {
		return nil, err
	}
	sid, err := r.GetUint64("sid")
	if err != nil {
		return nil, err
	}
	nested, err := r.GetObject("rep")
	if err != nil {
		return nil, err
	}
	params, err := newReplyParams(t)
	if err != nil {
		return nil, err
	}
	if err := params.ReadFrom(nested); err != nil {
		return nil, fmt.Errorf("wire: invalid message: %w", err)
	}
	return &Reply{Type: t, Rid: uint32(rid), Sid: uint32(sid), Params: params}, nil
}

func newReplyParams(t VclType) (ReplyParams, error) {
	switch t {
	case TypeInitIOSession:
		return &InitIOSessionReply{}, nil
	case TypeInitProcessingSession:
		return &InitProcessingSessionReply{}, nil
	case TypeCloseSession:
		return &CloseSessionReply{}, nil
	case TypeListFiles:
		return &ListFilesReply{}, nil
	case TypeGetLODLevelCount:
		return &GetLODLevelCountReply{}, nil
	case TypeGetModalityCount:
		return &GetModalityCountReply{}, nil
	case TypeGetComponentCount:
		return &GetComponentCountReply{}, nil
	case TypeGetNumberOfTimesteps:
		return &GetNumberOfTimestepsReply{}, nil
	case TypeGetDomainSize:
		return &GetDomainSizeReply{}, nil
	case TypeGetTransformation:
		return &GetTransformationReply{}, nil
	case TypeGetRange:
		return &GetRangeReply{}, nil
	case TypeGetBrickLayout:
		return &GetBrickLayoutReply{}, nil
	case TypeGetBrickOverlapSize:
		return &GetBrickOverlapSizeReply{}, nil
	case TypeGetBrickExtents:
		return &GetBrickExtentsReply{}, nil
	case TypeGetBrickVoxelCounts:
		return &GetBrickVoxelCountsReply{}, nil
	case TypeMaxMinForKey:
		return &MaxMinForKeyReply{}, nil
	case TypeGetMaxBrickSize:
		return &GetMaxBrickSizeReply{}, nil
	case TypeGetMaxUsedBrickSizes:
		return &GetMaxUsedBrickSizesReply{}, nil
	case TypeGetLargestSingleBrickLOD:
		return &GetLargestSingleBrickLODReply{}, nil
	case TypeGetDataType:
		return &GetDataTypeReply{}, nil
	case TypeGetSemantic:
		return &GetSemanticReply{}, nil
	case TypeGetDefault1DTransferFunction:
		return &GetDefault1DTransferFunctionReply{}, nil
	case TypeGetDefault2DTransferFunction:
		return &GetDefault2DTransferFunctionReply{}, nil
	case TypeGet1DHistogram:
		return &Get1DHistogramReply{}, nil
	case TypeGet2DHistogram:
		return &Get2DHistogramReply{}, nil
	case TypeGetBrick:
		return &GetBrickReply{}, nil
	case TypeSetIsoValue:
		return &SetIsoValueReply{}, nil
	case TypeSetRenderMode:
		return &SetRenderModeReply{}, nil
	case TypeSupportsRenderMode:
		return &SupportsRenderModeReply{}, nil
	case TypeZoomCamera:
		return &ZoomCameraReply{}, nil
	case TypeMoveCamera:
		return &MoveCameraReply{}, nil
	case TypeRotateCamera:
		return &RotateCameraReply{}, nil
	case TypeSetActiveModality:
		return &SetActiveModalityReply{}, nil
	case TypeSetActiveTimestep:
		return &SetActiveTimestepReply{}, nil
	case TypeInitContext:
		return &InitContextReply{}, nil
	case TypeStartRendering:
		return &StartRenderingReply{}, nil
	case TypeStopRendering:
		return &StopRenderingReply{}, nil
	case TypeProceedRendering:
		return &ProceedRenderingReply{}, nil
	case TypeSetTransferFunction1D:
		return &SetTransferFunction1DReply{}, nil
	case TypeSetTransferFunction2D:
		return &SetTransferFunction2DReply{}, nil
	case TypeError:
		return &ErrorReply{}, nil
	default:
		return nil, fmt.Errorf("wire: invalid message: no reply for type %s", ToString(t))
	}
}

// ErrorReply is the typed error envelope.
type ErrorReply struct {
	Code int32
}

func (e *ErrorReply) Type() VclType { return TypeError }

func (e *ErrorReply) WriteTo(w *SerialWriter) {
	w.AppendInt("code", int64(e.Code))
}

func (e *ErrorReply) ReadFrom(r *SerialReader) error {
	code, err := r.GetInt64("code")
	if err != nil {
		return err
	}
	e.Code = int32(code)
	return nil
}
