package wire

import "github.com/trinity-vr/trinity/model"

// This file defines the concrete RequestParams/ReplyParams for every
// VclType. Each command appends its fields in a fixed order
// on write; reads are by key, so field order never matters for decoding.

// ---- session lifecycle ----

type InitIOSessionRequest struct {
	Protocol string
	FileId   string
}

func (r *InitIOSessionRequest) Type() VclType { return TypeInitIOSession }
func (r *InitIOSessionRequest) WriteTo(w *SerialWriter) {
	w.AppendString("protocol", r.Protocol)
	w.AppendString("fileid", r.FileId)
}
func (r *InitIOSessionRequest) ReadFrom(rd *SerialReader) (err error) {
	if r.Protocol, err = rd.GetString("protocol"); err != nil {
		return err
	}
	r.FileId, err = rd.GetString("fileid")
	return err
}

type InitIOSessionReply struct {
	Sid         uint32
	ControlPort string
}

func (r *InitIOSessionReply) Type() VclType { return TypeInitIOSession }
func (r *InitIOSessionReply) WriteTo(w *SerialWriter) {
	w.AppendUint("sid", uint64(r.Sid))
	w.AppendString("controlport", r.ControlPort)
}
func (r *InitIOSessionReply) ReadFrom(rd *SerialReader) error {
	sid, err := rd.GetUint64("sid")
	if err != nil {
		return err
	}
	r.Sid = uint32(sid)
	r.ControlPort, err = rd.GetString("controlport")
	return err
}

type InitProcessingSessionRequest struct {
	Protocol    string
	RendererType string
	FileId      string
	IOProtocol  string
	IOHost      string
	IOPort      string
	ResX, ResY  uint32
}

func (r *InitProcessingSessionRequest) Type() VclType { return TypeInitProcessingSession }
func (r *InitProcessingSessionRequest) WriteTo(w *SerialWriter) {
	w.AppendString("protocol", r.Protocol)
	w.AppendString("renderType", r.RendererType)
	w.AppendString("fileId", r.FileId)
	w.AppendString("ioProtocol", r.IOProtocol)
	w.AppendString("ioHost", r.IOHost)
	w.AppendString("ioPort", r.IOPort)
	w.AppendUint("resX", uint64(r.ResX))
	w.AppendUint("resY", uint64(r.ResY))
}
func (r *InitProcessingSessionRequest) ReadFrom(rd *SerialReader) (err error) {
	if r.Protocol, err = rd.GetString("protocol"); err != nil {
		return err
	}
	if r.RendererType, err = rd.GetString("renderType"); err != nil {
		return err
	}
	if r.FileId, err = rd.GetString("fileId"); err != nil {
		return err
	}
	if r.IOProtocol, err = rd.GetString("ioProtocol"); err != nil {
		return err
	}
	if r.IOHost, err = rd.GetString("ioHost"); err != nil {
		return err
	}
	if r.IOPort, err = rd.GetString("ioPort"); err != nil {
		return err
	}
	resX, err := rd.GetUint64("resX")
	if err != nil {
		return err
	}
	resY, err := rd.GetUint64("resY")
	if err != nil {
		return err
	}
	r.ResX, r.ResY = uint32(resX), uint32(resY)
	return nil
}

type InitProcessingSessionReply struct {
	Sid         uint32
	ControlPort string
	VisPort     string
}

func (r *InitProcessingSessionReply) Type() VclType { return TypeInitProcessingSession }
func (r *InitProcessingSessionReply) WriteTo(w *SerialWriter) {
	w.AppendUint("sid", uint64(r.Sid))
	w.AppendString("controlport", r.ControlPort)
	w.AppendString("visport", r.VisPort)
}
func (r *InitProcessingSessionReply) ReadFrom(rd *SerialReader) error {
	sid, err := rd.GetUint64("sid")
	if err != nil {
		return err
	}
	r.Sid = uint32(sid)
	if r.ControlPort, err = rd.GetString("controlport"); err != nil {
		return err
	}
	r.VisPort, err = rd.GetString("visport")
	return err
}

type CloseSessionRequest struct{}

func (r *CloseSessionRequest) Type() VclType             { return TypeCloseSession }
func (r *CloseSessionRequest) WriteTo(w *SerialWriter)   {}
func (r *CloseSessionRequest) ReadFrom(rd *SerialReader) error { return nil }

type CloseSessionReply struct{}

func (r *CloseSessionReply) Type() VclType             { return TypeCloseSession }
func (r *CloseSessionReply) WriteTo(w *SerialWriter)   {}
func (r *CloseSessionReply) ReadFrom(rd *SerialReader) error { return nil }

// ---- I/O node: dataset listing ----

type ListFilesRequest struct {
	DirId string
}

func (r *ListFilesRequest) Type() VclType           { return TypeListFiles }
func (r *ListFilesRequest) WriteTo(w *SerialWriter) { w.AppendString("dirid", r.DirId) }
func (r *ListFilesRequest) ReadFrom(rd *SerialReader) (err error) {
	r.DirId, err = rd.GetString("dirid")
	return err
}

// IOData describes one entry returned by ListFiles.
type IOData struct {
	Name     string
	FileId   string
	Kind     IODataKind
}

type IODataKind int

const (
	KindDataset IODataKind = iota
	KindDirectory
)

func (k IODataKind) String() string {
	if k == KindDirectory {
		return "Directory"
	}
	return "Dataset"
}

func ioDataKindFromString(s string) IODataKind {
	if s == "Directory" {
		return KindDirectory
	}
	return KindDataset
}

func (d IOData) WriteTo(w *SerialWriter) {
	w.AppendString("name", d.Name)
	w.AppendString("fileid", d.FileId)
	w.AppendString("datatype", d.Kind.String())
}

func (d *IOData) ReadFrom(r *SerialReader) (err error) {
	if d.Name, err = r.GetString("name"); err != nil {
		return err
	}
	if d.FileId, err = r.GetString("fileid"); err != nil {
		return err
	}
	kind, err := r.GetString("datatype")
	if err != nil {
		return err
	}
	d.Kind = ioDataKindFromString(kind)
	return nil
}

type ListFilesReply struct {
	IOData []IOData
}

func (r *ListFilesReply) Type() VclType { return TypeListFiles }
func (r *ListFilesReply) WriteTo(w *SerialWriter) {
	objs := make([]Serializable, len(r.IOData))
	for i := range r.IOData {
		d := r.IOData[i]
		objs[i] = d
	}
	w.AppendObjectVector("iodata", objs)
}
func (r *ListFilesReply) ReadFrom(rd *SerialReader) error {
	nested, err := rd.GetObjectVector("iodata")
	if err != nil {
		return err
	}
	r.IOData = make([]IOData, len(nested))
	for i, n := range nested {
		if err := r.IOData[i].ReadFrom(n); err != nil {
			return err
		}
	}
	return nil
}

// ---- I/O node: per-dataset metadata ----

// brickKeyRequest is embedded by every command keyed solely by a BrickKey.
type brickKeyRequest struct {
	BrickKey model.BrickKey
}

func (r *brickKeyRequest) WriteTo(w *SerialWriter) { writeBrickKey(w, "brickkey", r.BrickKey) }
func (r *brickKeyRequest) ReadFrom(rd *SerialReader) (err error) {
	r.BrickKey, err = readBrickKey(rd, "brickkey")
	return err
}

// modalityRequest is embedded by commands keyed solely by a modality id.
type modalityRequest struct {
	Modality uint64
}

func (r *modalityRequest) WriteTo(w *SerialWriter) { w.AppendUint("modality", r.Modality) }
func (r *modalityRequest) ReadFrom(rd *SerialReader) (err error) {
	r.Modality, err = rd.GetUint64("modality")
	return err
}

// lodModalityRequest is embedded by commands keyed by (lod, modality).
type lodModalityRequest struct {
	LOD      uint64
	Modality uint64
}

func (r *lodModalityRequest) WriteTo(w *SerialWriter) {
	w.AppendUint("lod", r.LOD)
	w.AppendUint("modality", r.Modality)
}
func (r *lodModalityRequest) ReadFrom(rd *SerialReader) (err error) {
	if r.LOD, err = rd.GetUint64("lod"); err != nil {
		return err
	}
	r.Modality, err = rd.GetUint64("modality")
	return err
}

type GetLODLevelCountRequest struct{ modalityRequest }

func (r *GetLODLevelCountRequest) Type() VclType { return TypeGetLODLevelCount }

type GetLODLevelCountReply struct{ LODCount int32 }

func (r *GetLODLevelCountReply) Type() VclType { return TypeGetLODLevelCount }
func (r *GetLODLevelCountReply) WriteTo(w *SerialWriter) {
	w.AppendInt("lodcount", int64(r.LODCount))
}
func (r *GetLODLevelCountReply) ReadFrom(rd *SerialReader) error {
	v, err := rd.GetInt64("lodcount")
	r.LODCount = int32(v)
	return err
}

type GetModalityCountRequest struct{}

func (r *GetModalityCountRequest) Type() VclType             { return TypeGetModalityCount }
func (r *GetModalityCountRequest) WriteTo(w *SerialWriter)   {}
func (r *GetModalityCountRequest) ReadFrom(rd *SerialReader) error { return nil }

type GetModalityCountReply struct{ Count uint64 }

func (r *GetModalityCountReply) Type() VclType           { return TypeGetModalityCount }
func (r *GetModalityCountReply) WriteTo(w *SerialWriter) { w.AppendUint("count", r.Count) }
func (r *GetModalityCountReply) ReadFrom(rd *SerialReader) (err error) {
	r.Count, err = rd.GetUint64("count")
	return err
}

type GetComponentCountRequest struct{ modalityRequest }

func (r *GetComponentCountRequest) Type() VclType { return TypeGetComponentCount }

type GetComponentCountReply struct{ Count uint64 }

func (r *GetComponentCountReply) Type() VclType           { return TypeGetComponentCount }
func (r *GetComponentCountReply) WriteTo(w *SerialWriter) { w.AppendUint("count", r.Count) }
func (r *GetComponentCountReply) ReadFrom(rd *SerialReader) (err error) {
	r.Count, err = rd.GetUint64("count")
	return err
}

type GetNumberOfTimestepsRequest struct{}

func (r *GetNumberOfTimestepsRequest) Type() VclType             { return TypeGetNumberOfTimesteps }
func (r *GetNumberOfTimestepsRequest) WriteTo(w *SerialWriter)   {}
func (r *GetNumberOfTimestepsRequest) ReadFrom(rd *SerialReader) error { return nil }

type GetNumberOfTimestepsReply struct{ Count uint64 }

func (r *GetNumberOfTimestepsReply) Type() VclType           { return TypeGetNumberOfTimesteps }
func (r *GetNumberOfTimestepsReply) WriteTo(w *SerialWriter) { w.AppendUint("count", r.Count) }
func (r *GetNumberOfTimestepsReply) ReadFrom(rd *SerialReader) (err error) {
	r.Count, err = rd.GetUint64("count")
	return err
}

type GetDomainSizeRequest struct{ lodModalityRequest }

func (r *GetDomainSizeRequest) Type() VclType { return TypeGetDomainSize }

type GetDomainSizeReply struct{ Size model.Vec3u64 }

func (r *GetDomainSizeReply) Type() VclType           { return TypeGetDomainSize }
func (r *GetDomainSizeReply) WriteTo(w *SerialWriter) { writeVec3u64(w, "size", r.Size) }
func (r *GetDomainSizeReply) ReadFrom(rd *SerialReader) (err error) {
	r.Size, err = readVec3u64(rd, "size")
	return err
}

type GetTransformationRequest struct{ modalityRequest }

func (r *GetTransformationRequest) Type() VclType { return TypeGetTransformation }

type GetTransformationReply struct{ Matrix model.Mat4d }

func (r *GetTransformationReply) Type() VclType           { return TypeGetTransformation }
func (r *GetTransformationReply) WriteTo(w *SerialWriter) { writeMat4d(w, "matrix", r.Matrix) }
func (r *GetTransformationReply) ReadFrom(rd *SerialReader) (err error) {
	r.Matrix, err = readMat4d(rd, "matrix")
	return err
}

type GetRangeRequest struct{ modalityRequest }

func (r *GetRangeRequest) Type() VclType { return TypeGetRange }

type GetRangeReply struct{ Range model.Vec2f }

func (r *GetRangeReply) Type() VclType           { return TypeGetRange }
func (r *GetRangeReply) WriteTo(w *SerialWriter) { writeVec2f(w, "range", r.Range) }
func (r *GetRangeReply) ReadFrom(rd *SerialReader) (err error) {
	r.Range, err = readVec2f(rd, "range")
	return err
}

type GetBrickLayoutRequest struct{ lodModalityRequest }

func (r *GetBrickLayoutRequest) Type() VclType { return TypeGetBrickLayout }

type GetBrickLayoutReply struct{ Layout model.Vec3u64 }

func (r *GetBrickLayoutReply) Type() VclType           { return TypeGetBrickLayout }
func (r *GetBrickLayoutReply) WriteTo(w *SerialWriter) { writeVec3u64(w, "layout", r.Layout) }
func (r *GetBrickLayoutReply) ReadFrom(rd *SerialReader) (err error) {
	r.Layout, err = readVec3u64(rd, "layout")
	return err
}

type GetBrickOverlapSizeRequest struct{}

func (r *GetBrickOverlapSizeRequest) Type() VclType             { return TypeGetBrickOverlapSize }
func (r *GetBrickOverlapSizeRequest) WriteTo(w *SerialWriter)   {}
func (r *GetBrickOverlapSizeRequest) ReadFrom(rd *SerialReader) error { return nil }

type GetBrickOverlapSizeReply struct{ Overlap model.Vec3ui }

func (r *GetBrickOverlapSizeReply) Type() VclType           { return TypeGetBrickOverlapSize }
func (r *GetBrickOverlapSizeReply) WriteTo(w *SerialWriter) { writeVec3ui(w, "overlap", r.Overlap) }
func (r *GetBrickOverlapSizeReply) ReadFrom(rd *SerialReader) (err error) {
	r.Overlap, err = readVec3ui(rd, "overlap")
	return err
}

type GetBrickExtentsRequest struct{ brickKeyRequest }

func (r *GetBrickExtentsRequest) Type() VclType { return TypeGetBrickExtents }

type GetBrickExtentsReply struct{ Extents model.Vec3f }

func (r *GetBrickExtentsReply) Type() VclType           { return TypeGetBrickExtents }
func (r *GetBrickExtentsReply) WriteTo(w *SerialWriter) { writeVec3f(w, "extents", r.Extents) }
func (r *GetBrickExtentsReply) ReadFrom(rd *SerialReader) (err error) {
	r.Extents, err = readVec3f(rd, "extents")
	return err
}

type GetBrickVoxelCountsRequest struct{ brickKeyRequest }

func (r *GetBrickVoxelCountsRequest) Type() VclType { return TypeGetBrickVoxelCounts }

type GetBrickVoxelCountsReply struct{ Counts model.Vec3ui }

func (r *GetBrickVoxelCountsReply) Type() VclType { return TypeGetBrickVoxelCounts }
func (r *GetBrickVoxelCountsReply) WriteTo(w *SerialWriter) {
	writeVec3ui(w, "counts", r.Counts)
}
func (r *GetBrickVoxelCountsReply) ReadFrom(rd *SerialReader) (err error) {
	r.Counts, err = readVec3ui(rd, "counts")
	return err
}

type MaxMinForKeyRequest struct{ brickKeyRequest }

func (r *MaxMinForKeyRequest) Type() VclType { return TypeMaxMinForKey }

type MaxMinForKeyReply struct{ MinMax model.MinMaxBlock }

func (r *MaxMinForKeyReply) Type() VclType           { return TypeMaxMinForKey }
func (r *MaxMinForKeyReply) WriteTo(w *SerialWriter) { writeMinMax(w, "minmax", r.MinMax) }
func (r *MaxMinForKeyReply) ReadFrom(rd *SerialReader) (err error) {
	r.MinMax, err = readMinMax(rd, "minmax")
	return err
}

type GetMaxBrickSizeRequest struct{}

func (r *GetMaxBrickSizeRequest) Type() VclType             { return TypeGetMaxBrickSize }
func (r *GetMaxBrickSizeRequest) WriteTo(w *SerialWriter)   {}
func (r *GetMaxBrickSizeRequest) ReadFrom(rd *SerialReader) error { return nil }

type GetMaxBrickSizeReply struct{ Size model.Vec3u64 }

func (r *GetMaxBrickSizeReply) Type() VclType           { return TypeGetMaxBrickSize }
func (r *GetMaxBrickSizeReply) WriteTo(w *SerialWriter) { writeVec3u64(w, "size", r.Size) }
func (r *GetMaxBrickSizeReply) ReadFrom(rd *SerialReader) (err error) {
	r.Size, err = readVec3u64(rd, "size")
	return err
}

type GetMaxUsedBrickSizesRequest struct{}

func (r *GetMaxUsedBrickSizesRequest) Type() VclType             { return TypeGetMaxUsedBrickSizes }
func (r *GetMaxUsedBrickSizesRequest) WriteTo(w *SerialWriter)   {}
func (r *GetMaxUsedBrickSizesRequest) ReadFrom(rd *SerialReader) error { return nil }

type GetMaxUsedBrickSizesReply struct{ Size model.Vec3u64 }

func (r *GetMaxUsedBrickSizesReply) Type() VclType           { return TypeGetMaxUsedBrickSizes }
func (r *GetMaxUsedBrickSizesReply) WriteTo(w *SerialWriter) { writeVec3u64(w, "size", r.Size) }
func (r *GetMaxUsedBrickSizesReply) ReadFrom(rd *SerialReader) (err error) {
	r.Size, err = readVec3u64(rd, "size")
	return err
}

type GetLargestSingleBrickLODRequest struct{ modalityRequest }

func (r *GetLargestSingleBrickLODRequest) Type() VclType { return TypeGetLargestSingleBrickLOD }

type GetLargestSingleBrickLODReply struct{ LOD uint64 }

func (r *GetLargestSingleBrickLODReply) Type() VclType { return TypeGetLargestSingleBrickLOD }
func (r *GetLargestSingleBrickLODReply) WriteTo(w *SerialWriter) {
	w.AppendUint("lod", r.LOD)
}
func (r *GetLargestSingleBrickLODReply) ReadFrom(rd *SerialReader) (err error) {
	r.LOD, err = rd.GetUint64("lod")
	return err
}

type GetDataTypeRequest struct{}

func (r *GetDataTypeRequest) Type() VclType             { return TypeGetDataType }
func (r *GetDataTypeRequest) WriteTo(w *SerialWriter)   {}
func (r *GetDataTypeRequest) ReadFrom(rd *SerialReader) error { return nil }

type GetDataTypeReply struct{ ValueType model.ValueType }

func (r *GetDataTypeReply) Type() VclType { return TypeGetDataType }
func (r *GetDataTypeReply) WriteTo(w *SerialWriter) {
	w.AppendInt("valuetype", int64(r.ValueType))
}
func (r *GetDataTypeReply) ReadFrom(rd *SerialReader) error {
	v, err := rd.GetInt64("valuetype")
	r.ValueType = model.ValueType(v)
	return err
}

type GetSemanticRequest struct{ modalityRequest }

func (r *GetSemanticRequest) Type() VclType { return TypeGetSemantic }

type GetSemanticReply struct{ Semantic model.Semantic }

func (r *GetSemanticReply) Type() VclType { return TypeGetSemantic }
func (r *GetSemanticReply) WriteTo(w *SerialWriter) {
	w.AppendInt("semantic", int64(r.Semantic))
}
func (r *GetSemanticReply) ReadFrom(rd *SerialReader) error {
	v, err := rd.GetInt64("semantic")
	r.Semantic = model.Semantic(v)
	return err
}

type GetDefault1DTransferFunctionRequest struct{ modalityRequest }

func (r *GetDefault1DTransferFunctionRequest) Type() VclType {
	return TypeGetDefault1DTransferFunction
}

type GetDefault1DTransferFunctionReply struct{ Values []float64 }

func (r *GetDefault1DTransferFunctionReply) Type() VclType {
	return TypeGetDefault1DTransferFunction
}
func (r *GetDefault1DTransferFunctionReply) WriteTo(w *SerialWriter) {
	w.AppendFloatVector("values", r.Values)
}
func (r *GetDefault1DTransferFunctionReply) ReadFrom(rd *SerialReader) (err error) {
	r.Values, err = rd.GetFloatVector("values")
	return err
}

type GetDefault2DTransferFunctionRequest struct{ modalityRequest }

func (r *GetDefault2DTransferFunctionRequest) Type() VclType {
	return TypeGetDefault2DTransferFunction
}

type GetDefault2DTransferFunctionReply struct{ Values []float64 }

func (r *GetDefault2DTransferFunctionReply) Type() VclType {
	return TypeGetDefault2DTransferFunction
}
func (r *GetDefault2DTransferFunctionReply) WriteTo(w *SerialWriter) {
	w.AppendFloatVector("values", r.Values)
}
func (r *GetDefault2DTransferFunctionReply) ReadFrom(rd *SerialReader) (err error) {
	r.Values, err = rd.GetFloatVector("values")
	return err
}

type Get1DHistogramRequest struct{ modalityRequest }

func (r *Get1DHistogramRequest) Type() VclType { return TypeGet1DHistogram }

type Get1DHistogramReply struct{ Bins []uint64 }

func (r *Get1DHistogramReply) Type() VclType           { return TypeGet1DHistogram }
func (r *Get1DHistogramReply) WriteTo(w *SerialWriter) { w.AppendUintVector("bins", r.Bins) }
func (r *Get1DHistogramReply) ReadFrom(rd *SerialReader) (err error) {
	r.Bins, err = rd.GetUintVector("bins")
	return err
}

type Get2DHistogramRequest struct{ modalityRequest }

func (r *Get2DHistogramRequest) Type() VclType { return TypeGet2DHistogram }

type Get2DHistogramReply struct{ Bins []uint64 }

func (r *Get2DHistogramReply) Type() VclType           { return TypeGet2DHistogram }
func (r *Get2DHistogramReply) WriteTo(w *SerialWriter) { w.AppendUintVector("bins", r.Bins) }
func (r *Get2DHistogramReply) ReadFrom(rd *SerialReader) (err error) {
	r.Bins, err = rd.GetUintVector("bins")
	return err
}

type GetBrickRequest struct{ brickKeyRequest }

func (r *GetBrickRequest) Type() VclType { return TypeGetBrick }

// GetBrickReply's Success flag replaces the original IIO's "mysterious
// flag": an explicit out-parameter rather than a
// side channel.
type GetBrickReply struct {
	Data    []byte
	Success bool
}

func (r *GetBrickReply) Type() VclType { return TypeGetBrick }
func (r *GetBrickReply) WriteTo(w *SerialWriter) {
	w.AppendBytes("data", r.Data)
	w.AppendBool("success", r.Success)
}
func (r *GetBrickReply) ReadFrom(rd *SerialReader) (err error) {
	if r.Data, err = rd.GetBytes("data"); err != nil {
		return err
	}
	r.Success, err = rd.GetBool("success")
	return err
}

// ---- rendering commands ----

type SetIsoValueRequest struct{ Value float32 }

func (r *SetIsoValueRequest) Type() VclType           { return TypeSetIsoValue }
func (r *SetIsoValueRequest) WriteTo(w *SerialWriter) { w.AppendFloat("value", float64(r.Value)) }
func (r *SetIsoValueRequest) ReadFrom(rd *SerialReader) error {
	v, err := rd.GetFloat64("value")
	r.Value = float32(v)
	return err
}

type SetIsoValueReply struct{}

func (r *SetIsoValueReply) Type() VclType             { return TypeSetIsoValue }
func (r *SetIsoValueReply) WriteTo(w *SerialWriter)   {}
func (r *SetIsoValueReply) ReadFrom(rd *SerialReader) error { return nil }

type SetRenderModeRequest struct{ Mode model.RenderMode }

func (r *SetRenderModeRequest) Type() VclType { return TypeSetRenderMode }
func (r *SetRenderModeRequest) WriteTo(w *SerialWriter) {
	w.AppendInt("mode", int64(r.Mode))
}
func (r *SetRenderModeRequest) ReadFrom(rd *SerialReader) error {
	v, err := rd.GetInt64("mode")
	r.Mode = model.RenderMode(v)
	return err
}

type SetRenderModeReply struct{}

func (r *SetRenderModeReply) Type() VclType             { return TypeSetRenderMode }
func (r *SetRenderModeReply) WriteTo(w *SerialWriter)   {}
func (r *SetRenderModeReply) ReadFrom(rd *SerialReader) error { return nil }

type SupportsRenderModeRequest struct{ Mode model.RenderMode }

func (r *SupportsRenderModeRequest) Type() VclType { return TypeSupportsRenderMode }
func (r *SupportsRenderModeRequest) WriteTo(w *SerialWriter) {
	w.AppendInt("mode", int64(r.Mode))
}
func (r *SupportsRenderModeRequest) ReadFrom(rd *SerialReader) error {
	v, err := rd.GetInt64("mode")
	r.Mode = model.RenderMode(v)
	return err
}

type SupportsRenderModeReply struct{ Supported bool }

func (r *SupportsRenderModeReply) Type() VclType { return TypeSupportsRenderMode }
func (r *SupportsRenderModeReply) WriteTo(w *SerialWriter) {
	w.AppendBool("supported", r.Supported)
}
func (r *SupportsRenderModeReply) ReadFrom(rd *SerialReader) (err error) {
	r.Supported, err = rd.GetBool("supported")
	return err
}

type ZoomCameraRequest struct{ Zoom float32 }

func (r *ZoomCameraRequest) Type() VclType           { return TypeZoomCamera }
func (r *ZoomCameraRequest) WriteTo(w *SerialWriter) { w.AppendFloat("zoom", float64(r.Zoom)) }
func (r *ZoomCameraRequest) ReadFrom(rd *SerialReader) error {
	v, err := rd.GetFloat64("zoom")
	r.Zoom = float32(v)
	return err
}

type ZoomCameraReply struct{}

func (r *ZoomCameraReply) Type() VclType             { return TypeZoomCamera }
func (r *ZoomCameraReply) WriteTo(w *SerialWriter)   {}
func (r *ZoomCameraReply) ReadFrom(rd *SerialReader) error { return nil }

type MoveCameraRequest struct{ Delta model.Vec3f }

func (r *MoveCameraRequest) Type() VclType           { return TypeMoveCamera }
func (r *MoveCameraRequest) WriteTo(w *SerialWriter) { writeVec3f(w, "delta", r.Delta) }
func (r *MoveCameraRequest) ReadFrom(rd *SerialReader) (err error) {
	r.Delta, err = readVec3f(rd, "delta")
	return err
}

type MoveCameraReply struct{}

func (r *MoveCameraReply) Type() VclType             { return TypeMoveCamera }
func (r *MoveCameraReply) WriteTo(w *SerialWriter)   {}
func (r *MoveCameraReply) ReadFrom(rd *SerialReader) error { return nil }

type RotateCameraRequest struct{ Yaw, Pitch float32 }

func (r *RotateCameraRequest) Type() VclType { return TypeRotateCamera }
func (r *RotateCameraRequest) WriteTo(w *SerialWriter) {
	w.AppendFloat("yaw", float64(r.Yaw))
	w.AppendFloat("pitch", float64(r.Pitch))
}
func (r *RotateCameraRequest) ReadFrom(rd *SerialReader) error {
	yaw, err := rd.GetFloat64("yaw")
	if err != nil {
		return err
	}
	pitch, err := rd.GetFloat64("pitch")
	if err != nil {
		return err
	}
	r.Yaw, r.Pitch = float32(yaw), float32(pitch)
	return nil
}

type RotateCameraReply struct{}

func (r *RotateCameraReply) Type() VclType             { return TypeRotateCamera }
func (r *RotateCameraReply) WriteTo(w *SerialWriter)   {}
func (r *RotateCameraReply) ReadFrom(rd *SerialReader) error { return nil }

type SetActiveModalityRequest struct{ Modality uint64 }

func (r *SetActiveModalityRequest) Type() VclType { return TypeSetActiveModality }
func (r *SetActiveModalityRequest) WriteTo(w *SerialWriter) {
	w.AppendUint("modality", r.Modality)
}
func (r *SetActiveModalityRequest) ReadFrom(rd *SerialReader) (err error) {
	r.Modality, err = rd.GetUint64("modality")
	return err
}

type SetActiveModalityReply struct{}

func (r *SetActiveModalityReply) Type() VclType             { return TypeSetActiveModality }
func (r *SetActiveModalityReply) WriteTo(w *SerialWriter)   {}
func (r *SetActiveModalityReply) ReadFrom(rd *SerialReader) error { return nil }

type SetActiveTimestepRequest struct{ Timestep uint64 }

func (r *SetActiveTimestepRequest) Type() VclType { return TypeSetActiveTimestep }
func (r *SetActiveTimestepRequest) WriteTo(w *SerialWriter) {
	w.AppendUint("timestep", r.Timestep)
}
func (r *SetActiveTimestepRequest) ReadFrom(rd *SerialReader) (err error) {
	r.Timestep, err = rd.GetUint64("timestep")
	return err
}

type SetActiveTimestepReply struct{}

func (r *SetActiveTimestepReply) Type() VclType             { return TypeSetActiveTimestep }
func (r *SetActiveTimestepReply) WriteTo(w *SerialWriter)   {}
func (r *SetActiveTimestepReply) ReadFrom(rd *SerialReader) error { return nil }

type InitContextRequest struct{ Width, Height uint32 }

func (r *InitContextRequest) Type() VclType { return TypeInitContext }
func (r *InitContextRequest) WriteTo(w *SerialWriter) {
	w.AppendUint("width", uint64(r.Width))
	w.AppendUint("height", uint64(r.Height))
}
func (r *InitContextRequest) ReadFrom(rd *SerialReader) error {
	width, err := rd.GetUint64("width")
	if err != nil {
		return err
	}
	height, err := rd.GetUint64("height")
	if err != nil {
		return err
	}
	r.Width, r.Height = uint32(width), uint32(height)
	return nil
}

type InitContextReply struct{}

func (r *InitContextReply) Type() VclType             { return TypeInitContext }
func (r *InitContextReply) WriteTo(w *SerialWriter)   {}
func (r *InitContextReply) ReadFrom(rd *SerialReader) error { return nil }

type StartRenderingRequest struct{}

func (r *StartRenderingRequest) Type() VclType             { return TypeStartRendering }
func (r *StartRenderingRequest) WriteTo(w *SerialWriter)   {}
func (r *StartRenderingRequest) ReadFrom(rd *SerialReader) error { return nil }

type StartRenderingReply struct{}

func (r *StartRenderingReply) Type() VclType             { return TypeStartRendering }
func (r *StartRenderingReply) WriteTo(w *SerialWriter)   {}
func (r *StartRenderingReply) ReadFrom(rd *SerialReader) error { return nil }

type StopRenderingRequest struct{}

func (r *StopRenderingRequest) Type() VclType             { return TypeStopRendering }
func (r *StopRenderingRequest) WriteTo(w *SerialWriter)   {}
func (r *StopRenderingRequest) ReadFrom(rd *SerialReader) error { return nil }

type StopRenderingReply struct{}

func (r *StopRenderingReply) Type() VclType             { return TypeStopRendering }
func (r *StopRenderingReply) WriteTo(w *SerialWriter)   {}
func (r *StopRenderingReply) ReadFrom(rd *SerialReader) error { return nil }

type ProceedRenderingRequest struct{}

func (r *ProceedRenderingRequest) Type() VclType             { return TypeProceedRendering }
func (r *ProceedRenderingRequest) WriteTo(w *SerialWriter)   {}
func (r *ProceedRenderingRequest) ReadFrom(rd *SerialReader) error { return nil }

type ProceedRenderingReply struct{}

func (r *ProceedRenderingReply) Type() VclType             { return TypeProceedRendering }
func (r *ProceedRenderingReply) WriteTo(w *SerialWriter)   {}
func (r *ProceedRenderingReply) ReadFrom(rd *SerialReader) error { return nil }

type SetTransferFunction1DRequest struct{ Values []float64 }

func (r *SetTransferFunction1DRequest) Type() VclType { return TypeSetTransferFunction1D }
func (r *SetTransferFunction1DRequest) WriteTo(w *SerialWriter) {
	w.AppendFloatVector("values", r.Values)
}
func (r *SetTransferFunction1DRequest) ReadFrom(rd *SerialReader) (err error) {
	r.Values, err = rd.GetFloatVector("values")
	return err
}

type SetTransferFunction1DReply struct{}

func (r *SetTransferFunction1DReply) Type() VclType             { return TypeSetTransferFunction1D }
func (r *SetTransferFunction1DReply) WriteTo(w *SerialWriter)   {}
func (r *SetTransferFunction1DReply) ReadFrom(rd *SerialReader) error { return nil }

type SetTransferFunction2DRequest struct{ Values []float64 }

func (r *SetTransferFunction2DRequest) Type() VclType { return TypeSetTransferFunction2D }
func (r *SetTransferFunction2DRequest) WriteTo(w *SerialWriter) {
	w.AppendFloatVector("values", r.Values)
}
func (r *SetTransferFunction2DRequest) ReadFrom(rd *SerialReader) (err error) {
	r.Values, err = rd.GetFloatVector("values")
	return err
}

type SetTransferFunction2DReply struct{}

func (r *SetTransferFunction2DReply) Type() VclType             { return TypeSetTransferFunction2D }
func (r *SetTransferFunction2DReply) WriteTo(w *SerialWriter)   {}
func (r *SetTransferFunction2DReply) ReadFrom(rd *SerialReader) error { return nil }
