package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trinity-vr/trinity/model"
)

// Each listed command request round-trips through ToBytes/RequestFromBytes
// back to an equal type, rid, sid and params: this is the closed-enumeration
// guarantee the command table depends on.
func TestRequestRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		params RequestParams
	}{
		{"InitIOSession", &InitIOSessionRequest{Protocol: "tcp", FileId: "42"}},
		{"InitProcessingSession", &InitProcessingSessionRequest{
			Protocol: "tcp", RendererType: "gridleaper", FileId: "42",
			IOProtocol: "tcp", IOHost: "127.0.0.1", IOPort: "9001",
			ResX: 800, ResY: 600,
		}},
		{"CloseSession", &CloseSessionRequest{}},
		{"ListFiles", &ListFilesRequest{DirId: "root"}},
		{"GetLODLevelCount", &GetLODLevelCountRequest{modalityRequest{Modality: 3}}},
		{"GetModalityCount", &GetModalityCountRequest{}},
		{"GetDomainSize", &GetDomainSizeRequest{lodModalityRequest{LOD: 2, Modality: 1}}},
		{"GetTransformation", &GetTransformationRequest{modalityRequest{Modality: 0}}},
		{"GetRange", &GetRangeRequest{modalityRequest{Modality: 0}}},
		{"GetBrickLayout", &GetBrickLayoutRequest{lodModalityRequest{LOD: 1, Modality: 0}}},
		{"GetBrickOverlapSize", &GetBrickOverlapSizeRequest{}},
		{"GetBrickExtents", &GetBrickExtentsRequest{brickKeyRequest{BrickKey: model.BrickKey{
			Modality: 1, Timestep: 2, LOD: 3, LinearIndex: 4,
		}}}},
		{"MaxMinForKey", &MaxMinForKeyRequest{brickKeyRequest{BrickKey: model.BrickKey{
			Modality: 1, Timestep: 0, LOD: 2, LinearIndex: 99,
		}}}},
		{"GetMaxBrickSize", &GetMaxBrickSizeRequest{}},
		{"GetBrick", &GetBrickRequest{brickKeyRequest{BrickKey: model.BrickKey{
			Modality: 0, Timestep: 0, LOD: 0, LinearIndex: 7,
		}}}},
		{"SetIsoValue", &SetIsoValueRequest{Value: 0.42}},
		{"SetRenderMode", &SetRenderModeRequest{Mode: model.RenderModeIso}},
		{"SupportsRenderMode", &SupportsRenderModeRequest{Mode: model.RenderModeTF2D}},
		{"ZoomCamera", &ZoomCameraRequest{Zoom: -1.5}},
		{"MoveCamera", &MoveCameraRequest{Delta: model.Vec3f{1, 2, 3}}},
		{"RotateCamera", &RotateCameraRequest{Yaw: 10, Pitch: -5}},
		{"SetActiveModality", &SetActiveModalityRequest{Modality: 2}},
		{"SetActiveTimestep", &SetActiveTimestepRequest{Timestep: 9}},
		{"InitContext", &InitContextRequest{Width: 1920, Height: 1080}},
		{"StartRendering", &StartRenderingRequest{}},
		{"StopRendering", &StopRenderingRequest{}},
		{"ProceedRendering", &ProceedRenderingRequest{}},
		{"SetTransferFunction1D", &SetTransferFunction1DRequest{Values: []float64{0, 0.5, 1}}},
		{"SetTransferFunction2D", &SetTransferFunction2DRequest{Values: []float64{0, 1, 0, 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &Request{Type: tc.params.Type(), Rid: 7, Sid: 3, Params: tc.params}
			b, err := req.ToBytes()
			require.NoError(t, err)

			got, err := RequestFromBytes(b)
			require.NoError(t, err)

			assert.Equal(t, req.Type, got.Type)
			assert.Equal(t, req.Rid, got.Rid)
			assert.Equal(t, req.Sid, got.Sid)
			assert.Equal(t, tc.params, got.Params)
		})
	}
}

func TestReplyRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		params ReplyParams
	}{
		{"InitIOSession", &InitIOSessionReply{Sid: 5, ControlPort: "9100"}},
		{"InitProcessingSession", &InitProcessingSessionReply{Sid: 6, ControlPort: "9200", VisPort: "9201"}},
		{"CloseSession", &CloseSessionReply{}},
		{"ListFiles", &ListFilesReply{IOData: []IOData{
			{Name: "scan.raw", FileId: "1", Kind: KindDataset},
			{Name: "sub", FileId: "2", Kind: KindDirectory},
		}}},
		{"GetLODLevelCount", &GetLODLevelCountReply{LODCount: 4}},
		{"GetDomainSize", &GetDomainSizeReply{Size: model.Vec3u64{X: 256, Y: 256, Z: 128}}},
		{"GetTransformation", &GetTransformationReply{Matrix: model.Mat4d{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}}},
		{"GetRange", &GetRangeReply{Range: model.Vec2f{0, 255}}},
		{"GetBrickOverlapSize", &GetBrickOverlapSizeReply{Overlap: model.Vec3ui{X: 2, Y: 2, Z: 2}}},
		{"MaxMinForKey", &MaxMinForKeyReply{MinMax: model.MinMaxBlock{
			MinScalar: 1, MaxScalar: 200, MinGrad: 0, MaxGrad: 50,
		}}},
		{"GetDataType", &GetDataTypeReply{ValueType: model.ValueUint16}},
		{"GetSemantic", &GetSemanticReply{Semantic: model.SemanticVector}},
		{"Get1DHistogram", &Get1DHistogramReply{Bins: []uint64{0, 5, 10, 2}}},
		{"GetBrick", &GetBrickReply{Data: []byte{1, 2, 3, 4}, Success: true}},
		{"GetBrickMissing", &GetBrickReply{Data: []byte{}, Success: false}},
		{"SetIsoValue", &SetIsoValueReply{}},
		{"SupportsRenderMode", &SupportsRenderModeReply{Supported: true}},
		{"Error", &ErrorReply{Code: 17}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep := &Reply{Type: tc.params.Type(), Rid: 11, Sid: 3, Params: tc.params}
			b, err := rep.ToBytes()
			require.NoError(t, err)

			got, err := ReplyFromBytes(b)
			require.NoError(t, err)

			assert.Equal(t, rep.Type, got.Type)
			assert.Equal(t, rep.Rid, got.Rid)
			assert.Equal(t, rep.Sid, got.Sid)
			assert.Equal(t, tc.params, got.Params)
		})
	}
}

func TestToTypeUnknownToken(t *testing.T) {
	_, ok := ToType("NotARealCommand")
	assert.False(t, ok)
}

func TestRequestFromBytesRejectsUnknownType(t *testing.T) {
	w := NewSerialWriter()
	w.AppendString("type", "NotARealCommand")
	w.AppendUint("rid", 1)
	w.AppendUint("sid", 0)
	w.AppendObject("req", &CloseSessionRequest{})
	b, err := w.Bytes()
	require.NoError(t, err)

	_, err = RequestFromBytes(b)
	assert.Error(t, err)
}
