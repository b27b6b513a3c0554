// Package wire implements Trinity's command/reply serialization contract
//: a closed VclType enumeration, a self-describing key/value
// document writer/reader, and the Request/Reply/ErrorReply envelopes that
// carry a typed payload across a transport.Channel.
package wire

// VclType is the closed enumeration of command kinds. Values are
// never renumbered once shipped, since they round-trip across the wire as
// tokens (see vclTokens below), not as raw ints.
type VclType int

const (
	TypeUnknown VclType = iota

	// Session lifecycle.
	TypeInitIOSession
	TypeInitProcessingSession
	TypeCloseSession

	// I/O node + dataset listing.
	TypeListFiles

	// Per-dataset metadata queries.
	TypeGetLODLevelCount
	TypeGetModalityCount
	TypeGetComponentCount
	TypeGetNumberOfTimesteps
	TypeGetDomainSize
	TypeGetTransformation
	TypeGetRange
	TypeGetBrickLayout
	TypeGetBrickOverlapSize
	TypeGetBrickExtents
	TypeGetBrickVoxelCounts
	TypeMaxMinForKey
	TypeGetMaxBrickSize
	TypeGetMaxUsedBrickSizes
	TypeGetLargestSingleBrickLOD
	TypeGetDataType
	TypeGetSemantic
	TypeGetDefault1DTransferFunction
	TypeGetDefault2DTransferFunction
	TypeGet1DHistogram
	TypeGet2DHistogram
	TypeGetBrick

	// Rendering commands.
	TypeSetIsoValue
	TypeSetRenderMode
	TypeSupportsRenderMode
	TypeZoomCamera
	TypeMoveCamera
	TypeRotateCamera
	TypeSetActiveModality
	TypeSetActiveTimestep
	TypeInitContext
	TypeStartRendering
	TypeStopRendering
	TypeProceedRendering
	TypeSetTransferFunction1D
	TypeSetTransferFunction2D

	// Error/return.
	TypeError
)

// vclTokens is the process-wide registry mapping VclType to its wire token
// and back. Open Question (a) in DESIGN.md: no
// code-generator or derive macro is used; this is the literal mapping a
// generator would have produced.
var vclTokens = map[VclType]string{
	TypeInitIOSession:                "InitIOSession",
	TypeInitProcessingSession:        "InitProcessingSession",
	TypeCloseSession:                 "CloseSession",
	TypeListFiles:                    "ListFiles",
	TypeGetLODLevelCount:             "GetLODLevelCount",
	TypeGetModalityCount:             "GetModalityCount",
	TypeGetComponentCount:            "GetComponentCount",
	TypeGetNumberOfTimesteps:         "GetNumberOfTimesteps",
	TypeGetDomainSize:                "GetDomainSize",
	TypeGetTransformation:            "GetTransformation",
	TypeGetRange:                     "GetRange",
	TypeGetBrickLayout:               "GetBrickLayout",
	TypeGetBrickOverlapSize:          "GetBrickOverlapSize",
	TypeGetBrickExtents:              "GetBrickExtents",
	TypeGetBrickVoxelCounts:          "GetBrickVoxelCounts",
	TypeMaxMinForKey:                 "MaxMinForKey",
	TypeGetMaxBrickSize:              "GetMaxBrickSize",
	TypeGetMaxUsedBrickSizes:         "GetMaxUsedBrickSizes",
	TypeGetLargestSingleBrickLOD:     "GetLargestSingleBrickLOD",
	TypeGetDataType:                  "GetDataType",
	TypeGetSemantic:                  "GetSemantic",
	TypeGetDefault1DTransferFunction: "GetDefault1DTransferFunction",
	TypeGetDefault2DTransferFunction: "GetDefault2DTransferFunction",
	TypeGet1DHistogram:               "Get1DHistogram",
	TypeGet2DHistogram:               "Get2DHistogram",
	TypeGetBrick:                     "GetBrick",
	TypeSetIsoValue:                  "SetIsoValue",
	TypeSetRenderMode:                "SetRenderMode",
	TypeSupportsRenderMode:           "SupportsRenderMode",
	TypeZoomCamera:                   "ZoomCamera",
	TypeMoveCamera:                   "MoveCamera",
	TypeRotateCamera:                 "RotateCamera",
	TypeSetActiveModality:            "SetActiveModality",
	TypeSetActiveTimestep:            "SetActiveTimestep",
	TypeInitContext:                  "InitContext",
	TypeStartRendering:               "StartRendering",
	TypeStopRendering:                "StopRendering",
	TypeProceedRendering:             "ProceedRendering",
	TypeSetTransferFunction1D:        "SetTransferFunction1D",
	TypeSetTransferFunction2D:        "SetTransferFunction2D",
	TypeError:                        "Error",
}

var vclFromToken map[string]VclType

func init() {
	vclFromToken = make(map[string]VclType, len(vclTokens))
	for t, s := range vclTokens {
		vclFromToken[s] = t
	}
}

// ToString returns the wire token for t, or "" if t is not registered.
func ToString(t VclType) string { return vclTokens[t] }

// ToType resolves a wire token back to its VclType. ok is false for an
// unregistered token, which callers must treat as a protocol-fatal
// InvalidMessage error.
func ToType(s string) (VclType, bool) {
	t, ok := vclFromToken[s]
	return t, ok
}
