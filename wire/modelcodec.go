package wire

import (
	"fmt"

	"github.com/trinity-vr/trinity/model"
)

// This file holds the wire encodings for model.* value types referenced by
// command params below. It lives in wire (not model) so model stays free of
// a dependency on the serialization package.

func writeBrickKey(w *SerialWriter, key string, k model.BrickKey) {
	nested := NewSerialWriter()
	nested.AppendUint("mod", k.Modality)
	nested.AppendUint("ts", k.Timestep)
	nested.AppendUint("lod", k.LOD)
	nested.AppendUint("idx", k.LinearIndex)
	w.data[key] = nested.data
}

func readBrickKey(r *SerialReader, key string) (model.BrickKey, error) {
	nested, err := r.GetObject(key)
	if err != nil {
		return model.BrickKey{}, err
	}
	mod, err := nested.GetUint64("mod")
	if err != nil {
		return model.BrickKey{}, err
	}
	ts, err := nested.GetUint64("ts")
	if err != nil {
		return model.BrickKey{}, err
	}
	lod, err := nested.GetUint64("lod")
	if err != nil {
		return model.BrickKey{}, err
	}
	idx, err := nested.GetUint64("idx")
	if err != nil {
		return model.BrickKey{}, err
	}
	return model.BrickKey{Modality: mod, Timestep: ts, LOD: lod, LinearIndex: idx}, nil
}

func writeVec3u64(w *SerialWriter, key string, v model.Vec3u64) {
	w.AppendUintVector(key, []uint64{v.X, v.Y, v.Z})
}

func readVec3u64(r *SerialReader, key string) (model.Vec3u64, error) {
	vs, err := r.GetUintVector(key)
	if err != nil {
		return model.Vec3u64{}, err
	}
	if len(vs) != 3 {
		return model.Vec3u64{}, errBadVectorLen(key, 3, len(vs))
	}
	return model.Vec3u64{X: vs[0], Y: vs[1], Z: vs[2]}, nil
}

func writeVec3ui(w *SerialWriter, key string, v model.Vec3ui) {
	w.AppendUintVector(key, []uint64{uint64(v.X), uint64(v.Y), uint64(v.Z)})
}

func readVec3ui(r *SerialReader, key string) (model.Vec3ui, error) {
	vs, err := r.GetUintVector(key)
	if err != nil {
		return model.Vec3ui{}, err
	}
	if len(vs) != 3 {
		return model.Vec3ui{}, errBadVectorLen(key, 3, len(vs))
	}
	return model.Vec3ui{X: uint32(vs[0]), Y: uint32(vs[1]), Z: uint32(vs[2])}, nil
}

func writeVec3f(w *SerialWriter, key string, v model.Vec3f) {
	w.AppendFloatVector(key, []float64{float64(v.X()), float64(v.Y()), float64(v.Z())})
}

func readVec3f(r *SerialReader, key string) (model.Vec3f, error) {
	vs, err := r.GetFloatVector(key)
	if err != nil {
		return model.Vec3f{}, err
	}
	if len(vs) != 3 {
		return model.Vec3f{}, errBadVectorLen(key, 3, len(vs))
	}
	return model.Vec3f{float32(vs[0]), float32(vs[1]), float32(vs[2])}, nil
}

func writeVec2f(w *SerialWriter, key string, v model.Vec2f) {
	w.AppendFloatVector(key, []float64{float64(v.X()), float64(v.Y())})
}

func readVec2f(r *SerialReader, key string) (model.Vec2f, error) {
	vs, err := r.GetFloatVector(key)
	if err != nil {
		return model.Vec2f{}, err
	}
	if len(vs) != 2 {
		return model.Vec2f{}, errBadVectorLen(key, 2, len(vs))
	}
	return model.Vec2f{float32(vs[0]), float32(vs[1])}, nil
}

func writeMat4d(w *SerialWriter, key string, m model.Mat4d) {
	vals := make([]float64, 16)
	for i, f := range m {
		vals[i] = float64(f)
	}
	w.AppendFloatVector(key, vals)
}

func readMat4d(r *SerialReader, key string) (model.Mat4d, error) {
	vs, err := r.GetFloatVector(key)
	if err != nil {
		return model.Mat4d{}, err
	}
	if len(vs) != 16 {
		return model.Mat4d{}, errBadVectorLen(key, 16, len(vs))
	}
	var m model.Mat4d
	for i, f := range vs {
		m[i] = float32(f)
	}
	return m, nil
}

func writeMinMax(w *SerialWriter, key string, mm model.MinMaxBlock) {
	nested := NewSerialWriter()
	nested.AppendFloat("minS", float64(mm.MinScalar))
	nested.AppendFloat("maxS", float64(mm.MaxScalar))
	nested.AppendFloat("minG", float64(mm.MinGrad))
	nested.AppendFloat("maxG", float64(mm.MaxGrad))
	w.data[key] = nested.data
}

func readMinMax(r *SerialReader, key string) (model.MinMaxBlock, error) {
	nested, err := r.GetObject(key)
	if err != nil {
		return model.MinMaxBlock{}, err
	}
	minS, err := nested.GetFloat64("minS")
	if err != nil {
		return model.MinMaxBlock{}, err
	}
	maxS, err := nested.GetFloat64("maxS")
	if err != nil {
		return model.MinMaxBlock{}, err
	}
	minG, err := nested.GetFloat64("minG")
	if err != nil {
		return model.MinMaxBlock{}, err
	}
	maxG, err := nested.GetFloat64("maxG")
	if err != nil {
		return model.MinMaxBlock{}, err
	}
	return model.MinMaxBlock{
		MinScalar: float32(minS), MaxScalar: float32(maxS),
		MinGrad: float32(minG), MaxGrad: float32(maxG),
	}, nil
}

func errBadVectorLen(key string, want, got int) error {
	return fmt.Errorf("wire: key %q: expected vector of length %d, got %d", key, want, got)
}
