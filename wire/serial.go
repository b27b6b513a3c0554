package wire

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Serializable is implemented by every RequestParams/ReplyParams type so it
// can be appended as a nested object.
type Serializable interface {
	WriteTo(w *SerialWriter)
}

// Readable is the reader-side counterpart: a concrete params type populates
// itself from a nested SerialReader.
type Readable interface {
	ReadFrom(r *SerialReader) error
}

// SerialWriter appends keyed primitives, strings, vectors and nested
// serializables in a fixed, command-defined order; the resulting document
// is order-insensitive to decode.
type SerialWriter struct {
	data map[string]any
}

// NewSerialWriter returns an empty writer.
func NewSerialWriter() *SerialWriter {
	return &SerialWriter{data: make(map[string]any)}
}

func (w *SerialWriter) AppendString(key, value string) { w.data[key] = value }
func (w *SerialWriter) AppendInt(key string, value int64) { w.data[key] = value }
func (w *SerialWriter) AppendUint(key string, value uint64) { w.data[key] = value }
func (w *SerialWriter) AppendFloat(key string, value float64) { w.data[key] = value }
func (w *SerialWriter) AppendBool(key string, value bool) { w.data[key] = value }

// AppendBytes stores a binary blob; it is transported base64-encoded since
// the wire document is a self-describing key/value text document.
func (w *SerialWriter) AppendBytes(key string, value []byte) {
	w.data[key] = base64.StdEncoding.EncodeToString(value)
}

func (w *SerialWriter) AppendStringVector(key string, values []string) { w.data[key] = values }

func (w *SerialWriter) AppendUintVector(key string, values []uint64) { w.data[key] = values }

func (w *SerialWriter) AppendFloatVector(key string, values []float64) { w.data[key] = values }

// AppendObject nests a Serializable under key.
func (w *SerialWriter) AppendObject(key string, obj Serializable) {
	nested := NewSerialWriter()
	obj.WriteTo(nested)
	w.data[key] = nested.data
}

// AppendObjectVector nests a slice of Serializables under key.
func (w *SerialWriter) AppendObjectVector(key string, objs []Serializable) {
	out := make([]map[string]any, len(objs))
	for i, obj := range objs {
		nested := NewSerialWriter()
		obj.WriteTo(nested)
		out[i] = nested.data
	}
	w.data[key] = out
}

// Bytes renders the document. The concrete encoding (JSON) is an
// implementation detail; any self-describing key/value encoding would
// satisfy ReadFrom/WriteTo equally well.
func (w *SerialWriter) Bytes() ([]byte, error) {
	return json.Marshal(w.data)
}

// SerialReader is the symmetric, strongly-typed reader over a document
// produced by SerialWriter.
type SerialReader struct {
	data map[string]any
}

// NewSerialReader parses b into a reader.
func NewSerialReader(b []byte) (*SerialReader, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("wire: malformed document: %w", err)
	}
	return &SerialReader{data: data}, nil
}

func newSerialReaderFromMap(m map[string]any) *SerialReader { return &SerialReader{data: m} }

func (r *SerialReader) raw(key string) (any, error) {
	v, ok := r.data[key]
	if !ok {
		return nil, fmt.Errorf("wire: missing key %q", key)
	}
	return v, nil
}

func (r *SerialReader) GetString(key string) (string, error) {
	v, err := r.raw(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("wire: key %q: expected string, got %T", key, v)
	}
	return s, nil
}

func (r *SerialReader) number(key string) (json.Number, error) {
	v, err := r.raw(key)
	if err != nil {
		return "", err
	}
	n, ok := v.(json.Number)
	if !ok {
		return "", fmt.Errorf("wire: key %q: expected number, got %T", key, v)
	}
	return n, nil
}

func (r *SerialReader) GetInt64(key string) (int64, error) {
	n, err := r.number(key)
	if err != nil {
		return 0, err
	}
	i, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("wire: key %q: %w", key, err)
	}
	return i, nil
}

func (r *SerialReader) GetUint64(key string) (uint64, error) {
	i, err := r.GetInt64(key)
	if err != nil {
		return 0, err
	}
	return uint64(i), nil
}

func (r *SerialReader) GetFloat64(key string) (float64, error) {
	n, err := r.number(key)
	if err != nil {
		return 0, err
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("wire: key %q: %w", key, err)
	}
	return f, nil
}

func (r *SerialReader) GetBool(key string) (bool, error) {
	v, err := r.raw(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("wire: key %q: expected bool, got %T", key, v)
	}
	return b, nil
}

func (r *SerialReader) GetBytes(key string) ([]byte, error) {
	s, err := r.GetString(key)
	if err != nil {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("wire: key %q: invalid base64: %w", key, err)
	}
	return b, nil
}

func (r *SerialReader) rawSlice(key string) ([]any, error) {
	v, err := r.raw(key)
	if err != nil {
		return nil, err
	}
	s, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("wire: key %q: expected array, got %T", key, v)
	}
	return s, nil
}

func (r *SerialReader) GetStringVector(key string) ([]string, error) {
	raw, err := r.rawSlice(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("wire: key %q[%d]: expected string, got %T", key, i, v)
		}
		out[i] = s
	}
	return out, nil
}

func (r *SerialReader) GetUintVector(key string) ([]uint64, error) {
	raw, err := r.rawSlice(key)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, len(raw))
	for i, v := range raw {
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("wire: key %q[%d]: expected number, got %T", key, i, v)
		}
		iv, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("wire: key %q[%d]: %w", key, i, err)
		}
		out[i] = uint64(iv)
	}
	return out, nil
}

func (r *SerialReader) GetFloatVector(key string) ([]float64, error) {
	raw, err := r.rawSlice(key)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("wire: key %q[%d]: expected number, got %T", key, i, v)
		}
		fv, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("wire: key %q[%d]: %w", key, i, err)
		}
		out[i] = fv
	}
	return out, nil
}

// GetObject returns a nested reader for key.
func (r *SerialReader) GetObject(key string) (*SerialReader, error) {
	v, err := r.raw(key)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("wire: key %q: expected object, got %T", key, v)
	}
	return newSerialReaderFromMap(m), nil
}

// GetObjectVector returns nested readers for key.
func (r *SerialReader) GetObjectVector(key string) ([]*SerialReader, error) {
	raw, err := r.rawSlice(key)
	if err != nil {
		return nil, err
	}
	out := make([]*SerialReader, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("wire: key %q[%d]: expected object, got %T", key, i, v)
		}
		out[i] = newSerialReaderFromMap(m)
	}
	return out, nil
}

// HasKey reports whether key is present, for optional fields.
func (r *SerialReader) HasKey(key string) bool {
	_, ok := r.data[key]
	return ok
}
