package lqt

import (
	"bytes"
	"sync"
)

// Codec is the generic interface the default LQT implementation satisfies,
// grounded on the teacher's codec.Codec: encode a frame into a self-describing
// byte slice, decode a byte slice back into a frame, report a name. There is
// no UID here the way the teacher's DICOM transfer-syntax codecs carry one —
// this module has no transfer-syntax registry to key into — so Name() alone
// identifies a Codec.
type Codec interface {
	Name() string
	Encode(f *Frame, opts EncodeOptions) ([]byte, error)
	Decode(data []byte) (*Frame, error)
}

// Registry is a name-keyed lookup of Codec implementations, safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

var defaultRegistry = &Registry{codecs: make(map[string]Codec)}

// Register adds c to the default registry under c.Name().
func Register(c Codec) { defaultRegistry.Register(c) }

// Get looks up a codec by name in the default registry.
func Get(name string) (Codec, bool) { return defaultRegistry.Get(name) }

// Register adds c under c.Name(), replacing any codec previously
// registered under that name.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[c.Name()] = c
}

// Get looks up a codec by name.
func (r *Registry) Get(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[name]
	return c, ok
}

// defaultCodec adapts the package-level Encode/Decode functions (streaming,
// io.Writer/io.Reader based) to the byte-slice-based Codec interface.
type defaultCodec struct{}

func (defaultCodec) Name() string { return "lqt" }

func (defaultCodec) Encode(f *Frame, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Encode(&buf, f, opts); err != nil {
		return buf.Bytes(), err
	}
	return buf.Bytes(), nil
}

func (defaultCodec) Decode(data []byte) (*Frame, error) {
	return Decode(bytes.NewReader(data))
}

// Default returns the built-in pyramidal quadtree codec as a Codec value.
func Default() Codec { return defaultCodec{} }

func init() {
	Register(Default())
}
