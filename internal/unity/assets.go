package unity

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Field keys follow Unity's serialized field names where one exists; keys for
// values the parser derives (decoded pixels, sample payloads) are snake_case.

// Texture2D is a decoded texture. The parser supplies either ImageData
// (an already encoded image) or RGBA (raw 8-bit RGBA pixels, Width*Height*4 bytes).
type Texture2D struct {
	Name      string `cbor:"m_Name"`
	Width     int    `cbor:"m_Width"`
	Height    int    `cbor:"m_Height"`
	ImageData []byte `cbor:"image_data,omitempty"`
	RGBA      []byte `cbor:"rgba,omitempty"`
	BottomUp  bool   `cbor:"bottom_up,omitempty"`
}

// AssetName returns the texture's declared name.
func (t *Texture2D) AssetName() string { return t.Name }

// Sprite is a decoded sprite, already cropped from its atlas by the parser.
type Sprite struct {
	Name      string `cbor:"m_Name"`
	Width     int    `cbor:"width,omitempty"`
	Height    int    `cbor:"height,omitempty"`
	ImageData []byte `cbor:"image_data,omitempty"`
	RGBA      []byte `cbor:"rgba,omitempty"`
	BottomUp  bool   `cbor:"bottom_up,omitempty"`
}

// AssetName returns the sprite's declared name.
func (s *Sprite) AssetName() string { return s.Name }

// Mesh is decoded vertex data. Vertices and Normals are packed XYZ triples,
// UV is packed UV pairs.
type Mesh struct {
	Name      string    `cbor:"m_Name"`
	Vertices  []float32 `cbor:"vertices"`
	Normals   []float32 `cbor:"normals,omitempty"`
	UV        []float32 `cbor:"uv,omitempty"`
	SubMeshes []SubMesh `cbor:"sub_meshes,omitempty"`
}

// AssetName returns the mesh's declared name.
func (m *Mesh) AssetName() string { return m.Name }

// SubMesh is a triangle list referencing the mesh's vertices by zero-based index.
type SubMesh struct {
	Indices []uint32 `cbor:"indices"`
}

// AudioClip holds the clip's decoded samples keyed by sample name.
type AudioClip struct {
	Name    string            `cbor:"m_Name"`
	Samples map[string][]byte `cbor:"samples"`
}

// AssetName returns the clip's declared name.
func (a *AudioClip) AssetName() string { return a.Name }

// TextAsset is a text or binary script payload.
type TextAsset struct {
	Name   string `cbor:"m_Name"`
	Script Script `cbor:"m_Script"`
}

// AssetName returns the text asset's declared name.
func (t *TextAsset) AssetName() string { return t.Name }

// Script is a TextAsset payload that is either text or raw bytes.
type Script struct {
	Text   string
	Data   []byte
	IsText bool
}

// TextScript returns a textual Script.
func TextScript(s string) Script {
	return Script{Text: s, IsText: true}
}

// BinaryScript returns a binary Script.
func BinaryScript(b []byte) Script {
	return Script{Data: b}
}

// Bytes returns the payload bytes regardless of representation.
func (s Script) Bytes() []byte {
	if s.IsText {
		return []byte(s.Text)
	}
	return s.Data
}

// UnmarshalCBOR decodes a CBOR text string as text and a byte string as binary data.
func (s *Script) UnmarshalCBOR(data []byte) error {
	var v any
	if err := cbor.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case string:
		*s = TextScript(val)
	case []byte:
		*s = BinaryScript(val)
	case nil:
		*s = Script{}
	default:
		return fmt.Errorf("unexpected m_Script type %T", v)
	}
	return nil
}

// MarshalCBOR encodes text as a CBOR text string and binary data as a byte string.
func (s Script) MarshalCBOR() ([]byte, error) {
	if s.IsText {
		return cbor.Marshal(s.Text)
	}
	return cbor.Marshal(s.Data)
}

// Font holds raw font file bytes.
type Font struct {
	Name     string `cbor:"m_Name"`
	FontData []byte `cbor:"m_FontData"`
}

// AssetName returns the font's declared name.
func (f *Font) AssetName() string { return f.Name }

// MonoBehaviour is a script component's serialized field tree.
type MonoBehaviour struct {
	Name   string
	Fields map[string]any
}

// AssetName returns the behaviour's declared name.
func (m *MonoBehaviour) AssetName() string { return m.Name }

// Generic is any other object, kept as its raw field tree.
type Generic struct {
	Type   string
	Name   string
	Fields map[string]any
}

// AssetName returns the object's declared name.
func (g *Generic) AssetName() string { return g.Name }
