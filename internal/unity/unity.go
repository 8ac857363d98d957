// Package unity defines the boundary to the external Unity container parser.
//
// The parser opens a bundle and yields its objects; each object exposes a
// stable per-bundle path ID, its declared type name and a Read step that
// materializes the type-specific fields. Container and TypeTree decoding
// happen entirely on the other side of this boundary.
package unity

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Unity type names understood by this tool.
const (
	TypeTexture2D     = "Texture2D"
	TypeSprite        = "Sprite"
	TypeMesh          = "Mesh"
	TypeAudioClip     = "AudioClip"
	TypeTextAsset     = "TextAsset"
	TypeFont          = "Font"
	TypeAnimationClip = "AnimationClip"
	TypeMonoBehaviour = "MonoBehaviour"
)

// SupportedTypes lists every type name that may be requested for extraction.
var SupportedTypes = []string{
	TypeAnimationClip,
	TypeAudioClip,
	TypeFont,
	TypeMesh,
	TypeMonoBehaviour,
	TypeSprite,
	TypeTextAsset,
	TypeTexture2D,
}

// IsSupportedType reports whether name is one of SupportedTypes.
func IsSupportedType(name string) bool {
	for _, t := range SupportedTypes {
		if t == name {
			return true
		}
	}
	return false
}

// DefaultUnityVersion is the schema-version hint used for bundles without embedded type metadata.
const DefaultUnityVersion = "2021.3.57f2"

// OpenOptions carries per-open hints for the parser.
type OpenOptions struct {
	// UnityVersion is used by the parser to resolve schemas for bundles
	// whose type metadata was stripped at build time.
	UnityVersion string
}

// Parser opens bundles.
type Parser interface {
	// Open opens the bundle at path. Files that are not bundles at all
	// yield an error satisfying IsNotBundle.
	Open(ctx context.Context, path string, opts OpenOptions) (Bundle, error)
}

// Bundle is an open bundle yielding objects in parser order.
type Bundle interface {
	// Next returns the next object, or io.EOF when the bundle is exhausted.
	Next() (Object, error)

	// Close releases the bundle's resources.
	Close() error
}

// Object is a single serialized entity inside a bundle.
type Object interface {
	// PathID is the object's stable identifier within its bundle.
	PathID() int64

	// TypeName is the object's declared Unity class name.
	TypeName() string

	// Read materializes the object's typed fields.
	Read() (Asset, error)
}

// Asset is a decoded object.
type Asset interface {
	// AssetName returns the object's declared m_Name, possibly empty.
	AssetName() string
}

// ErrNotBundle marks files the parser does not recognize as bundles.
var ErrNotBundle = errors.New("not a unity bundle")

// OpenError describes a failure to open a recognized (or possibly recognized) bundle.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open bundle %s; %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// IsNotBundle reports whether err indicates the file is not a bundle.
func IsNotBundle(err error) bool {
	return errors.Is(err, ErrNotBundle)
}

// notBundleHints are phrases parsers use when rejecting foreign files.
var notBundleHints = []string{"not a bundle", "unknown signature", "unrecognized", "bundle", "unity"}

// LooksLikeNotBundle applies the textual heuristic used for parsers that
// report failures only as messages: a message mentioning bundles or Unity
// means the file was rejected as foreign rather than found corrupt.
func LooksLikeNotBundle(message string) bool {
	lower := strings.ToLower(message)
	for _, hint := range notBundleHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
