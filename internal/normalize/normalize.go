// Package normalize strips the 32-byte UnityCFS header some distributions prepend
// to standard UnityFS bundles.
//
// Header layout (little-endian):
//
//	[0:8)   magic "UnityCFS"
//	[8:12)  uint32 version
//	[12:32) SHA-1 digest of the payload
//	[32:)   UnityFS payload
package normalize

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leefowlercu/unibundle/internal/filetype"
	"github.com/leefowlercu/unibundle/internal/fsutil"
)

const (
	// AltMagic identifies a bundle carrying the alternate header.
	AltMagic = filetype.SignatureUnityCFS

	// StandardMagic is the signature the payload is expected to start with.
	StandardMagic = filetype.SignatureUnityFS

	// HeaderSize is the total size of the alternate header.
	HeaderSize = 32

	magicSize   = 8
	versionSize = 4
	digestSize  = 20
)

// ErrSamePath is returned when the output path refers to the input file.
var ErrSamePath = errors.New("output path must differ from input path")

// Header is a decoded alternate container header.
type Header struct {
	Version uint32
	Digest  [digestSize]byte
}

// ParseHeader decodes the alternate header at the start of b.
// Returns false if b is shorter than HeaderSize or does not start with AltMagic.
func ParseHeader(b []byte) (Header, bool) {
	if len(b) < HeaderSize || !bytes.Equal(b[:magicSize], []byte(AltMagic)) {
		return Header{}, false
	}

	var h Header
	h.Version = binary.LittleEndian.Uint32(b[magicSize : magicSize+versionSize])
	copy(h.Digest[:], b[magicSize+versionSize:HeaderSize])
	return h, true
}

// Encode prepends the alternate header for payload and returns the full file contents.
func Encode(version uint32, payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	copy(out, AltMagic)
	binary.LittleEndian.PutUint32(out[magicSize:], version)
	digest := fsutil.SHA1(payload)
	copy(out[magicSize+versionSize:], digest[:])
	copy(out[HeaderSize:], payload)
	return out
}

// Detect reports whether the file at path starts with the alternate magic.
func Detect(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	magic := make([]byte, magicSize)
	if _, err := io.ReadFull(f, magic); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(magic, []byte(AltMagic)), nil
}

// Normalizer converts alternate-header bundles into standard bundles.
type Normalizer struct {
	logger *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used for integrity warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{logger: slog.Default()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize writes the standard form of the bundle at in to out.
//
// When in carries the alternate header, the header is removed, the payload's
// signature and SHA-1 digest are checked (mismatches are logged, never fatal)
// and only the payload is written; stripped is true. Otherwise in is copied
// verbatim and stripped is false, which makes Normalize safe to run over
// mixed directories and idempotent on its own output.
//
// The input file is never modified; out is written atomically.
func (n *Normalizer) Normalize(in, out string) (stripped bool, err error) {
	if fsutil.SamePath(in, out) {
		return false, ErrSamePath
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return false, fmt.Errorf("failed to read %s; %w", in, err)
	}

	header, ok := ParseHeader(data)
	if !ok {
		if err := writeOutput(out, data); err != nil {
			return false, err
		}
		return false, nil
	}

	payload := data[HeaderSize:]

	if !bytes.HasPrefix(payload, []byte(StandardMagic)) {
		n.logger.Warn("payload after alternate header does not start with standard signature",
			"path", in, "want", StandardMagic)
	}

	if actual := fsutil.SHA1(payload); actual != header.Digest {
		n.logger.Warn("alternate header digest mismatch; payload may still be valid",
			"path", in,
			"stored", fmt.Sprintf("%x", header.Digest),
			"actual", fmt.Sprintf("%x", actual))
	}

	n.logger.Debug("stripped alternate header", "path", in, "version", header.Version, "payload_size", len(payload))

	if err := writeOutput(out, payload); err != nil {
		return true, err
	}
	return true, nil
}

// writeOutput writes data to path. Empty inputs are still copied so the
// pass-through law holds for zero-byte files.
func writeOutput(path string, data []byte) error {
	if len(data) == 0 {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s; %w", path, err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return fmt.Errorf("failed to write %s; %w", path, err)
		}
		return nil
	}
	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s; %w", path, err)
	}
	return nil
}
