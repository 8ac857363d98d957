// Package filetype detects payload formats from their leading magic bytes.
package filetype

import (
	"bytes"
	"unicode/utf8"
)

// Container signatures found at offset 0 of Unity bundle files.
const (
	SignatureUnityFS      = "UnityFS"
	SignatureUnityWeb     = "UnityWeb"
	SignatureUnityRaw     = "UnityRaw"
	SignatureUnityArchive = "UnityArchive"
	SignatureUnityCFS     = "UnityCFS"
)

// containerSignatures is ordered so that longer signatures sharing a prefix win.
var containerSignatures = []string{
	SignatureUnityArchive,
	SignatureUnityCFS,
	SignatureUnityWeb,
	SignatureUnityRaw,
	SignatureUnityFS,
}

var (
	magicOgg  = []byte("OggS")
	magicRIFF = []byte("RIFF")
	magicID3  = []byte("ID3")
	magicFLAC = []byte("fLaC")
	magicOTTO = []byte("OTTO")
)

// AudioExtension returns the file extension for an audio sample.
// Unknown payloads default to ".wav".
func AudioExtension(data []byte) string {
	switch {
	case bytes.HasPrefix(data, magicOgg):
		return ".ogg"
	case bytes.HasPrefix(data, magicRIFF):
		return ".wav"
	case bytes.HasPrefix(data, magicID3), isMPEGFrame(data):
		return ".mp3"
	case bytes.HasPrefix(data, magicFLAC):
		return ".flac"
	default:
		return ".wav"
	}
}

// isMPEGFrame matches MPEG-1/2 Layer III frame sync words without CRC (FF FB, FF F3)
// and the MPEG-2 variant with CRC (FF F2).
func isMPEGFrame(data []byte) bool {
	if len(data) < 2 || data[0] != 0xFF {
		return false
	}
	switch data[1] {
	case 0xFB, 0xF3, 0xF2:
		return true
	}
	return false
}

// FontExtension returns ".otf" for CFF-flavoured OpenType fonts and ".ttf" otherwise.
func FontExtension(data []byte) string {
	if bytes.HasPrefix(data, magicOTTO) {
		return ".otf"
	}
	return ".ttf"
}

// IsText reports whether data looks like UTF-8 text.
// NUL bytes mark a payload as binary even when it is otherwise valid UTF-8.
func IsText(data []byte) bool {
	if bytes.IndexByte(data, 0) != -1 {
		return false
	}
	return utf8.Valid(data)
}

// ContainerSignature returns the Unity container signature at the start of data,
// or "" when none matches.
func ContainerSignature(data []byte) string {
	for _, sig := range containerSignatures {
		if bytes.HasPrefix(data, []byte(sig)) {
			return sig
		}
	}
	return ""
}
