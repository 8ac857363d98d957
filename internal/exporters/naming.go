package exporters

import (
	"strconv"
	"strings"
	"unicode"
)

// Fallback name prefixes, used when an object has no declared name.
const (
	prefixTexture = "texture"
	prefixSprite  = "sprite"
	prefixMesh    = "mesh"
	prefixAudio   = "audio"
	prefixText    = "text"
	prefixFont    = "font"
	prefixMono    = "mono"
)

// SanitizeName replaces every character other than letters, digits, '.', '_'
// and '-' with '_'. Letters and digits include non-ASCII ones.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '.' || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, name)
}

// BaseName returns the sanitized declared name, or "<prefix>_<pathID>" when
// the name is empty or would resolve to a directory reference.
func BaseName(declared, prefix string, pathID int64) string {
	name := SanitizeName(declared)
	if strings.Trim(name, ".") == "" {
		return prefix + "_" + strconv.FormatInt(pathID, 10)
	}
	return name
}
