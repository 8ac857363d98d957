package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leefowlercu/unibundle/internal/unity"
)

// EncodeOBJ renders a mesh as Wavefront OBJ text. X is mirrored and triangle
// winding reversed to convert from Unity's left-handed space. Returns "" for
// a mesh without vertices.
func EncodeOBJ(m *unity.Mesh) string {
	vertexCount := len(m.Vertices) / 3
	if vertexCount == 0 {
		return ""
	}
	hasNormals := len(m.Normals)/3 == vertexCount
	hasUV := len(m.UV)/2 == vertexCount

	var sb strings.Builder
	name := m.Name
	if name == "" {
		name = "mesh"
	}
	fmt.Fprintf(&sb, "g %s\n", name)

	for i := 0; i < vertexCount; i++ {
		sb.WriteString("v ")
		writeFloats(&sb, mirror(m.Vertices[i*3]), m.Vertices[i*3+1], m.Vertices[i*3+2])
	}
	if hasUV {
		for i := 0; i < vertexCount; i++ {
			sb.WriteString("vt ")
			writeFloats(&sb, m.UV[i*2], m.UV[i*2+1])
		}
	}
	if hasNormals {
		for i := 0; i < vertexCount; i++ {
			sb.WriteString("vn ")
			writeFloats(&sb, mirror(m.Normals[i*3]), m.Normals[i*3+1], m.Normals[i*3+2])
		}
	}

	for n, sub := range m.SubMeshes {
		fmt.Fprintf(&sb, "g %s_%d\n", name, n)
		for t := 0; t+2 < len(sub.Indices); t += 3 {
			a, b, c := sub.Indices[t], sub.Indices[t+1], sub.Indices[t+2]
			if int(a) >= vertexCount || int(b) >= vertexCount || int(c) >= vertexCount {
				continue
			}
			sb.WriteString("f")
			for _, idx := range [3]uint32{c, b, a} {
				sb.WriteByte(' ')
				sb.WriteString(faceVertex(idx+1, hasUV, hasNormals))
			}
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func mirror(v float32) float32 {
	if v == 0 {
		return 0
	}
	return -v
}

func faceVertex(idx uint32, uv, normals bool) string {
	s := strconv.FormatUint(uint64(idx), 10)
	switch {
	case uv && normals:
		return s + "/" + s + "/" + s
	case normals:
		return s + "//" + s
	case uv:
		return s + "/" + s
	default:
		return s
	}
}

func writeFloats(sb *strings.Builder, vals ...float32) {
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	sb.WriteByte('\n')
}
