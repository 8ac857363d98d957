package exporters

import (
	"context"
	"fmt"

	"github.com/leefowlercu/unibundle/internal/codec"
	"github.com/leefowlercu/unibundle/internal/fsutil"
	"github.com/leefowlercu/unibundle/internal/unity"
)

// MeshExporter writes Mesh objects as Wavefront OBJ text.
type MeshExporter struct{}

// NewMeshExporter creates a new MeshExporter.
func NewMeshExporter() *MeshExporter {
	return &MeshExporter{}
}

// Type returns the handled Unity type.
func (e *MeshExporter) Type() string {
	return unity.TypeMesh
}

// Export renders the mesh and writes <name>.obj. Meshes that render to
// empty text are failures.
func (e *MeshExporter) Export(ctx context.Context, obj unity.Object, dir string) (Result, error) {
	mesh, err := readAsset[*unity.Mesh](obj)
	if err != nil {
		return Result{}, err
	}

	text := codec.EncodeOBJ(mesh)
	if text == "" {
		return Result{}, fmt.Errorf("%w; mesh %d has no vertices", ErrEmptyPayload, obj.PathID())
	}

	path := fsutil.UniquePath(dir, BaseName(mesh.Name, prefixMesh, obj.PathID()), ".obj", obj.PathID())
	if err := fsutil.WriteFileAtomic(path, []byte(text), 0644); err != nil {
		return Result{}, fmt.Errorf("failed to write %s; %w", path, err)
	}
	return Result{Files: []string{path}}, nil
}
