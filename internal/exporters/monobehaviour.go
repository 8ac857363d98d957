package exporters

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/leefowlercu/unibundle/internal/filetype"
	"github.com/leefowlercu/unibundle/internal/fsutil"
	"github.com/leefowlercu/unibundle/internal/unity"
)

// MonoBehaviourExporter writes a script component's field tree as YAML.
type MonoBehaviourExporter struct{}

// NewMonoBehaviourExporter creates a new MonoBehaviourExporter.
func NewMonoBehaviourExporter() *MonoBehaviourExporter {
	return &MonoBehaviourExporter{}
}

// Type returns the handled Unity type.
func (e *MonoBehaviourExporter) Type() string {
	return unity.TypeMonoBehaviour
}

// Export writes <name>.yaml.
func (e *MonoBehaviourExporter) Export(ctx context.Context, obj unity.Object, dir string) (Result, error) {
	mono, err := readAsset[*unity.MonoBehaviour](obj)
	if err != nil {
		return Result{}, err
	}
	if len(mono.Fields) == 0 {
		return Result{}, fmt.Errorf("%w; behaviour %d has no fields", ErrEmptyPayload, obj.PathID())
	}

	doc := yamlValue(mono.Fields)

	path := fsutil.UniquePath(dir, BaseName(mono.Name, prefixMono, obj.PathID()), ".yaml", obj.PathID())
	err = fsutil.WriteAtomic(path, 0644, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to write %s; %w", path, err)
	}
	return Result{Files: []string{path}}, nil
}

// yamlValue converts a decoded field tree into YAML-friendly values. Byte
// strings become text when they are valid text and !!binary nodes otherwise.
func yamlValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = yamlValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = yamlValue(item)
		}
		return out
	case []byte:
		if filetype.IsText(val) {
			return string(val)
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(val)}
	default:
		return v
	}
}
