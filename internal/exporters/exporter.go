// Package exporters converts decoded Unity objects into standalone files.
package exporters

import (
	"context"
	"errors"
	"fmt"

	"github.com/leefowlercu/unibundle/internal/codec"
	"github.com/leefowlercu/unibundle/internal/unity"
)

// Exporter writes one Unity type's objects out as files.
type Exporter interface {
	// Type returns the Unity type name this exporter handles.
	Type() string

	// Export reads obj and writes its payload into dir. A nil error means at
	// least one file was written; on error no partial file is left behind.
	Export(ctx context.Context, obj unity.Object, dir string) (Result, error)
}

// Result lists the files an export produced.
type Result struct {
	Files []string
}

var (
	// ErrEmptyPayload is returned when the object carries nothing to write.
	ErrEmptyPayload = errors.New("empty payload")

	// ErrZeroDimension is returned for images with a zero width or height.
	ErrZeroDimension = codec.ErrZeroDimension

	// ErrBelowMinSize marks textures filtered out by the minimum-size rule.
	// It is a skip, not a failure.
	ErrBelowMinSize = errors.New("below minimum size")

	// ErrUnexpectedAsset is returned when the parser yields a different asset shape than the type implies.
	ErrUnexpectedAsset = errors.New("unexpected asset shape")
)

// readAsset materializes obj and asserts its concrete asset type.
func readAsset[T unity.Asset](obj unity.Object) (T, error) {
	var zero T

	asset, err := obj.Read()
	if err != nil {
		return zero, fmt.Errorf("failed to read %s object %d; %w", obj.TypeName(), obj.PathID(), err)
	}

	typed, ok := asset.(T)
	if !ok {
		return zero, fmt.Errorf("%w; got %T for %s", ErrUnexpectedAsset, asset, obj.TypeName())
	}
	return typed, nil
}
