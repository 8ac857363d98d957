package testutil

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/leefowlercu/unibundle/internal/unity"
)

// FakeObject is an in-memory unity.Object.
type FakeObject struct {
	ID      int64
	Type    string
	Asset   unity.Asset
	ReadErr error

	// Panic, when set, is raised from Read.
	Panic any
}

// NewFakeObject returns an object of typeName wrapping asset.
func NewFakeObject(id int64, typeName string, asset unity.Asset) *FakeObject {
	return &FakeObject{ID: id, Type: typeName, Asset: asset}
}

// PathID implements unity.Object.
func (o *FakeObject) PathID() int64 { return o.ID }

// TypeName implements unity.Object.
func (o *FakeObject) TypeName() string { return o.Type }

// Read implements unity.Object.
func (o *FakeObject) Read() (unity.Asset, error) {
	if o.Panic != nil {
		panic(o.Panic)
	}
	if o.ReadErr != nil {
		return nil, o.ReadErr
	}
	return o.Asset, nil
}

// FakeBundle is an in-memory unity.Bundle.
type FakeBundle struct {
	Objects []*FakeObject

	// Err, when set, is returned by Next after the objects instead of io.EOF.
	Err error

	pos    int
	closed bool
}

// Next implements unity.Bundle.
func (b *FakeBundle) Next() (unity.Object, error) {
	if b.closed {
		return nil, fmt.Errorf("bundle closed")
	}
	if b.pos >= len(b.Objects) {
		if b.Err != nil {
			return nil, b.Err
		}
		return nil, io.EOF
	}
	obj := b.Objects[b.pos]
	b.pos++
	return obj, nil
}

// Close implements unity.Bundle.
func (b *FakeBundle) Close() error {
	b.closed = true
	return nil
}

// Closed reports whether Close was called.
func (b *FakeBundle) Closed() bool {
	return b.closed
}

// FakeParser is an in-memory unity.Parser. Bundles are keyed by file base
// name, so a bundle opened from a scratch copy resolves to the same entry.
// Unknown names are rejected as not-a-bundle.
type FakeParser struct {
	mu       sync.Mutex
	bundles  map[string]*FakeBundle
	openErrs map[string]error
	opened   []string
	versions []string
}

// NewFakeParser creates an empty FakeParser.
func NewFakeParser() *FakeParser {
	return &FakeParser{
		bundles:  make(map[string]*FakeBundle),
		openErrs: make(map[string]error),
	}
}

// AddBundle registers a bundle under name.
func (p *FakeParser) AddBundle(name string, objects ...*FakeObject) *FakeBundle {
	p.mu.Lock()
	defer p.mu.Unlock()
	b := &FakeBundle{Objects: objects}
	p.bundles[name] = b
	return b
}

// FailOpen makes opening name fail with err.
func (p *FakeParser) FailOpen(name string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openErrs[name] = err
}

// Opened returns the paths passed to Open, in order.
func (p *FakeParser) Opened() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.opened...)
}

// Versions returns the Unity version hints passed to Open, in order.
func (p *FakeParser) Versions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.versions...)
}

// Open implements unity.Parser.
func (p *FakeParser) Open(ctx context.Context, path string, opts unity.OpenOptions) (unity.Bundle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.opened = append(p.opened, path)
	p.versions = append(p.versions, opts.UnityVersion)

	name := filepath.Base(path)
	if err, ok := p.openErrs[name]; ok {
		return nil, &unity.OpenError{Path: path, Err: err}
	}
	b, ok := p.bundles[name]
	if !ok {
		return nil, &unity.OpenError{Path: path, Err: unity.ErrNotBundle}
	}
	b.pos = 0
	b.closed = false
	return b, nil
}
