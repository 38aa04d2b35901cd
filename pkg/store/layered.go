package store

import (
	"context"
	"maps"
)

// Layered merges several sources. Layers are read in order and a key found in
// a later layer overrides the same key from an earlier one, so the usual
// order is defaults first and overrides last.
type Layered struct {
	layers []Source
}

// NewLayered returns a Source merging layers, lowest precedence first.
func NewLayered(layers ...Source) *Layered {
	return &Layered{layers: layers}
}

// Snapshot reads every layer and merges the results. The first failing layer
// aborts the merge.
func (l *Layered) Snapshot(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	for _, layer := range l.layers {
		m, err := layer.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		maps.Copy(out, m)
	}
	return out, nil
}
