package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/philipparndt/gopose/pkg/layout"
)

// Placements collects the placement matrix of every object, keyed by object
// name. Duplicate names are not rejected: the most recently added object
// silently overwrites earlier entries.
func Placements(l *layout.Layout) map[string][][]float64 {
	placements := make(map[string][][]float64, len(l.Objects))
	for _, object := range l.Objects {
		placements[object.Name] = object.PlacementRows()
	}
	return placements
}

// MarshalPlacements serializes the placement map as indented JSON
func MarshalPlacements(l *layout.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(Placements(l), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal placements: %w", err)
	}
	return data, nil
}

// WriteJSON writes the placement JSON document
func WriteJSON(w io.Writer, l *layout.Layout) error {
	data, err := MarshalPlacements(l)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
