package mesh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a mesh file and returns a Model.
// The format is selected by file extension: .stl, .obj or .ply.
func Load(filename string) (*Model, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".stl":
		return ParseSTL(filename)
	case ".obj":
		return ParseOBJ(filename)
	case ".ply":
		return ParsePLY(filename)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl, .obj or .ply)", ext)
	}
}

// SupportedExtension reports whether the file extension names a loadable format
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".stl", ".obj", ".ply":
		return true
	}
	return false
}

// baseName returns the file name without directory and extension,
// used as the default object name for a loaded mesh.
func baseName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// open is a small helper shared by the parsers
func open(filename string) (*os.File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}
