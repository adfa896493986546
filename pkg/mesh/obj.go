package mesh

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/gopose/pkg/geometry"
)

// ParseOBJ reads a Wavefront OBJ file and returns a Model.
// Polygonal faces are triangulated as a fan around the first vertex.
func ParseOBJ(filename string) (*Model, error) {
	file, err := open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	model := NewModel(baseName(filename))
	var positions []geometry.Vector3

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "o", "g":
			if len(fields) > 1 && model.TriangleCount() == 0 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			z, errZ := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil || errZ != nil {
				return nil, fmt.Errorf("line %d: invalid vertex coordinates", lineNo)
			}
			positions = append(positions, geometry.NewVector3(x, y, z))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := objVertexIndex(ref, len(positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				indices = append(indices, idx)
			}
			// Fan triangulation
			for i := 1; i < len(indices)-1; i++ {
				v1 := positions[indices[0]]
				v2 := positions[indices[i]]
				v3 := positions[indices[i+1]]
				triangle := geometry.NewTriangle(geometry.Vector3{}, v1, v2, v3)
				triangle.Normal = triangle.CalculateNormal()
				model.AddTriangle(triangle)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	return model, nil
}

// objVertexIndex resolves a face vertex reference ("7", "7/2", "7//3", "-1")
// to a zero-based position index. OBJ indices start at 1; negative indices
// count back from the end of the position list.
func objVertexIndex(ref string, positionCount int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}

	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", ref)
	}

	if idx < 0 {
		idx = positionCount + idx
	} else {
		idx--
	}

	if idx < 0 || idx >= positionCount {
		return 0, fmt.Errorf("face index %q out of range", ref)
	}
	return idx, nil
}
