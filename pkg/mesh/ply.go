package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/philipparndt/gopose/pkg/geometry"
)

// plyProperty describes one property of a PLY element
type plyProperty struct {
	name      string
	typ       string
	isList    bool
	countType string
	itemType  string
}

// plyElement describes one element group ("vertex", "face", ...) of a PLY file
type plyElement struct {
	name       string
	count      int
	properties []plyProperty
}

// plyHeader is the parsed PLY header
type plyHeader struct {
	binary   bool
	elements []plyElement
}

// ParsePLY reads a PLY file (ASCII or binary little-endian) and returns a Model.
// Polygonal faces are triangulated as a fan around the first vertex.
// Vertex properties other than x, y and z (colors, normals, texture
// coordinates) are read and discarded.
func ParsePLY(filename string) (*Model, error) {
	file, err := open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	model := NewModel(baseName(filename))
	var positions []geometry.Vector3

	for _, element := range header.elements {
		switch element.name {
		case "vertex":
			positions, err = readPLYVertices(reader, header.binary, element)
			if err != nil {
				return nil, err
			}

		case "face":
			if err := readPLYFaces(reader, header.binary, element, positions, model); err != nil {
				return nil, err
			}

		default:
			// Unknown element (edges, materials): skip its data
			if err := skipPLYElement(reader, header.binary, element); err != nil {
				return nil, err
			}
		}
	}

	return model, nil
}

// parsePLYHeader reads the PLY header up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	magic, err := readPLYLine(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY magic: %w", err)
	}
	if magic != "ply" {
		return nil, fmt.Errorf("not a PLY file (missing 'ply' magic)")
	}

	header := &plyHeader{}
	formatSeen := false

	for {
		line, err := readPLYLine(reader)
		if err != nil {
			return nil, fmt.Errorf("unexpected end of PLY header: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "comment", "obj_info":
			continue

		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("malformed PLY format line: %q", line)
			}
			switch fields[1] {
			case "ascii":
				header.binary = false
			case "binary_little_endian":
				header.binary = true
			default:
				return nil, fmt.Errorf("unsupported PLY format: %s", fields[1])
			}
			formatSeen = true

		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed PLY element line: %q", line)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count in %q", line)
			}
			header.elements = append(header.elements, plyElement{
				name:  fields[1],
				count: count,
			})

		case "property":
			if len(header.elements) == 0 {
				return nil, fmt.Errorf("PLY property before any element")
			}
			element := &header.elements[len(header.elements)-1]
			if len(fields) >= 5 && fields[1] == "list" {
				element.properties = append(element.properties, plyProperty{
					name:      fields[4],
					isList:    true,
					countType: fields[2],
					itemType:  fields[3],
				})
			} else if len(fields) >= 3 {
				element.properties = append(element.properties, plyProperty{
					name: fields[2],
					typ:  fields[1],
				})
			} else {
				return nil, fmt.Errorf("malformed PLY property line: %q", line)
			}

		case "end_header":
			if !formatSeen {
				return nil, fmt.Errorf("PLY header has no format line")
			}
			return header, nil

		default:
			return nil, fmt.Errorf("unexpected PLY header line: %q", line)
		}
	}
}

// readPLYLine reads one newline-terminated header line
func readPLYLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPLYVertices reads the vertex element and returns the positions
func readPLYVertices(reader *bufio.Reader, isBinary bool, element plyElement) ([]geometry.Vector3, error) {
	xIdx, yIdx, zIdx := -1, -1, -1
	for i, prop := range element.properties {
		switch prop.name {
		case "x":
			xIdx = i
		case "y":
			yIdx = i
		case "z":
			zIdx = i
		}
	}
	if xIdx < 0 || yIdx < 0 || zIdx < 0 {
		return nil, fmt.Errorf("PLY vertex element is missing x/y/z properties")
	}

	positions := make([]geometry.Vector3, 0, element.count)
	for i := 0; i < element.count; i++ {
		values, err := readPLYRow(reader, isBinary, element.properties)
		if err != nil {
			return nil, fmt.Errorf("failed to read vertex %d: %w", i, err)
		}
		positions = append(positions, geometry.NewVector3(
			values[xIdx][0],
			values[yIdx][0],
			values[zIdx][0],
		))
	}
	return positions, nil
}

// readPLYFaces reads the face element and adds triangulated faces to the model
func readPLYFaces(reader *bufio.Reader, isBinary bool, element plyElement, positions []geometry.Vector3, model *Model) error {
	faceIdx := -1
	for i, prop := range element.properties {
		if prop.isList && (prop.name == "vertex_indices" || prop.name == "vertex_index") {
			faceIdx = i
			break
		}
	}
	if faceIdx < 0 {
		return fmt.Errorf("PLY face element is missing vertex_indices")
	}

	for i := 0; i < element.count; i++ {
		values, err := readPLYRow(reader, isBinary, element.properties)
		if err != nil {
			return fmt.Errorf("failed to read face %d: %w", i, err)
		}

		indices := values[faceIdx]
		for j := 1; j < len(indices)-1; j++ {
			i0, i1, i2 := int(indices[0]), int(indices[j]), int(indices[j+1])
			if i0 < 0 || i0 >= len(positions) ||
				i1 < 0 || i1 >= len(positions) ||
				i2 < 0 || i2 >= len(positions) {
				return fmt.Errorf("face %d references vertex out of range", i)
			}
			triangle := geometry.NewTriangle(geometry.Vector3{}, positions[i0], positions[i1], positions[i2])
			triangle.Normal = triangle.CalculateNormal()
			model.AddTriangle(triangle)
		}
	}
	return nil
}

// skipPLYElement consumes the data rows of an element that is not used
func skipPLYElement(reader *bufio.Reader, isBinary bool, element plyElement) error {
	for i := 0; i < element.count; i++ {
		if _, err := readPLYRow(reader, isBinary, element.properties); err != nil {
			return fmt.Errorf("failed to skip %s %d: %w", element.name, i, err)
		}
	}
	return nil
}

// readPLYRow reads one element row and returns the values per property.
// Scalar properties produce a single-value slice; list properties produce
// one value per list item.
func readPLYRow(reader *bufio.Reader, isBinary bool, properties []plyProperty) ([][]float64, error) {
	if isBinary {
		return readPLYRowBinary(reader, properties)
	}
	return readPLYRowASCII(reader, properties)
}

func readPLYRowASCII(reader *bufio.Reader, properties []plyProperty) ([][]float64, error) {
	line, err := readPLYLine(reader)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)

	values := make([][]float64, len(properties))
	pos := 0
	next := func() (float64, error) {
		if pos >= len(fields) {
			return 0, fmt.Errorf("too few values in row %q", line)
		}
		v, err := strconv.ParseFloat(fields[pos], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid value %q", fields[pos])
		}
		pos++
		return v, nil
	}

	for i, prop := range properties {
		if prop.isList {
			count, err := next()
			if err != nil {
				return nil, err
			}
			n := int(count)
			items := make([]float64, n)
			for j := 0; j < n; j++ {
				if items[j], err = next(); err != nil {
					return nil, err
				}
			}
			values[i] = items
		} else {
			v, err := next()
			if err != nil {
				return nil, err
			}
			values[i] = []float64{v}
		}
	}
	return values, nil
}

func readPLYRowBinary(reader *bufio.Reader, properties []plyProperty) ([][]float64, error) {
	values := make([][]float64, len(properties))

	for i, prop := range properties {
		if prop.isList {
			count, err := readPLYScalar(reader, prop.countType)
			if err != nil {
				return nil, err
			}
			n := int(count)
			items := make([]float64, n)
			for j := 0; j < n; j++ {
				if items[j], err = readPLYScalar(reader, prop.itemType); err != nil {
					return nil, err
				}
			}
			values[i] = items
		} else {
			v, err := readPLYScalar(reader, prop.typ)
			if err != nil {
				return nil, err
			}
			values[i] = []float64{v}
		}
	}
	return values, nil
}

// readPLYScalar reads one little-endian scalar of the named PLY type
func readPLYScalar(reader io.Reader, typ string) (float64, error) {
	switch typ {
	case "char", "int8":
		var v int8
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float64(v), err
	case "uchar", "uint8":
		var v uint8
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float64(v), err
	case "short", "int16":
		var v int16
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float64(v), err
	case "ushort", "uint16":
		var v uint16
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float64(v), err
	case "int", "int32":
		var v int32
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float64(v), err
	case "uint", "uint32":
		var v uint32
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float64(v), err
	case "float", "float32":
		var v uint32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(v)), nil
	case "double", "float64":
		var v uint64
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return math.Float64frombits(v), nil
	default:
		return 0, fmt.Errorf("unsupported PLY type: %s", typ)
	}
}
