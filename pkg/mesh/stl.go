package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/gopose/pkg/geometry"
)

// ParseSTL reads an STL file, accepting both the ASCII and the binary
// encoding. ASCII files are recognized by their "solid" prefix; everything
// else is treated as binary.
func ParseSTL(filename string) (*Model, error) {
	file, err := open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	prefix, err := reader.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL header: %w", err)
	}

	var model *Model
	if string(prefix) == "solid" {
		model, err = parseSTLASCII(reader)
	} else {
		model, err = parseSTLBinary(reader)
	}
	if err != nil {
		return nil, err
	}

	if model.Name == "" {
		model.Name = baseName(filename)
	}
	return model, nil
}

func parseSTLASCII(reader io.Reader) (*Model, error) {
	model := NewModel("")
	scanner := bufio.NewScanner(reader)

	var normal geometry.Vector3
	var corners []geometry.Vector3

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				normal = stlVector(fields[2:5])
			}

		case "vertex":
			if len(fields) >= 4 {
				corners = append(corners, stlVector(fields[1:4]))
			}

		case "endfacet":
			if len(corners) == 3 {
				model.AddTriangle(geometry.NewTriangle(normal, corners[0], corners[1], corners[2]))
			}
			corners = corners[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

// stlVector parses three coordinate fields. Malformed numbers become zero,
// matching the permissive reading of most STL tools.
func stlVector(fields []string) geometry.Vector3 {
	x, _ := strconv.ParseFloat(fields[0], 64)
	y, _ := strconv.ParseFloat(fields[1], 64)
	z, _ := strconv.ParseFloat(fields[2], 64)
	return geometry.NewVector3(x, y, z)
}

// stlRecord is the fixed 50-byte facet record of the binary encoding.
// The attribute word is carried by the format but has no defined meaning.
type stlRecord struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

func parseSTLBinary(reader io.Reader) (*Model, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read binary STL header: %w", err)
	}
	model := NewModel(string(bytes.TrimRight(header, "\x00")))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read facet count: %w", err)
	}

	for i := uint32(0); i < count; i++ {
		var record stlRecord
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("failed to read facet %d: %w", i, err)
		}
		model.AddTriangle(geometry.NewTriangle(
			stlPoint(record.Normal),
			stlPoint(record.V1),
			stlPoint(record.V2),
			stlPoint(record.V3),
		))
	}

	return model, nil
}

func stlPoint(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
