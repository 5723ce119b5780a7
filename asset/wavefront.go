// Package asset loads external geometry resources.
package asset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nlatsos/helios/scene"
)

// Read mesh data from a wavefront OBJ stream. Only vertex ("v") and face
// ("f") statements are processed; faces with more than three vertices are
// fan-triangulated. Unknown statements are silently skipped.
func ReadWavefront(r io.Reader) (*scene.MeshData, error) {
	data := &scene.MeshData{}

	scanner := bufio.NewScanner(r)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			if len(lineTokens) < 4 {
				return nil, fmt.Errorf("wavefront: [line %d] unsupported syntax for 'v'; expected 3 arguments; got %d", lineNum, len(lineTokens)-1)
			}
			for i := 1; i < 4; i++ {
				val, err := strconv.ParseFloat(lineTokens[i], 32)
				if err != nil {
					return nil, fmt.Errorf("wavefront: [line %d] could not parse vertex coordinate: %s", lineNum, err.Error())
				}
				data.Positions = append(data.Positions, float32(val))
			}
		case "f":
			if len(lineTokens) < 4 {
				return nil, fmt.Errorf("wavefront: [line %d] unsupported syntax for 'f'; expected at least 3 arguments; got %d", lineNum, len(lineTokens)-1)
			}

			indices := make([]uint32, 0, len(lineTokens)-1)
			for _, token := range lineTokens[1:] {
				// Only the leading vertex index of a v/vt/vn triplet is used.
				vertToken := strings.SplitN(token, "/", 2)[0]
				index, err := strconv.ParseInt(vertToken, 10, 32)
				if err != nil {
					return nil, fmt.Errorf("wavefront: [line %d] could not parse vertex index: %s", lineNum, err.Error())
				}

				numVerts := int64(len(data.Positions) / 3)
				if index < 0 {
					// Negative indices are relative to the end of the vertex list.
					index += numVerts + 1
				}
				if index < 1 || index > numVerts {
					return nil, fmt.Errorf("wavefront: [line %d] vertex index %d out of range", lineNum, index)
				}
				indices = append(indices, uint32(index-1))
			}

			// Fan-triangulate polygons.
			for i := 1; i < len(indices)-1; i++ {
				data.Indices = append(data.Indices, indices[0], indices[i], indices[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wavefront: %s", err.Error())
	}

	if data.TriangleCount() == 0 {
		return nil, fmt.Errorf("wavefront: no triangles defined")
	}

	return data, nil
}

// Read mesh data from a wavefront OBJ file.
func ReadWavefrontFile(path string) (*scene.MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavefront: %s", err.Error())
	}
	defer f.Close()

	return ReadWavefront(f)
}
